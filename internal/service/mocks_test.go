package service_test

import (
	"context"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/port"
)

// stubStore is a canned-response FinanceStore. Each test seeds the slices
// it needs; unused methods return empty results.
type stubStore struct {
	txns        []domain.Transaction
	categories  []domain.Category
	loans       []domain.Loan
	investments []domain.Investment
	roiEntries  []domain.ROIEntry

	listTransactionCalls int
	createdTransactions  []domain.Transaction
	createdCategories    []domain.Category
	createdLoans         []domain.Loan

	err error
}

func (s *stubStore) ListTransactions(ctx context.Context, userID string, filter port.TransactionFilter) ([]domain.Transaction, error) {
	s.listTransactionCalls++
	return s.txns, s.err
}

func (s *stubStore) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	for i := range s.txns {
		if s.txns[i].ID == id {
			return &s.txns[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
}

func (s *stubStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdTransactions = append(s.createdTransactions, *tx)
	return tx, nil
}

func (s *stubStore) UpdateTransaction(ctx context.Context, userID, id string, tx *domain.Transaction) (*domain.Transaction, error) {
	tx.ID = id
	return tx, s.err
}

func (s *stubStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.err
}

func (s *stubStore) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubStore) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdCategories = append(s.createdCategories, *cat)
	return cat, nil
}

func (s *stubStore) DeleteCategory(ctx context.Context, userID, name string) error {
	return s.err
}

func (s *stubStore) ListLoans(ctx context.Context, userID string, filter port.LoanFilter) ([]domain.Loan, error) {
	return s.loans, s.err
}

func (s *stubStore) GetLoan(ctx context.Context, userID, id string) (*domain.Loan, error) {
	for i := range s.loans {
		if s.loans[i].ID == id {
			return &s.loans[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "loan", ID: id}
}

func (s *stubStore) CreateLoan(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdLoans = append(s.createdLoans, *loan)
	return loan, nil
}

func (s *stubStore) UpdateLoan(ctx context.Context, userID, id string, loan *domain.Loan) (*domain.Loan, error) {
	loan.ID = id
	return loan, s.err
}

func (s *stubStore) DeleteLoan(ctx context.Context, userID, id string) error {
	return s.err
}

func (s *stubStore) ListInvestments(ctx context.Context, userID, status string) ([]domain.Investment, error) {
	return s.investments, s.err
}

func (s *stubStore) GetInvestment(ctx context.Context, userID, id string) (*domain.Investment, error) {
	for i := range s.investments {
		if s.investments[i].ID == id {
			return &s.investments[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "investment", ID: id}
}

func (s *stubStore) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	return inv, s.err
}

func (s *stubStore) UpdateInvestment(ctx context.Context, userID, id string, inv *domain.Investment) (*domain.Investment, error) {
	inv.ID = id
	return inv, s.err
}

func (s *stubStore) ListROIEntries(ctx context.Context, investmentID string) ([]domain.ROIEntry, error) {
	return s.roiEntries, s.err
}

func (s *stubStore) CreateROIEntry(ctx context.Context, entry *domain.ROIEntry) (*domain.ROIEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.roiEntries = append(s.roiEntries, *entry)
	return entry, s.err
}

// stubRates is a canned RateSource keyed by "FROM:TO".
type stubRates struct {
	rates map[string]float64
	calls int
}

func (s *stubRates) GetRate(ctx context.Context, from, to string) (float64, error) {
	s.calls++
	if r, ok := s.rates[from+":"+to]; ok {
		return r, nil
	}
	return 0, &domain.ErrNotFound{Resource: "rate", ID: from + ":" + to}
}
