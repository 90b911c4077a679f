// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint" for that field.
type TransactionFilter struct {
	Category  string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// LoanFilter narrows a loan listing.
type LoanFilter struct {
	Status   string
	LoanType string
}

// FinanceStore defines all data operations for the finance tracker.
// Implemented by the Supabase adapter (or any other persistence layer).
type FinanceStore interface {
	// Transactions
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// Categories
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, name string) error

	// Loans
	ListLoans(ctx context.Context, userID string, filter LoanFilter) ([]domain.Loan, error)
	GetLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error)
	CreateLoan(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	UpdateLoan(ctx context.Context, userID, loanID string, loan *domain.Loan) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, userID, loanID string) error

	// Investments
	ListInvestments(ctx context.Context, userID string, status string) ([]domain.Investment, error)
	GetInvestment(ctx context.Context, userID, investmentID string) (*domain.Investment, error)
	CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error)
	UpdateInvestment(ctx context.Context, userID, investmentID string, inv *domain.Investment) (*domain.Investment, error)

	// ROI entries
	ListROIEntries(ctx context.Context, investmentID string) ([]domain.ROIEntry, error)
	CreateROIEntry(ctx context.Context, entry *domain.ROIEntry) (*domain.ROIEntry, error)
}

// RateSource retrieves a currency conversion rate between two ISO-like
// currency codes.
type RateSource interface {
	GetRate(ctx context.Context, from, to string) (float64, error)
}
