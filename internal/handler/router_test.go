package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/handler"
	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/port"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

// fakeStore is an in-memory FinanceStore seeded per test.
type fakeStore struct {
	txns        []domain.Transaction
	categories  []domain.Category
	loans       []domain.Loan
	investments []domain.Investment
	roiEntries  []domain.ROIEntry
}

func (f *fakeStore) ListTransactions(ctx context.Context, userID string, filter port.TransactionFilter) ([]domain.Transaction, error) {
	return f.txns, nil
}

func (f *fakeStore) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	for i := range f.txns {
		if f.txns[i].ID == id {
			return &f.txns[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
}

func (f *fakeStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.txns = append(f.txns, *tx)
	return tx, nil
}

func (f *fakeStore) UpdateTransaction(ctx context.Context, userID, id string, tx *domain.Transaction) (*domain.Transaction, error) {
	for i := range f.txns {
		if f.txns[i].ID == id {
			tx.ID = id
			f.txns[i] = *tx
			return tx, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
}

func (f *fakeStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	for i := range f.txns {
		if f.txns[i].ID == id {
			f.txns = append(f.txns[:i], f.txns[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "transaction", ID: id}
}

func (f *fakeStore) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	f.categories = append(f.categories, *cat)
	return cat, nil
}

func (f *fakeStore) DeleteCategory(ctx context.Context, userID, name string) error {
	for i := range f.categories {
		if f.categories[i].Name == name {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "category", ID: name}
}

func (f *fakeStore) ListLoans(ctx context.Context, userID string, filter port.LoanFilter) ([]domain.Loan, error) {
	out := make([]domain.Loan, 0, len(f.loans))
	for _, l := range f.loans {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.LoanType != "" && l.LoanType != filter.LoanType {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) GetLoan(ctx context.Context, userID, id string) (*domain.Loan, error) {
	for i := range f.loans {
		if f.loans[i].ID == id {
			return &f.loans[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "loan", ID: id}
}

func (f *fakeStore) CreateLoan(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	f.loans = append(f.loans, *loan)
	return loan, nil
}

func (f *fakeStore) UpdateLoan(ctx context.Context, userID, id string, loan *domain.Loan) (*domain.Loan, error) {
	for i := range f.loans {
		if f.loans[i].ID == id {
			loan.ID = id
			f.loans[i] = *loan
			return loan, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "loan", ID: id}
}

func (f *fakeStore) DeleteLoan(ctx context.Context, userID, id string) error {
	for i := range f.loans {
		if f.loans[i].ID == id {
			f.loans = append(f.loans[:i], f.loans[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "loan", ID: id}
}

func (f *fakeStore) ListInvestments(ctx context.Context, userID, status string) ([]domain.Investment, error) {
	out := make([]domain.Investment, 0, len(f.investments))
	for _, inv := range f.investments {
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeStore) GetInvestment(ctx context.Context, userID, id string) (*domain.Investment, error) {
	for i := range f.investments {
		if f.investments[i].ID == id {
			return &f.investments[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "investment", ID: id}
}

func (f *fakeStore) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	f.investments = append(f.investments, *inv)
	return inv, nil
}

func (f *fakeStore) UpdateInvestment(ctx context.Context, userID, id string, inv *domain.Investment) (*domain.Investment, error) {
	for i := range f.investments {
		if f.investments[i].ID == id {
			inv.ID = id
			f.investments[i] = *inv
			return inv, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "investment", ID: id}
}

func (f *fakeStore) ListROIEntries(ctx context.Context, investmentID string) ([]domain.ROIEntry, error) {
	return f.roiEntries, nil
}

func (f *fakeStore) CreateROIEntry(ctx context.Context, entry *domain.ROIEntry) (*domain.ROIEntry, error) {
	f.roiEntries = append(f.roiEntries, *entry)
	return entry, nil
}

type fakeRates struct {
	rates map[string]float64
}

func (f *fakeRates) GetRate(ctx context.Context, from, to string) (float64, error) {
	if r, ok := f.rates[from+":"+to]; ok {
		return r, nil
	}
	return 0, &domain.ErrNotFound{Resource: "rate", ID: from + ":" + to}
}

func newTestRouter(store *fakeStore, jwtSecret string) http.Handler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	derived := cache.New[*domain.Dashboard](time.Minute)
	rateCache := cache.New[float64](time.Minute)
	rates := &fakeRates{rates: map[string]float64{"USD:EUR": 0.9}}

	svcs := handler.Services{
		Transactions: service.NewTransactionService(store, derived, metrics, logger, "USD"),
		Categories:   service.NewCategoryService(store, logger),
		Loans:        service.NewLoanService(store, derived, metrics, logger, "USD"),
		Investments:  service.NewInvestmentService(store, derived, metrics, logger, "USD"),
		Dashboard:    service.NewDashboardService(store, derived, metrics, logger, "USD"),
		Rates:        service.NewRateService(rates, rateCache, metrics, logger),
	}
	return handler.NewRouter(svcs, metrics, jwtSecret, logger)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/ping", "/v1/metrics/engine"} {
		rec := do(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestDashboard(t *testing.T) {
	now := time.Now().UTC()
	deadline := now.AddDate(0, 0, 3)
	store := &fakeStore{
		txns: []domain.Transaction{
			{ID: "t1", Amount: 3000, Currency: "USD", Date: now, Category: "Salary"},
			{ID: "t2", Amount: -120.50, Currency: "USD", Date: now, Category: "Food"},
		},
		loans: []domain.Loan{
			{ID: "l1", LoanType: domain.LoanTaken, Amount: 500, Currency: "USD",
				Contact: "Alex", Status: domain.LoanOutstanding, Date: now.AddDate(0, -1, 0), Deadline: &deadline},
		},
	}
	router := newTestRouter(store, "")

	rec := do(t, router, http.MethodGet, "/v1/users/u1/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dash domain.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if got, want := dash.Balance, 2879.50; got != want {
		t.Errorf("balance = %v, want %v", got, want)
	}
	if dash.Currency != "USD" {
		t.Errorf("currency = %q, want USD", dash.Currency)
	}
	if len(dash.Deadlines) != 1 {
		t.Fatalf("expected 1 deadline, got %d", len(dash.Deadlines))
	}
	if dash.Deadlines[0].Urgency != domain.UrgencyDueSoon {
		t.Errorf("urgency = %q, want dueSoon", dash.Deadlines[0].Urgency)
	}
	if dash.Deadlines[0].Label != "Loan: Alex" {
		t.Errorf("label = %q, want \"Loan: Alex\"", dash.Deadlines[0].Label)
	}
}

func TestBalanceEndpoint(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{
		txns: []domain.Transaction{
			{ID: "t1", Amount: 100, Currency: "EUR", Date: now, Category: "Salary"},
			{ID: "t2", Amount: 200, Currency: "EUR", Date: now, Category: "Freelance", TransactionType: domain.KindLoan},
			{ID: "t3", Amount: 50, Currency: "EUR", Date: now, Category: "Loans", TransactionType: domain.KindLoanRepayment},
		},
	}
	router := newTestRouter(store, "")

	rec := do(t, router, http.MethodGet, "/v1/users/u1/balance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 100 regular + 200 loan received - 50 repayment
	if resp.Balance != 250 {
		t.Errorf("balance = %v, want 250", resp.Balance)
	}
	if resp.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", resp.Currency)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	tests := []struct {
		name string
		body domain.CreateTransactionRequest
		want int
	}{
		{"valid", domain.CreateTransactionRequest{Amount: -25, Category: "Food"}, http.StatusCreated},
		{"zero amount", domain.CreateTransactionRequest{Amount: 0, Category: "Food"}, http.StatusBadRequest},
		{"missing category", domain.CreateTransactionRequest{Amount: 10}, http.StatusBadRequest},
		{"unknown kind", domain.CreateTransactionRequest{Amount: 10, Category: "Food", TransactionType: "mystery"}, http.StatusBadRequest},
		{"bad date", domain.CreateTransactionRequest{Amount: 10, Category: "Food", Date: "15-03-2024"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/v1/users/u1/transactions", tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSummaryRejectsUnknownPeriod(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	rec := do(t, router, http.MethodGet, "/v1/users/u1/transactions/summary?period=decade", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLoanPreview(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	rec := do(t, router, http.MethodPost, "/v1/loans/preview", domain.LoanPreviewRequest{
		Principal:    1200,
		InterestRate: 0,
		Months:       12,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.LoanPreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MonthlyPayment != 100 {
		t.Errorf("monthly payment = %v, want 100", resp.MonthlyPayment)
	}
	if resp.TotalRepayment != 1200 {
		t.Errorf("total repayment = %v, want 1200", resp.TotalRepayment)
	}
	if resp.TotalInterest != 0 {
		t.Errorf("total interest = %v, want 0", resp.TotalInterest)
	}
}

func TestInvestmentPreview(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	rec := do(t, router, http.MethodPost, "/v1/investments/preview", domain.InvestmentPreviewRequest{
		Principal:     1000,
		ROIPercentage: 12,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.InvestmentPreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ProjectedReturn != 120 {
		t.Errorf("projected return = %v, want 120", resp.ProjectedReturn)
	}
	if resp.ProjectedValue != 1120 {
		t.Errorf("projected value = %v, want 1120", resp.ProjectedValue)
	}
}

func TestRateEndpoint(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	rec := do(t, router, http.MethodGet, "/v1/currencies/rate?from=usd&to=eur", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.RateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Rate != 0.9 {
		t.Errorf("rate = %v, want 0.9", resp.Rate)
	}

	rec = do(t, router, http.MethodGet, "/v1/currencies/rate?from=USD&to=USD", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("same currency: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Rate != 1.0 {
		t.Errorf("same-currency rate = %v, want 1.0", resp.Rate)
	}
}

func signToken(t *testing.T, secret, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	router := newTestRouter(&fakeStore{}, secret)

	// No token.
	rec := do(t, router, http.MethodGet, "/v1/users/u1/balance", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", rec.Code)
	}

	// Garbage token.
	req := httptest.NewRequest(http.MethodGet, "/v1/users/u1/balance", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", rec.Code)
	}

	// Valid token for another user.
	req = httptest.NewRequest(http.MethodGet, "/v1/users/u1/balance", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "u2"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong subject: expected 403, got %d", rec.Code)
	}

	// Valid token for the addressed user.
	req = httptest.NewRequest(http.MethodGet, "/v1/users/u1/balance", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "u1"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Public preview endpoints stay open.
	rec = do(t, router, http.MethodPost, "/v1/loans/preview", domain.LoanPreviewRequest{Principal: 100, Months: 1})
	if rec.Code != http.StatusOK {
		t.Errorf("preview with auth enabled: expected 200, got %d", rec.Code)
	}
}

func TestTransactionNotFound(t *testing.T) {
	router := newTestRouter(&fakeStore{}, "")

	rec := do(t, router, http.MethodGet, "/v1/users/u1/transactions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRecordROIUpdatesInvestment(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{
		investments: []domain.Investment{
			{ID: "i1", Name: "Index Fund", InvestmentType: "stocks",
				InitialAmount: 1000, CurrentValue: 1000, Currency: "USD",
				PurchaseDate: now.AddDate(0, -6, 0), Status: "active"},
		},
	}
	router := newTestRouter(store, "")

	rec := do(t, router, http.MethodPost, "/v1/users/u1/investments/i1/roi", domain.ROIEntryRequest{
		RecordedValue: 1150,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entry domain.ROIEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fmt.Sprintf("%.1f", entry.ROIPercentage) != "15.0" {
		t.Errorf("roi = %v, want 15.0", entry.ROIPercentage)
	}
	if store.investments[0].CurrentValue != 1150 {
		t.Errorf("current value = %v, want 1150", store.investments[0].CurrentValue)
	}
}
