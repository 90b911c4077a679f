package domain

import "time"

// Request and response shapes for the HTTP API. Kept separate from the
// entities so table columns and wire payloads can drift independently.

// Dashboard is the one-shot payload the mobile dashboard screen polls:
// everything derived from the current snapshot in a single response.
type Dashboard struct {
	Balance     float64        `json:"balance"`
	Currency    string         `json:"currency"`
	Summary     PeriodSummary  `json:"summary"`
	DailyBudget DailyBudget    `json:"daily_budget"`
	Deadlines   []DeadlineItem `json:"deadlines"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// CreateTransactionRequest is the payload for creating or updating a
// transaction.
type CreateTransactionRequest struct {
	Amount              float64    `json:"amount"`
	Currency            string     `json:"currency"`
	Date                string     `json:"date"` // YYYY-MM-DD, empty means today
	Category            string     `json:"category"`
	Note                string     `json:"note"`
	TransactionType     string     `json:"transaction_type"`
	InterestRate        *float64   `json:"interest_rate"`
	ROIPercentage       *float64   `json:"roi_percentage"`
	Deadline            *time.Time `json:"deadline"`
	Status              string     `json:"status"`
	LinkedTransactionID string     `json:"linked_transaction_id"`
}

// CreateCategoryRequest is the payload for adding a custom category.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// CreateLoanRequest is the payload for creating or updating a loan.
type CreateLoanRequest struct {
	LoanType     string     `json:"loan_type"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Contact      string     `json:"contact"`
	Status       string     `json:"status"`
	Date         string     `json:"date"`
	Deadline     *time.Time `json:"deadline"`
	InterestRate *float64   `json:"interest_rate"`
}

// LoanPreviewRequest asks for an amortization preview while a loan form
// is being edited. Either months or deadline selects the term; months
// wins when both are set.
type LoanPreviewRequest struct {
	Principal    float64    `json:"principal"`
	InterestRate float64    `json:"interest_rate"`
	Months       int        `json:"months"`
	Deadline     *time.Time `json:"deadline"`
}

// LoanPreviewResponse carries the projection plus the derived interest.
type LoanPreviewResponse struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalRepayment float64 `json:"total_repayment"`
	TotalInterest  float64 `json:"total_interest"`
	Months         int     `json:"months"`
}

// CreateInvestmentRequest is the payload for creating an investment.
type CreateInvestmentRequest struct {
	Name           string     `json:"name"`
	Platform       string     `json:"platform"`
	InvestmentType string     `json:"investment_type"`
	InitialAmount  float64    `json:"initial_amount"`
	CurrentValue   float64    `json:"current_value"`
	ExpectedROI    *float64   `json:"expected_roi"`
	Currency       string     `json:"currency"`
	PurchaseDate   string     `json:"purchase_date"`
	MaturityDate   *time.Time `json:"maturity_date"`
	Notes          string     `json:"notes"`
}

// InvestmentPreviewRequest asks for a one-year projected return.
type InvestmentPreviewRequest struct {
	Principal     float64 `json:"principal"`
	ROIPercentage float64 `json:"roi_percentage"`
}

// InvestmentPreviewResponse carries the projection.
type InvestmentPreviewResponse struct {
	ProjectedReturn float64 `json:"projected_return"`
	ProjectedValue  float64 `json:"projected_value"`
}

// ROIEntryRequest records a new valuation point for an investment.
type ROIEntryRequest struct {
	RecordedValue float64 `json:"recorded_value"`
	EntryDate     string  `json:"entry_date"`
	Note          string  `json:"note"`
}

// BalanceResponse is the standalone balance endpoint payload.
type BalanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// RateResponse is the currency conversion endpoint payload.
type RateResponse struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}
