// Package domain defines the core business entities for the FinTrack BFF.
// These models are independent of external services and represent the
// canonical data structures used throughout the service and the engine.
package domain

import "time"

// ============================================================
// Transactions
// ============================================================

// TransactionKind is the semantic tag that determines how a transaction's
// amount contributes to balances and period summaries. The set is closed;
// Kind() normalizes anything outside it to KindRegular.
type TransactionKind string

const (
	KindRegular          TransactionKind = "regular"
	KindLoan             TransactionKind = "loan"
	KindLoanRepayment    TransactionKind = "loanRepayment"
	KindInvestment       TransactionKind = "investment"
	KindInvestmentReturn TransactionKind = "investmentReturn"
)

// Transaction represents a single recorded monetary event.
// For KindRegular the sign of Amount encodes direction (expenses are stored
// negative); for the other kinds Amount is stored positive and the kind
// decides the sign of its balance contribution.
type Transaction struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id,omitempty"`
	Amount              float64         `json:"amount"`
	Currency            string          `json:"currency"`
	Date                time.Time       `json:"date"`
	Category            string          `json:"category"`
	Note                string          `json:"note,omitempty"`
	TransactionType     TransactionKind `json:"transaction_type,omitempty"`
	InterestRate        *float64        `json:"interest_rate,omitempty"`  // annual %, loans only
	ROIPercentage       *float64        `json:"roi_percentage,omitempty"` // annual %, investments only
	Deadline            *time.Time      `json:"deadline,omitempty"`
	Status              string          `json:"status,omitempty"` // active, repaid, matured, pending
	LinkedTransactionID string          `json:"linked_transaction_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at,omitempty"`
	UpdatedAt           time.Time       `json:"updated_at,omitempty"`
}

// Kind returns the effective transaction kind. Legacy records carry no
// transaction_type, and synced records may carry garbage; both are treated
// as regular so no money ever disappears from the user's totals.
func (t Transaction) Kind() TransactionKind {
	switch t.TransactionType {
	case KindLoan, KindLoanRepayment, KindInvestment, KindInvestmentReturn:
		return t.TransactionType
	default:
		return KindRegular
	}
}

// ============================================================
// Categories
// ============================================================

// CategoryType is the income/expense polarity of a category.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is a user-visible transaction category. Legacy categories may
// omit Type; the classifier infers polarity for those.
type Category struct {
	ID     string       `json:"id,omitempty"`
	UserID string       `json:"user_id,omitempty"`
	Name   string       `json:"name"`
	Color  string       `json:"color"`
	Icon   string       `json:"icon,omitempty"`
	Type   CategoryType `json:"type,omitempty"`
}

// ============================================================
// Loans
// ============================================================

// Loan is the normalized loan view consumed by the daily budget planner
// and the deadlines feed.
type Loan struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id,omitempty"`
	LoanType     string     `json:"loan_type"` // given, taken
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Contact      string     `json:"contact,omitempty"`
	Status       string     `json:"status"` // outstanding, paid
	Date         time.Time  `json:"date"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	InterestRate *float64   `json:"interest_rate,omitempty"` // annual %
	CreatedAt    time.Time  `json:"created_at,omitempty"`
}

const (
	LoanGiven = "given"
	LoanTaken = "taken"

	LoanOutstanding = "outstanding"
	LoanPaid        = "paid"
)

// ============================================================
// Investments
// ============================================================

// Investment is a tracked investment position.
type Investment struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id,omitempty"`
	Name           string     `json:"name"`
	Platform       string     `json:"platform,omitempty"`
	InvestmentType string     `json:"investment_type"` // stocks, crypto, bonds, ...
	InitialAmount  float64    `json:"initial_amount"`
	CurrentValue   float64    `json:"current_value"`
	ExpectedROI    *float64   `json:"expected_roi,omitempty"` // annual %
	ActualROI      float64    `json:"actual_roi"`
	Currency       string     `json:"currency"`
	PurchaseDate   time.Time  `json:"purchase_date"`
	MaturityDate   *time.Time `json:"maturity_date,omitempty"`
	Status         string     `json:"status"` // active, matured, sold
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
}

// ROIEntry is a recorded valuation point for an investment.
type ROIEntry struct {
	ID            string    `json:"id"`
	InvestmentID  string    `json:"investment_id"`
	RecordedValue float64   `json:"recorded_value"`
	ROIPercentage float64   `json:"roi_percentage"`
	EntryDate     time.Time `json:"entry_date"`
	Note          string    `json:"note,omitempty"`
}

// ============================================================
// Derived values (engine output, never persisted)
// ============================================================

// Period selects the calendar window for a summary.
type Period string

const (
	PeriodMonth Period = "month"
	PeriodWeek  Period = "week"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// PeriodSummary holds income/expense/balance totals for a calendar window.
// A summary is only valid for the snapshot and window it was computed from;
// callers recompute after any mutation of the transaction set.
type PeriodSummary struct {
	Period   string  `json:"period"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`

	// Per-kind breakdown; zero when the window holds no such transactions.
	LoansReceived     float64 `json:"loans_received"`
	LoanRepayments    float64 `json:"loan_repayments"`
	InvestmentsMade   float64 `json:"investments_made"`
	InvestmentReturns float64 `json:"investment_returns"`

	Categories []CategoryAmount `json:"categories,omitempty"`
}

// CategoryAmount is an expense total for a single category.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DailyBudget is the safe-to-spend-per-remaining-day figure for the
// reference month, with the inputs that produced it.
type DailyBudget struct {
	MonthlyIncome        float64 `json:"monthly_income"`
	MonthlyExpenses      float64 `json:"monthly_expenses"`
	UpcomingLoanPayments float64 `json:"upcoming_loan_payments"`
	RemainingBudget      float64 `json:"remaining_budget"`
	DailyBudget          float64 `json:"daily_budget"`
	RemainingDays        int     `json:"remaining_days"`
	DaysInMonth          int     `json:"days_in_month"`
}

// LoanProjection is an amortized-loan preview: fixed monthly payment and
// the total paid over the term. TotalInterest is derived by the caller as
// TotalRepayment - principal.
type LoanProjection struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalRepayment float64 `json:"total_repayment"`
	Months         int     `json:"months"`
}

// Urgency classifies how close a deadline is.
type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyDueSoon Urgency = "dueSoon" // within 7 days, today included
	UrgencyNormal  Urgency = "normal"
)

// DeadlineStatus is the display classification of a due date.
type DeadlineStatus struct {
	Urgency       Urgency `json:"urgency"`
	DaysRemaining int     `json:"days_remaining"`
	Progress      float64 `json:"progress"` // elapsed/total, clamped to [0,1]
}

// DeadlineItem is one entry in the dashboard's deadline feed.
type DeadlineItem struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"` // loan, investment
	Label    string    `json:"label"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Deadline time.Time `json:"deadline"`
	DeadlineStatus
}
