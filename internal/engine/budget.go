package engine

import (
	"time"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DailyBudget combines the reference month's regular income and expenses
// with loan obligations due this month into a safe-to-spend-per-remaining-day
// figure. The daily figure is never negative: the dashboard cannot usefully
// display a negative "available to spend", so deficits report zero.
func DailyBudget(txns []domain.Transaction, loans []domain.Loan, now time.Time) domain.DailyBudget {
	dim := daysInMonth(now)
	remaining := dim - now.Day() + 1 // today counts

	b := domain.DailyBudget{
		DaysInMonth:   dim,
		RemainingDays: remaining,
	}

	for _, t := range txns {
		if t.Kind() != domain.KindRegular || !inPeriod(t.Date, now, domain.PeriodMonth) {
			continue
		}
		amt := sanitize(t.Amount)
		if amt > 0 {
			b.MonthlyIncome += amt
		} else {
			b.MonthlyExpenses += -amt
		}
	}

	for _, l := range loans {
		if l.LoanType != domain.LoanTaken || l.Status != domain.LoanOutstanding {
			continue
		}
		if l.Deadline == nil || !inPeriod(*l.Deadline, now, domain.PeriodMonth) {
			continue
		}
		b.UpcomingLoanPayments += sanitize(l.Amount)
	}

	b.MonthlyIncome = sanitize(b.MonthlyIncome)
	b.MonthlyExpenses = sanitize(b.MonthlyExpenses)
	b.UpcomingLoanPayments = sanitize(b.UpcomingLoanPayments)
	b.RemainingBudget = sanitize(b.MonthlyIncome - b.MonthlyExpenses - b.UpcomingLoanPayments)

	if b.RemainingBudget > 0 && remaining > 0 {
		b.DailyBudget = sanitize(b.RemainingBudget / float64(remaining))
	}
	return b
}

// DailyBudgetStrict is the validating entry point: it rejects non-finite
// amounts instead of coercing them, for callers that persist the result.
func DailyBudgetStrict(txns []domain.Transaction, loans []domain.Loan, now time.Time) (domain.DailyBudget, error) {
	for _, t := range txns {
		if !isFinite(t.Amount) {
			return domain.DailyBudget{}, &domain.ErrValidation{Field: "amount", Message: "transaction amount must be a finite number"}
		}
	}
	for _, l := range loans {
		if !isFinite(l.Amount) {
			return domain.DailyBudget{}, &domain.ErrValidation{Field: "amount", Message: "loan amount must be a finite number"}
		}
	}
	return DailyBudget(txns, loans, now), nil
}
