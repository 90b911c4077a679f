package engine

import (
	"sort"
	"time"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

// inPeriod reports whether date falls inside the window anchored at now.
// Month compares calendar fields (month and year numbers), not an elapsed
// 30-day window. Week and year are trailing windows, today included.
func inPeriod(date, now time.Time, period domain.Period) bool {
	switch period {
	case domain.PeriodMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case domain.PeriodWeek:
		return !date.After(now) && now.Sub(date) <= 7*24*time.Hour
	case domain.PeriodYear:
		return !date.After(now) && now.Sub(date) <= 365*24*time.Hour
	case domain.PeriodAll:
		return true
	default:
		return true
	}
}

// FilterPeriod returns the transactions whose date falls in the given
// calendar window.
func FilterPeriod(txns []domain.Transaction, now time.Time, period domain.Period) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if inPeriod(t.Date, now, period) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize filters the snapshot to the requested window and accumulates
// income/expense/balance totals with per-kind breakdowns. Loans count as
// inbound cash for budget purposes; invested capital counts as outbound.
//
// When referenceCurrency is empty the summary is labeled with the first
// filtered transaction's currency. That is a single-currency assumption
// carried over from the legacy data model; callers holding mixed-currency
// snapshots must convert amounts before invoking the engine.
//
// An empty window yields an all-zero summary, never an error.
func Summarize(txns []domain.Transaction, now time.Time, period domain.Period, referenceCurrency string) domain.PeriodSummary {
	filtered := FilterPeriod(txns, now, period)

	s := domain.PeriodSummary{
		Period:   string(period),
		Currency: referenceCurrency,
	}
	if s.Currency == "" && len(filtered) > 0 {
		s.Currency = filtered[0].Currency
	}

	byCategory := make(map[string]float64)
	for _, t := range filtered {
		amt := sanitize(t.Amount)
		switch t.Kind() {
		case domain.KindLoan:
			s.LoansReceived += amt
			s.Income += amt
		case domain.KindLoanRepayment:
			s.LoanRepayments += amt
			s.Expenses += amt
		case domain.KindInvestment:
			s.InvestmentsMade += amt
			s.Expenses += amt
		case domain.KindInvestmentReturn:
			s.InvestmentReturns += amt
			s.Income += amt
		default:
			if amt > 0 {
				s.Income += amt
			} else {
				abs := -amt
				s.Expenses += abs
				byCategory[t.Category] += abs
			}
		}
	}
	s.Balance = s.Income - s.Expenses

	s.Income = sanitize(s.Income)
	s.Expenses = sanitize(s.Expenses)
	s.Balance = sanitize(s.Balance)

	if len(byCategory) > 0 {
		s.Categories = make([]domain.CategoryAmount, 0, len(byCategory))
		for name, amt := range byCategory {
			s.Categories = append(s.Categories, domain.CategoryAmount{Name: name, Amount: sanitize(amt)})
		}
		sort.Slice(s.Categories, func(i, j int) bool {
			if s.Categories[i].Amount != s.Categories[j].Amount {
				return s.Categories[i].Amount > s.Categories[j].Amount
			}
			return s.Categories[i].Name < s.Categories[j].Name
		})
	}
	return s
}
