package engine

import (
	"math"
	"time"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

// MonthsUntil returns the number of monthly installments between now and
// the deadline. The difference is taken over calendar fields; a partial
// trailing month counts as a whole installment. The result is at least 1
// even for past deadlines, so a live form preview never divides by zero.
func MonthsUntil(now, deadline time.Time) int {
	months := (deadline.Year()-now.Year())*12 + int(deadline.Month()) - int(now.Month())
	if deadline.Day() > now.Day() {
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}

// AmortizeMonths computes the fixed monthly payment and total repayment for
// an amortized loan over the given number of installments. Zero-rate loans
// split the principal evenly. NaN results are coerced to zero; this is a
// display-safety guard, not validation.
func AmortizeMonths(principal, annualRatePct float64, months int) domain.LoanProjection {
	if months < 1 {
		months = 1
	}
	p := domain.LoanProjection{Months: months}

	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		p.MonthlyPayment = sanitize(principal / float64(months))
		p.TotalRepayment = sanitize(principal)
		return p
	}

	factor := math.Pow(1+monthlyRate, float64(months))
	p.MonthlyPayment = sanitize(principal * (monthlyRate * factor) / (factor - 1))
	p.TotalRepayment = sanitize(p.MonthlyPayment * float64(months))
	return p
}

// Amortize previews a loan against a deadline, deriving the term via
// MonthsUntil.
func Amortize(principal, annualRatePct float64, now, deadline time.Time) domain.LoanProjection {
	return AmortizeMonths(principal, annualRatePct, MonthsUntil(now, deadline))
}

// AmortizeStrict rejects invalid inputs with a typed error instead of
// coercing them, for callers that act on the numbers rather than merely
// displaying them.
func AmortizeStrict(principal, annualRatePct float64, months int) (domain.LoanProjection, error) {
	switch {
	case !isFinite(principal) || principal <= 0:
		return domain.LoanProjection{}, &domain.ErrValidation{Field: "principal", Message: "must be a positive finite number"}
	case !isFinite(annualRatePct) || annualRatePct < 0:
		return domain.LoanProjection{}, &domain.ErrValidation{Field: "interest_rate", Message: "must be a non-negative finite number"}
	case months < 1:
		return domain.LoanProjection{}, &domain.ErrValidation{Field: "months", Message: "must be at least 1"}
	}
	return AmortizeMonths(principal, annualRatePct, months), nil
}
