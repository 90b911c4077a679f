package engine

import "github.com/kharel/fintrack-bff-go/internal/domain"

// contribution is the signed effect of a single transaction on the
// spendable balance. Loan proceeds are inbound cash (the liability is
// tracked via status, not subtracted here); invested capital leaves the
// spendable balance until it returns.
func contribution(t domain.Transaction) float64 {
	switch t.Kind() {
	case domain.KindLoan:
		return t.Amount
	case domain.KindLoanRepayment:
		return -t.Amount
	case domain.KindInvestment:
		return -t.Amount
	case domain.KindInvestmentReturn:
		return t.Amount
	default:
		// regular: the stored sign encodes direction
		return t.Amount
	}
}

// Balance computes the signed total balance over a transaction set.
// Order-independent. No currency conversion happens here; mixed-currency
// sets must be normalized by the caller first.
func Balance(txns []domain.Transaction) float64 {
	var total float64
	for _, t := range txns {
		total += sanitize(contribution(t))
	}
	return sanitize(total)
}
