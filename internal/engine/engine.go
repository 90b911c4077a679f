// Package engine is the financial state derivation core: pure functions that
// turn a snapshot of transactions, loans, and investments into balances,
// period summaries, daily budgets, and loan/investment projections.
//
// The package performs no I/O, keeps no state, and never panics on malformed
// data. Display paths coerce NaN/Inf results to zero; callers that need to
// reject bad input use the Strict variants instead.
package engine

import "math"

// sanitize replaces NaN and Inf with 0. Malformed arithmetic must never
// reach a screen as a non-number.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
