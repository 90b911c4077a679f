package engine

// ProjectedReturn is the simple one-year projected return for an
// investment: principal * rate, non-compounding. A first-order estimate
// for form previews, not a growth model.
func ProjectedReturn(principal, annualRoiPct float64) float64 {
	return sanitize(principal * (annualRoiPct / 100))
}

// ActualROI derives the realized return percentage from an investment's
// initial and current values. A zero initial value yields 0, not Inf.
func ActualROI(initial, current float64) float64 {
	if initial == 0 {
		return 0
	}
	return sanitize(((current - initial) / initial) * 100)
}
