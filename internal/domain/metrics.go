package domain

// EngineMetrics is the operational snapshot served by GET /v1/metrics/engine:
// cumulative evaluation counts per derivation component plus request-level
// health ratios. Prometheus holds the raw counters; this is the
// mobile-friendly readback.
type EngineMetrics struct {
	TotalRequests         int64   `json:"total_requests"`
	ErrorRate             float64 `json:"error_rate"`
	CacheHitRate          float64 `json:"cache_hit_rate"`
	BalanceEvaluations    int64   `json:"balance_evaluations"`
	SummaryEvaluations    int64   `json:"summary_evaluations"`
	BudgetEvaluations     int64   `json:"budget_evaluations"`
	AmortizationPreviews  int64   `json:"amortization_previews"`
	ProjectionPreviews    int64   `json:"projection_previews"`
	DeadlineEvaluations   int64   `json:"deadline_evaluations"`
	ExternalServiceErrors int64   `json:"external_service_errors"`
	Period                string  `json:"period"`
}
