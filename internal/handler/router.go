package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router depends on. Keeps NewRouter's
// signature stable as endpoints are added.
type Services struct {
	Transactions *service.TransactionService
	Categories   *service.CategoryService
	Loans        *service.LoanService
	Investments  *service.InvestmentService
	Dashboard    *service.DashboardService
	Rates        *service.RateService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Per-user routes live under /v1/users/{userId} behind JWT auth; the
// preview and rate endpoints are pure computation and stay public.
func NewRouter(svcs Services, metrics *observability.Metrics, jwtSecret string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Derivation metrics snapshot
		// GET /v1/metrics/engine
		// =============================================
		r.Get("/metrics/engine", engineMetricsHandler(metrics, logger))

		// =============================================
		// Public previews and rates (no user scope)
		// =============================================
		r.Post("/loans/preview", loanPreviewHandler(svcs.Loans, logger))
		r.Post("/investments/preview", investmentPreviewHandler(svcs.Investments, logger))
		r.Get("/currencies/rate", rateHandler(svcs.Rates, logger))

		// =============================================
		// Per-user resources (JWT protected)
		// =============================================
		r.Route("/users/{userId}", func(r chi.Router) {
			r.Use(JWTAuthMiddleware(jwtSecret, logger))

			// Transactions
			r.Get("/transactions", listTransactionsHandler(svcs.Transactions, logger))
			r.Post("/transactions", createTransactionHandler(svcs.Transactions, logger))
			r.Get("/transactions/summary", transactionsSummaryHandler(svcs.Transactions, logger))
			r.Get("/transactions/{transactionId}", getTransactionHandler(svcs.Transactions, logger))
			r.Put("/transactions/{transactionId}", updateTransactionHandler(svcs.Transactions, logger))
			r.Delete("/transactions/{transactionId}", deleteTransactionHandler(svcs.Transactions, logger))
			r.Get("/balance", balanceHandler(svcs.Transactions, logger))

			// Categories
			r.Get("/categories", listCategoriesHandler(svcs.Categories, logger))
			r.Post("/categories", createCategoryHandler(svcs.Categories, logger))
			r.Delete("/categories/{name}", deleteCategoryHandler(svcs.Categories, logger))

			// Loans
			r.Get("/loans", listLoansHandler(svcs.Loans, logger))
			r.Post("/loans", createLoanHandler(svcs.Loans, logger))
			r.Get("/loans/{loanId}", getLoanHandler(svcs.Loans, logger))
			r.Put("/loans/{loanId}", updateLoanHandler(svcs.Loans, logger))
			r.Delete("/loans/{loanId}", deleteLoanHandler(svcs.Loans, logger))

			// Investments
			r.Get("/investments", listInvestmentsHandler(svcs.Investments, logger))
			r.Post("/investments", createInvestmentHandler(svcs.Investments, logger))
			r.Get("/investments/{investmentId}", getInvestmentHandler(svcs.Investments, logger))
			r.Post("/investments/{investmentId}/roi", recordROIHandler(svcs.Investments, logger))

			// Derived views
			r.Get("/dashboard", dashboardHandler(svcs.Dashboard, logger))
			r.Get("/budget/daily", dailyBudgetHandler(svcs.Dashboard, logger))
			r.Get("/deadlines", deadlinesHandler(svcs.Dashboard, logger))
		})
	})

	return r
}

// ============================================================
// Operational Handlers
// ============================================================

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	}
}

func engineMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetEngineSnapshot())
	}
}
