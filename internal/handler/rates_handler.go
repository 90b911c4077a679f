package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/service"
)

// ============================================================
// Currency Rates Handlers
// ============================================================

func rateHandler(svc *service.RateService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /currencies/rate")
		defer span.End()
		rate, err := svc.GetRate(ctx, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rate)
	}
}
