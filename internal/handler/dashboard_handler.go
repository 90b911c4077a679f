package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/service"
)

// ============================================================
// Dashboard Handlers
// ============================================================

func dashboardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /dashboard")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		dash, err := svc.GetDashboard(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, dash)
	}
}

func dailyBudgetHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /budget/daily")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		budget, err := svc.GetDailyBudget(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func deadlinesHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /deadlines")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		deadlines, err := svc.GetDeadlines(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deadlines": deadlines})
	}
}
