package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

// ============================================================
// Investments Handlers
// ============================================================

func listInvestmentsHandler(svc *service.InvestmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /investments")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		investments, err := svc.List(ctx, userID, r.URL.Query().Get("status"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"investments": investments})
	}
}

func getInvestmentHandler(svc *service.InvestmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /investments/{investmentId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		investmentID := chi.URLParam(r, "investmentId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		inv, entries, err := svc.Get(ctx, userID, investmentID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"investment":  inv,
			"roi_entries": entries,
		})
	}
}

func createInvestmentHandler(svc *service.InvestmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /investments")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.CreateInvestmentRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		created, err := svc.Create(ctx, userID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func recordROIHandler(svc *service.InvestmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /investments/{investmentId}/roi")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		investmentID := chi.URLParam(r, "investmentId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.ROIEntryRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		entry, err := svc.RecordROI(ctx, userID, investmentID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	}
}

// investmentPreviewHandler serves live projected-return previews for the
// investment form. Pure computation over the request body.
func investmentPreviewHandler(svc *service.InvestmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /investments/preview")
		defer span.End()
		var req domain.InvestmentPreviewRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, svc.Preview(ctx, &req))
	}
}
