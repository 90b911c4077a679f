package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/port"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

// ============================================================
// Loans Handlers
// ============================================================

func listLoansHandler(svc *service.LoanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /loans")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		filter := port.LoanFilter{
			Status:   r.URL.Query().Get("status"),
			LoanType: r.URL.Query().Get("loan_type"),
		}
		loans, err := svc.List(ctx, userID, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"loans": loans})
	}
}

func getLoanHandler(svc *service.LoanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /loans/{loanId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		loanID := chi.URLParam(r, "loanId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		loan, err := svc.Get(ctx, userID, loanID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, loan)
	}
}

func createLoanHandler(svc *service.LoanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /loans")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.CreateLoanRequest
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

func updateLoanHandler(svc *service.LoanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /loans/{loanId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		loanID := chi.URLParam(r, "loanId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.CreateLoanRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		updated, err := svc.Update(ctx, userID, loanID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteLoanHandler(svc *service.LoanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /loans/{loanId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		loanID := chi.URLParam(r, "loanId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if err := svc.Delete(ctx, userID, loanID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// loanPreviewHandler serves live amortization previews for the loan form.
// Pure computation over the request body, so no auth scope is needed.
func loanPreviewHandler(svc *service.LoanService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /loans/preview")
		defer span.End()
		var req domain.LoanPreviewRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, svc.Preview(ctx, &req))
	}
}
