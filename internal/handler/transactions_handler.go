package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

// ============================================================
// Transactions Handlers
// ============================================================

func listTransactionsHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		filter, err := parseTransactionFilter(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		txns, err := svc.List(ctx, userID, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": txns})
	}
}

func createTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /transactions")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.CreateTransactionRequest
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

func getTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions/{transactionId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		transactionID := chi.URLParam(r, "transactionId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		tx, err := svc.Get(ctx, userID, transactionID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func updateTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /transactions/{transactionId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		transactionID := chi.URLParam(r, "transactionId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.CreateTransactionRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		updated, err := svc.Update(ctx, userID, transactionID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /transactions/{transactionId}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		transactionID := chi.URLParam(r, "transactionId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if err := svc.Delete(ctx, userID, transactionID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func transactionsSummaryHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions/summary")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		period := domain.Period(r.URL.Query().Get("period"))
		if period == "" {
			period = domain.PeriodMonth
		}
		summary, err := svc.Summary(ctx, userID, period)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func balanceHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /balance")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		balance, err := svc.Balance(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, balance)
	}
}
