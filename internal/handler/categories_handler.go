package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

// ============================================================
// Categories Handlers
// ============================================================

func listCategoriesHandler(svc *service.CategoryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /categories")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		categories, err := svc.List(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
	}
}

func createCategoryHandler(svc *service.CategoryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /categories")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req domain.CreateCategoryRequest
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

func deleteCategoryHandler(svc *service.CategoryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /categories/{name}")
		defer span.End()
		userID := chi.URLParam(r, "userId")
		name := chi.URLParam(r, "name")
		if err := authorizeUser(r, userID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if err := svc.Delete(ctx, userID, name); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
