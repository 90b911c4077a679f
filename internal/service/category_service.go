package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/engine"
	"github.com/kharel/fintrack-bff-go/internal/port"
)

var catTracer = otel.Tracer("service/categories")

// CategoryService merges the built-in default category set with the user's
// custom categories and handles custom-category lifecycle.
type CategoryService struct {
	store  port.FinanceStore
	logger *zap.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store port.FinanceStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

// List returns the defaults plus the user's custom categories. A custom
// category with the same name shadows the default entry.
func (s *CategoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	ctx, span := catTracer.Start(ctx, "CategoryService.List")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	custom, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	customNames := make(map[string]bool, len(custom))
	for _, c := range custom {
		customNames[c.Name] = true
	}

	merged := make([]domain.Category, 0, len(domain.DefaultCategories)+len(custom))
	for _, c := range domain.DefaultCategories {
		if !customNames[c.Name] {
			merged = append(merged, c)
		}
	}
	merged = append(merged, custom...)

	// Rows predating the type column come back without a polarity.
	for i := range merged {
		if merged[i].Type == "" {
			merged[i].Type = engine.Classify(merged[i].Name, merged)
		}
	}
	return merged, nil
}

// Create adds a custom category. Names are unique within the merged set.
func (s *CategoryService) Create(ctx context.Context, userID string, req *domain.CreateCategoryRequest) (*domain.Category, error) {
	ctx, span := catTracer.Start(ctx, "CategoryService.Create")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}

	catType := domain.CategoryType(req.Type)
	if catType == "" {
		catType = domain.CategoryExpense
	}
	if catType != domain.CategoryIncome && catType != domain.CategoryExpense {
		return nil, &domain.ErrValidation{Field: "type", Message: "must be income or expense"}
	}

	existing, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, &domain.ErrConflict{Message: "category already exists: " + name}
		}
	}

	color := req.Color
	if color == "" {
		color = "#CCCCCC"
	}

	created, err := s.store.CreateCategory(ctx, &domain.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   req.Icon,
		Type:   catType,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.String("user_id", userID),
		zap.String("name", name),
	)
	return created, nil
}

// Delete removes a custom category by name. Defaults cannot be deleted,
// only shadowed.
func (s *CategoryService) Delete(ctx context.Context, userID, name string) error {
	ctx, span := catTracer.Start(ctx, "CategoryService.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("category.name", name))

	custom, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for _, c := range custom {
		if c.Name == name {
			found = true
			break
		}
	}
	if !found {
		return &domain.ErrNotFound{Resource: "category", ID: name}
	}

	return s.store.DeleteCategory(ctx, userID, name)
}
