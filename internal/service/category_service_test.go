package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

func TestCategoryListMergesDefaults(t *testing.T) {
	store := &stubStore{categories: []domain.Category{
		{ID: "c1", Name: "Food", Color: "#123456", Type: domain.CategoryExpense}, // shadows the default
		{ID: "c2", Name: "Pet Care", Color: "#654321", Type: domain.CategoryExpense},
	}}
	svc := service.NewCategoryService(store, zap.NewNop())

	categories, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := len(domain.DefaultCategories) + 1; len(categories) != want {
		t.Fatalf("expected %d categories, got %d", want, len(categories))
	}

	seen := make(map[string]domain.Category)
	for _, c := range categories {
		if _, dup := seen[c.Name]; dup {
			t.Errorf("duplicate category %q in merged list", c.Name)
		}
		seen[c.Name] = c
	}
	if seen["Food"].Color != "#123456" {
		t.Errorf("custom Food should shadow the default, got color %q", seen["Food"].Color)
	}
	if _, ok := seen["Pet Care"]; !ok {
		t.Error("custom category missing from merged list")
	}
}

func TestCategoryListClassifiesLegacyRows(t *testing.T) {
	// Rows created before the type column have no polarity; List backfills it.
	store := &stubStore{categories: []domain.Category{
		{ID: "c1", Name: "Salary", Color: "#00FF00"},
		{ID: "c2", Name: "Gadgets", Color: "#0000FF"},
	}}
	svc := service.NewCategoryService(store, zap.NewNop())

	categories, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := make(map[string]domain.Category)
	for _, c := range categories {
		byName[c.Name] = c
	}
	if byName["Salary"].Type != domain.CategoryIncome {
		t.Errorf("Salary type = %q, want income", byName["Salary"].Type)
	}
	if byName["Gadgets"].Type != domain.CategoryExpense {
		t.Errorf("Gadgets type = %q, want expense", byName["Gadgets"].Type)
	}
}

func TestCategoryCreate(t *testing.T) {
	store := &stubStore{}
	svc := service.NewCategoryService(store, zap.NewNop())

	created, err := svc.Create(context.Background(), "u1", &domain.CreateCategoryRequest{Name: "Hobbies"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Color != "#CCCCCC" {
		t.Errorf("color = %q, want default #CCCCCC", created.Color)
	}
	if created.Type != domain.CategoryExpense {
		t.Errorf("type = %q, want default expense", created.Type)
	}
}

func TestCategoryCreateConflict(t *testing.T) {
	store := &stubStore{categories: []domain.Category{{Name: "Hobbies"}}}
	svc := service.NewCategoryService(store, zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", &domain.CreateCategoryRequest{Name: "hobbies"})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Errorf("expected conflict for case-insensitive duplicate, got %v", err)
	}
}

func TestCategoryDeleteDefaultRejected(t *testing.T) {
	svc := service.NewCategoryService(&stubStore{}, zap.NewNop())

	err := svc.Delete(context.Background(), "u1", "Food")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("deleting a built-in category should 404, got %v", err)
	}
}
