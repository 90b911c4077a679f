package engine_test

import (
	"testing"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/engine"
)

func TestClassify(t *testing.T) {
	categories := []domain.Category{
		{Name: "Food", Type: domain.CategoryExpense},
		{Name: "Freelance", Type: domain.CategoryIncome},
		{Name: "Salary"},       // legacy, no type
		{Name: "Pet Grooming"}, // legacy, no type
	}

	tests := []struct {
		name     string
		category string
		want     domain.CategoryType
	}{
		{"explicit expense type wins", "Food", domain.CategoryExpense},
		{"explicit income type wins", "Freelance", domain.CategoryIncome},
		{"legacy income name inferred", "Salary", domain.CategoryIncome},
		{"legacy unknown name defaults to expense", "Pet Grooming", domain.CategoryExpense},
		{"unmatched name defaults to expense", "Spelunking", domain.CategoryExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.Classify(tt.category, categories); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestClassify_NoCategories(t *testing.T) {
	if got := engine.Classify("Anything", nil); got != domain.CategoryExpense {
		t.Errorf("Classify with no categories = %q, want expense", got)
	}
}
