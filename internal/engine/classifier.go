package engine

import "github.com/kharel/fintrack-bff-go/internal/domain"

// legacyIncomeNames covers categories created before categories carried an
// explicit type. Everything else without a type is an expense.
var legacyIncomeNames = map[string]bool{
	"Income":      true,
	"Salary":      true,
	"Investments": true,
}

// Classify resolves a category name to its income/expense polarity.
// Resolution order: explicit type on a matching category, then the legacy
// income-name list, then expense. Classification always succeeds; an
// unclassifiable record must not block rendering.
func Classify(name string, categories []domain.Category) domain.CategoryType {
	for _, c := range categories {
		if c.Name != name {
			continue
		}
		if c.Type == domain.CategoryIncome || c.Type == domain.CategoryExpense {
			return c.Type
		}
		if legacyIncomeNames[name] {
			return domain.CategoryIncome
		}
		return domain.CategoryExpense
	}
	return domain.CategoryExpense
}
