package domain

// DefaultCategories is the built-in category set every user starts with.
// User-created categories with the same name shadow the default entry.
// The legacy income names (Income, Salary, Investments) predate explicit
// category types and are recognized by name in the classifier.
var DefaultCategories = []Category{
	{Name: "Food", Color: "#FF5722", Type: CategoryExpense},
	{Name: "Transport", Color: "#2196F3", Type: CategoryExpense},
	{Name: "Entertainment", Color: "#9C27B0", Type: CategoryExpense},
	{Name: "Bills", Color: "#F44336", Type: CategoryExpense},
	{Name: "Shopping", Color: "#E91E63", Type: CategoryExpense},
	{Name: "Health", Color: "#4CAF50", Type: CategoryExpense},
	{Name: "Income", Color: "#8BC34A", Type: CategoryIncome},
	{Name: "Housing", Color: "#795548", Type: CategoryExpense},
	{Name: "Education", Color: "#3F51B5", Type: CategoryExpense},
	{Name: "Travel", Color: "#009688", Type: CategoryExpense},
	{Name: "Salary", Color: "#4CAF50", Type: CategoryIncome},
	{Name: "Investments", Color: "#673AB7", Type: CategoryIncome},
	{Name: "Gifts", Color: "#FFC107", Type: CategoryExpense},
	{Name: "Loan", Color: "#FF9800", Type: CategoryExpense},
	{Name: "Personal Care", Color: "#CDDC39", Type: CategoryExpense},
	{Name: "Other", Color: "#607D8B", Type: CategoryExpense},
}
