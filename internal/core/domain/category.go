package domain

// CategoryType distinguishes income categories from expense categories.
type CategoryType string

const (
	IncomeCategory  CategoryType = "INCOME"
	ExpenseCategory CategoryType = "EXPENSE"
)

// Category groups transactions for reporting purposes.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	IsDeleted  bool         `json:"isDeleted"`
	AuditFields
}
