package models

// CategoryType distinguishes income categories from expense categories.
type CategoryType string

const (
	IncomeCategory  CategoryType = "INCOME"
	ExpenseCategory CategoryType = "EXPENSE"
)

// Category represents a row in the categories table.
type Category struct {
	CategoryID string       `db:"category_id"`
	UserID     string       `db:"user_id"`
	Name       string       `db:"name"`
	Type       CategoryType `db:"type"`
	Icon       string       `db:"icon"`
	Color      string       `db:"color"`
	IsDeleted  bool         `db:"is_deleted"`
	AuditFields
}
