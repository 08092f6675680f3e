package domain

// Tag is a free-form label a user can attach to transactions.
type Tag struct {
	TagID     string `json:"tagID"` // Primary Key (UUID)
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"isDeleted"`
	AuditFields
}
