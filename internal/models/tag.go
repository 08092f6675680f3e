package models

// Tag represents a row in the tags table.
type Tag struct {
	TagID     string `db:"tag_id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	IsDeleted bool   `db:"is_deleted"`
	AuditFields
}
