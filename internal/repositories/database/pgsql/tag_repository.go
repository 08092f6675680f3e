package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	"github.com/finkeeper/personal_finance_app/internal/models"
)

type PgxTagRepository struct {
	db *pgxpool.Pool
}

func newPgxTagRepository(db *pgxpool.Pool) portsrepo.TagRepository {
	return &PgxTagRepository{db: db}
}

var _ portsrepo.TagRepository = (*PgxTagRepository)(nil)

func toDomainTag(m models.Tag) domain.Tag {
	return domain.Tag{
		TagID:     m.TagID,
		UserID:    m.UserID,
		Name:      m.Name,
		IsDeleted: m.IsDeleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const tagColumns = `tag_id, user_id, name, is_deleted, created_at, last_updated_at`

func scanTag(row pgx.Row) (models.Tag, error) {
	var m models.Tag
	err := row.Scan(&m.TagID, &m.UserID, &m.Name, &m.IsDeleted, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `
        INSERT INTO tags (tag_id, user_id, name, is_deleted, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query, tag.TagID, tag.UserID, tag.Name, tag.IsDeleted, tag.CreatedAt, tag.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save tag: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE tag_id = $1;`
	m, err := scanTag(r.db.QueryRow(ctx, query, tagID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag by ID %s: %w", tagID, err)
	}
	d := toDomainTag(m)
	return &d, nil
}

func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) (map[string]domain.Tag, error) {
	result := make(map[string]domain.Tag, len(tagIDs))
	if len(tagIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + tagColumns + ` FROM tags WHERE tag_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		result[m.TagID] = toDomainTag(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return result, nil
}

func (r *PgxTagRepository) FindTagsByUserID(ctx context.Context, userID string) ([]domain.Tag, error) {
	query := `
        SELECT ` + tagColumns + `
        FROM tags
        WHERE user_id = $1 AND is_deleted = FALSE
        ORDER BY name ASC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for user %s: %w", userID, err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		m, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, toDomainTag(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

func (r *PgxTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	query := `
        UPDATE tags
        SET name = $2, last_updated_at = $3
        WHERE tag_id = $1 AND is_deleted = FALSE;
    `
	cmdTag, err := r.db.Exec(ctx, query, tag.TagID, tag.Name, tag.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tag %s: %w", tag.TagID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTagRepository) DeleteTag(ctx context.Context, tagID string, now time.Time) error {
	query := `
        UPDATE tags
        SET is_deleted = TRUE, last_updated_at = $2
        WHERE tag_id = $1 AND is_deleted = FALSE;
    `
	cmdTag, err := r.db.Exec(ctx, query, tagID, now)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
