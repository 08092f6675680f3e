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

type PgxCategoryRepository struct {
	db *pgxpool.Pool
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{db: db}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Name:       m.Name,
		Type:       domain.CategoryType(m.Type),
		Icon:       m.Icon,
		Color:      m.Color,
		IsDeleted:  m.IsDeleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const categoryColumns = `category_id, user_id, name, type, icon, color, is_deleted, created_at, last_updated_at`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.Icon,
		&m.Color,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
        INSERT INTO categories (category_id, user_id, name, type, icon, color, is_deleted, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name, string(category.Type), category.Icon, category.Color, category.IsDeleted, category.CreatedAt, category.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`
	m, err := scanCategory(r.db.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	d := toDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) FindCategoriesByUserID(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
        SELECT ` + categoryColumns + `
        FROM categories
        WHERE user_id = $1 AND is_deleted = FALSE
        ORDER BY type ASC, name ASC;
    `
	return r.queryCategories(ctx, query, userID)
}

func (r *PgxCategoryRepository) FindCategoriesByUserIDAndType(ctx context.Context, userID string, categoryType domain.CategoryType) ([]domain.Category, error) {
	query := `
        SELECT ` + categoryColumns + `
        FROM categories
        WHERE user_id = $1 AND type = $2 AND is_deleted = FALSE
        ORDER BY name ASC;
    `
	return r.queryCategories(ctx, query, userID, string(categoryType))
}

func (r *PgxCategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, toDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
        UPDATE categories
        SET name = $2, icon = $3, color = $4, last_updated_at = $5
        WHERE category_id = $1 AND is_deleted = FALSE;
    `
	tag, err := r.db.Exec(ctx, query, category.CategoryID, category.Name, category.Icon, category.Color, category.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string, now time.Time) error {
	query := `
        UPDATE categories
        SET is_deleted = TRUE, last_updated_at = $2
        WHERE category_id = $1 AND is_deleted = FALSE;
    `
	tag, err := r.db.Exec(ctx, query, categoryID, now)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
