package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = "id, name, user_id, status, created_at, updated_at"

func scanCategory(row interface{ Scan(...interface{}) error }) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(&category.ID, &category.Name, &category.UserID, &category.Status, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Save(category domain.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, user_id, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.Name, category.UserID, category.Status, category.CreatedAt, category.UpdatedAt,
	)
	return err
}

func (r *CategoryRepository) FindByID(categoryID string) (*domain.Category, error) {
	row := r.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, categoryID)
	return scanCategory(row)
}

func (r *CategoryRepository) FindByIDAndUser(categoryID, userID string) (*domain.Category, error) {
	row := r.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	return scanCategory(row)
}

func (r *CategoryRepository) FindByUserAndStatus(userID string, status domain.Status) ([]domain.Category, error) {
	rows, err := r.db.Query(
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 AND status = $2 ORDER BY created_at`,
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.UserID, &category.Status, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(category domain.Category) error {
	_, err := r.db.Exec(
		`UPDATE categories SET name = $1, status = $2, updated_at = $3 WHERE id = $4`,
		category.Name, category.Status, category.UpdatedAt, category.ID,
	)
	return err
}

func (r *CategoryRepository) UpdateStatus(categoryID string, status domain.Status) error {
	_, err := r.db.Exec(`UPDATE categories SET status = $1, updated_at = NOW() WHERE id = $2`, status, categoryID)
	return err
}

func (r *CategoryRepository) UpdateStatusByUser(userID string, from, to domain.Status) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE categories SET status = $1, updated_at = NOW() WHERE user_id = $2 AND status = $3`,
		to, userID, from,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *CategoryRepository) Delete(categoryID string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, categoryID)
	return err
}

func (r *CategoryRepository) NameExistsForUser(name, userID, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND user_id = $2 AND id <> $3)`
	err := r.db.QueryRow(query, name, userID, excludeID).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) NameExists(name, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`
	err := r.db.QueryRow(query, name, excludeID).Scan(&exists)
	return exists, err
}
