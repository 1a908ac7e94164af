package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = "id, amount, category_id, user_id, description, date, status, created_at, updated_at"

// detailedExpenseQuery joins in the category and owner names the
// clients render, matching the populate the original API did.
const detailedExpenseQuery = `
	SELECT e.id, e.amount, e.category_id, e.user_id, e.description, e.date, e.status, e.created_at, e.updated_at,
	       c.name, u.name, u.email
	FROM expenses e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.user_id`

func (r *ExpenseRepository) Save(expense domain.Expense) error {
	_, err := r.db.Exec(
		`INSERT INTO expenses (id, amount, category_id, user_id, description, date, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		expense.ID, expense.Amount, expense.CategoryID, expense.UserID, expense.Description,
		expense.Date, expense.Status, expense.CreatedAt, expense.UpdatedAt,
	)
	return err
}

func (r *ExpenseRepository) FindByID(expenseID string) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.QueryRow(`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, expenseID).Scan(
		&expense.ID, &expense.Amount, &expense.CategoryID, &expense.UserID, &expense.Description,
		&expense.Date, &expense.Status, &expense.CreatedAt, &expense.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) FindDetailedByID(expenseID string) (*domain.ExpenseDetail, error) {
	var detail domain.ExpenseDetail
	err := r.db.QueryRow(detailedExpenseQuery+` WHERE e.id = $1`, expenseID).Scan(
		&detail.ID, &detail.Amount, &detail.CategoryID, &detail.UserID, &detail.Description,
		&detail.Date, &detail.Status, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.CategoryName, &detail.UserName, &detail.UserEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *ExpenseRepository) FindByUserAndStatus(userID string, status domain.Status) ([]domain.Expense, error) {
	rows, err := r.db.Query(
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 AND status = $2 ORDER BY date DESC`,
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(
			&expense.ID, &expense.Amount, &expense.CategoryID, &expense.UserID, &expense.Description,
			&expense.Date, &expense.Status, &expense.CreatedAt, &expense.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) FindDetailedByUserAndStatus(userID string, status domain.Status) ([]domain.ExpenseDetail, error) {
	rows, err := r.db.Query(detailedExpenseQuery+` WHERE e.user_id = $1 AND e.status = $2 ORDER BY e.date DESC`, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.ExpenseDetail
	for rows.Next() {
		var detail domain.ExpenseDetail
		if err := rows.Scan(
			&detail.ID, &detail.Amount, &detail.CategoryID, &detail.UserID, &detail.Description,
			&detail.Date, &detail.Status, &detail.CreatedAt, &detail.UpdatedAt,
			&detail.CategoryName, &detail.UserName, &detail.UserEmail,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

func (r *ExpenseRepository) Update(expense domain.Expense) error {
	_, err := r.db.Exec(
		`UPDATE expenses SET amount = $1, category_id = $2, description = $3, date = $4, status = $5, updated_at = $6
         WHERE id = $7`,
		expense.Amount, expense.CategoryID, expense.Description, expense.Date, expense.Status,
		expense.UpdatedAt, expense.ID,
	)
	return err
}

func (r *ExpenseRepository) UpdateStatus(expenseID string, status domain.Status) error {
	_, err := r.db.Exec(`UPDATE expenses SET status = $1, updated_at = NOW() WHERE id = $2`, status, expenseID)
	return err
}

func (r *ExpenseRepository) UpdateStatusByUser(userID string, from, to domain.Status) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE expenses SET status = $1, updated_at = NOW() WHERE user_id = $2 AND status = $3`,
		to, userID, from,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ExpenseRepository) Delete(expenseID string) error {
	_, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, expenseID)
	return err
}

func (r *ExpenseRepository) DeleteByUserAndStatus(userID string, status domain.Status) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE user_id = $1 AND status = $2`, userID, status)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ExpenseRepository) CountByUserAndStatus(userID string, status domain.Status) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND status = $2`, userID, status).Scan(&count)
	return count, err
}

func (r *ExpenseRepository) SumAmountByUserAndStatus(userID string, status domain.Status) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND status = $2`,
		userID, status,
	).Scan(&total)
	return total, err
}

func (r *ExpenseRepository) ExistsByCategory(categoryID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM expenses WHERE category_id = $1)`, categoryID).Scan(&exists)
	return exists, err
}

func (r *ExpenseRepository) ExistsByCategoryAndStatus(categoryID string, status domain.Status) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM expenses WHERE category_id = $1 AND status = $2)`,
		categoryID, status,
	).Scan(&exists)
	return exists, err
}

func (r *ExpenseRepository) ExistsByUser(userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM expenses WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}
