package domain

import (
	"time"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
)

type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	CategoryID  string    `json:"category"`
	UserID      string    `json:"user"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseDetail is an expense joined with the names the clients render
// next to it (the original API populated category and user refs).
type ExpenseDetail struct {
	Expense
	CategoryName string `json:"category_name"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
}

func (e *Expense) Validate() error {
	if e.Amount < 0 {
		return errors.NewValidationError("Amount cannot be negative")
	}
	if e.CategoryID == "" {
		return errors.NewValidationError("Category is required")
	}
	if e.UserID == "" {
		return errors.NewValidationError("User is required")
	}
	if !e.Status.Valid() {
		return errors.NewValidationError("Invalid expense status")
	}
	return nil
}

type ExpenseRepository interface {
	Save(expense Expense) error
	// FindByID returns (nil, nil) when the id does not exist.
	FindByID(expenseID string) (*Expense, error)
	FindDetailedByID(expenseID string) (*ExpenseDetail, error)
	FindByUserAndStatus(userID string, status Status) ([]Expense, error)
	FindDetailedByUserAndStatus(userID string, status Status) ([]ExpenseDetail, error)
	Update(expense Expense) error
	UpdateStatus(expenseID string, status Status) error
	UpdateStatusByUser(userID string, from, to Status) (int64, error)
	Delete(expenseID string) error
	DeleteByUserAndStatus(userID string, status Status) (int64, error)
	CountByUserAndStatus(userID string, status Status) (int, error)
	// SumAmountByUserAndStatus is the aggregation primitive behind the
	// cached per-user total. Returns 0 when the user has no matching
	// expenses.
	SumAmountByUserAndStatus(userID string, status Status) (float64, error)
	ExistsByCategory(categoryID string) (bool, error)
	ExistsByCategoryAndStatus(categoryID string, status Status) (bool, error)
	ExistsByUser(userID string) (bool, error)
}
