package domain

import (
	"strings"
	"time"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize trims the name the way the original schema did.
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError("Category name is required")
	}
	if !c.Status.Valid() {
		return errors.NewValidationError("Invalid category status")
	}
	return nil
}

type CategoryRepository interface {
	Save(category Category) error
	// FindByID resolves a category regardless of owner. Returns
	// (nil, nil) when the id does not exist.
	FindByID(categoryID string) (*Category, error)
	// FindByIDAndUser resolves a category within the owner's scope.
	FindByIDAndUser(categoryID, userID string) (*Category, error)
	FindByUserAndStatus(userID string, status Status) ([]Category, error)
	Update(category Category) error
	UpdateStatus(categoryID string, status Status) error
	// UpdateStatusByUser flips every category of the user currently in
	// `from` to `to` and reports how many rows changed.
	UpdateStatusByUser(userID string, from, to Status) (int64, error)
	Delete(categoryID string) error
	NameExistsForUser(name, userID, excludeID string) (bool, error)
	NameExists(name, excludeID string) (bool, error)
}
