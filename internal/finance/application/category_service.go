package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
)

// NameScope controls where category names must be unique. The two
// deployed schema variants disagreed (per-owner vs global), so the
// scope is configuration rather than a hardcoded rule.
type NameScope string

const (
	NameScopeOwner  NameScope = "owner"
	NameScopeGlobal NameScope = "global"
)

// ExpenseChecker is the slice of the expense store the category
// lifecycle needs for its dependency checks.
type ExpenseChecker interface {
	ExistsByCategory(categoryID string) (bool, error)
	ExistsByCategoryAndStatus(categoryID string, status domain.Status) (bool, error)
	ExistsByUser(userID string) (bool, error)
}

type CategoryService struct {
	repo      domain.CategoryRepository
	expenses  ExpenseChecker
	nameScope NameScope
}

func NewCategoryService(repo domain.CategoryRepository, expenses ExpenseChecker, nameScope NameScope) *CategoryService {
	if nameScope != NameScopeGlobal {
		nameScope = NameScopeOwner
	}
	return &CategoryService{repo: repo, expenses: expenses, nameScope: nameScope}
}

func (s *CategoryService) nameTaken(name, userID, excludeID string) (bool, error) {
	if s.nameScope == NameScopeGlobal {
		return s.repo.NameExists(name, excludeID)
	}
	return s.repo.NameExistsForUser(name, userID, excludeID)
}

func (s *CategoryService) Create(userID, name string) (*domain.Category, error) {
	category := domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    userID,
		Status:    domain.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	category.Normalize()
	if err := category.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(category.Name, userID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, financeErrors.NewConflictError("Category with this name already exists")
	}

	if err := s.repo.Save(category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(userID string, status domain.Status) ([]domain.Category, error) {
	categories, err := s.repo.FindByUserAndStatus(userID, status)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// ListByStatus is the collaborator view the expense lifecycle uses for
// its batch-restore dependency check.
func (s *CategoryService) ListByStatus(userID string, status domain.Status) ([]domain.Category, error) {
	return s.List(userID, status)
}

// GetByID resolves a category without an ownership filter: an expense
// may reference a category by bare id, exactly as the original API
// allowed. Returns (nil, nil) when the id is unknown.
func (s *CategoryService) GetByID(categoryID string) (*domain.Category, error) {
	return s.repo.FindByID(categoryID)
}

func (s *CategoryService) Update(userID, categoryID, name string) (*domain.Category, error) {
	category, err := s.repo.FindByIDAndUser(categoryID, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, financeErrors.NewNotFoundError("Category not found")
	}

	category.Name = name
	category.Normalize()
	if err := category.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(category.Name, userID, category.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, financeErrors.NewConflictError("Category with this name already exists")
	}

	category.UpdatedAt = time.Now()
	if err := s.repo.Update(*category); err != nil {
		return nil, err
	}
	return category, nil
}

// SoftDelete hides a category. It is refused while any active expense
// still references the category.
func (s *CategoryService) SoftDelete(userID, categoryID string) error {
	category, err := s.repo.FindByIDAndUser(categoryID, userID)
	if err != nil {
		return err
	}
	if category == nil {
		return financeErrors.NewNotFoundError("Category not found")
	}

	inUse, err := s.expenses.ExistsByCategoryAndStatus(categoryID, domain.StatusActive)
	if err != nil {
		return err
	}
	if inUse {
		return financeErrors.NewDependencyError("Cannot delete category with associated expenses")
	}

	return s.repo.UpdateStatus(categoryID, domain.StatusSoftDeleted)
}

// SoftDeleteAll hides every category of the user. The original refused
// the whole operation while the user had any expense at all.
func (s *CategoryService) SoftDeleteAll(userID string) error {
	hasExpenses, err := s.expenses.ExistsByUser(userID)
	if err != nil {
		return err
	}
	if hasExpenses {
		return financeErrors.NewDependencyError("Cannot delete all categories when expenses exist")
	}

	_, err = s.repo.UpdateStatusByUser(userID, domain.StatusActive, domain.StatusSoftDeleted)
	return err
}

// PermanentDelete removes the record entirely. Unlike SoftDelete it is
// blocked by soft-deleted expenses too, since those could still be
// restored into a dangling reference.
func (s *CategoryService) PermanentDelete(userID, categoryID string) error {
	category, err := s.repo.FindByIDAndUser(categoryID, userID)
	if err != nil {
		return err
	}
	if category == nil {
		return financeErrors.NewNotFoundError("Category not found")
	}

	inUse, err := s.expenses.ExistsByCategory(categoryID)
	if err != nil {
		return err
	}
	if inUse {
		return financeErrors.NewDependencyError("Cannot permanently delete category with associated expenses")
	}

	return s.repo.Delete(categoryID)
}

func (s *CategoryService) Restore(userID, categoryID string) (*domain.Category, error) {
	category, err := s.repo.FindByIDAndUser(categoryID, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, financeErrors.NewNotFoundError("Category not found")
	}
	if category.Status == domain.StatusActive {
		return nil, financeErrors.NewStateError("Category is already active")
	}

	if err := s.repo.UpdateStatus(categoryID, domain.StatusActive); err != nil {
		return nil, err
	}
	category.Status = domain.StatusActive
	return category, nil
}

func (s *CategoryService) RestoreAll(userID string) error {
	_, err := s.repo.UpdateStatusByUser(userID, domain.StatusSoftDeleted, domain.StatusActive)
	return err
}
