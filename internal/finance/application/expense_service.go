package application

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
)

type CategoryServiceInterface interface {
	GetByID(categoryID string) (*domain.Category, error)
	ListByStatus(userID string, status domain.Status) ([]domain.Category, error)
}

// UserServiceInterface is what the expense lifecycle needs from the
// user module: owner resolution and the write half of the cached
// expense total.
type UserServiceInterface interface {
	Exists(userID string) (bool, error)
	UpdateExpenseTotal(userID string, total float64) error
	ListIDs() ([]string, error)
}

// OwnerResolution names the fallback policy for expense creation: the
// session identity always wins, and a payload-supplied owner id is
// consulted only when there is no session identity and the deployment
// explicitly allows it.
type OwnerResolution struct {
	AllowPayloadOwner bool
}

type CreateExpenseInput struct {
	Amount      *float64
	CategoryID  string
	OwnerID     string
	Description string
	Date        time.Time
}

type UpdateExpenseInput struct {
	Amount      *float64
	CategoryID  string
	Description *string
	Date        *time.Time
}

type ExpenseCount struct {
	TotalActiveExpenses  int `json:"totalActiveExpenses"`
	TotalDeletedExpenses int `json:"totalDeletedExpenses"`
}

type ExpenseService struct {
	repo       domain.ExpenseRepository
	categories CategoryServiceInterface
	users      UserServiceInterface
	owners     OwnerResolution
}

func NewExpenseService(repo domain.ExpenseRepository, categories CategoryServiceInterface, users UserServiceInterface, owners OwnerResolution) *ExpenseService {
	return &ExpenseService{repo: repo, categories: categories, users: users, owners: owners}
}

func (s *ExpenseService) requireActiveCategory(categoryID string) error {
	category, err := s.categories.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil || category.Status != domain.StatusActive {
		return financeErrors.NewNotFoundError("Category not found or is deleted")
	}
	return nil
}

// resolveOwner applies the OwnerResolution policy. sessionUserID is
// empty only for unauthenticated callers, which exist solely in
// deployments that allow payload owners.
func (s *ExpenseService) resolveOwner(sessionUserID, payloadOwnerID string) (string, error) {
	if sessionUserID != "" {
		return sessionUserID, nil
	}
	if !s.owners.AllowPayloadOwner || payloadOwnerID == "" {
		return "", financeErrors.NewValidationError("User is required")
	}
	exists, err := s.users.Exists(payloadOwnerID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", financeErrors.NewNotFoundError("User not found")
	}
	return payloadOwnerID, nil
}

func (s *ExpenseService) Create(sessionUserID string, input CreateExpenseInput) (*domain.ExpenseDetail, error) {
	if input.Amount == nil || input.CategoryID == "" {
		return nil, financeErrors.NewValidationError("Amount and category are required")
	}

	if err := s.requireActiveCategory(input.CategoryID); err != nil {
		return nil, err
	}

	ownerID, err := s.resolveOwner(sessionUserID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	expense := domain.Expense{
		ID:          uuid.NewString(),
		Amount:      *input.Amount,
		CategoryID:  input.CategoryID,
		UserID:      ownerID,
		Description: input.Description,
		Date:        date,
		Status:      domain.StatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(expense); err != nil {
		return nil, err
	}
	s.recomputeTotal(ownerID)

	return s.repo.FindDetailedByID(expense.ID)
}

func (s *ExpenseService) GetUserExpenses(ownerID string, status domain.Status) ([]domain.ExpenseDetail, error) {
	if ownerID == "" {
		return nil, financeErrors.NewValidationError("User ID is required")
	}
	exists, err := s.users.Exists(ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, financeErrors.NewNotFoundError("User not found")
	}

	expenses, err := s.repo.FindDetailedByUserAndStatus(ownerID, status)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		return []domain.ExpenseDetail{}, nil
	}
	return expenses, nil
}

// Update applies a partial update to an active expense and recomputes
// the owner's total. Soft-deleted expenses cannot be edited.
func (s *ExpenseService) Update(expenseID string, input UpdateExpenseInput) (*domain.ExpenseDetail, error) {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.Status == domain.StatusSoftDeleted {
		return nil, financeErrors.NewNotFoundError("Expense not found or is deleted")
	}

	if input.CategoryID != "" {
		if err := s.requireActiveCategory(input.CategoryID); err != nil {
			return nil, err
		}
		expense.CategoryID = input.CategoryID
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, financeErrors.NewValidationError("Amount cannot be negative")
		}
		expense.Amount = *input.Amount
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Date != nil && !input.Date.IsZero() {
		expense.Date = *input.Date
	}

	expense.UpdatedAt = time.Now()
	if err := s.repo.Update(*expense); err != nil {
		return nil, err
	}
	s.recomputeTotal(expense.UserID)

	return s.repo.FindDetailedByID(expenseID)
}

func (s *ExpenseService) SoftDelete(expenseID string) error {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return financeErrors.NewNotFoundError("Expense not found")
	}

	if err := s.repo.UpdateStatus(expenseID, domain.StatusSoftDeleted); err != nil {
		return err
	}
	s.recomputeTotal(expense.UserID)
	return nil
}

func (s *ExpenseService) PermanentDelete(expenseID string) error {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return financeErrors.NewNotFoundError("Expense not found")
	}

	if err := s.repo.Delete(expenseID); err != nil {
		return err
	}
	s.recomputeTotal(expense.UserID)
	return nil
}

// Restore brings a soft-deleted expense back, provided its category is
// still active: restoring into a hidden category would resurrect an
// expense no listing can reach.
func (s *ExpenseService) Restore(expenseID string) (*domain.ExpenseDetail, error) {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, financeErrors.NewNotFoundError("Expense not found")
	}
	if expense.Status == domain.StatusActive {
		return nil, financeErrors.NewStateError("Expense is already active")
	}

	category, err := s.categories.GetByID(expense.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.Status != domain.StatusActive {
		return nil, financeErrors.NewDependencyError("Cannot restore expense: Category is deleted or not found")
	}

	if err := s.repo.UpdateStatus(expenseID, domain.StatusActive); err != nil {
		return nil, err
	}
	s.recomputeTotal(expense.UserID)

	return s.repo.FindDetailedByID(expenseID)
}

// RestoreAll is all-or-nothing: if any soft-deleted expense of the
// user references a currently soft-deleted category, the whole batch
// is rejected rather than partially restored.
func (s *ExpenseService) RestoreAll(userID string) error {
	deletedCategories, err := s.categories.ListByStatus(userID, domain.StatusSoftDeleted)
	if err != nil {
		return err
	}
	deletedIDs := make(map[string]bool, len(deletedCategories))
	for _, category := range deletedCategories {
		deletedIDs[category.ID] = true
	}

	expenses, err := s.repo.FindByUserAndStatus(userID, domain.StatusSoftDeleted)
	if err != nil {
		return err
	}
	for _, expense := range expenses {
		if deletedIDs[expense.CategoryID] {
			return financeErrors.NewDependencyError("Cannot restore all expenses: Some expenses have deleted categories")
		}
	}

	if _, err := s.repo.UpdateStatusByUser(userID, domain.StatusSoftDeleted, domain.StatusActive); err != nil {
		return err
	}
	s.recomputeTotal(userID)
	return nil
}

// PermanentDeleteAll removes the user's soft-deleted expenses. Active
// expenses are untouched, so the recompute is a no-op in practice but
// runs anyway; the total is always re-derived, never patched.
func (s *ExpenseService) PermanentDeleteAll(userID string) error {
	if _, err := s.repo.DeleteByUserAndStatus(userID, domain.StatusSoftDeleted); err != nil {
		return err
	}
	s.recomputeTotal(userID)
	return nil
}

func (s *ExpenseService) Count(ownerID string) (*ExpenseCount, error) {
	if ownerID == "" {
		return nil, financeErrors.NewValidationError("User ID is required")
	}
	exists, err := s.users.Exists(ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, financeErrors.NewNotFoundError("User not found")
	}

	active, err := s.repo.CountByUserAndStatus(ownerID, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	deleted, err := s.repo.CountByUserAndStatus(ownerID, domain.StatusSoftDeleted)
	if err != nil {
		return nil, err
	}
	return &ExpenseCount{TotalActiveExpenses: active, TotalDeletedExpenses: deleted}, nil
}

// RecomputeTotal re-derives the user's cached expense total from the
// active expenses. Always a full recompute; incremental deltas drift.
func (s *ExpenseService) RecomputeTotal(userID string) error {
	total, err := s.repo.SumAmountByUserAndStatus(userID, domain.StatusActive)
	if err != nil {
		return err
	}
	return s.users.UpdateExpenseTotal(userID, total)
}

// recomputeTotal is the best-effort variant used after a committed
// state transition: the transition stands even if the recompute fails,
// and the scheduled reconciler heals the drift.
func (s *ExpenseService) recomputeTotal(userID string) {
	if err := s.RecomputeTotal(userID); err != nil {
		log.Printf("Error recomputing expense total for user %s: %v", userID, err)
	}
}

// ReconcileTotals re-runs the recompute for every user. Wired to a
// cron schedule in main.
func (s *ExpenseService) ReconcileTotals() error {
	userIDs, err := s.users.ListIDs()
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if err := s.RecomputeTotal(userID); err != nil {
			log.Printf("Error reconciling expense total for user %s: %v", userID, err)
		}
	}
	return nil
}
