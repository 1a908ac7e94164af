package interfaces

import (
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

type MockCategoryService struct {
	Category   *domain.Category
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryService) Create(userID, name string) (*domain.Category, error) {
	return m.Category, m.Err
}

func (m *MockCategoryService) List(userID string, status domain.Status) ([]domain.Category, error) {
	return m.Categories, m.Err
}

func (m *MockCategoryService) Update(userID, categoryID, name string) (*domain.Category, error) {
	return m.Category, m.Err
}

func (m *MockCategoryService) SoftDelete(userID, categoryID string) error {
	return m.Err
}

func (m *MockCategoryService) SoftDeleteAll(userID string) error {
	return m.Err
}

func (m *MockCategoryService) PermanentDelete(userID, categoryID string) error {
	return m.Err
}

func (m *MockCategoryService) Restore(userID, categoryID string) (*domain.Category, error) {
	return m.Category, m.Err
}

func (m *MockCategoryService) RestoreAll(userID string) error {
	return m.Err
}
