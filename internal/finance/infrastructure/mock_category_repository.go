package infrastructure

import (
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

// MockCategoryRepository is an in-memory CategoryRepository for
// service tests.
type MockCategoryRepository struct {
	Categories []domain.Category
}

func (m *MockCategoryRepository) Save(category domain.Category) error {
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MockCategoryRepository) FindByID(categoryID string) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			category := m.Categories[i]
			return &category, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByIDAndUser(categoryID, userID string) (*domain.Category, error) {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID && m.Categories[i].UserID == userID {
			category := m.Categories[i]
			return &category, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByUserAndStatus(userID string, status domain.Status) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID && category.Status == status {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) Update(category domain.Category) error {
	for i := range m.Categories {
		if m.Categories[i].ID == category.ID {
			m.Categories[i] = category
		}
	}
	return nil
}

func (m *MockCategoryRepository) UpdateStatus(categoryID string, status domain.Status) error {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			m.Categories[i].Status = status
		}
	}
	return nil
}

func (m *MockCategoryRepository) UpdateStatusByUser(userID string, from, to domain.Status) (int64, error) {
	var changed int64
	for i := range m.Categories {
		if m.Categories[i].UserID == userID && m.Categories[i].Status == from {
			m.Categories[i].Status = to
			changed++
		}
	}
	return changed, nil
}

func (m *MockCategoryRepository) Delete(categoryID string) error {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockCategoryRepository) NameExistsForUser(name, userID, excludeID string) (bool, error) {
	for _, category := range m.Categories {
		if category.Name == name && category.UserID == userID && category.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) NameExists(name, excludeID string) (bool, error) {
	for _, category := range m.Categories {
		if category.Name == name && category.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
