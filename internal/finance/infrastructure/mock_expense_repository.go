package infrastructure

import (
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

// MockExpenseRepository is an in-memory ExpenseRepository for service
// tests. CategoryNames and UserNames back the detailed lookups; both
// are optional.
type MockExpenseRepository struct {
	Expenses      []domain.Expense
	CategoryNames map[string]string
	UserNames     map[string]string
	UserEmails    map[string]string
}

func (m *MockExpenseRepository) detail(expense domain.Expense) domain.ExpenseDetail {
	return domain.ExpenseDetail{
		Expense:      expense,
		CategoryName: m.CategoryNames[expense.CategoryID],
		UserName:     m.UserNames[expense.UserID],
		UserEmail:    m.UserEmails[expense.UserID],
	}
}

func (m *MockExpenseRepository) Save(expense domain.Expense) error {
	m.Expenses = append(m.Expenses, expense)
	return nil
}

func (m *MockExpenseRepository) FindByID(expenseID string) (*domain.Expense, error) {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			expense := m.Expenses[i]
			return &expense, nil
		}
	}
	return nil, nil
}

func (m *MockExpenseRepository) FindDetailedByID(expenseID string) (*domain.ExpenseDetail, error) {
	expense, err := m.FindByID(expenseID)
	if err != nil || expense == nil {
		return nil, err
	}
	detail := m.detail(*expense)
	return &detail, nil
}

func (m *MockExpenseRepository) FindByUserAndStatus(userID string, status domain.Status) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID == userID && expense.Status == status {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (m *MockExpenseRepository) FindDetailedByUserAndStatus(userID string, status domain.Status) ([]domain.ExpenseDetail, error) {
	expenses, _ := m.FindByUserAndStatus(userID, status)
	var details []domain.ExpenseDetail
	for _, expense := range expenses {
		details = append(details, m.detail(expense))
	}
	return details, nil
}

func (m *MockExpenseRepository) Update(expense domain.Expense) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expense.ID {
			m.Expenses[i] = expense
		}
	}
	return nil
}

func (m *MockExpenseRepository) UpdateStatus(expenseID string, status domain.Status) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			m.Expenses[i].Status = status
		}
	}
	return nil
}

func (m *MockExpenseRepository) UpdateStatusByUser(userID string, from, to domain.Status) (int64, error) {
	var changed int64
	for i := range m.Expenses {
		if m.Expenses[i].UserID == userID && m.Expenses[i].Status == from {
			m.Expenses[i].Status = to
			changed++
		}
	}
	return changed, nil
}

func (m *MockExpenseRepository) Delete(expenseID string) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockExpenseRepository) DeleteByUserAndStatus(userID string, status domain.Status) (int64, error) {
	var kept []domain.Expense
	var removed int64
	for _, expense := range m.Expenses {
		if expense.UserID == userID && expense.Status == status {
			removed++
			continue
		}
		kept = append(kept, expense)
	}
	m.Expenses = kept
	return removed, nil
}

func (m *MockExpenseRepository) CountByUserAndStatus(userID string, status domain.Status) (int, error) {
	count := 0
	for _, expense := range m.Expenses {
		if expense.UserID == userID && expense.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockExpenseRepository) SumAmountByUserAndStatus(userID string, status domain.Status) (float64, error) {
	var total float64
	for _, expense := range m.Expenses {
		if expense.UserID == userID && expense.Status == status {
			total += expense.Amount
		}
	}
	return total, nil
}

func (m *MockExpenseRepository) ExistsByCategory(categoryID string) (bool, error) {
	for _, expense := range m.Expenses {
		if expense.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockExpenseRepository) ExistsByCategoryAndStatus(categoryID string, status domain.Status) (bool, error) {
	for _, expense := range m.Expenses {
		if expense.CategoryID == categoryID && expense.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockExpenseRepository) ExistsByUser(userID string) (bool, error) {
	for _, expense := range m.Expenses {
		if expense.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
