package interfaces

import (
	"github.com/jkalinowski/ExpenseTracker/internal/finance/application"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

type MockExpenseService struct {
	Expense  *domain.ExpenseDetail
	Expenses []domain.ExpenseDetail
	Counts   *application.ExpenseCount
	Err      error

	// LastSessionUserID records what the handler passed through, so
	// tests can check the owner-resolution plumbing.
	LastSessionUserID string
	LastCreateInput   application.CreateExpenseInput
}

func (m *MockExpenseService) Create(sessionUserID string, input application.CreateExpenseInput) (*domain.ExpenseDetail, error) {
	m.LastSessionUserID = sessionUserID
	m.LastCreateInput = input
	return m.Expense, m.Err
}

func (m *MockExpenseService) GetUserExpenses(ownerID string, status domain.Status) ([]domain.ExpenseDetail, error) {
	return m.Expenses, m.Err
}

func (m *MockExpenseService) Update(expenseID string, input application.UpdateExpenseInput) (*domain.ExpenseDetail, error) {
	return m.Expense, m.Err
}

func (m *MockExpenseService) SoftDelete(expenseID string) error {
	return m.Err
}

func (m *MockExpenseService) PermanentDelete(expenseID string) error {
	return m.Err
}

func (m *MockExpenseService) Restore(expenseID string) (*domain.ExpenseDetail, error) {
	return m.Expense, m.Err
}

func (m *MockExpenseService) RestoreAll(userID string) error {
	return m.Err
}

func (m *MockExpenseService) PermanentDeleteAll(userID string) error {
	return m.Err
}

func (m *MockExpenseService) Count(ownerID string) (*application.ExpenseCount, error) {
	return m.Counts, m.Err
}
