package application

import "errors"

// MockUserService satisfies UserServiceInterface in tests. Totals
// records every cached-total write, keyed by user id.
type MockUserService struct {
	Users      []string
	Totals     map[string]float64
	FailTotals bool
}

func NewMockUserService(userIDs ...string) *MockUserService {
	return &MockUserService{Users: userIDs, Totals: make(map[string]float64)}
}

func (m *MockUserService) Exists(userID string) (bool, error) {
	for _, id := range m.Users {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserService) UpdateExpenseTotal(userID string, total float64) error {
	if m.FailTotals {
		return errors.New("totals store unavailable")
	}
	m.Totals[userID] = total
	return nil
}

func (m *MockUserService) ListIDs() ([]string, error) {
	return m.Users, nil
}
