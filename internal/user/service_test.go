package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	users map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) createUser(user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockRepository) getUserByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) getUserByID(id string) (*User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) userExistsByID(id string) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockRepository) updateUser(user *User) error {
	if _, ok := m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockRepository) deleteUser(id string) error {
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockRepository) updateExpenseTotal(userID string, total float64) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Expenses = total
	return nil
}

func (m *mockRepository) listUserIDs() ([]string, error) {
	var ids []string
	for id := range m.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestRegister_Success(t *testing.T) {
	service := NewUserService(newMockRepository())

	user, err := service.Register("  Jan  ", "Jan@Example.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Jan", user.Name)
	assert.Equal(t, "jan@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, 0.0, user.Expenses)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestRegister_Validation(t *testing.T) {
	service := NewUserService(newMockRepository())

	_, err := service.Register("", "jan@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = service.Register("Jan", "not-an-email", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = service.Register("Jan", "jan@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := NewUserService(newMockRepository())

	_, err := service.Register("Jan", "jan@example.com", "secret1")
	require.NoError(t, err)

	_, err = service.Register("Janek", "JAN@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	service := NewUserService(newMockRepository())

	registered, err := service.Register("Jan", "jan@example.com", "secret1")
	require.NoError(t, err)
	originalHash := registered.PasswordHash

	updated, err := service.UpdateUser(registered.ID, "Janek", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Janek", updated.Name)
	assert.Equal(t, "jan@example.com", updated.Email)
	assert.Equal(t, originalHash, updated.PasswordHash)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	service := NewUserService(newMockRepository())

	_, err := service.Register("Jan", "jan@example.com", "secret1")
	require.NoError(t, err)
	second, err := service.Register("Anna", "anna@example.com", "secret1")
	require.NoError(t, err)

	_, err = service.UpdateUser(second.ID, "", "jan@example.com", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUpdateExpenseTotal(t *testing.T) {
	service := NewUserService(newMockRepository())

	registered, err := service.Register("Jan", "jan@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, service.UpdateExpenseTotal(registered.ID, 125.75))

	user, err := service.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, 125.75, user.Expenses)

	assert.ErrorIs(t, service.UpdateExpenseTotal("ghost", 10), ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	service := NewUserService(newMockRepository())

	registered, err := service.Register("Jan", "jan@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(registered.ID))
	assert.ErrorIs(t, service.DeleteUser(registered.ID), ErrUserNotFound)
}
