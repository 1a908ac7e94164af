package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 254
	minPasswordLength = 6
	bcryptCost        = 12

	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long, max length: %d", maxEmailLength)
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Expenses     float64   `json:"expenses"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Service interface {
	Register(name, email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateUser(userID, name, email, password string) (*User, error)
	DeleteUser(userID string) error

	// Exists, UpdateExpenseTotal and ListIDs serve the expense
	// lifecycle: owner resolution and the cached expense total.
	Exists(userID string) (bool, error)
	UpdateExpenseTotal(userID string, total float64) error
	ListIDs() ([]string, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validateEmail(email string) error {
	if len(email) > maxEmailLength {
		return ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.getUserByEmail(email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		Expenses:     0,
	}
	if err := s.repo.createUser(user); err != nil {
		return nil, ErrInternalError
	}
	return user, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByEmail(email string) (*User, error) {
	return s.repo.getUserByEmail(strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) UpdateUser(userID, name, email, password string) (*User, error) {
	user, err := s.repo.getUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = strings.TrimSpace(name)
		if user.Name == "" {
			return nil, ErrNameRequired
		}
	}
	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if _, err := s.repo.getUserByEmail(email); err == nil {
				return nil, ErrEmailAlreadyExists
			} else if !errors.Is(err, ErrUserNotFound) {
				return nil, ErrInternalError
			}
		}
		user.Email = email
	}
	if password != "" {
		if len(password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		passwordHash, err := hashPassword(password)
		if err != nil {
			return nil, ErrInternalError
		}
		user.PasswordHash = passwordHash
	}

	if err := s.repo.updateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) DeleteUser(userID string) error {
	return s.repo.deleteUser(userID)
}

func (s *service) Exists(userID string) (bool, error) {
	return s.repo.userExistsByID(userID)
}

func (s *service) UpdateExpenseTotal(userID string, total float64) error {
	return s.repo.updateExpenseTotal(userID, total)
}

func (s *service) ListIDs() ([]string, error) {
	return s.repo.listUserIDs()
}
