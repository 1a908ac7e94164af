package notification

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrDescriptionRequired = errors.New("description is required")

type Service interface {
	Create(userID, description, redirectURL string) (*Notification, error)
	List(userID string) ([]Notification, error)
	GetByID(id, userID string) (*Notification, error)
	Delete(id, userID string) error
	DeleteAll(userID string) (int64, error)
}

type service struct {
	repo Repository
}

func NewNotificationService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Create(userID, description, redirectURL string) (*Notification, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	notification := &Notification{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: description,
		IsRead:      false,
		RedirectURL: redirectURL,
	}
	if err := s.repo.create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *service) List(userID string) ([]Notification, error) {
	notifications, err := s.repo.findByUser(userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []Notification{}
	}
	return notifications, nil
}

// GetByID returns a single notification and marks it as read.
func (s *service) GetByID(id, userID string) (*Notification, error) {
	notification, err := s.repo.findByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if !notification.IsRead {
		if err := s.repo.markRead(notification.ID); err != nil {
			return nil, err
		}
		notification.IsRead = true
	}
	return notification, nil
}

func (s *service) Delete(id, userID string) error {
	return s.repo.delete(id, userID)
}

func (s *service) DeleteAll(userID string) (int64, error) {
	return s.repo.deleteAllByUser(userID)
}
