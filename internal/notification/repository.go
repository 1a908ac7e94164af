package notification

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Description string    `json:"description"`
	IsRead      bool      `json:"isRead"`
	RedirectURL string    `json:"redirectUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	create(notification *Notification) error
	findByIDAndUser(id, userID string) (*Notification, error)
	findByUser(userID string) ([]Notification, error)
	markRead(id string) error
	delete(id, userID string) error
	deleteAllByUser(userID string) (int64, error)
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) Repository {
	return &notificationRepository{
		db: db,
	}
}

const notificationColumns = "id, user_id, description, is_read, redirect_url, created_at"

func (r *notificationRepository) create(notification *Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, description, is_read, redirect_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(query, notification.ID, notification.UserID, notification.Description, notification.IsRead, notification.RedirectURL)
	if err != nil {
		return fmt.Errorf("could not create notification: %v", err)
	}
	return nil
}

func (r *notificationRepository) findByIDAndUser(id, userID string) (*Notification, error) {
	row := r.db.QueryRow(`SELECT `+notificationColumns+` FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)

	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Description, &n.IsRead, &n.RedirectURL, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("could not find notification: %v", err)
	}
	return &n, nil
}

func (r *notificationRepository) findByUser(userID string) ([]Notification, error) {
	rows, err := r.db.Query(`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list notifications: %v", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Description, &n.IsRead, &n.RedirectURL, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) markRead(id string) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	return err
}

func (r *notificationRepository) delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("could not delete notification: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) deleteAllByUser(userID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("could not delete notifications: %v", err)
	}
	return result.RowsAffected()
}
