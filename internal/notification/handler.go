package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

type Handler struct {
	notificationService Service
}

func NewHandler(notificationService Service) *Handler {
	return &Handler{
		notificationService: notificationService,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		log.Printf("JSON encoding error: %v", err)
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description"`
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	notification, err := h.notificationService.Create(userID, req.Description, req.RedirectURL)
	if err != nil {
		if errors.Is(err, ErrDescriptionRequired) {
			respondError(w, http.StatusBadRequest, "Description is required")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not create notification")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    notification,
	})
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.List(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not list notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    notifications,
	})
}

func (h *Handler) GetNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	notification, err := h.notificationService.GetByID(r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			respondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not load notification")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    notification,
	})
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(r.PathValue("id"), userID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			respondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not delete notification")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notification deleted successfully",
	})
}

func (h *Handler) DeleteAllNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	deleted, err := h.notificationService.DeleteAll(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not delete notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("%d notifications deleted", deleted),
	})
}
