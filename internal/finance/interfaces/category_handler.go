package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

type CategoryServiceInterface interface {
	Create(userID, name string) (*domain.Category, error)
	List(userID string, status domain.Status) ([]domain.Category, error)
	Update(userID, categoryID, name string) (*domain.Category, error)
	SoftDelete(userID, categoryID string) error
	SoftDeleteAll(userID string) error
	PermanentDelete(userID, categoryID string) error
	Restore(userID, categoryID string) (*domain.Category, error)
	RestoreAll(userID string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  respondJSONFunc
	respondError respondErrorFunc
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON respondJSONFunc,
	respondError respondErrorFunc,
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Create(userID, req.Name)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create category")
		return
	}
	h.respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	categories, err := h.service.List(userID, domain.StatusActive)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve categories")
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetDeletedCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	categories, err := h.service.List(userID, domain.StatusSoftDeleted)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve categories")
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Update(userID, r.PathValue("id"), req.Name)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update category")
		return
	}
	h.respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.SoftDelete(userID, r.PathValue("id")); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete category")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Category soft deleted successfully",
	})
}

func (h *CategoryHandler) DeleteAllCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.SoftDeleteAll(userID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete categories")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All categories soft deleted successfully",
	})
}

func (h *CategoryHandler) PermanentDeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.PermanentDelete(userID, r.PathValue("id")); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete category")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Category permanently deleted successfully",
	})
}

func (h *CategoryHandler) RestoreCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	category, err := h.service.Restore(userID, r.PathValue("id"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to restore category")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category restored successfully",
		"category": category,
	})
}

func (h *CategoryHandler) RestoreAllCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.RestoreAll(userID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to restore categories")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All categories restored successfully",
	})
}
