package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/application"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
)

type ExpenseServiceInterface interface {
	Create(sessionUserID string, input application.CreateExpenseInput) (*domain.ExpenseDetail, error)
	GetUserExpenses(ownerID string, status domain.Status) ([]domain.ExpenseDetail, error)
	Update(expenseID string, input application.UpdateExpenseInput) (*domain.ExpenseDetail, error)
	SoftDelete(expenseID string) error
	PermanentDelete(expenseID string) error
	Restore(expenseID string) (*domain.ExpenseDetail, error)
	RestoreAll(userID string) error
	PermanentDeleteAll(userID string) error
	Count(ownerID string) (*application.ExpenseCount, error)
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  respondJSONFunc
	respondError respondErrorFunc
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON respondJSONFunc,
	respondError respondErrorFunc,
) *ExpenseHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ExpenseHandler) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	// session identity may legitimately be absent here when the
	// deployment allows payload-supplied owners; the service decides.
	sessionUserID, _ := r.Context().Value("userID").(string)

	var req struct {
		Amount      *float64  `json:"amount"`
		Category    string    `json:"category"`
		User        string    `json:"user"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.service.Create(sessionUserID, application.CreateExpenseInput{
		Amount:      req.Amount,
		CategoryID:  req.Category,
		OwnerID:     req.User,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create expense")
		return
	}
	h.respondJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	expenses, err := h.service.GetUserExpenses(r.PathValue("id"), domain.StatusActive)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) GetUserDeletedExpenses(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	expenses, err := h.service.GetUserExpenses(r.PathValue("id"), domain.StatusSoftDeleted)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	var req struct {
		Amount      *float64   `json:"amount"`
		Category    string     `json:"category"`
		Description *string    `json:"description"`
		Date        *time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.service.Update(r.PathValue("id"), application.UpdateExpenseInput{
		Amount:      req.Amount,
		CategoryID:  req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update expense")
		return
	}
	h.respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	if err := h.service.SoftDelete(r.PathValue("id")); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete expense")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expense soft deleted successfully",
	})
}

func (h *ExpenseHandler) PermanentDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	if err := h.service.PermanentDelete(r.PathValue("id")); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete expense")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expense permanently deleted successfully",
	})
}

func (h *ExpenseHandler) RestoreExpense(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	expense, err := h.service.Restore(r.PathValue("id"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to restore expense")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expense restored successfully",
		"expense": expense,
	})
}

func (h *ExpenseHandler) RestoreAllExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.RestoreAll(userID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to restore expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All expenses restored successfully",
	})
}

func (h *ExpenseHandler) PermanentDeleteAllExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.PermanentDeleteAll(userID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All deleted expenses permanently removed",
	})
}

func (h *ExpenseHandler) GetTotalExpensesCount(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	count, err := h.service.Count(r.PathValue("id"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to count expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, count)
}
