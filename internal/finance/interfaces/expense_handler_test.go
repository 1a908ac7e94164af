package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/application"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateExpense_Created(t *testing.T) {
	mockService := &MockExpenseService{
		Expense: &domain.ExpenseDetail{
			Expense:      domain.Expense{ID: "e1", Amount: 50, CategoryID: "c1", UserID: "u1", Status: domain.StatusActive},
			CategoryName: "Food",
			UserName:     "Jan",
			UserEmail:    "jan@example.com",
		},
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodPost, "/api/expenses", `{"amount":50,"category":"c1"}`)
	w := httptest.NewRecorder()
	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "u1", mockService.LastSessionUserID)
	assert.Equal(t, "c1", mockService.LastCreateInput.CategoryID)

	var expense domain.ExpenseDetail
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&expense))
	assert.Equal(t, 50.0, expense.Amount)
	assert.Equal(t, "Food", expense.CategoryName)
}

func TestCreateExpense_PassesPayloadOwnerWhenNoSession(t *testing.T) {
	mockService := &MockExpenseService{
		Expense: &domain.ExpenseDetail{Expense: domain.Expense{ID: "e1"}},
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"amount":50,"category":"c1","user":"u2"}`))
	w := httptest.NewRecorder()
	handler.CreateExpense(w, req)

	assert.Equal(t, "", mockService.LastSessionUserID)
	assert.Equal(t, "u2", mockService.LastCreateInput.OwnerID)
}

func TestCreateExpense_ValidationError(t *testing.T) {
	mockService := &MockExpenseService{
		Err: financeErrors.NewValidationError("Amount and category are required"),
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodPost, "/api/expenses", `{}`)
	w := httptest.NewRecorder()
	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	body := decodeFailureBody(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(http.StatusBadRequest), body["statusCode"])
	assert.Equal(t, "Amount and category are required", body["message"])
}

func TestRestoreExpense_DependencyError(t *testing.T) {
	mockService := &MockExpenseService{
		Err: financeErrors.NewDependencyError("Cannot restore expense: Category is deleted or not found"),
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodPatch, "/api/expenses/restore/e1", "")
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	handler.RestoreExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteExpense_NotFound(t *testing.T) {
	mockService := &MockExpenseService{
		Err: financeErrors.NewNotFoundError("Expense not found"),
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodDelete, "/api/expenses/ghost", "")
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()
	handler.DeleteExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteExpense_Message(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	req := authedRequest(http.MethodDelete, "/api/expenses/e1", "")
	req.SetPathValue("id", "e1")
	w := httptest.NewRecorder()
	handler.DeleteExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Expense soft deleted successfully", body["message"])
}

func TestGetTotalExpensesCount(t *testing.T) {
	mockService := &MockExpenseService{
		Counts: &application.ExpenseCount{TotalActiveExpenses: 3, TotalDeletedExpenses: 1},
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodGet, "/api/expenses/count/u1", "")
	req.SetPathValue("id", "u1")
	w := httptest.NewRecorder()
	handler.GetTotalExpensesCount(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count application.ExpenseCount
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&count))
	assert.Equal(t, 3, count.TotalActiveExpenses)
	assert.Equal(t, 1, count.TotalDeletedExpenses)
}

func TestGetUserExpenses(t *testing.T) {
	mockService := &MockExpenseService{
		Expenses: []domain.ExpenseDetail{
			{Expense: domain.Expense{ID: "e1", Amount: 10}, CategoryName: "Food"},
			{Expense: domain.Expense{ID: "e2", Amount: 20}, CategoryName: "Travel"},
		},
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodGet, "/api/expenses/u1", "")
	req.SetPathValue("id", "u1")
	w := httptest.NewRecorder()
	handler.GetUserExpenses(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var expenses []domain.ExpenseDetail
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&expenses))
	assert.Len(t, expenses, 2)
}
