package application

import (
	"testing"
	"time"

	"github.com/jkalinowski/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
	"github.com/stretchr/testify/assert"
)

// activeSum recomputes the expected total straight from the store, so
// the cached value can be checked against the source of truth after
// every mutation.
func (f *financeFixture) activeSum(userID string) float64 {
	total, _ := f.expRepo.SumAmountByUserAndStatus(userID, domain.StatusActive)
	return total
}

func (f *financeFixture) assertTotalConsistent(t *testing.T, userID string) {
	t.Helper()
	assert.Equal(t, f.activeSum(userID), f.userService.Totals[userID])
}

func TestCreateExpense_UpdatesCachedTotal(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")

	expense, err := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusActive, expense.Status)
	assert.Equal(t, 50.0, f.userService.Totals["u1"])
	f.assertTotalConsistent(t, "u1")
}

func TestCreateExpense_MissingAmountOrCategory(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")

	_, err := f.expenses.Create("u1", CreateExpenseInput{CategoryID: food.ID})
	assert.True(t, financeErrors.IsValidationError(err))

	_, err = f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50)})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestCreateExpense_CategoryMissingOrDeleted(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")

	_, err := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: "missing"})
	assert.True(t, financeErrors.IsNotFoundError(err))

	food, _ := f.categories.Create("u1", "Food")
	assert.NoError(t, f.categories.SoftDelete("u1", food.ID))

	_, err = f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestCreateExpense_OwnerResolutionPolicy(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1", "u2")
	food, _ := f.categories.Create("u1", "Food")

	// no session identity and payload owners disabled
	_, err := f.expenses.Create("", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID, OwnerID: "u2"})
	assert.True(t, financeErrors.IsValidationError(err))

	permissive := NewExpenseService(f.expRepo, f.categories, f.userService, OwnerResolution{AllowPayloadOwner: true})

	_, err = permissive.Create("", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID, OwnerID: "ghost"})
	assert.True(t, financeErrors.IsNotFoundError(err))

	expense, err := permissive.Create("", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID, OwnerID: "u2"})
	assert.NoError(t, err)
	assert.Equal(t, "u2", expense.UserID)

	// session identity wins over the payload owner
	expense, err = permissive.Create("u1", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID, OwnerID: "u2"})
	assert.NoError(t, err)
	assert.Equal(t, "u1", expense.UserID)
}

func TestSoftDeleteExpense_ZeroesTotal(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	assert.NoError(t, f.expenses.SoftDelete(expense.ID))

	stored, _ := f.expRepo.FindByID(expense.ID)
	assert.Equal(t, domain.StatusSoftDeleted, stored.Status)
	assert.Equal(t, 0.0, f.userService.Totals["u1"])
	f.assertTotalConsistent(t, "u1")
}

func TestSoftDeleteExpense_NotFound(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")

	err := f.expenses.SoftDelete("missing")
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestUpdateExpense(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	updated, err := f.expenses.Update(expense.ID, UpdateExpenseInput{Amount: amount(80)})
	assert.NoError(t, err)
	assert.Equal(t, 80.0, updated.Amount)
	assert.Equal(t, 80.0, f.userService.Totals["u1"])
	f.assertTotalConsistent(t, "u1")
}

func TestUpdateExpense_NegativeAmount(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	_, err := f.expenses.Update(expense.ID, UpdateExpenseInput{Amount: amount(-1)})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestUpdateExpense_SoftDeletedIsNotEditable(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})
	f.expenses.SoftDelete(expense.ID)

	_, err := f.expenses.Update(expense.ID, UpdateExpenseInput{Amount: amount(80)})
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestUpdateExpense_CategoryMustBeActive(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	travel, _ := f.categories.Create("u1", "Travel")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	assert.NoError(t, f.categories.SoftDelete("u1", travel.ID))

	_, err := f.expenses.Update(expense.ID, UpdateExpenseInput{CategoryID: travel.ID})
	assert.True(t, financeErrors.IsNotFoundError(err))

	stored, _ := f.expRepo.FindByID(expense.ID)
	assert.Equal(t, food.ID, stored.CategoryID)
}

func TestUpdateExpense_PartialUpdateKeepsOtherFields(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID, Description: "lunch"})

	description := "dinner"
	updated, err := f.expenses.Update(expense.ID, UpdateExpenseInput{Description: &description})
	assert.NoError(t, err)
	assert.Equal(t, "dinner", updated.Description)
	assert.Equal(t, 50.0, updated.Amount)
	assert.Equal(t, food.ID, updated.CategoryID)
}

func TestRestoreExpense(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})
	f.expenses.SoftDelete(expense.ID)

	restored, err := f.expenses.Restore(expense.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusActive, restored.Status)
	assert.Equal(t, 50.0, f.userService.Totals["u1"])
	f.assertTotalConsistent(t, "u1")
}

func TestRestoreExpense_AlreadyActive(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	_, err := f.expenses.Restore(expense.ID)
	assert.True(t, financeErrors.IsStateError(err))

	stored, _ := f.expRepo.FindByID(expense.ID)
	assert.Equal(t, domain.StatusActive, stored.Status)
}

func TestRestoreExpense_BlockedByDeletedCategory(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	// soft-delete the expense first, which frees the category for deletion
	assert.NoError(t, f.expenses.SoftDelete(expense.ID))
	assert.NoError(t, f.categories.SoftDelete("u1", food.ID))

	_, err := f.expenses.Restore(expense.ID)
	assert.True(t, financeErrors.IsDependencyError(err))

	stored, _ := f.expRepo.FindByID(expense.ID)
	assert.Equal(t, domain.StatusSoftDeleted, stored.Status)
}

func TestExpenseRoundTripPreservesFields(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	date := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{
		Amount: amount(42.5), CategoryID: food.ID, Description: "groceries", Date: date,
	})

	f.expenses.SoftDelete(expense.ID)
	restored, err := f.expenses.Restore(expense.ID)
	assert.NoError(t, err)

	assert.Equal(t, expense.ID, restored.ID)
	assert.Equal(t, 42.5, restored.Amount)
	assert.Equal(t, food.ID, restored.CategoryID)
	assert.Equal(t, "groceries", restored.Description)
	assert.Equal(t, date, restored.Date)
	assert.Equal(t, domain.StatusActive, restored.Status)
}

func TestRestoreAllExpenses_AllOrNothing(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	travel, _ := f.categories.Create("u1", "Travel")
	lunch, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID})
	flight, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(200), CategoryID: travel.ID})

	f.expenses.SoftDelete(lunch.ID)
	f.expenses.SoftDelete(flight.ID)
	assert.NoError(t, f.categories.SoftDelete("u1", travel.ID))

	err := f.expenses.RestoreAll("u1")
	assert.True(t, financeErrors.IsDependencyError(err))

	// nothing was partially restored
	deleted, _ := f.expRepo.FindByUserAndStatus("u1", domain.StatusSoftDeleted)
	assert.Len(t, deleted, 2)
}

func TestRestoreAllExpenses(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	lunch, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID})
	dinner, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(20), CategoryID: food.ID})

	f.expenses.SoftDelete(lunch.ID)
	f.expenses.SoftDelete(dinner.ID)
	assert.Equal(t, 0.0, f.userService.Totals["u1"])

	assert.NoError(t, f.expenses.RestoreAll("u1"))

	active, _ := f.expRepo.FindByUserAndStatus("u1", domain.StatusActive)
	assert.Len(t, active, 2)
	assert.Equal(t, 30.0, f.userService.Totals["u1"])
	f.assertTotalConsistent(t, "u1")
}

func TestPermanentDeleteExpense(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	assert.NoError(t, f.expenses.PermanentDelete(expense.ID))

	stored, _ := f.expRepo.FindByID(expense.ID)
	assert.Nil(t, stored)
	assert.Equal(t, 0.0, f.userService.Totals["u1"])
	f.assertTotalConsistent(t, "u1")
}

func TestPermanentDeleteAll_OnlyRemovesSoftDeleted(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u2")
	food, _ := f.categories.Create("u2", "Food")
	keep, _ := f.expenses.Create("u2", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID})
	drop, _ := f.expenses.Create("u2", CreateExpenseInput{Amount: amount(20), CategoryID: food.ID})

	f.expenses.SoftDelete(drop.ID)
	assert.Equal(t, 10.0, f.userService.Totals["u2"])

	assert.NoError(t, f.expenses.PermanentDeleteAll("u2"))

	stillThere, _ := f.expRepo.FindByID(keep.ID)
	assert.NotNil(t, stillThere)
	assert.Equal(t, domain.StatusActive, stillThere.Status)

	gone, _ := f.expRepo.FindByID(drop.ID)
	assert.Nil(t, gone)

	assert.Equal(t, 10.0, f.userService.Totals["u2"])
	f.assertTotalConsistent(t, "u2")
}

func TestCount(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	f.expenses.Create("u1", CreateExpenseInput{Amount: amount(10), CategoryID: food.ID})
	dropped, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(20), CategoryID: food.ID})
	f.expenses.SoftDelete(dropped.ID)

	count, err := f.expenses.Count("u1")
	assert.NoError(t, err)
	assert.Equal(t, 1, count.TotalActiveExpenses)
	assert.Equal(t, 1, count.TotalDeletedExpenses)

	_, err = f.expenses.Count("ghost")
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestAggregateStaysConsistentAcrossMutationSequence(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	travel, _ := f.categories.Create("u1", "Travel")

	first, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(12.5), CategoryID: food.ID})
	f.assertTotalConsistent(t, "u1")

	second, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(30), CategoryID: travel.ID})
	f.assertTotalConsistent(t, "u1")

	f.expenses.Update(first.ID, UpdateExpenseInput{Amount: amount(20)})
	f.assertTotalConsistent(t, "u1")

	f.expenses.SoftDelete(second.ID)
	f.assertTotalConsistent(t, "u1")

	f.expenses.Restore(second.ID)
	f.assertTotalConsistent(t, "u1")

	f.expenses.PermanentDelete(first.ID)
	f.assertTotalConsistent(t, "u1")

	f.expenses.SoftDelete(second.ID)
	f.expenses.PermanentDeleteAll("u1")
	f.assertTotalConsistent(t, "u1")
	assert.Equal(t, 0.0, f.userService.Totals["u1"])
}

func TestRecomputeFailureDoesNotRollBackTransition(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1")
	food, _ := f.categories.Create("u1", "Food")
	expense, _ := f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	f.userService.FailTotals = true
	assert.NoError(t, f.expenses.SoftDelete(expense.ID))

	stored, _ := f.expRepo.FindByID(expense.ID)
	assert.Equal(t, domain.StatusSoftDeleted, stored.Status)
	// the cached value is stale now; the reconciler heals it
	f.userService.FailTotals = false
	assert.NoError(t, f.expenses.ReconcileTotals())
	f.assertTotalConsistent(t, "u1")
}

func TestReconcileTotalsHealsDrift(t *testing.T) {
	f := newFinanceFixture(NameScopeOwner, "u1", "u2")
	food, _ := f.categories.Create("u1", "Food")
	f.expenses.Create("u1", CreateExpenseInput{Amount: amount(50), CategoryID: food.ID})

	f.userService.Totals["u1"] = 999
	f.userService.Totals["u2"] = 7

	assert.NoError(t, f.expenses.ReconcileTotals())
	assert.Equal(t, 50.0, f.userService.Totals["u1"])
	assert.Equal(t, 0.0, f.userService.Totals["u2"])
}
