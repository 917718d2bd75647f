package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

func TestIncomeCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()

	amt, err := decimal.Parse("2500")
	require.NoError(t, err)

	created, err := s.CreateIncome(ctx, userID, tracker.Income{Source: "Salary", Amount: amt})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, userID, created.UserID)

	items, err := s.ListIncome(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// collections are scoped per user
	empty, err := s.ListIncome(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, empty)

	created.Source = "Base Salary"
	require.NoError(t, s.UpdateIncome(ctx, userID, created))
	items, _ = s.ListIncome(ctx, userID)
	assert.Equal(t, "Base Salary", items[0].Source)

	require.NoError(t, s.DeleteIncome(ctx, userID, created.ID))
	items, _ = s.ListIncome(ctx, userID)
	assert.Empty(t, items)
}

func TestUpdateAbsentIsNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	err := s.UpdateIncome(ctx, userID, tracker.Income{ID: uuid.New()})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = s.UpdateExpense(ctx, userID, tracker.Expense{ID: uuid.New()})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = s.UpdateGoal(ctx, userID, tracker.Goal{ID: uuid.New()})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteAbsentSucceeds(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	assert.NoError(t, s.DeleteIncome(ctx, userID, uuid.New()))
	assert.NoError(t, s.DeleteExpense(ctx, userID, uuid.New()))
	assert.NoError(t, s.DeleteGoal(ctx, userID, uuid.New()))
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	for _, cat := range []string{"Rent", "Groceries", "Transport"} {
		_, err := s.CreateExpense(ctx, userID, tracker.Expense{Category: cat})
		require.NoError(t, err)
	}
	items, err := s.ListExpenses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Rent", items[0].Category)
	assert.Equal(t, "Groceries", items[1].Category)
	assert.Equal(t, "Transport", items[2].Category)
}

func TestProvisionUserConflict(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := tracker.User{ID: uuid.New()}

	require.NoError(t, s.ProvisionUser(ctx, u))
	assert.ErrorIs(t, s.ProvisionUser(ctx, u), errs.ErrConflict)
}

func TestProvisionAfterWriteConflicts(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	// a collection write implies the user exists, as the database
	// backend's upsert does
	_, err := s.CreateIncome(ctx, userID, tracker.Income{Source: "Salary"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.ProvisionUser(ctx, tracker.User{ID: userID}), errs.ErrConflict)
}

func TestSeedDev(t *testing.T) {
	s := New()
	ctx := context.Background()

	userID, err := s.SeedDev(ctx)
	require.NoError(t, err)

	income, err := s.ListIncome(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, income)

	expenses, err := s.ListExpenses(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, expenses)

	goals, err := s.ListGoals(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, goals)
}
