package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	return s
}

func applyInitSQL(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := mustOpen(t, dsn)
	defer s.Close()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	path := filepath.Join(repoRoot, "db", "migrations", "0001_init.sql")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = s.pool.Exec(ctx, string(b))
	require.NoError(t, err)
}

func truncateAll(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s := mustOpen(t, dsn)
	defer s.Close()
	_, _ = s.pool.Exec(ctx, `truncate table goals, expenses, income, users cascade`)
}

func amount(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(v)
	require.NoError(t, err)
	return d
}

func TestStore_Collections(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	truncateAll(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	require.NoError(t, s.Ready(ctx))

	userID := uuid.New()
	require.NoError(t, s.ProvisionUser(ctx, tracker.User{ID: userID}))
	assert.ErrorIs(t, s.ProvisionUser(ctx, tracker.User{ID: userID}), errs.ErrConflict)

	// income: create + list + update + delete
	in, err := s.CreateIncome(ctx, userID, tracker.Income{
		Source: "Salary",
		Amount: amount(t, "2500.50"),
		Date:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, in.ID)

	list, err := s.ListIncome(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Cmp(amount(t, "2500.50")) == 0, "amount survives the numeric round trip")

	in.Amount = amount(t, "2600")
	require.NoError(t, s.UpdateIncome(ctx, userID, in))
	assert.ErrorIs(t, s.UpdateIncome(ctx, userID, tracker.Income{ID: uuid.New()}), errs.ErrNotFound)

	require.NoError(t, s.DeleteIncome(ctx, userID, in.ID))
	require.NoError(t, s.DeleteIncome(ctx, userID, in.ID), "deleting an absent row succeeds")

	// expenses follow the same shape
	ex, err := s.CreateExpense(ctx, userID, tracker.Expense{
		Category: "Rent",
		Amount:   amount(t, "900"),
		Date:     time.Now().UTC(),
	})
	require.NoError(t, err)
	exList, err := s.ListExpenses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, exList, 1)
	require.NoError(t, s.DeleteExpense(ctx, userID, ex.ID))

	// goals: duplicate titles conflict per user, case-insensitive
	g, err := s.CreateGoal(ctx, userID, tracker.Goal{
		Title:        "Holiday",
		Description:  "Two weeks away",
		Amount:       amount(t, "100"),
		AmountNeeded: amount(t, "1500"),
	})
	require.NoError(t, err)

	_, err = s.CreateGoal(ctx, userID, tracker.Goal{
		Title:        "holiday",
		Description:  "dup",
		AmountNeeded: amount(t, "1"),
	})
	assert.ErrorIs(t, err, errs.ErrConflict)

	g.Amount = amount(t, "150.25")
	require.NoError(t, s.UpdateGoal(ctx, userID, g))
	goals, err := s.ListGoals(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Amount.Cmp(amount(t, "150.25")) == 0)

	// rows are scoped per user
	other, err := s.ListGoals(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_SeedDev(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	userID, err := s.SeedDev(ctx)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, userID)

	income, err := s.ListIncome(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, income)

	expenses, err := s.ListExpenses(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, expenses)
}
