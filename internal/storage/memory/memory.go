// Package memory is the in-memory document store used in tests and when
// no database is configured. Collections are per user and keep insertion
// order, which is what the append-on-add cache semantics rely on.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]tracker.User
	income   map[uuid.UUID][]tracker.Income
	expenses map[uuid.UUID][]tracker.Expense
	goals    map[uuid.UUID][]tracker.Goal
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]tracker.User),
		income:   make(map[uuid.UUID][]tracker.Income),
		expenses: make(map[uuid.UUID][]tracker.Expense),
		goals:    make(map[uuid.UUID][]tracker.Goal),
	}
}

// Ready reports readiness; the memory store always is.
func (s *Store) Ready(ctx context.Context) error { return nil }

// ProvisionUser registers a user namespace. A user already known to the
// store, whether provisioned explicitly or implied by an earlier write,
// conflicts.
func (s *Store) ProvisionUser(ctx context.Context, u tracker.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return errs.ErrConflict
	}
	s.users[u.ID] = u
	return nil
}

// ensureUserLocked registers the owner of a written document, mirroring
// the upsert the database backend performs on collection writes.
func (s *Store) ensureUserLocked(userID uuid.UUID) {
	if _, ok := s.users[userID]; !ok {
		s.users[userID] = tracker.User{ID: userID}
	}
}

func (s *Store) ListIncome(ctx context.Context, userID uuid.UUID) ([]tracker.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tracker.Income, len(s.income[userID]))
	copy(out, s.income[userID])
	return out, nil
}

func (s *Store) CreateIncome(ctx context.Context, userID uuid.UUID, in tracker.Income) (tracker.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureUserLocked(userID)
	in.ID = uuid.New()
	in.UserID = userID
	s.income[userID] = append(s.income[userID], in)
	return in, nil
}

func (s *Store) UpdateIncome(ctx context.Context, userID uuid.UUID, in tracker.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.income[userID]
	for i := range items {
		if items[i].ID == in.ID {
			in.UserID = userID
			items[i] = in
			return nil
		}
	}
	return errs.ErrNotFound
}

func (s *Store) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.income[userID]
	for i := range items {
		if items[i].ID == id {
			s.income[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	// deleting an absent document succeeds
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, userID uuid.UUID) ([]tracker.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tracker.Expense, len(s.expenses[userID]))
	copy(out, s.expenses[userID])
	return out, nil
}

func (s *Store) CreateExpense(ctx context.Context, userID uuid.UUID, ex tracker.Expense) (tracker.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureUserLocked(userID)
	ex.ID = uuid.New()
	ex.UserID = userID
	s.expenses[userID] = append(s.expenses[userID], ex)
	return ex, nil
}

func (s *Store) UpdateExpense(ctx context.Context, userID uuid.UUID, ex tracker.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.expenses[userID]
	for i := range items {
		if items[i].ID == ex.ID {
			ex.UserID = userID
			items[i] = ex
			return nil
		}
	}
	return errs.ErrNotFound
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.expenses[userID]
	for i := range items {
		if items[i].ID == id {
			s.expenses[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]tracker.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tracker.Goal, len(s.goals[userID]))
	copy(out, s.goals[userID])
	return out, nil
}

func (s *Store) CreateGoal(ctx context.Context, userID uuid.UUID, g tracker.Goal) (tracker.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureUserLocked(userID)
	g.ID = uuid.New()
	g.UserID = userID
	s.goals[userID] = append(s.goals[userID], g)
	return g, nil
}

func (s *Store) UpdateGoal(ctx context.Context, userID uuid.UUID, g tracker.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.goals[userID]
	for i := range items {
		if items[i].ID == g.ID {
			g.UserID = userID
			items[i] = g
			return nil
		}
	}
	return errs.ErrNotFound
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.goals[userID]
	for i := range items {
		if items[i].ID == id {
			s.goals[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

// SeedDev loads a small data set for local development and returns the
// user it belongs to.
func (s *Store) SeedDev(ctx context.Context) (uuid.UUID, error) {
	userID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	if err := s.ProvisionUser(ctx, tracker.User{ID: userID}); err != nil {
		return uuid.Nil, err
	}
	d := func(v string) decimal.Decimal {
		dec, _ := decimal.Parse(v)
		return dec
	}
	day := func(v string) time.Time {
		t, _ := time.Parse("2006-01-02", v)
		return t
	}
	seedIncome := []tracker.Income{
		{Source: "Salary", Amount: d("2500"), Date: day("2026-08-01")},
		{Source: "Freelance", Amount: d("420.50"), Date: day("2026-08-12")},
	}
	for _, in := range seedIncome {
		if _, err := s.CreateIncome(ctx, userID, in); err != nil {
			return uuid.Nil, err
		}
	}
	seedExpenses := []tracker.Expense{
		{Category: "Rent", Amount: d("900"), Date: day("2026-08-02")},
		{Category: "Groceries", Amount: d("85.20"), Date: day("2026-08-14")},
		{Category: "Transport", Amount: d("40"), Date: day("2026-08-20")},
	}
	for _, ex := range seedExpenses {
		if _, err := s.CreateExpense(ctx, userID, ex); err != nil {
			return uuid.Nil, err
		}
	}
	if _, err := s.CreateGoal(ctx, userID, tracker.Goal{
		Title:        "Emergency Fund",
		Description:  "Three months of expenses",
		Amount:       d("1200"),
		AmountNeeded: d("3000"),
	}); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}
