// Package expense owns one user's in-memory expense list and the four
// operations that synchronize it against the remote collection.
package expense

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/auth"
	"fintrack/internal/tracker"
)

// Store is the per-user remote collection the slice synchronizes against.
type Store interface {
	ListExpenses(ctx context.Context, userID uuid.UUID) ([]tracker.Expense, error)
	CreateExpense(ctx context.Context, userID uuid.UUID, ex tracker.Expense) (tracker.Expense, error)
	UpdateExpense(ctx context.Context, userID uuid.UUID, ex tracker.Expense) error
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error
}

// State is a point-in-time copy of the slice.
type State struct {
	Items   []tracker.Expense
	Loading bool
	Err     string
}

// Slice holds the expense list plus loading/error flags. It mirrors the
// income slice: identity resolved through auth.WithUser per operation,
// state mutated only after the remote call succeeds.
type Slice struct {
	store Store
	auth  *auth.State

	mu       sync.Mutex
	items    []tracker.Expense
	loading  bool
	err      string
	fetchGen uint64
}

// New constructs an empty slice bound to the given store and auth state.
func New(store Store, st *auth.State) *Slice {
	return &Slice{store: store, auth: st}
}

// Snapshot returns a copy of the current state.
func (s *Slice) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]tracker.Expense, len(s.items))
	copy(items, s.items)
	return State{Items: items, Loading: s.loading, Err: s.err}
}

// Fetch replaces the cached list wholesale with the remote result set.
// Superseded fetches are dropped; a failed fetch keeps stale items
// visible and records the error message.
func (s *Slice) Fetch(ctx context.Context) ([]tracker.Expense, error) {
	gen := s.begin()
	items, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) ([]tracker.Expense, error) {
		return s.store.ListExpenses(ctx, uid)
	})
	if err != nil {
		s.fail(gen, message(err, "failed to fetch expenses"))
		return nil, err
	}
	s.complete(gen, items)
	return items, nil
}

// Add normalizes and persists a record without an ID, then appends the
// server-assigned result.
func (s *Slice) Add(ctx context.Context, ex tracker.Expense) (tracker.Expense, error) {
	if err := normalize(&ex); err != nil {
		return tracker.Expense{}, err
	}
	created, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (tracker.Expense, error) {
		ex.UserID = uid
		return s.store.CreateExpense(ctx, uid, ex)
	})
	if err != nil {
		s.setErr(message(err, "failed to add expense"))
		return tracker.Expense{}, err
	}
	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	return created, nil
}

// Update persists the mutable fields of a record and replaces the cached
// element in place. An ID missing from the cache is a state no-op.
func (s *Slice) Update(ctx context.Context, ex tracker.Expense) (tracker.Expense, error) {
	if ex.ID == uuid.Nil {
		return tracker.Expense{}, &tracker.FieldError{Field: "id", Msg: "id is required"}
	}
	if err := normalize(&ex); err != nil {
		return tracker.Expense{}, err
	}
	updated, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (tracker.Expense, error) {
		ex.UserID = uid
		return ex, s.store.UpdateExpense(ctx, uid, ex)
	})
	if err != nil {
		s.setErr(message(err, "failed to update expense"))
		return tracker.Expense{}, err
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete removes a record remotely and drops it from the cache. An ID
// absent from the cache is a no-op.
func (s *Slice) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (struct{}, error) {
		return struct{}{}, s.store.DeleteExpense(ctx, uid, id)
	})
	if err != nil {
		s.setErr(message(err, "failed to delete expense"))
		return err
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func normalize(ex *tracker.Expense) error {
	ex.Category = strings.TrimSpace(ex.Category)
	if ex.Category == "" {
		return &tracker.FieldError{Field: "category", Msg: "category is required"}
	}
	if ex.Amount.IsNeg() {
		return &tracker.FieldError{Field: "amount", Msg: tracker.ErrAmountNegative.Error()}
	}
	if ex.Date.IsZero() {
		ex.Date = time.Now()
	}
	ex.Date = ex.Date.UTC()
	return nil
}

func (s *Slice) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchGen++
	s.loading = true
	s.err = ""
	return s.fetchGen
}

func (s *Slice) complete(gen uint64, items []tracker.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return // superseded; drop the stale result
	}
	s.items = items
	s.loading = false
}

func (s *Slice) fail(gen uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return
	}
	s.loading = false
	s.err = msg
}

func (s *Slice) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func message(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
