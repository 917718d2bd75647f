// Package income owns one user's in-memory income list and the four
// operations that synchronize it against the remote collection.
package income

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
	ListIncome(ctx context.Context, userID uuid.UUID) ([]tracker.Income, error)
	CreateIncome(ctx context.Context, userID uuid.UUID, in tracker.Income) (tracker.Income, error)
	UpdateIncome(ctx context.Context, userID uuid.UUID, in tracker.Income) error
	DeleteIncome(ctx context.Context, userID, id uuid.UUID) error
}

// State is a point-in-time copy of the slice.
type State struct {
	Items   []tracker.Income
	Loading bool
	Err     string
}

// Slice holds the income list plus loading/error flags. Every operation
// resolves the identity through auth.WithUser before touching the store,
// and state changes only after the remote call succeeds.
type Slice struct {
	store Store
	auth  *auth.State

	mu       sync.Mutex
	items    []tracker.Income
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
	items := make([]tracker.Income, len(s.items))
	copy(items, s.items)
	return State{Items: items, Loading: s.loading, Err: s.err}
}

// Fetch replaces the cached list wholesale with the remote result set.
// A fetch superseded by a newer one before resolving is dropped, so the
// list never goes backwards to a stale snapshot. A failed fetch keeps the
// stale items visible and records the error message.
func (s *Slice) Fetch(ctx context.Context) ([]tracker.Income, error) {
	gen := s.begin()
	items, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) ([]tracker.Income, error) {
		return s.store.ListIncome(ctx, uid)
	})
	if err != nil {
		s.fail(gen, message(err, "failed to fetch income"))
		return nil, err
	}
	s.complete(gen, items)
	return items, nil
}

// Add normalizes and persists a record without an ID, then appends the
// server-assigned result. The list is append-only on add: no resort.
func (s *Slice) Add(ctx context.Context, in tracker.Income) (tracker.Income, error) {
	if err := normalize(&in); err != nil {
		return tracker.Income{}, err
	}
	created, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (tracker.Income, error) {
		in.UserID = uid
		return s.store.CreateIncome(ctx, uid, in)
	})
	if err != nil {
		s.setErr(message(err, "failed to add income"))
		return tracker.Income{}, err
	}
	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	return created, nil
}

// Update persists the mutable fields of a record and replaces the cached
// element in place, position unchanged. An ID missing from the cache is a
// state no-op: the remote write already succeeded.
func (s *Slice) Update(ctx context.Context, in tracker.Income) (tracker.Income, error) {
	if in.ID == uuid.Nil {
		return tracker.Income{}, &tracker.FieldError{Field: "id", Msg: "id is required"}
	}
	if err := normalize(&in); err != nil {
		return tracker.Income{}, err
	}
	updated, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (tracker.Income, error) {
		in.UserID = uid
		return in, s.store.UpdateIncome(ctx, uid, in)
	})
	if err != nil {
		s.setErr(message(err, "failed to update income"))
		return tracker.Income{}, err
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
		return struct{}{}, s.store.DeleteIncome(ctx, uid, id)
	})
	if err != nil {
		s.setErr(message(err, "failed to delete income"))
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

// normalize trims and defaults the client-supplied fields. Amounts were
// coerced to decimal at the boundary; dates default to now like the form.
func normalize(in *tracker.Income) error {
	in.Source = strings.TrimSpace(in.Source)
	if in.Source == "" {
		return &tracker.FieldError{Field: "source", Msg: "source is required"}
	}
	if in.Amount.IsNeg() {
		return &tracker.FieldError{Field: "amount", Msg: tracker.ErrAmountNegative.Error()}
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	in.Date = in.Date.UTC()
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

func (s *Slice) complete(gen uint64, items []tracker.Income) {
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

// message prefers the cause's text, falling back to a per-operation default.
func message(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
