// Package goals owns one user's savings goals: the cached list, its
// validation rules and the add-value shortcut.
package goals

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"fintrack/internal/auth"
	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

// Store is the per-user remote collection the slice synchronizes against.
type Store interface {
	ListGoals(ctx context.Context, userID uuid.UUID) ([]tracker.Goal, error)
	CreateGoal(ctx context.Context, userID uuid.UUID, g tracker.Goal) (tracker.Goal, error)
	UpdateGoal(ctx context.Context, userID uuid.UUID, g tracker.Goal) error
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

// State is a point-in-time copy of the slice.
type State struct {
	Items   []tracker.Goal
	Loading bool
	Err     string
}

// Slice holds the goal list plus loading/error flags. Creation is
// validated against the cached list (title uniqueness, amount bounds)
// before any remote call.
type Slice struct {
	store Store
	auth  *auth.State

	mu       sync.Mutex
	items    []tracker.Goal
	loading  bool
	err      string
	fetchGen uint64
}

var one = decimal.MustNew(1, 0)

// New constructs an empty slice bound to the given store and auth state.
func New(store Store, st *auth.State) *Slice {
	return &Slice{store: store, auth: st}
}

// Snapshot returns a copy of the current state.
func (s *Slice) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]tracker.Goal, len(s.items))
	copy(items, s.items)
	return State{Items: items, Loading: s.loading, Err: s.err}
}

// Fetch replaces the cached list wholesale with the remote result set.
// Superseded fetches are dropped; a failed fetch keeps stale items
// visible and records the error message.
func (s *Slice) Fetch(ctx context.Context) ([]tracker.Goal, error) {
	gen := s.begin()
	items, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) ([]tracker.Goal, error) {
		return s.store.ListGoals(ctx, uid)
	})
	if err != nil {
		s.fail(gen, message(err, "failed to fetch goals"))
		return nil, err
	}
	s.complete(gen, items)
	return items, nil
}

// Add validates a new goal against the cached list and persists it.
// Creation enforces the full rule set: non-empty title and description,
// amount not above the target, target at least 1, and a title no other
// cached goal already uses (case-insensitive).
func (s *Slice) Add(ctx context.Context, g tracker.Goal) (tracker.Goal, error) {
	if err := s.validate(&g, uuid.Nil, true); err != nil {
		return tracker.Goal{}, err
	}
	created, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (tracker.Goal, error) {
		g.UserID = uid
		return s.store.CreateGoal(ctx, uid, g)
	})
	if err != nil {
		s.setErr(message(err, "failed to add goal"))
		return tracker.Goal{}, err
	}
	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	return created, nil
}

// Update persists the full record and replaces the cached element in
// place. The amount may exceed the target here, so an add-value past a
// completed goal still lands.
func (s *Slice) Update(ctx context.Context, g tracker.Goal) (tracker.Goal, error) {
	if g.ID == uuid.Nil {
		return tracker.Goal{}, &tracker.FieldError{Field: "id", Msg: "id is required"}
	}
	if err := s.validate(&g, g.ID, false); err != nil {
		return tracker.Goal{}, err
	}
	updated, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (tracker.Goal, error) {
		g.UserID = uid
		return g, s.store.UpdateGoal(ctx, uid, g)
	})
	if err != nil {
		s.setErr(message(err, "failed to update goal"))
		return tracker.Goal{}, err
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

// Delete removes a goal remotely and drops it from the cache. An ID
// absent from the cache is a no-op.
func (s *Slice) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := auth.WithUser(ctx, s.auth, func(ctx context.Context, uid uuid.UUID) (struct{}, error) {
		return struct{}{}, s.store.DeleteGoal(ctx, uid, id)
	})
	if err != nil {
		s.setErr(message(err, "failed to delete goal"))
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

// AddValue adds delta to a goal's saved amount and writes the full record
// back through Update. A cold cache falls back to a fetch before the ID
// is rejected, so the shortcut survives a restart without a prior list.
// Deposits past the target are allowed.
func (s *Slice) AddValue(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (tracker.Goal, error) {
	g, found := s.cached(id)
	if !found {
		if _, err := s.Fetch(ctx); err != nil {
			return tracker.Goal{}, err
		}
		if g, found = s.cached(id); !found {
			return tracker.Goal{}, errs.ErrNotFound
		}
	}
	amt, err := g.Amount.Add(delta)
	if err != nil {
		return tracker.Goal{}, err
	}
	if amt.IsNeg() {
		return tracker.Goal{}, &tracker.FieldError{Field: "amount", Msg: "amount must be a positive number"}
	}
	g.Amount = amt
	return s.Update(ctx, g)
}

func (s *Slice) cached(id uuid.UUID) (tracker.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return tracker.Goal{}, false
}

// validate enforces the goal form rules. selfID excludes the goal's own
// title from the uniqueness check on edits. Creation additionally caps
// the starting amount at the target; later deposits may pass it.
func (s *Slice) validate(g *tracker.Goal, selfID uuid.UUID, creating bool) error {
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
	if g.Title == "" {
		return &tracker.FieldError{Field: "title", Msg: "title is required"}
	}
	if g.Description == "" {
		return &tracker.FieldError{Field: "description", Msg: "description is required"}
	}
	if g.Amount.IsNeg() {
		return &tracker.FieldError{Field: "amount", Msg: "amount must be a positive number"}
	}
	if g.AmountNeeded.Cmp(one) < 0 {
		return &tracker.FieldError{Field: "amount_needed", Msg: "needed amount must be at least 1"}
	}
	if creating && g.Amount.Cmp(g.AmountNeeded) > 0 {
		return &tracker.FieldError{Field: "amount", Msg: "amount cannot exceed the needed amount"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.items {
		if other.ID == selfID {
			continue
		}
		if strings.EqualFold(other.Title, g.Title) {
			return &tracker.FieldError{Field: "title", Msg: "a goal with this title already exists"}
		}
	}
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

func (s *Slice) complete(gen uint64, items []tracker.Goal) {
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
