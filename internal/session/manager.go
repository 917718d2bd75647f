// Package session composes the per-user slice stores. A session is the
// unit of cache: one auth state plus the income, expense and goal slices
// bound to it, created lazily on a user's first request and reused after.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/auth"
	"fintrack/internal/slice/expense"
	"fintrack/internal/slice/goals"
	"fintrack/internal/slice/income"
	"fintrack/internal/tracker"
)

// Store is the remote document store the slices synchronize against.
type Store interface {
	income.Store
	expense.Store
	goals.Store
}

// Provisioner is implemented by stores that need to register a user
// before accepting writes into their collections.
type Provisioner interface {
	ProvisionUser(ctx context.Context, user tracker.User) error
}

// Session is one user's slice store.
type Session struct {
	UserID  uuid.UUID
	Auth    *auth.State
	Income  *income.Slice
	Expense *expense.Slice
	Goals   *goals.Slice
}

// RefreshAll fetches the income and expense lists in parallel, the way
// the dashboard loads both on entry. The first error cancels the other
// fetch and is returned.
func (s *Session) RefreshAll(ctx context.Context) ([]tracker.Income, []tracker.Expense, error) {
	var (
		inc []tracker.Income
		exp []tracker.Expense
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inc, err = s.Income.Fetch(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		exp, err = s.Expense.Fetch(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return inc, exp, nil
}

// Manager hands out sessions keyed by user ID.
type Manager struct {
	mu             sync.Mutex
	store          Store
	sessions       map[uuid.UUID]*Session
	resolveTimeout time.Duration
}

// NewManager constructs a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// SetResolveTimeout sets the auth resolve budget applied to sessions
// composed after the call. Zero keeps the default.
func (m *Manager) SetResolveTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveTimeout = d
}

// Session returns the user's session, composing it on first use. The
// session's auth state starts already resolved to the user.
func (m *Manager) Session(userID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	st := auth.SignedIn(userID)
	if m.resolveTimeout > 0 {
		st.SetResolveTimeout(m.resolveTimeout)
	}
	s := &Session{
		UserID:  userID,
		Auth:    st,
		Income:  income.New(m.store, st),
		Expense: expense.New(m.store, st),
		Goals:   goals.New(m.store, st),
	}
	m.sessions[userID] = s
	return s
}

// Drop signs the user out. The auth state is cleared so any wrapped call
// still waiting on it rejects, and the session is discarded; the next
// request composes a fresh one.
func (m *Manager) Drop(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.Auth.Clear()
		delete(m.sessions, userID)
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Provision registers a new user and seeds the example records the
// sign-up flow creates: a zero-amount income and expense so the
// dashboard never renders empty.
func (m *Manager) Provision(ctx context.Context, userID uuid.UUID) error {
	if p, ok := m.store.(Provisioner); ok {
		if err := p.ProvisionUser(ctx, tracker.User{ID: userID}); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	if _, err := m.store.CreateIncome(ctx, userID, tracker.Income{UserID: userID, Source: "Initial Setup", Date: now}); err != nil {
		return err
	}
	if _, err := m.store.CreateExpense(ctx, userID, tracker.Expense{UserID: userID, Category: "Initial Setup", Date: now}); err != nil {
		return err
	}
	return nil
}
