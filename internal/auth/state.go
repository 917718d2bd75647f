// Package auth carries the authentication-state stream and the wrapper
// that gates remote operations behind a resolved user identity.
package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one emission of the auth-state stream. User is nil when nobody
// is signed in; Err is set when the stream itself failed.
type Event struct {
	User *uuid.UUID
	Err  error
}

// State broadcasts the current authenticated identity. A new subscriber
// receives the state as of subscription time immediately, then every
// change after. Slow subscribers may miss intermediate states but always
// hold the most recent event they were offered.
type State struct {
	mu             sync.Mutex
	user           *uuid.UUID
	err            error
	subs           map[chan Event]struct{}
	resolveTimeout time.Duration
}

// NewState constructs an empty (signed-out) auth state.
func NewState() *State {
	return &State{subs: make(map[chan Event]struct{})}
}

// SignedIn constructs a state already resolved to userID.
func SignedIn(userID uuid.UUID) *State {
	s := NewState()
	s.Set(userID)
	return s
}

// SetResolveTimeout overrides how long WithUser waits for this state to
// emit. Zero or negative keeps DefaultResolveTimeout.
func (s *State) SetResolveTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveTimeout = d
}

// ResolveTimeout returns the wait budget for gated operations.
func (s *State) ResolveTimeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolveTimeout > 0 {
		return s.resolveTimeout
	}
	return DefaultResolveTimeout
}

// Subscribe registers a listener. The current state is delivered before
// Subscribe returns, so a one-shot consumer never blocks.
func (s *State) Subscribe() chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 1)
	s.subs[ch] = struct{}{}
	ch <- Event{User: s.user, Err: s.err}
	return ch
}

// Unsubscribe releases a listener registered via Subscribe.
func (s *State) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, ch)
}

// Set publishes userID as the current identity.
func (s *State) Set(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID
	s.user = &uid
	s.err = nil
	s.broadcastLocked()
}

// Clear publishes a signed-out state.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.err = nil
	s.broadcastLocked()
}

// Fail publishes a stream error; subscribers waiting on the first
// emission reject with it.
func (s *State) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.broadcastLocked()
}

// Current returns the identity as of the call, without subscribing.
func (s *State) Current() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return uuid.Nil, false
	}
	return *s.user, true
}

func (s *State) broadcastLocked() {
	ev := Event{User: s.user, Err: s.err}
	for ch := range s.subs {
		// replace a pending undelivered event with the newer one
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (s *State) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
