package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/errs"
)

// DefaultResolveTimeout bounds how long WithUser waits for the auth state
// to emit when no timeout was configured on the state. The state delivers
// its current value at subscription time, so the timeout only matters for
// states still resolving an identity.
const DefaultResolveTimeout = 5 * time.Second

// WithUser resolves the current identity once and runs action with it.
// It subscribes to the state, takes the first emission and unsubscribes
// immediately, so the action runs at most once and no subscription leaks.
// When nobody is signed in, the action is never invoked and
// errs.ErrUnauthenticated is returned; a stream error is forwarded as-is.
func WithUser[T any](ctx context.Context, st *State, action func(context.Context, uuid.UUID) (T, error)) (T, error) {
	var zero T
	ch := st.Subscribe()
	defer st.Unsubscribe(ch)

	timer := time.NewTimer(st.ResolveTimeout())
	defer timer.Stop()

	select {
	case ev := <-ch:
		if ev.Err != nil {
			return zero, ev.Err
		}
		if ev.User == nil {
			return zero, errs.ErrUnauthenticated
		}
		return action(ctx, *ev.User)
	case <-timer.C:
		return zero, fmt.Errorf("resolving auth state: %w", context.DeadlineExceeded)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
