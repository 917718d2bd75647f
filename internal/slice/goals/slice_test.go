package goals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/auth"
	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

type fakeStore struct {
	listFn   func(ctx context.Context, uid uuid.UUID) ([]tracker.Goal, error)
	updateFn func(ctx context.Context, uid uuid.UUID, g tracker.Goal) error

	creates, updates int
}

func (f *fakeStore) ListGoals(ctx context.Context, uid uuid.UUID) ([]tracker.Goal, error) {
	if f.listFn != nil {
		return f.listFn(ctx, uid)
	}
	return nil, nil
}

func (f *fakeStore) CreateGoal(ctx context.Context, uid uuid.UUID, g tracker.Goal) (tracker.Goal, error) {
	f.creates++
	g.ID = uuid.New()
	return g, nil
}

func (f *fakeStore) UpdateGoal(ctx context.Context, uid uuid.UUID, g tracker.Goal) error {
	f.updates++
	if f.updateFn != nil {
		return f.updateFn(ctx, uid, g)
	}
	return nil
}

func (f *fakeStore) DeleteGoal(ctx context.Context, uid, id uuid.UUID) error { return nil }

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(s)
	require.NoError(t, err)
	return d
}

func goal(t *testing.T, title, amt, needed string) tracker.Goal {
	t.Helper()
	return tracker.Goal{
		Title:        title,
		Description:  "saving up",
		Amount:       amount(t, amt),
		AmountNeeded: amount(t, needed),
	}
}

func seeded(t *testing.T, items ...tracker.Goal) (*Slice, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	store.listFn = func(context.Context, uuid.UUID) ([]tracker.Goal, error) { return items, nil }
	s := New(store, auth.SignedIn(uuid.New()))
	_, err := s.Fetch(context.Background())
	require.NoError(t, err)
	return s, store
}

func TestAddValidGoal(t *testing.T) {
	s, store := seeded(t)

	created, err := s.Add(context.Background(), goal(t, "Holiday", "100", "1500"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 1, store.creates)
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestAddRejectsDuplicateTitleCaseInsensitive(t *testing.T) {
	existing := goal(t, "Holiday", "0", "1500")
	existing.ID = uuid.New()
	s, store := seeded(t, existing)

	_, err := s.Add(context.Background(), goal(t, "  holiday ", "0", "2000"))
	var fe *tracker.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "title", fe.Field)
	assert.Zero(t, store.creates, "rejected before any remote call")
}

func TestAddRejectsAmountAboveTarget(t *testing.T) {
	s, store := seeded(t)

	_, err := s.Add(context.Background(), goal(t, "Holiday", "2000", "1500"))
	var fe *tracker.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "amount", fe.Field)
	assert.Zero(t, store.creates)
}

func TestAddRejectsTargetBelowOne(t *testing.T) {
	s, _ := seeded(t)

	_, err := s.Add(context.Background(), goal(t, "Holiday", "0", "0"))
	var fe *tracker.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "amount_needed", fe.Field)

	_, err = s.Add(context.Background(), goal(t, "Holiday", "0", "0.5"))
	require.ErrorAs(t, err, &fe)
}

func TestUpdateKeepsOwnTitle(t *testing.T) {
	g := goal(t, "Holiday", "100", "1500")
	g.ID = uuid.New()
	s, _ := seeded(t, g)

	g.Amount = amount(t, "200")
	updated, err := s.Update(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, "Holiday", updated.Title)
	assert.True(t, s.Snapshot().Items[0].Amount.Cmp(amount(t, "200")) == 0)
}

func TestAddValueAccumulates(t *testing.T) {
	g := goal(t, "Holiday", "100", "1500")
	g.ID = uuid.New()
	s, store := seeded(t, g)

	updated, err := s.AddValue(context.Background(), g.ID, amount(t, "50.25"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Cmp(amount(t, "150.25")) == 0)
	assert.Equal(t, 1, store.updates, "add-value writes the full record back")
	assert.True(t, s.Snapshot().Items[0].Amount.Cmp(amount(t, "150.25")) == 0)
}

func TestAddValuePastTargetCompletesGoal(t *testing.T) {
	g := goal(t, "Holiday", "1400", "1500")
	g.ID = uuid.New()
	s, _ := seeded(t, g)

	updated, err := s.AddValue(context.Background(), g.ID, amount(t, "200"))
	require.NoError(t, err)
	assert.True(t, updated.Completed())
	assert.InDelta(t, 106.66, updated.Progress(), 0.1)
}

func TestAddValueOnColdCacheFetchesFirst(t *testing.T) {
	g := goal(t, "Holiday", "100", "1500")
	g.ID = uuid.New()
	store := &fakeStore{}
	store.listFn = func(context.Context, uuid.UUID) ([]tracker.Goal, error) {
		return []tracker.Goal{g}, nil
	}
	s := New(store, auth.SignedIn(uuid.New()))

	// no prior Fetch; the shortcut loads the list itself
	updated, err := s.AddValue(context.Background(), g.ID, amount(t, "50"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Cmp(amount(t, "150")) == 0)
	assert.Equal(t, 1, store.updates)
}

func TestAddValueUnknownGoal(t *testing.T) {
	s, _ := seeded(t)

	_, err := s.AddValue(context.Background(), uuid.New(), amount(t, "10"))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUnauthenticatedRejects(t *testing.T) {
	s := New(&fakeStore{}, auth.NewState())

	_, err := s.Fetch(context.Background())
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.Equal(t, errs.ErrUnauthenticated.Error(), s.Snapshot().Err)
}
