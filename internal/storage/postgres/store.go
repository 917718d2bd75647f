package postgres

// Package postgres provides a pgx-backed document store for the income,
// expense and goal collections. Migrations that create the expected
// schema live under db/migrations; this package only maps between the
// domain entities and SQL rows.
//
// Amounts are stored as numeric and travel as strings on both sides of
// the wire, so no float ever touches a monetary value.

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// ProvisionUser registers a user row so the collection tables accept
// writes for it.
func (s *Store) ProvisionUser(ctx context.Context, u tracker.User) error {
	ct, err := s.pool.Exec(ctx, `
        insert into users (id, email) values ($1, $2)
        on conflict (id) do nothing
    `, u.ID, u.Email)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrConflict
	}
	return nil
}

// ensureUser upserts the user row referenced by a collection write.
func (s *Store) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
        insert into users (id, email) values ($1, null)
        on conflict (id) do nothing
    `, userID)
	return err
}

// --- Income ---

// ListIncome returns the user's income records in creation order.
func (s *Store) ListIncome(ctx context.Context, userID uuid.UUID) ([]tracker.Income, error) {
	rows, err := s.pool.Query(ctx, `
        select id, user_id, source, amount::text, date
        from income
        where user_id = $1
        order by created_at asc, id asc
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]tracker.Income, 0)
	for rows.Next() {
		var in tracker.Income
		var amt string
		if err := rows.Scan(&in.ID, &in.UserID, &in.Source, &amt, &in.Date); err != nil {
			return nil, err
		}
		if in.Amount, err = decimal.Parse(amt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// CreateIncome inserts a row with a fresh server-assigned id.
func (s *Store) CreateIncome(ctx context.Context, userID uuid.UUID, in tracker.Income) (tracker.Income, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return tracker.Income{}, err
	}
	in.ID = uuid.New()
	in.UserID = userID
	_, err := s.pool.Exec(ctx, `
        insert into income (id, user_id, source, amount, date)
        values ($1, $2, $3, $4::numeric, $5)
    `, in.ID, in.UserID, in.Source, in.Amount.String(), in.Date)
	if err != nil {
		return tracker.Income{}, err
	}
	return in, nil
}

// UpdateIncome updates the mutable fields of a row.
func (s *Store) UpdateIncome(ctx context.Context, userID uuid.UUID, in tracker.Income) error {
	ct, err := s.pool.Exec(ctx, `
        update income
        set source = $1, amount = $2::numeric, date = $3
        where id = $4 and user_id = $5
    `, in.Source, in.Amount.String(), in.Date, in.ID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteIncome removes a row. Deleting an absent row succeeds.
func (s *Store) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
        delete from income where id = $1 and user_id = $2
    `, id, userID)
	return err
}

// --- Expenses ---

// ListExpenses returns the user's expense records in creation order.
func (s *Store) ListExpenses(ctx context.Context, userID uuid.UUID) ([]tracker.Expense, error) {
	rows, err := s.pool.Query(ctx, `
        select id, user_id, category, amount::text, date
        from expenses
        where user_id = $1
        order by created_at asc, id asc
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]tracker.Expense, 0)
	for rows.Next() {
		var ex tracker.Expense
		var amt string
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Category, &amt, &ex.Date); err != nil {
			return nil, err
		}
		if ex.Amount, err = decimal.Parse(amt); err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

// CreateExpense inserts a row with a fresh server-assigned id.
func (s *Store) CreateExpense(ctx context.Context, userID uuid.UUID, ex tracker.Expense) (tracker.Expense, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return tracker.Expense{}, err
	}
	ex.ID = uuid.New()
	ex.UserID = userID
	_, err := s.pool.Exec(ctx, `
        insert into expenses (id, user_id, category, amount, date)
        values ($1, $2, $3, $4::numeric, $5)
    `, ex.ID, ex.UserID, ex.Category, ex.Amount.String(), ex.Date)
	if err != nil {
		return tracker.Expense{}, err
	}
	return ex, nil
}

// UpdateExpense updates the mutable fields of a row.
func (s *Store) UpdateExpense(ctx context.Context, userID uuid.UUID, ex tracker.Expense) error {
	ct, err := s.pool.Exec(ctx, `
        update expenses
        set category = $1, amount = $2::numeric, date = $3
        where id = $4 and user_id = $5
    `, ex.Category, ex.Amount.String(), ex.Date, ex.ID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteExpense removes a row. Deleting an absent row succeeds.
func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
        delete from expenses where id = $1 and user_id = $2
    `, id, userID)
	return err
}

// --- Goals ---

// ListGoals returns the user's goals in creation order.
func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]tracker.Goal, error) {
	rows, err := s.pool.Query(ctx, `
        select id, user_id, title, description, amount::text, amount_needed::text
        from goals
        where user_id = $1
        order by created_at asc, id asc
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]tracker.Goal, 0)
	for rows.Next() {
		var g tracker.Goal
		var amt, needed string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &amt, &needed); err != nil {
			return nil, err
		}
		if g.Amount, err = decimal.Parse(amt); err != nil {
			return nil, err
		}
		if g.AmountNeeded, err = decimal.Parse(needed); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// CreateGoal inserts a row with a fresh server-assigned id. The unique
// index on (user_id, lower(title)) backs the client-side title check.
func (s *Store) CreateGoal(ctx context.Context, userID uuid.UUID, g tracker.Goal) (tracker.Goal, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return tracker.Goal{}, err
	}
	g.ID = uuid.New()
	g.UserID = userID
	_, err := s.pool.Exec(ctx, `
        insert into goals (id, user_id, title, description, amount, amount_needed)
        values ($1, $2, $3, $4, $5::numeric, $6::numeric)
    `, g.ID, g.UserID, g.Title, g.Description, g.Amount.String(), g.AmountNeeded.String())
	if err != nil {
		if isUniqueViolation(err) {
			return tracker.Goal{}, errs.ErrConflict
		}
		return tracker.Goal{}, err
	}
	return g, nil
}

// UpdateGoal updates the mutable fields of a row.
func (s *Store) UpdateGoal(ctx context.Context, userID uuid.UUID, g tracker.Goal) error {
	ct, err := s.pool.Exec(ctx, `
        update goals
        set title = $1, description = $2, amount = $3::numeric, amount_needed = $4::numeric
        where id = $5 and user_id = $6
    `, g.Title, g.Description, g.Amount.String(), g.AmountNeeded.String(), g.ID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrConflict
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a row. Deleting an absent row succeeds.
func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
        delete from goals where id = $1 and user_id = $2
    `, id, userID)
	return err
}

// --- Dev helpers ---

// SeedDev inserts a user with a few records for quick local testing.
func (s *Store) SeedDev(ctx context.Context) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID := uuid.New()
	if _, err := tx.Exec(ctx, `insert into users (id, email) values ($1, null)`, userID); err != nil {
		return uuid.Nil, err
	}
	now := time.Now().UTC()
	seed := []struct {
		table, label, amount string
	}{
		{"income", "Salary", "2500"},
		{"expenses", "Rent", "900"},
		{"expenses", "Groceries", "85.20"},
	}
	for _, row := range seed {
		var stmt string
		if row.table == "income" {
			stmt = `insert into income (id, user_id, source, amount, date) values ($1,$2,$3,$4::numeric,$5)`
		} else {
			stmt = `insert into expenses (id, user_id, category, amount, date) values ($1,$2,$3,$4::numeric,$5)`
		}
		if _, err := tx.Exec(ctx, stmt, uuid.New(), userID, row.label, row.amount, now); err != nil {
			return uuid.Nil, err
		}
	}
	if _, err := tx.Exec(ctx, `
        insert into goals (id, user_id, title, description, amount, amount_needed)
        values ($1,$2,$3,$4,$5::numeric,$6::numeric)
    `, uuid.New(), userID, "Emergency Fund", "Three months of expenses", "1200", "3000"); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
