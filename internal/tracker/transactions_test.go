package tracker

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(v)
	require.NoError(t, err)
	return d
}

func day(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", v)
	require.NoError(t, err)
	return ts
}

func TestTransactionsMergeTagAndSort(t *testing.T) {
	income := []Income{
		{ID: uuid.New(), Source: "Salary", Amount: dec(t, "2500"), Date: day(t, "2024-01-10")},
	}
	expenses := []Expense{
		{ID: uuid.New(), Category: "Groceries", Amount: dec(t, "80"), Date: day(t, "2024-02-10")},
		{ID: uuid.New(), Category: "Rent", Amount: dec(t, "900"), Date: day(t, "2024-01-02")},
	}

	out := Transactions(income, expenses, Filter{})
	require.Len(t, out, 3)
	assert.Equal(t, "Groceries", out[0].Label)
	assert.Equal(t, KindExpense, out[0].Kind)
	assert.Equal(t, "Salary", out[1].Label)
	assert.Equal(t, KindIncome, out[1].Kind)
	assert.Equal(t, "Rent", out[2].Label)
}

func TestTransactionsDateRange(t *testing.T) {
	income := []Income{
		{ID: uuid.New(), Source: "Salary", Amount: dec(t, "2500"), Date: day(t, "2024-01-10")},
	}
	expenses := []Expense{
		{ID: uuid.New(), Category: "Groceries", Amount: dec(t, "80"), Date: day(t, "2024-02-10")},
	}

	start := day(t, "2024-02-01")
	out := Transactions(income, expenses, Filter{Start: &start})
	require.Len(t, out, 1)
	assert.Equal(t, KindExpense, out[0].Kind)

	// bounds are inclusive
	onIncome := day(t, "2024-01-10")
	out = Transactions(income, expenses, Filter{Start: &onIncome, End: &onIncome})
	require.Len(t, out, 1)
	assert.Equal(t, KindIncome, out[0].Kind)
}

func TestTransactionsQueryFilter(t *testing.T) {
	income := []Income{
		{ID: uuid.New(), Source: "Salary", Amount: dec(t, "2500"), Date: day(t, "2024-01-10")},
		{ID: uuid.New(), Source: "Sales commission", Amount: dec(t, "150"), Date: day(t, "2024-01-11")},
	}
	expenses := []Expense{
		{ID: uuid.New(), Category: "Groceries", Amount: dec(t, "80"), Date: day(t, "2024-01-12")},
	}

	out := Transactions(income, expenses, Filter{Query: "sAl"})
	require.Len(t, out, 2)
	for _, tx := range out {
		assert.Equal(t, KindIncome, tx.Kind)
	}
}

func TestPaginateClamps(t *testing.T) {
	items := make([]Transaction, 14)
	for i := range items {
		items[i] = Transaction{ID: uuid.New()}
	}

	pg := Paginate(items, 1, DefaultPageSize)
	assert.Len(t, pg.Items, 6)
	assert.Equal(t, 14, pg.Total)
	assert.Equal(t, 3, pg.TotalPages())

	// past the end clamps to the last page
	pg = Paginate(items, 99, DefaultPageSize)
	assert.Equal(t, 3, pg.Page)
	assert.Len(t, pg.Items, 2)

	// below the start clamps to the first
	pg = Paginate(items, 0, DefaultPageSize)
	assert.Equal(t, 1, pg.Page)

	// silly page sizes fall back to the default
	pg = Paginate(items, 1, -1)
	assert.Equal(t, DefaultPageSize, pg.PageSize)

	// empty list still reports one page
	pg = Paginate(nil, 5, DefaultPageSize)
	assert.Equal(t, 1, pg.Page)
	assert.Empty(t, pg.Items)
	assert.Equal(t, 1, pg.TotalPages())
}
