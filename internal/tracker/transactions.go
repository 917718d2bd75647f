package tracker

import (
	"sort"
	"strings"
	"time"
)

// DefaultPageSize matches the transaction history card of the dashboard.
const DefaultPageSize = 6

// Filter narrows the combined transaction view. Nil/empty fields are
// inactive; date bounds are inclusive on both ends.
type Filter struct {
	Start *time.Time
	End   *time.Time
	Query string // case-insensitive substring over the label
}

func (f Filter) keeps(t Transaction) bool {
	if f.Start != nil && t.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && t.Date.After(*f.End) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(t.Label), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// Transactions merges the income and expense lists into one tagged
// sequence, applies the filter and sorts by date descending (most recent
// first). Pure: the inputs are never mutated.
func Transactions(income []Income, expenses []Expense, f Filter) []Transaction {
	out := make([]Transaction, 0, len(income)+len(expenses))
	for _, in := range income {
		t := Transaction{ID: in.ID, Kind: KindIncome, Label: in.Source, Amount: in.Amount, Date: in.Date}
		if f.keeps(t) {
			out = append(out, t)
		}
	}
	for _, ex := range expenses {
		t := Transaction{ID: ex.ID, Kind: KindExpense, Label: ex.Category, Amount: ex.Amount, Date: ex.Date}
		if f.keeps(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Page is one window of the transaction view.
type Page struct {
	Items    []Transaction
	Page     int
	PageSize int
	Total    int
}

// TotalPages returns the number of pages the view spans (at least 1).
func (p Page) TotalPages() int {
	n := (p.Total + p.PageSize - 1) / p.PageSize
	if n < 1 {
		n = 1
	}
	return n
}

// Paginate slices items into the requested 1-based page. Requests outside
// [1, ceil(total/pageSize)] clamp to the nearest valid page, so page 0 and
// past-the-end navigation never move off the list.
func Paginate(items []Transaction, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	last := (len(items) + pageSize - 1) / pageSize
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return Page{Items: items[start:end], Page: page, PageSize: pageSize, Total: len(items)}
}
