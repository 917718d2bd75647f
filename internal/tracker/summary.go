package tracker

import (
	"time"

	"github.com/govalues/decimal"
)

// Period optionally scopes a summary to a year and month. The zero value
// covers everything; Month 0 with a Year set covers the whole year,
// mirroring the "all months" option of the dashboard filter.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) contains(t time.Time) bool {
	if p.Year == 0 {
		return true
	}
	if t.Year() != p.Year {
		return false
	}
	return p.Month == 0 || t.Month() == p.Month
}

// Summary holds the aggregate totals shown on the dashboard.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBalance    decimal.Decimal
}

// Summarize reduces the income and expense lists to totals, optionally
// scoped by period. Decimal addition keeps cents exact.
func Summarize(income []Income, expenses []Expense, p Period) (Summary, error) {
	var s Summary
	var err error
	for _, in := range income {
		if !p.contains(in.Date) {
			continue
		}
		if s.TotalIncome, err = s.TotalIncome.Add(in.Amount); err != nil {
			return Summary{}, err
		}
	}
	for _, ex := range expenses {
		if !p.contains(ex.Date) {
			continue
		}
		if s.TotalExpenses, err = s.TotalExpenses.Add(ex.Amount); err != nil {
			return Summary{}, err
		}
	}
	if s.NetBalance, err = s.TotalIncome.Sub(s.TotalExpenses); err != nil {
		return Summary{}, err
	}
	return s, nil
}
