package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/tracker"
)

// getSummary refreshes both lists in parallel and serves the aggregate
// totals, optionally scoped to a year and month the way the dashboard
// filter works ("all" or an absent month covers the whole year).
func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	income, expenses, err := sess.RefreshAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	q := r.URL.Query()
	var p tracker.Period
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1 {
			badRequest(w, "year must be a positive number")
			return
		}
		p.Year = year
	}
	if v := strings.ToLower(q.Get("month")); v != "" && v != "all" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			badRequest(w, "month must be 1-12 or all")
			return
		}
		if p.Year == 0 {
			badRequest(w, "month requires year")
			return
		}
		p.Month = time.Month(month)
	}

	sum, err := tracker.Summarize(income, expenses, p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:   sum.TotalIncome.String(),
		TotalExpenses: sum.TotalExpenses.String(),
		NetBalance:    sum.NetBalance.String(),
		Currency:      s.currency,
	})
}
