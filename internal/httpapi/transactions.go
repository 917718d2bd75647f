package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/tracker"
)

// listTransactions refreshes both lists in parallel and serves the
// filtered, sorted, paginated combined view.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	income, expenses, err := sess.RefreshAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	q := r.URL.Query()
	var f tracker.Filter
	if v := q.Get("start"); v != "" {
		t, err := tracker.ParseDate(v)
		if err != nil {
			badRequest(w, "start: "+err.Error())
			return
		}
		f.Start = &t
	}
	if v := q.Get("end"); v != "" {
		t, err := parseEndBound(v)
		if err != nil {
			badRequest(w, "end: "+err.Error())
			return
		}
		f.End = &t
	}
	f.Query = q.Get("q")

	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("page_size"), tracker.DefaultPageSize)
	if pageSize > 100 {
		pageSize = 100
	}

	txs := tracker.Transactions(income, expenses, f)
	pg := tracker.Paginate(txs, page, pageSize)

	items := make([]transactionResponse, 0, len(pg.Items))
	for _, tx := range pg.Items {
		items = append(items, toTransactionResponse(tx))
	}
	toJSON(w, http.StatusOK, transactionPageResponse{
		Items:      items,
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		Total:      pg.Total,
		TotalPages: pg.TotalPages(),
	})
}

// parseEndBound parses an end-of-range value. A bare day means the whole
// day stays in range, so the bound moves to its last instant.
func parseEndBound(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	return tracker.ParseDate(v)
}

func intParam(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
