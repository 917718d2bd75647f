package httpapi

import (
	"net/http"

	"fintrack/internal/dictionary"
	"fintrack/internal/tracker"
)

// getLabels serves the curated label suggestions for the record forms.
// Optional ?kind=income|expense narrows the set.
func (s *Server) getLabels(w http.ResponseWriter, r *http.Request) {
	var kind *tracker.Kind
	switch v := r.URL.Query().Get("kind"); v {
	case "":
	case string(tracker.KindIncome):
		k := tracker.KindIncome
		kind = &k
	case string(tracker.KindExpense):
		k := tracker.KindExpense
		kind = &k
	default:
		badRequest(w, "kind must be income or expense")
		return
	}
	toJSON(w, http.StatusOK, map[string]any{"labels": dictionary.LabelsFor(kind)})
}
