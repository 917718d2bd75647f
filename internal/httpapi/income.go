package httpapi

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fintrack/internal/errs"
)

// listIncome refreshes the income slice and returns its snapshot. A
// failed refresh still answers 200 with the stale items and the recorded
// error message, matching what the dashboard renders.
func (s *Server) listIncome(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if _, err := sess.Income.Fetch(r.Context()); err != nil && errors.Is(err, errs.ErrUnauthenticated) {
		writeDomainError(w, err)
		return
	}
	st := sess.Income.Snapshot()
	items := make([]incomeResponse, 0, len(st.Items))
	for _, in := range st.Items {
		items = append(items, toIncomeResponse(in))
	}
	toJSON(w, http.StatusOK, incomeListResponse{Items: items, Loading: st.Loading, Error: st.Err})
}

func (s *Server) postIncome(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	created, err := sess.Income.Add(r.Context(), incomeFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toIncomeResponse(created))
}

func (s *Server) putIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	sess := sessionFrom(r)
	in := incomeFrom(r)
	in.ID = id
	updated, err := sess.Income.Update(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toIncomeResponse(updated))
}

func (s *Server) deleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	sess := sessionFrom(r)
	if err := sess.Income.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
