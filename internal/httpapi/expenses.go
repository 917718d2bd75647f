package httpapi

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fintrack/internal/errs"
)

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if _, err := sess.Expense.Fetch(r.Context()); err != nil && errors.Is(err, errs.ErrUnauthenticated) {
		writeDomainError(w, err)
		return
	}
	st := sess.Expense.Snapshot()
	items := make([]expenseResponse, 0, len(st.Items))
	for _, ex := range st.Items {
		items = append(items, toExpenseResponse(ex))
	}
	toJSON(w, http.StatusOK, expenseListResponse{Items: items, Loading: st.Loading, Error: st.Err})
}

func (s *Server) postExpense(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	created, err := sess.Expense.Add(r.Context(), expenseFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) putExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	sess := sessionFrom(r)
	ex := expenseFrom(r)
	ex.ID = id
	updated, err := sess.Expense.Update(r.Context(), ex)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toExpenseResponse(updated))
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	sess := sessionFrom(r)
	if err := sess.Expense.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
