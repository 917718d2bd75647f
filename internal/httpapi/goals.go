package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fintrack/internal/errs"
	"fintrack/internal/tracker"
)

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if _, err := sess.Goals.Fetch(r.Context()); err != nil && errors.Is(err, errs.ErrUnauthenticated) {
		writeDomainError(w, err)
		return
	}
	st := sess.Goals.Snapshot()
	items := make([]goalResponse, 0, len(st.Items))
	for _, g := range st.Items {
		items = append(items, toGoalResponse(g))
	}
	toJSON(w, http.StatusOK, goalListResponse{Items: items, Loading: st.Loading, Error: st.Err})
}

func (s *Server) postGoal(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	created, err := sess.Goals.Add(r.Context(), goalFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toGoalResponse(created))
}

func (s *Server) putGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	sess := sessionFrom(r)
	g := goalFrom(r)
	g.ID = id
	updated, err := sess.Goals.Update(r.Context(), g)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toGoalResponse(updated))
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	sess := sessionFrom(r)
	if err := sess.Goals.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// postGoalValue adds a deposit to a goal's saved amount.
func (s *Server) postGoalValue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a uuid")
		return
	}
	if !requireJSON(w, r) {
		return
	}
	var req goalValueRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	delta, err := tracker.ParseAmount(req.Amount)
	if err != nil {
		writeDomainError(w, &tracker.FieldError{Field: "amount", Msg: err.Error()})
		return
	}
	sess := sessionFrom(r)
	updated, err := sess.Goals.AddValue(r.Context(), id, delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toGoalResponse(updated))
}
