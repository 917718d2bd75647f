package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

// postSignup provisions the caller's namespace with the example records a
// fresh account starts with.
func (s *Server) postSignup(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Provision(r.Context(), sess.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, map[string]uuid.UUID{"user_id": sess.UserID})
}

// postSignout drops the caller's session; the next request composes a
// fresh one.
func (s *Server) postSignout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.sessions.Drop(sess.UserID)
	w.WriteHeader(http.StatusNoContent)
}
