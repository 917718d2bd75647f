package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"fintrack/internal/tracker"
)

const (
	ctxKeyIncome  ctxKey = "validatedIncome"
	ctxKeyExpense ctxKey = "validatedExpense"
	ctxKeyGoal    ctxKey = "validatedGoal"
)

// The validation middlewares decode and coerce the request body, then
// stash the resulting domain value in the request context for the
// handler. Coercion failures answer 422 before the handler runs.

func (s *Server) validateIncomeBody() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req incomeRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			in, err := req.toDomain()
			if err != nil {
				writeDomainError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyIncome, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) validateExpenseBody() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req expenseRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			ex, err := req.toDomain()
			if err != nil {
				writeDomainError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyExpense, ex)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) validateGoalBody() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req goalRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			g, err := req.toDomain()
			if err != nil {
				writeDomainError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyGoal, g)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func incomeFrom(r *http.Request) tracker.Income {
	in, _ := r.Context().Value(ctxKeyIncome).(tracker.Income)
	return in
}

func expenseFrom(r *http.Request) tracker.Expense {
	ex, _ := r.Context().Value(ctxKeyExpense).(tracker.Expense)
	return ex
}

func goalFrom(r *http.Request) tracker.Goal {
	g, _ := r.Context().Value(ctxKeyGoal).(tracker.Goal)
	return g
}
