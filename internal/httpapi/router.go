package httpapi

import (
	chi "github.com/go-chi/chi/v5"
)

// routes declares the public HTTP API endpoints and attaches per-route
// middleware. Everything under /v1 except the dictionary requires a
// resolved identity.
func (s *Server) routes() {
	// Health and metrics (unversioned, unauthenticated)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method("GET", "/metrics", metricsHandler())

	// Dictionary (unauthenticated, static)
	s.rt.Get("/v1/dictionary/labels", s.getLabels)

	s.rt.Group(func(r chi.Router) {
		r.Use(s.resolveUser())

		// Income
		r.Get("/v1/income", s.listIncome)
		r.With(s.validateIncomeBody()).Post("/v1/income", s.postIncome)
		r.With(s.validateIncomeBody()).Put("/v1/income/{id}", s.putIncome)
		r.Delete("/v1/income/{id}", s.deleteIncome)

		// Expenses
		r.Get("/v1/expenses", s.listExpenses)
		r.With(s.validateExpenseBody()).Post("/v1/expenses", s.postExpense)
		r.With(s.validateExpenseBody()).Put("/v1/expenses/{id}", s.putExpense)
		r.Delete("/v1/expenses/{id}", s.deleteExpense)

		// Goals
		r.Get("/v1/goals", s.listGoals)
		r.With(s.validateGoalBody()).Post("/v1/goals", s.postGoal)
		r.With(s.validateGoalBody()).Put("/v1/goals/{id}", s.putGoal)
		r.Delete("/v1/goals/{id}", s.deleteGoal)
		r.Post("/v1/goals/{id}/value", s.postGoalValue)

		// Derived views
		r.Get("/v1/transactions", s.listTransactions)
		r.Get("/v1/summary", s.getSummary)

		// Session lifecycle
		r.Post("/v1/signup", s.postSignup)
		r.Post("/v1/signout", s.postSignout)
	})
}
