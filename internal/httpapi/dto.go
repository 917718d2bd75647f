package httpapi

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/tracker"
)

// Request bodies. Amounts arrive as JSON numbers or numeric strings and
// are coerced at the boundary; dates as RFC 3339 or YYYY-MM-DD.

type incomeRequest struct {
	Source string          `json:"source"`
	Amount json.RawMessage `json:"amount"`
	Date   string          `json:"date,omitempty"`
}

type expenseRequest struct {
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Date     string          `json:"date,omitempty"`
}

type goalRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Amount       json.RawMessage `json:"amount"`
	AmountNeeded json.RawMessage `json:"amount_needed"`
}

type goalValueRequest struct {
	Amount json.RawMessage `json:"amount"`
}

func (req incomeRequest) toDomain() (tracker.Income, error) {
	amt, err := tracker.ParseAmount(req.Amount)
	if err != nil {
		return tracker.Income{}, &tracker.FieldError{Field: "amount", Msg: err.Error()}
	}
	date, err := tracker.ParseDate(req.Date)
	if err != nil {
		return tracker.Income{}, &tracker.FieldError{Field: "date", Msg: err.Error()}
	}
	return tracker.Income{Source: req.Source, Amount: amt, Date: date}, nil
}

func (req expenseRequest) toDomain() (tracker.Expense, error) {
	amt, err := tracker.ParseAmount(req.Amount)
	if err != nil {
		return tracker.Expense{}, &tracker.FieldError{Field: "amount", Msg: err.Error()}
	}
	date, err := tracker.ParseDate(req.Date)
	if err != nil {
		return tracker.Expense{}, &tracker.FieldError{Field: "date", Msg: err.Error()}
	}
	return tracker.Expense{Category: req.Category, Amount: amt, Date: date}, nil
}

func (req goalRequest) toDomain() (tracker.Goal, error) {
	amt, err := tracker.ParseAmount(req.Amount)
	if err != nil {
		return tracker.Goal{}, &tracker.FieldError{Field: "amount", Msg: err.Error()}
	}
	needed, err := tracker.ParseAmount(req.AmountNeeded)
	if err != nil {
		return tracker.Goal{}, &tracker.FieldError{Field: "amount_needed", Msg: err.Error()}
	}
	return tracker.Goal{
		Title:        req.Title,
		Description:  req.Description,
		Amount:       amt,
		AmountNeeded: needed,
	}, nil
}

// Response payloads. Amounts travel as strings so precision survives.

type incomeResponse struct {
	ID     uuid.UUID `json:"id"`
	Source string    `json:"source"`
	Amount string    `json:"amount"`
	Date   time.Time `json:"date"`
}

type expenseResponse struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Amount   string    `json:"amount"`
	Date     time.Time `json:"date"`
}

type goalResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Amount       string    `json:"amount"`
	AmountNeeded string    `json:"amount_needed"`
	Progress     float64   `json:"progress"`
	Completed    bool      `json:"completed"`
}

type transactionResponse struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Label  string    `json:"label"`
	Amount string    `json:"amount"`
	Date   time.Time `json:"date"`
}

type incomeListResponse struct {
	Items   []incomeResponse `json:"items"`
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
}

type expenseListResponse struct {
	Items   []expenseResponse `json:"items"`
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`
}

type goalListResponse struct {
	Items   []goalResponse `json:"items"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

type transactionPageResponse struct {
	Items      []transactionResponse `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int                   `json:"total"`
	TotalPages int                   `json:"total_pages"`
}

type summaryResponse struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetBalance    string `json:"net_balance"`
	Currency      string `json:"currency"`
}

func toIncomeResponse(in tracker.Income) incomeResponse {
	return incomeResponse{ID: in.ID, Source: in.Source, Amount: in.Amount.String(), Date: in.Date}
}

func toExpenseResponse(ex tracker.Expense) expenseResponse {
	return expenseResponse{ID: ex.ID, Category: ex.Category, Amount: ex.Amount.String(), Date: ex.Date}
}

func toGoalResponse(g tracker.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		Amount:       g.Amount.String(),
		AmountNeeded: g.AmountNeeded.String(),
		Progress:     g.Progress(),
		Completed:    g.Completed(),
	}
}

func toTransactionResponse(tx tracker.Transaction) transactionResponse {
	return transactionResponse{
		ID:     tx.ID,
		Kind:   string(tx.Kind),
		Label:  tx.Label,
		Amount: tx.Amount.String(),
		Date:   tx.Date,
	}
}
