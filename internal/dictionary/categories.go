// Package dictionary serves the curated label suggestions the record
// forms offer. Labels are suggestions only; free-text values are valid.
package dictionary

import "fintrack/internal/tracker"

type LabelDef struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var curated = map[tracker.Kind][]LabelDef{
	tracker.KindIncome: {
		{Code: "salary", Label: "Salary"},
		{Code: "freelance", Label: "Freelance"},
		{Code: "interest", Label: "Interest"},
		{Code: "gifts", Label: "Gifts"},
		{Code: "refund", Label: "Refund"},
		{Code: "other_income", Label: "Other Income"},
	},
	tracker.KindExpense: {
		{Code: "groceries", Label: "Groceries"},
		{Code: "eating_out", Label: "Eating Out"},
		{Code: "rent", Label: "Rent"},
		{Code: "utilities", Label: "Utilities"},
		{Code: "transport", Label: "Transport"},
		{Code: "health", Label: "Health"},
		{Code: "shopping", Label: "Shopping"},
		{Code: "entertainment", Label: "Entertainment"},
		{Code: "general", Label: "General"},
	},
}

// LabelsFor returns the curated labels for one kind, or for both when
// kind is nil.
func LabelsFor(kind *tracker.Kind) []LabelDef {
	if kind == nil {
		out := make([]LabelDef, 0, len(curated[tracker.KindIncome])+len(curated[tracker.KindExpense]))
		out = append(out, curated[tracker.KindIncome]...)
		out = append(out, curated[tracker.KindExpense]...)
		return out
	}
	out := make([]LabelDef, len(curated[*kind]))
	copy(out, curated[*kind])
	return out
}
