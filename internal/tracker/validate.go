package tracker

// FieldError reports a per-field validation failure. Validation runs
// before any remote call, so a FieldError always means nothing was
// persisted.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Msg }
