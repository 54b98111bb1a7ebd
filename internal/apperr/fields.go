package apperr

// FieldErrors accumulates per-field validation messages.
type FieldErrors struct {
	fields map[string]string
}

// Add records msg for field. The first message for a field wins.
func (f *FieldErrors) Add(field, msg string) {
	if f.fields == nil {
		f.fields = make(map[string]string)
	}
	if _, ok := f.fields[field]; !ok {
		f.fields[field] = msg
	}
}

// Err returns nil when no field was added, else a validation error listing them.
func (f *FieldErrors) Err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: f.fields}
}
