package forms

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDraft is returned by Submit when validation blocks the call.
// The per-field messages are in FieldErrors.
var ErrInvalidDraft = errors.New("draft has validation errors")

// Form holds the working copy of a record being created or edited plus its
// field-level validation errors. The draft belongs to exactly one form; it
// survives a failed submit for correction and is discarded with the form.
type Form[T any] struct {
	draft       *T
	fieldErrors map[string]string
}

// New creates a form around an empty draft (create mode).
func New[T any]() *Form[T] {
	return &Form[T]{
		draft:       new(T),
		fieldErrors: make(map[string]string),
	}
}

// Edit creates a form around a copy of an existing record (edit mode).
func Edit[T any](record T) *Form[T] {
	return &Form[T]{
		draft:       &record,
		fieldErrors: make(map[string]string),
	}
}

// Draft returns the working copy for reading.
func (f *Form[T]) Draft() T {
	return *f.draft
}

// SetField mutates the named field of the draft and clears that field's
// existing error. The name is the field's JSON tag, matching the names in
// FieldErrors.
func (f *Form[T]) SetField(name string, mutate func(draft *T)) {
	delete(f.fieldErrors, name)
	mutate(f.draft)
}

// Validate runs the synchronous rule set over the draft and repopulates the
// field errors. It returns true iff no rule fails. Calling it twice on an
// unchanged draft yields identical errors.
func (f *Form[T]) Validate() bool {
	f.fieldErrors = make(map[string]string)

	err := validate.Struct(f.draft)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.fieldErrors[""] = err.Error()
		return false
	}
	for _, fe := range verrs {
		f.fieldErrors[fe.Field()] = fe.Translate(translator)
	}
	return false
}

// FieldErrors returns the per-field messages from the last Validate call,
// keyed by JSON field name.
func (f *Form[T]) FieldErrors() map[string]string {
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// Submit validates the draft and, only when it passes, forwards it to send.
// On validation failure it returns ErrInvalidDraft without any network call.
// The draft is kept either way so the user can correct and resubmit.
func (f *Form[T]) Submit(ctx context.Context, send func(ctx context.Context, draft T) (json.RawMessage, error)) (json.RawMessage, error) {
	if !f.Validate() {
		return nil, ErrInvalidDraft
	}
	return send(ctx, *f.draft)
}

// Reset discards the draft and errors, returning the form to create mode.
func (f *Form[T]) Reset() {
	f.draft = new(T)
	f.fieldErrors = make(map[string]string)
}
