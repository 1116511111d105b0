// Package workerform holds the state, validation and derived-field rules of the
// managed worker creation form. It has no rendering; the terminal wizard and the
// file-based create command both drive it.
package workerform

import (
	"errors"

	"workerctl/sdk/models"
)

// ErrSubmitDisabled is returned by Submit when installation, repository or branch is missing
var ErrSubmitDisabled = errors.New("select an installation, repository and branch before submitting")

// Options configures a Form
type Options struct {
	// OnSubmit receives each validated request
	OnSubmit func(models.CreateManagedWorkerRequest)

	// FieldErrors are server-side errors to display next to their fields
	FieldErrors map[string]string

	Loading bool
}

// Form owns the editable state together with local and external field errors
type Form struct {
	onSubmit func(models.CreateManagedWorkerRequest)
	state    State
	local    FieldErrors
	external FieldErrors
	loading  bool
}

// New creates a form initialised with DefaultState
func New(opts Options) *Form {
	f := &Form{
		onSubmit: opts.OnSubmit,
		state:    DefaultState(),
		local:    FieldErrors{},
		loading:  opts.Loading,
	}
	f.SetFieldErrors(opts.FieldErrors)
	return f
}

// State returns a copy of the current state
func (f *Form) State() State {
	return f.state
}

// Dispatch applies events in order. Local errors of every changed field are cleared.
func (f *Form) Dispatch(events ...Event) {
	for _, ev := range events {
		prev := f.state
		f.state = Reduce(prev, ev)
		for _, field := range changedFields(prev, f.state) {
			delete(f.local, field)
		}
	}
}

// SetFieldErrors replaces the external errors, typically from a rejected create call
func (f *Form) SetFieldErrors(errs map[string]string) {
	f.external = make(FieldErrors, len(errs))
	for field, msg := range errs {
		f.external[field] = msg
	}
}

// Errors returns local and external errors merged, local first
func (f *Form) Errors() FieldErrors {
	return Merge(f.local, f.external)
}

// Error returns the message shown for one field, or ""
func (f *Form) Error(field string) string {
	if msg, ok := f.local[field]; ok {
		return msg
	}
	return f.external[field]
}

// SetLoading toggles the in-flight indicator
func (f *Form) SetLoading(loading bool) {
	f.loading = loading
}

// Loading reports whether a submission is in flight
func (f *Form) Loading() bool {
	return f.loading
}

// CanSubmit reports whether Submit would attempt validation
func (f *Form) CanSubmit() bool {
	return CanSubmit(f.state)
}

// Submit validates the state and hands the request to OnSubmit. External errors
// from a previous attempt are dropped first.
func (f *Form) Submit() error {
	f.external = FieldErrors{}

	if !f.CanSubmit() {
		return ErrSubmitDisabled
	}

	req := f.state.Request()
	f.local = Validate(req)
	if len(f.local) > 0 {
		return &ValidationError{Fields: f.Errors()}
	}

	if f.onSubmit != nil {
		f.onSubmit(req)
	}
	return nil
}
