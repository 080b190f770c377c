package library

import "fmt"

// UnresolvedReferenceError reports a reference to an object that is not in
// the model.
type UnresolvedReferenceError struct {
	Kind Kind
	Role string
	Name string
	Err  error
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %q not found", e.Role, e.Kind, e.Name)
}

func (e *UnresolvedReferenceError) Unwrap() error { return e.Err }
