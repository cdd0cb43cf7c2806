package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided or all errors are nil, this function returns nil.
// If only one non nil error is provided, it is returned as is. Multi errors
// passed as arguments are flattened.
func Append(errs ...error) error {
	var flat []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiError); ok {
			flat = append(flat, m.errs...)
		} else {
			flat = append(flat, e)
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiError{errs: flat}
	}
}

// multiError is an error that represents a collection of errors. Order of
// the errors is the order in which they were appended.
type multiError struct {
	errs []error
}

func (e *multiError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unpack returns all errors that this multi error contains.
func (e *multiError) Unpack() []error {
	return e.errs
}

// unpacker is implemented by errors that contain more than one error. It is
// a superset of the causer interface.
type unpacker interface {
	Unpack() []error
}
