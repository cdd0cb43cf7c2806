/*
Package assert provides minimal assertion helpers used by the extension
tests. Every helper fails the test immediately.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Tester is the minimal subset of testing.TB needed to run most assert commands
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors created by the errors
		// package.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) (isnil bool) {
	if value == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			isnil = false
		}
	}()
	return reflect.ValueOf(value).IsNil()
}

// Equal fails the test if two values are not equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Dec fails the test if got is not equal to the decimal number written as
// want.
func Dec(t Tester, want string, got decimal.Dec) {
	t.Helper()
	w, err := decimal.ParseDec(want)
	if err != nil {
		t.Fatalf("invalid decimal %q: %s", want, err)
	}
	if !w.Equal(got) {
		t.Fatalf("decimals not equal \nwant %s\n got %s", w, got)
	}
}

// Uint fails the test if got is not equal to want.
func Uint(t Tester, want uint64, got decimal.Uint) {
	t.Helper()
	if !decimal.NewUint(want).Equal(got) {
		t.Fatalf("integers not equal \nwant %d\n got %s", want, got)
	}
}

// Panics will run given function and recover any panic. It will fail the test
// if given function call did not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError ensures that given error contains exactly one error for given
// field name, matching want. Use nil as want to ensure that no error exists
// for the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			for i, e := range errs {
				t.Logf("\terror %d: %q", i+1, e)
			}
			t.Fatalf("expected no error for %q, got %d", fieldName, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no error found for %q", fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("unexpected error found: %q", errs[0])
		}
	default:
		for i, e := range errs {
			t.Logf("\terror %d: %q", i+1, e)
		}
		t.Fatalf("want one error for %q, got %d", fieldName, len(errs))
	}
}

// IsErr fails the test if got is not of the want error kind. Both nil is a
// match.
func IsErr(t testing.TB, want, got error) {
	t.Helper()

	if want == got {
		return
	}

	type comparator interface {
		Is(error) bool
	}
	if want, ok := want.(comparator); ok && want.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
