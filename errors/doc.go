/*
Package errors implements the coded error type used across nexus.

Reuse the errors declared in this package wherever possible and register a
package specific error only when none of the generic ones describes the
failure. Each extension registers its own codes in its errors.go file using
Register(code, description). Codes must be unique and a duplicate code
panics at startup.

Create instances with ErrXyz.New and ErrXyz.Newf or wrap any error with
Wrap and Wrapf. The most inner wrap attaches a stack trace. Test the kind of
an error with ErrXyz.Is, which follows the Cause chain and looks into every
error clubbed together by Append.

Field errors describe a problem with a single attribute of a message or a
model. Use FieldErrors to find them by name.

Formatting:

	%s and %v print the error message
	%+v prints the message followed by the full stack trace
*/
package errors
