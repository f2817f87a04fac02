package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "text", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It is serialized directly to JSON. The human readable message is exposed
// under the "error" key so clients can always read `body.error`.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the error handler know the message is safe to show as is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"error"`
	Status   int          `json:"status"`
	Override bool         `json:"-"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status; it only matches the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
