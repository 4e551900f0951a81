package markup

import "fmt"

// ErrorCode classifies a ParseError, following spec.md §7's parse-error
// taxonomy (token, tag, attribute type/bounds, color out of range,
// unterminated string, mismatched tags).
type ErrorCode int

const (
	ErrToken ErrorCode = iota
	ErrTag
	ErrAttribute
	ErrColorRange
	ErrUnterminatedString
	ErrMismatchedTags
)

// ParseError is a parse-time failure: a short message, a source line and
// a short excerpt around the failure point, per spec.md §7. A ParseError
// aborts only the parse that produced it — callers keep whatever tree a
// prior successful parse built.
type ParseError struct {
	Line    int
	Code    ErrorCode
	Message string
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("markup:%d: %s (near %q)", e.Line, e.Message, e.Excerpt)
}
