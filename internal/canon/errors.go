package canon

import "fmt"

// ErrorKind distinguishes the canonicalization error taxonomy.
type ErrorKind string

const (
	ErrRawJsonNumber  ErrorKind = "RawJsonNumber"
	ErrNonFiniteNum   ErrorKind = "NonFiniteNumber"
	ErrInvalidQuantity ErrorKind = "InvalidQuantity"
	ErrDepthExceeded  ErrorKind = "DepthExceeded"
	ErrKeyNotString   ErrorKind = "KeyNotString"
)

// Error is the structured error type returned by Canonicalize/CanonicalizeStrict.
// Path uses the dotted "root.a.b[2]" form.
type Error struct {
	Kind   ErrorKind
	Path   string
	Reason string // only populated for InvalidQuantity
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Path)
}

func newErr(kind ErrorKind, path string) *Error {
	return &Error{Kind: kind, Path: path}
}
