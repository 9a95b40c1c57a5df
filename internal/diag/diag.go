// Package diag contains the structured errors reported by analysis: every author-facing error carries the
// location of the node that failed.
package diag

import (
	"errors"
	"fmt"

	"github.com/inoxlang/scriptc/internal/position"
)

type Kind uint8

const (
	// UsageError: a node is used in a context its value cannot satisfy.
	UsageError Kind = iota + 1

	// ResolutionError: a type, variable, constructor or method is not reachable through the whitelist.
	ResolutionError

	// StructuralInvariantError: the tree produced upstream is malformed, it is an internal fault.
	StructuralInvariantError

	// ConversionError: a conversion is not allowed, or requires an explicit cast.
	ConversionError
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "usage error"
	case ResolutionError:
		return "resolution error"
	case StructuralInvariantError:
		return "structural invariant error"
	case ConversionError:
		return "conversion error"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var _ position.LocatedError = (*Error)(nil)

type Error struct {
	Kind     Kind
	Location position.Location
	Message  string
	Err      error //optional
}

func (e *Error) Error() string {
	return e.Location.String() + " " + e.Message
}

func (e *Error) MessageWithoutLocation() string {
	return e.Message
}

func (e *Error) LocationRange() position.Location {
	return e.Location
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, loc position.Location, msg string) *Error {
	return &Error{Kind: kind, Location: loc, Message: msg}
}

func Usage(loc position.Location, msg string) *Error {
	return newError(UsageError, loc, msg)
}

func Resolution(loc position.Location, msg string) *Error {
	return newError(ResolutionError, loc, msg)
}

func Structural(loc position.Location, msg string) *Error {
	return newError(StructuralInvariantError, loc, msg)
}

func Conversion(loc position.Location, msg string) *Error {
	return newError(ConversionError, loc, msg)
}

// KindOf returns the kind of the first *Error in err's chain, ok is false if there is none.
func KindOf(err error) (kind Kind, ok bool) {
	var diagErr *Error
	if errors.As(err, &diagErr) {
		return diagErr.Kind, true
	}
	return 0, false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsInternal reports whether err signals a defect of the tree producer rather than a problem in the script.
func IsInternal(err error) bool {
	return Is(err, StructuralInvariantError)
}
