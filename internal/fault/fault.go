// Package fault defines the closed set of failure kinds shared by the config
// store, location resolver and weather client. The controller dispatches on
// Kind instead of matching concrete error types.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// None is the kind of a nil error.
	None Kind = iota
	// Unknown marks an error no component classified.
	Unknown
	// ConfigNotFound means no persisted record exists (first run).
	ConfigNotFound
	// ConfigInvalid means the persisted record does not match the reference schema.
	ConfigInvalid
	// LocationNotFound means a resolver or provider found nothing for the input.
	LocationNotFound
	// ServiceError means a location provider was unreachable or misbehaved.
	ServiceError
	// ConnectionError means the weather provider could not be reached.
	ConnectionError
	// InvalidKey means the weather provider rejected the API key.
	InvalidKey
	// IO means the local filesystem failed.
	IO
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case ConfigNotFound:
		return "config not found"
	case ConfigInvalid:
		return "config invalid"
	case LocationNotFound:
		return "location not found"
	case ServiceError:
		return "service error"
	case ConnectionError:
		return "connection error"
	case InvalidKey:
		return "invalid key"
	case IO:
		return "io error"
	default:
		return "unknown"
	}
}

// Error carries a Kind alongside the operation that failed and its cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an *Error of the given kind. err may be nil.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted cause.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the outermost Kind found in err's chain, None for nil and
// Unknown when nothing in the chain was classified.
func KindOf(err error) Kind {
	if err == nil {
		return None
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
