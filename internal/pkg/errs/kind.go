package errs

import "errors"

// Kind is the stable error category reported to callers.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindInternal   Kind = "INTERNAL"
)

// KindOf classifies err. Anything that does not wrap one of the package
// sentinels is an internal failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrIllegalTransition):
		return KindValidation
	default:
		return KindInternal
	}
}
