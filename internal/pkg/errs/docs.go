// Package errs provides the typed errors shared by the domain, application
// and adapter layers.
//
// Every error type wraps a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsRequired, ErrValueIsOutOfRange, ErrIllegalTransition,
// ErrConflict) so callers can use errors.Is, and KindOf folds them into the
// four categories reported at the API boundary: NOT_FOUND, VALIDATION,
// CONFLICT and INTERNAL.
package errs
