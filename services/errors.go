package services

import "errors"

// Sentinel errors returned by workflow services. Controllers translate these
// to HTTP statuses; none of them leaves partial writes behind.
var (
	ErrNotFound         = errors.New("record not found")
	ErrNotStaff         = errors.New("caller has no staff assignment")
	ErrForbidden        = errors.New("caller lacks jurisdiction")
	ErrAlreadyCompleted = errors.New("inspection already completed")
	ErrActiveInspection = errors.New("application already has an active inspection")
	ErrVersionConflict  = errors.New("application was modified concurrently")
	ErrLocked           = errors.New("contact temporarily locked")
)

// ValidationError reports malformed or unrecognized input, detected before
// any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
