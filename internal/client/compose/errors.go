package compose

import "errors"

var (
	ErrNothingToSave         = errors.New("nothing to save")
	ErrSaveInProgress        = errors.New("save already in progress")
	ErrPhotoPermissionDenied = errors.New("photo library access denied")
	ErrPhotoSaveFailed       = errors.New("failed to save photo")
	ErrLocationUnavailable   = errors.New("location unavailable")
	ErrPersistenceFailed     = errors.New("failed to save post")
	ErrClosed                = errors.New("compose flow closed")
	ErrNoSuchImage           = errors.New("no such image")
)

// stepError ties a save failure category to the error that caused it. Both
// match with errors.Is.
type stepError struct {
	kind  error
	cause error
}

func (e *stepError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *stepError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func fail(kind, cause error) error {
	return &stepError{kind: kind, cause: cause}
}
