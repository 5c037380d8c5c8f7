package compose

import "errors"

// User-facing texts.
const (
	MessagePhotoPermission = "Allow photo library access in Settings to save photos"
	MessageLocation        = "Allow location access to save the post's location"
	MessageNothingToSave   = "Add a photo or some text first"
	MessagePhotoSaveFailed = "Failed to save photo"
	MessageUnknown         = "Unknown error"

	LabelResolving     = "Resolving address…"
	LabelNotAuthorized = "Location not authorized"
	LabelLocating      = "Locating…"
)

// UserMessage maps a Save error to the text shown in the failure alert.
// Photo and persistence failures show the underlying error as is.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPhotoPermissionDenied):
		return MessagePhotoPermission
	case errors.Is(err, ErrLocationUnavailable):
		return MessageLocation
	case errors.Is(err, ErrNothingToSave):
		return MessageNothingToSave
	case errors.Is(err, ErrPhotoSaveFailed), errors.Is(err, ErrPersistenceFailed):
		var se *stepError
		if errors.As(err, &se) && se.cause != nil {
			return se.cause.Error()
		}
		if errors.Is(err, ErrPhotoSaveFailed) {
			return MessagePhotoSaveFailed
		}
		return err.Error()
	default:
		return MessageUnknown
	}
}
