// Package location tracks the device position and location permission and
// publishes them as a three-state observable (unknown / available /
// unavailable).
package location

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/world/internal/client/models"
)

// AuthorizationStatus mirrors the platform's location permission states.
type AuthorizationStatus int

const (
	NotDetermined AuthorizationStatus = iota
	Authorized
	Denied
	Restricted
)

func (s AuthorizationStatus) String() string {
	switch s {
	case NotDetermined:
		return "not-determined"
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	case Restricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// ParseAuthorizationStatus parses the String form. Unknown input is an error.
func ParseAuthorizationStatus(s string) (AuthorizationStatus, error) {
	switch s {
	case "not-determined", "":
		return NotDetermined, nil
	case "authorized":
		return Authorized, nil
	case "denied":
		return Denied, nil
	case "restricted":
		return Restricted, nil
	default:
		return NotDetermined, ErrUnknownStatus
	}
}

var (
	ErrUnknownStatus = errors.New("unknown authorization status")
	ErrNoFix         = errors.New("location fix unavailable")
)

// Source is the platform location service.
type Source interface {
	// AuthorizationStatus returns the current permission without prompting.
	AuthorizationStatus() AuthorizationStatus

	// RequestAuthorization prompts for permission and returns the answer.
	RequestAuthorization(ctx context.Context) (AuthorizationStatus, error)

	// Locate produces a one-shot position fix.
	Locate(ctx context.Context) (models.Coordinate, error)
}
