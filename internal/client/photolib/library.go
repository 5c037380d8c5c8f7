// Package photolib is the device photo library: it stores captured images
// and hands back stable references that posts keep.
package photolib

import (
	"context"
	"errors"
	"image"

	"github.com/dmitrijs2005/world/internal/client/models"
)

// Authorization is the answer to a photo-library write permission request.
type Authorization int

const (
	Denied Authorization = iota
	Granted
	// Limited access still allows adding photos.
	Limited
)

func (a Authorization) String() string {
	switch a {
	case Granted:
		return "granted"
	case Limited:
		return "limited"
	default:
		return "denied"
	}
}

// CanWrite reports whether new photos may be added.
func (a Authorization) CanWrite() bool {
	return a == Granted || a == Limited
}

var ErrUnknownAuthorization = errors.New("unknown photo access value")

// ParseAuthorization parses the String form; empty means granted.
func ParseAuthorization(s string) (Authorization, error) {
	switch s {
	case "granted", "":
		return Granted, nil
	case "limited":
		return Limited, nil
	case "denied":
		return Denied, nil
	default:
		return Denied, ErrUnknownAuthorization
	}
}

// Library stores images and resolves the references it handed out.
type Library interface {
	RequestWriteAuthorization(ctx context.Context) (Authorization, error)

	// Persist stores img and returns its stable reference.
	Persist(ctx context.Context, img image.Image) (string, error)

	// Delete removes a stored image.
	Delete(ctx context.Context, ref string) error

	// Open returns the index entry for ref.
	Open(ctx context.Context, ref string) (*models.Photo, error)
}
