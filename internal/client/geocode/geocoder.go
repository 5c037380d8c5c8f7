// Package geocode turns coordinates into human-readable place names.
//
// Geocoding is best effort. Callers that need a label use Label, which
// never fails: when no address can be found it falls back to the
// coordinate's numeric form.
package geocode

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/world/internal/client/models"
)

var (
	ErrNoAddress   = errors.New("no address for coordinate")
	ErrCircuitOpen = errors.New("geocoder temporarily disabled")
)

// Address is a reverse-geocoding result.
type Address struct {
	Found       bool
	DisplayName string
	Road        string
	City        string
	Country     string
}

// Geocoder resolves a coordinate to an address.
type Geocoder interface {
	Name() string
	Reverse(ctx context.Context, c models.Coordinate) (Address, error)
}

// Offline never finds an address.
type Offline struct{}

func (Offline) Name() string { return "offline" }

func (Offline) Reverse(ctx context.Context, _ models.Coordinate) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	return Address{}, ErrNoAddress
}

// Label returns the address display name for c, or c.String() when the
// geocoder fails or has nothing.
func Label(ctx context.Context, g Geocoder, c models.Coordinate) string {
	if g == nil {
		return c.String()
	}
	addr, err := g.Reverse(ctx, c)
	if err != nil || !addr.Found || addr.DisplayName == "" {
		return c.String()
	}
	return addr.DisplayName
}
