// Package models defines the client-side data model: coordinates, saved
// posts and photo-library entries.
package models

import "fmt"

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the fixed-precision label used when no address is known.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f°, %.6f°", c.Latitude, c.Longitude)
}

// Valid reports whether the coordinate lies within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
