package models

import "time"

// Photo is a photo-library entry. ID is the opaque reference stored in
// PostRecord.ImageLocalIdentifiers.
type Photo struct {
	ID        string
	Path      string
	Width     int
	Height    int
	CreatedAt time.Time
	Deleted   bool
}
