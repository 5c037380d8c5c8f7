package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PostRecord is one saved post: text, references to photos already committed
// to the photo library, and the coordinate captured at save time.
//
// Records are values and are never modified once constructed. The JSON keys
// are the persisted format; there is no schema version, so renaming any of
// them breaks previously stored data.
type PostRecord struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	// ImageLocalIdentifiers keeps capture order; duplicates are allowed.
	ImageLocalIdentifiers []string  `json:"imageLocalIdentifiers"`
	Latitude              float64   `json:"latitude"`
	Longitude             float64   `json:"longitude"`
	CreatedAt             time.Time `json:"createdAt"`
}

// NewPostRecord builds a record with a fresh id and creation time. refs is
// copied so the caller's slice can be reused.
func NewPostRecord(content string, refs []string, at Coordinate) PostRecord {
	ids := make([]string, len(refs))
	copy(ids, refs)

	return PostRecord{
		ID:                    uuid.NewString(),
		Content:               content,
		ImageLocalIdentifiers: ids,
		Latitude:              at.Latitude,
		Longitude:             at.Longitude,
		CreatedAt:             time.Now().UTC(),
	}
}

// Coordinate returns the position the post was saved at.
func (p PostRecord) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

// References returns a copy of the photo references.
func (p PostRecord) References() []string {
	return slices.Clone(p.ImageLocalIdentifiers)
}

// Equal reports whether two records match field by field.
func (p PostRecord) Equal(o PostRecord) bool {
	return p.ID == o.ID &&
		p.Content == o.Content &&
		slices.Equal(p.ImageLocalIdentifiers, o.ImageLocalIdentifiers) &&
		p.Latitude == o.Latitude &&
		p.Longitude == o.Longitude &&
		p.CreatedAt.Equal(o.CreatedAt)
}
