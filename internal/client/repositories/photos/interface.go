// Package photos indexes the images held by the on-disk photo library.
package photos

import (
	"context"

	"github.com/dmitrijs2005/world/internal/client/models"
)

// Repository describes the photo index. Implementations are typically backed
// by the local SQLite database.
type Repository interface {
	// Create inserts a new photo row.
	Create(ctx context.Context, p *models.Photo) error

	// GetByID returns a live (not deleted) photo, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Photo, error)

	// MarkDeleted flags the photo as deleted. It expects exactly one live row.
	MarkDeleted(ctx context.Context, id string) error

	// List returns live photos, newest first.
	List(ctx context.Context) ([]*models.Photo, error)
}
