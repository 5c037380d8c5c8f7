package photolib

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/client/repositories/photos"
	"github.com/dmitrijs2005/world/internal/dbx"
	"github.com/dmitrijs2005/world/internal/filex"
	"github.com/dmitrijs2005/world/internal/logging"
)

const (
	DefaultMaxDimension = 2048
	DefaultQuality      = 85
)

var ErrEmptyImage = errors.New("image has no pixels")

// DiskLibrary keeps photos as webp files in one directory and indexes them
// in the photos table.
type DiskLibrary struct {
	dir          string
	db           *sql.DB
	access       Authorization
	maxDimension int
	quality      int
	log          logging.Logger
	now          func() time.Time
}

type Option func(*DiskLibrary)

// WithMaxDimension bounds the longer side of stored images. Zero keeps the
// original size.
func WithMaxDimension(px int) Option {
	return func(l *DiskLibrary) { l.maxDimension = px }
}

// WithQuality sets the lossy webp quality (1-100).
func WithQuality(q int) Option {
	return func(l *DiskLibrary) {
		if q > 0 && q <= 100 {
			l.quality = q
		}
	}
}

// WithAccess sets the answer given to permission requests.
func WithAccess(a Authorization) Option {
	return func(l *DiskLibrary) { l.access = a }
}

func NewDiskLibrary(dir string, db *sql.DB, log logging.Logger, opts ...Option) (*DiskLibrary, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}

	l := &DiskLibrary{
		dir:          dir,
		db:           db,
		access:       Granted,
		maxDimension: DefaultMaxDimension,
		quality:      DefaultQuality,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *DiskLibrary) RequestWriteAuthorization(ctx context.Context) (Authorization, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	return l.access, nil
}

func (l *DiskLibrary) Persist(ctx context.Context, img image.Image) (string, error) {
	if !l.access.CanWrite() {
		return "", fmt.Errorf("photo library: write access %s", l.access)
	}
	if img == nil || img.Bounds().Empty() {
		return "", ErrEmptyImage
	}

	img = l.fit(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, webp.Options{Lossless: false, Quality: l.quality}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(l.dir, id+".webp")
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}

	p := &models.Photo{
		ID:        id,
		Path:      path,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		CreatedAt: l.now().UTC(),
	}

	err := dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return photos.NewSQLiteRepository(tx).Create(ctx, p)
	})
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			l.log.Warn(ctx, "orphaned photo file", "path", path, "err", rerr)
		}
		return "", fmt.Errorf("failed to index photo: %w", err)
	}

	l.log.Debug(ctx, "photo stored", "id", id, "width", p.Width, "height", p.Height, "bytes", buf.Len())
	return id, nil
}

func (l *DiskLibrary) Delete(ctx context.Context, ref string) error {
	var path string
	err := dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := photos.NewSQLiteRepository(tx)
		p, err := repo.GetByID(ctx, ref)
		if err != nil {
			return err
		}
		path = p.Path
		return repo.MarkDeleted(ctx, ref)
	})
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		l.log.Warn(ctx, "failed to remove photo file", "path", path, "err", err)
	}
	return nil
}

func (l *DiskLibrary) Open(ctx context.Context, ref string) (*models.Photo, error) {
	return photos.NewSQLiteRepository(l.db).GetByID(ctx, ref)
}

// List returns live photos, newest first.
func (l *DiskLibrary) List(ctx context.Context) ([]*models.Photo, error) {
	return photos.NewSQLiteRepository(l.db).List(ctx)
}

func (l *DiskLibrary) fit(img image.Image) image.Image {
	if l.maxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= l.maxDimension && b.Dy() <= l.maxDimension {
		return img
	}
	return imaging.Fit(img, l.maxDimension, l.maxDimension, imaging.Lanczos)
}

// writeFile writes data to a temp file in the same directory and renames it
// into place.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".photo-*")
	if err != nil {
		return fmt.Errorf("failed to create photo file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write photo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close photo file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move photo file: %w", err)
	}
	return nil
}
