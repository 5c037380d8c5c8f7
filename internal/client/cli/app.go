package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/world/internal/client/camera"
	"github.com/dmitrijs2005/world/internal/client/compose"
	"github.com/dmitrijs2005/world/internal/client/config"
	"github.com/dmitrijs2005/world/internal/client/geocode"
	"github.com/dmitrijs2005/world/internal/client/localdb"
	"github.com/dmitrijs2005/world/internal/client/location"
	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/client/photolib"
	"github.com/dmitrijs2005/world/internal/client/services"
	"github.com/dmitrijs2005/world/internal/filex"
	"github.com/dmitrijs2005/world/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	source   *location.StaticSource
	provider *location.Provider
	library  *photolib.DiskLibrary
	geocoder geocode.Geocoder
	storage  services.PostStorageService
	camera   camera.Camera

	in     *bufio.Reader
	out    io.Writer
	prompt bool
}

// NewApp opens local storage and wires the collaborators described by c.
// in and out are the user's terminal; prompts are printed only when in is
// a terminal.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	locationAccess, err := location.ParseAuthorizationStatus(c.LocationAccess)
	if err != nil {
		return nil, fmt.Errorf("location access %q: %w", c.LocationAccess, err)
	}
	photoAccess, err := photolib.ParseAuthorization(c.PhotoAccess)
	if err != nil {
		return nil, fmt.Errorf("photo access %q: %w", c.PhotoAccess, err)
	}

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := localdb.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
		return nil, err
	}

	library, err := photolib.NewDiskLibrary(c.PhotoDir, db, log.With("component", "photolib"),
		photolib.WithMaxDimension(c.MaxPhotoDimension),
		photolib.WithQuality(c.PhotoQuality),
		photolib.WithAccess(photoAccess),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	geocoder, err := newGeocoder(c, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var position *models.Coordinate
	if c.HasLocation {
		position = &models.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	source := location.NewStaticSource(locationAccess, position)

	reader := bufio.NewReader(in)

	return &App{
		config:   c,
		log:      log,
		db:       db,
		source:   source,
		provider: location.NewProvider(source, log.With("component", "location")),
		library:  library,
		geocoder: geocoder,
		storage:  services.NewPostStorageService(db, log.With("component", "posts")),
		camera:   camera.NewFileCamera(reader, out),
		in:       reader,
		out:      out,
		prompt:   interactive(in),
	}, nil
}

func newGeocoder(c *config.Config, log logging.Logger) (geocode.Geocoder, error) {
	if c.GeocoderURL == "" {
		return geocode.Offline{}, nil
	}
	n := geocode.NewNominatim(c.GeocoderURL,
		geocode.WithUserAgent(c.GeocoderUserAgent),
		geocode.WithTimeout(c.GeocoderTimeout),
	)
	return geocode.NewCached(n, log.With("component", "geocode"),
		geocode.WithCacheSize(c.GeocodeCacheSize),
		geocode.WithRate(c.GeocoderRate),
	)
}

// Run shows the map screen and blocks until the user exits. Resources are
// released on return.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.println("Welcome to world (type 'help' for commands)")
	a.provider.RequestLocation(ctx)
	_ = a.ShowMap(ctx)

	err := runREPL(ctx, a, a.status, a.in, a.out, a.prompt)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Close stops location updates and closes the database.
func (a *App) Close() error {
	a.provider.Close()
	return a.db.Close()
}

func (a *App) newFlow(ctx context.Context) *compose.Flow {
	return compose.NewFlow(ctx, compose.Deps{
		Location: a.provider,
		Camera:   a.camera,
		Library:  a.library,
		Geocoder: a.geocoder,
		Storage:  a.storage,
	}, a.log)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
