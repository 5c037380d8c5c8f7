package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/world/internal/flagx"
)

var knownFlags = []string{
	"-db", "-photos", "-max-dim", "-quality",
	"-photo-access", "-location-access",
	"-lat", "-lon",
	"-geocoder", "-ua", "-geocoder-timeout", "-geocoder-rate", "-geocode-cache",
	"-log-level",
}

// parseFlags overlays cfg with command-line flags. Arguments it does not
// know are filtered out with flagx.FilterArgs first.
//
// Supported flags:
//
//	-db string                sqlite database file
//	-photos string            photo library directory
//	-max-dim int              longest side of stored photos, 0 keeps size
//	-quality int              webp quality 1-100
//	-photo-access string      granted|limited|denied
//	-location-access string   authorized|denied|restricted
//	-lat float, -lon float    simulated device position
//	-geocoder string          Nominatim base URL, empty disables
//	-ua string                geocoder User-Agent
//	-geocoder-timeout dur     geocoder request timeout
//	-geocoder-rate float      geocoder requests per second
//	-geocode-cache int        cached addresses
//	-log-level string         debug|info|warn|error
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("world", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "sqlite database file")
	fs.StringVar(&cfg.PhotoDir, "photos", cfg.PhotoDir, "photo library directory")
	fs.IntVar(&cfg.MaxPhotoDimension, "max-dim", cfg.MaxPhotoDimension, "longest side of stored photos")
	fs.IntVar(&cfg.PhotoQuality, "quality", cfg.PhotoQuality, "webp quality")
	fs.StringVar(&cfg.PhotoAccess, "photo-access", cfg.PhotoAccess, "photo library permission answer")
	fs.StringVar(&cfg.LocationAccess, "location-access", cfg.LocationAccess, "location permission answer")
	fs.Float64Var(&cfg.Latitude, "lat", cfg.Latitude, "simulated latitude")
	fs.Float64Var(&cfg.Longitude, "lon", cfg.Longitude, "simulated longitude")
	fs.StringVar(&cfg.GeocoderURL, "geocoder", cfg.GeocoderURL, "Nominatim base URL")
	fs.StringVar(&cfg.GeocoderUserAgent, "ua", cfg.GeocoderUserAgent, "geocoder User-Agent")
	fs.DurationVar(&cfg.GeocoderTimeout, "geocoder-timeout", cfg.GeocoderTimeout, "geocoder request timeout")
	fs.Float64Var(&cfg.GeocoderRate, "geocoder-rate", cfg.GeocoderRate, "geocoder requests per second")
	fs.IntVar(&cfg.GeocodeCacheSize, "geocode-cache", cfg.GeocodeCacheSize, "cached addresses")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			cfg.HasLocation = true
		}
	})
	return nil
}
