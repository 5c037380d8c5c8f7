package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the world client.
//
// Units: GeocoderTimeout is a time.Duration; GeocoderRate is requests per
// second (0 disables limiting); PhotoQuality is the webp quality 1-100.
type Config struct {
	DatabasePath      string
	PhotoDir          string
	MaxPhotoDimension int
	PhotoQuality      int

	// PhotoAccess answers photo-library permission prompts:
	// granted, limited or denied.
	PhotoAccess string
	// LocationAccess answers location permission prompts:
	// authorized, denied or restricted.
	LocationAccess string

	// Latitude and Longitude are the simulated device position, used only
	// when HasLocation is set.
	Latitude    float64
	Longitude   float64
	HasLocation bool

	// GeocoderURL is the Nominatim base URL; empty disables geocoding.
	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	GeocoderRate      float64
	GeocodeCacheSize  int

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "world.db"
	c.PhotoDir = "photos"
	c.MaxPhotoDimension = 2048
	c.PhotoQuality = 85
	c.PhotoAccess = "granted"
	c.LocationAccess = "authorized"
	c.GeocoderURL = "https://nominatim.openstreetmap.org"
	c.GeocoderUserAgent = "world/1.0"
	c.GeocoderTimeout = 10 * time.Second
	c.GeocoderRate = 1
	c.GeocodeCacheSize = 256
	c.LogLevel = "info"
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database path is empty", ErrInvalidConfig)
	}
	if c.PhotoDir == "" {
		return fmt.Errorf("%w: photo directory is empty", ErrInvalidConfig)
	}
	if c.PhotoQuality < 1 || c.PhotoQuality > 100 {
		return fmt.Errorf("%w: photo quality %d out of range 1-100", ErrInvalidConfig, c.PhotoQuality)
	}
	if c.MaxPhotoDimension < 0 {
		return fmt.Errorf("%w: negative max photo dimension", ErrInvalidConfig)
	}
	if c.GeocodeCacheSize < 1 {
		return fmt.Errorf("%w: geocode cache size must be positive", ErrInvalidConfig)
	}
	if c.HasLocation && (c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180) {
		return fmt.Errorf("%w: coordinate %f,%f out of range", ErrInvalidConfig, c.Latitude, c.Longitude)
	}
	return nil
}

// Load constructs a Config from args (without the program name): defaults,
// then the JSON file named by -c/-config, then flags. Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
