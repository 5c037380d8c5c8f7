package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/world/internal/flagx"
	"github.com/dmitrijs2005/world/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DatabasePath      *string         `json:"database_path"`
	PhotoDir          *string         `json:"photo_dir"`
	MaxPhotoDimension *int            `json:"max_photo_dimension"`
	PhotoQuality      *int            `json:"photo_quality"`
	PhotoAccess       *string         `json:"photo_access"`
	LocationAccess    *string         `json:"location_access"`
	Latitude          *float64        `json:"latitude"`
	Longitude         *float64        `json:"longitude"`
	GeocoderURL       *string         `json:"geocoder_url"`
	GeocoderUserAgent *string         `json:"geocoder_user_agent"`
	GeocoderTimeout   *timex.Duration `json:"geocoder_timeout"`
	GeocoderRate      *float64        `json:"geocoder_rate"`
	GeocodeCacheSize  *int            `json:"geocode_cache_size"`
	LogLevel          *string         `json:"log_level"`
}

// parseJSON overlays cfg with the JSON file selected by -c or -config. No
// file flag means nothing to do.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.PhotoDir, jc.PhotoDir)
	setIf(&cfg.MaxPhotoDimension, jc.MaxPhotoDimension)
	setIf(&cfg.PhotoQuality, jc.PhotoQuality)
	setIf(&cfg.PhotoAccess, jc.PhotoAccess)
	setIf(&cfg.LocationAccess, jc.LocationAccess)
	setIf(&cfg.GeocoderURL, jc.GeocoderURL)
	setIf(&cfg.GeocoderUserAgent, jc.GeocoderUserAgent)
	setIf(&cfg.GeocoderRate, jc.GeocoderRate)
	setIf(&cfg.GeocodeCacheSize, jc.GeocodeCacheSize)
	setIf(&cfg.LogLevel, jc.LogLevel)

	if jc.GeocoderTimeout != nil {
		cfg.GeocoderTimeout = jc.GeocoderTimeout.Duration
	}
	if jc.Latitude != nil || jc.Longitude != nil {
		setIf(&cfg.Latitude, jc.Latitude)
		setIf(&cfg.Longitude, jc.Longitude)
		cfg.HasLocation = true
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
