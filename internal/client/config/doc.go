// Package config loads runtime configuration for the world client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. Every key is optional:
//
//	{
//	  "database_path": "world.db",
//	  "photo_dir": "photos",
//	  "max_photo_dimension": 2048,
//	  "photo_quality": 85,
//	  "photo_access": "granted",
//	  "location_access": "authorized",
//	  "latitude": 39.9,
//	  "longitude": 116.4,
//	  "geocoder_url": "https://nominatim.openstreetmap.org",
//	  "geocoder_user_agent": "world/1.0",
//	  "geocoder_timeout": "10s",
//	  "geocoder_rate": 1,
//	  "geocode_cache_size": 256,
//	  "log_level": "info"
//	}
//
// A position given by either latitude/longitude key or by -lat/-lon sets
// HasLocation; without it the device has no fix.
//
// Note: This package does not read environment variables; use the JSON file
// or flags to configure values.
package config
