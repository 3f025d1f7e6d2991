// Package config loads tinypnr configuration from a TOML file.
//
// Configuration is optional: every field has a default, flags override file
// values, and the loaded struct is passed explicitly to the stages that
// need it. A minimal file looks like:
//
//	design = "top"
//
//	[die]
//	width = 200.0
//	height = 150.0
//
//	[cache]
//	backend = "file"
//	ttl_hours = 24
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tinypnr/pkg/def"
	"github.com/matzehuels/tinypnr/pkg/errors"
	"github.com/matzehuels/tinypnr/pkg/place"
)

// DefaultFilename is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFilename = "tinypnr.toml"

// Cache backend names accepted in the [cache] section.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full tinypnr configuration.
type Config struct {
	// Design is the name emitted in the DEF DESIGN statement.
	Design string `toml:"design"`

	// Units is the DEF DISTANCE MICRONS scale factor.
	Units int `toml:"units"`

	Die   DieConfig   `toml:"die"`
	Cache CacheConfig `toml:"cache"`
}

// DieConfig sets the chip boundary for placement.
type DieConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	TTLHours int    `toml:"ttl_hours"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Design: def.DefaultDesignName,
		Units:  def.DefaultUnits,
		Die: DieConfig{
			Width:  place.DefaultDieWidth,
			Height: place.DefaultDieHeight,
		},
		Cache: CacheConfig{
			Backend:         BackendFile,
			TTLHours:        24,
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "tinypnr",
			MongoCollection: "cache",
		},
	}
}

// Load reads a TOML config file, layering it over the defaults. A missing
// file at the default path is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Die.Width <= 0 || c.Die.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "die dimensions must be positive, got %gx%g", c.Die.Width, c.Die.Height)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// DiePlan returns the die geometry as a placement Die.
func (c Config) DiePlan() place.Die {
	return place.Die{Width: c.Die.Width, Height: c.Die.Height}
}

// DEFOptions returns the serializer options derived from the config.
func (c Config) DEFOptions() def.Options {
	return def.Options{DesignName: c.Design, Units: c.Units}
}
