package cache

import (
	"context"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend. It maps to the [cache] table of
// the config file.
type Config struct {
	Backend string      `toml:"backend" json:"backend"`
	Dir     string      `toml:"dir" json:"dir"` // file backend; empty means DefaultDir
	Prefix  string      `toml:"prefix" json:"prefix"`
	Redis   RedisConfig `toml:"redis" json:"redis"`
	Mongo   MongoConfig `toml:"mongo" json:"mongo"`
}

// Open creates the configured backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "locate cache directory")
			}
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "create cache directory %s", dir)
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to redis at %s", cfg.Redis.Addr)
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, cfg.Mongo)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongodb")
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
	}
}

// Keyer returns the keyer for cfg, scoped when a prefix is set.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
}
