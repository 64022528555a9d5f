package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stemloop/pkg/cache"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/render/style"
)

// Config is the contents of config.toml. Every table is optional.
//
//	[layout]
//	base_pair_length = 30
//	radius_mode = "min"
//
//	[palette]
//	bond = "#888888"
//	[palette.bases]
//	G = "#4caf50"
//
//	[cache]
//	backend = "redis"
//	redis = { addr = "localhost:6379" }
//
//	[server]
//	addr = ":8080"
type Config struct {
	Layout  layout.Config `toml:"layout"`
	Palette style.Palette `toml:"palette"`
	Cache   cache.Config  `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

const (
	defaultAddr         = ":8080"
	defaultMaxBodyBytes = 1 << 20
)

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Layout:  layout.DefaultConfig(),
		Palette: style.Default(),
		Server:  ServerConfig{Addr: defaultAddr, MaxBodyBytes: defaultMaxBodyBytes},
	}
}

// configPath returns the default config file location
// ($XDG_CONFIG_HOME/stemloop/config.toml).
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the config once per CLI. A missing default file is not an
// error; a missing file named by --config is.
func (c *CLI) loadConfig() (Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			cfg := defaultConfig()
			c.config = &cfg
			return cfg, nil
		}
		path = p
	}

	cfg, err := readConfig(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		cfg, err = defaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	c.Logger.Debug("Loaded config", "path", path)
	c.config = &cfg
	return cfg, nil
}

// readConfig decodes path over the defaults.
func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, err
	}
	return decodeConfig(string(data))
}

func decodeConfig(data string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg.Layout.SetDefaults()
	if !md.IsDefined("layout", "clamp_radius") {
		cfg.Layout.ClampRadius = layout.DefaultConfig().ClampRadius
	}
	if err := cfg.Layout.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Palette = style.Default().Merge(cfg.Palette)
	if err := cfg.Palette.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	return cfg, nil
}
