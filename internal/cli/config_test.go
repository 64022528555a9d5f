package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stemloop/pkg/cache"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/layout"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := decodeConfig(`
[layout]
base_pair_length = 40
radius_mode = "min"

[palette]
bond = "#123456"
[palette.bases]
g = "#00ff00"

[cache]
backend = "redis"
prefix = "team"
redis = { addr = "cache:6379", db = 2 }

[server]
addr = ":9000"
`)
	if err != nil {
		t.Fatalf("decodeConfig: %v", err)
	}

	if cfg.Layout.BasePairLength != 40 || cfg.Layout.RadiusMode != layout.RadiusMin {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.PairSpacing != layout.DefaultPairSpacing {
		t.Errorf("unset layout field not defaulted: %v", cfg.Layout.PairSpacing)
	}
	if !cfg.Layout.ClampRadius {
		t.Error("clamp_radius should default to true")
	}
	if cfg.Palette.Bond != "#123456" || cfg.Palette.Fill("G") != "#00ff00" || cfg.Palette.Fill("A") == "" {
		t.Errorf("palette = %+v", cfg.Palette)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.Redis.Addr != "cache:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.MaxBodyBytes != defaultMaxBodyBytes {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestDecodeConfigClampOff(t *testing.T) {
	cfg, err := decodeConfig("[layout]\nclamp_radius = false\n")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.ClampRadius {
		t.Error("explicit clamp_radius = false was overridden")
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[layout"},
		{"unknown key", "[layout]\nbogus = 1\n"},
		{"negative length", "[layout]\npair_spacing = -3\n"},
		{"bad radius mode", "[layout]\nradius_mode = \"huge\"\n"},
		{"bad colour", "[palette]\nbond = \"grey\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeConfig(tt.data)
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want %s", err, errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", cfg.Layout)
	}

	c = New(io.Discard, LogInfo)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := c.loadConfig(); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config error = %v", err)
	}
}

func TestLoadConfigDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	path := filepath.Join(home, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}
}
