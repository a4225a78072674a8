package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/projection"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
[shape]
family = "cloud"
seed = 7

[adapt]
strategy = "maxEdge"

[scatter.margins.default]
ratio = 0.2
cap = 100

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "90m"
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Shape.Family != "cloud" || cfg.Shape.Seed != 7 {
		t.Errorf("shape = %+v", cfg.Shape)
	}
	if cfg.Shape.MinDiameter != Default().Shape.MinDiameter {
		t.Error("untouched key lost its default")
	}
	if cfg.AdaptOptions().Strategy != projection.MaxEdge {
		t.Errorf("strategy = %q", cfg.AdaptOptions().Strategy)
	}
	if cfg.Scatter.Margins.Default.Cap != 100 || cfg.Scatter.Margins.Small.Cap != 60 {
		t.Errorf("margins = %+v", cfg.Scatter.Margins)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if got := cfg.ShapeOptions().CacheCapacity; got != 50 {
		t.Errorf("cache capacity = %d", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"syntax", "[shape", errors.ErrCodeInvalidInput},
		{"unknown key", "[shape]\ncolour = \"red\"", errors.ErrCodeInvalidInput},
		{"bad family", "[shape]\nfamily = \"star\"", errors.ErrCodeInvalidFamily},
		{"bad strategy", "[adapt]\nstrategy = \"diagonal\"", errors.ErrCodeInvalidStrategy},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"", errors.ErrCodeMissingData},
		{"bad grid", "[cut]\nrows = 0", errors.ErrCodeInvalidGrid},
		{"bad canvas", "[scatter]\nwidth = -5", errors.ErrCodeInvalidCanvas},
		{"bad duration", "[server]\nread_timeout = \"soon\"", errors.ErrCodeInvalidInput},
		{"inverted diameters", "[shape]\nmin_diameter = 400\nmax_diameter = 300", errors.ErrCodeInvalidInput},
		{"unreachable area", "[shape]\nmin_diameter = 10\nmax_diameter = 20", errors.ErrCodeInvalidInput},
		{"area too large", "[shape]\nmin_area = 10000000", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.doc)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[cut]\nrows = 4\ncols = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cut.Rows != 4 || cfg.Cut.Cols != 5 {
		t.Errorf("cut = %+v", cfg.Cut)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing explicit file: err = %v, want NOT_FOUND", err)
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Shape.Seed != Default().Shape.Seed {
		t.Error("expected defaults")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load(example) = %v", err)
	}
	if cfg.Shape.Family != "cloud" || cfg.Cut.Rows != 4 || cfg.Scatter.Width != 1280 {
		t.Errorf("example not applied: %+v", cfg)
	}
	if cfg.Cache.TTL.Duration != 0 {
		t.Errorf("ttl = %v, want per-kind defaults", cfg.Cache.TTL)
	}
}

func TestNegativeTTLRejected(t *testing.T) {
	_, err := Decode("[cache]\nttl = \"-1h\"\n")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
