package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Server.MaxUploadBytes != 0 {
		t.Fatalf("uploads should be unbounded by default, got %d", cfg.Server.MaxUploadBytes)
	}
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	t.Setenv("RXPAD_TEST_EXPORT_DIR", "/tmp/rx-exports")
	t.Setenv("RXPAD_LOG_FORMAT", "text")
	t.Setenv("RXPAD_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(filepath.Join("testdata", "rxpad.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address != "127.0.0.1:9090" || cfg.Server.BasePath != "/rx" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("read timeout: %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Fatalf("defaults should survive partial files, got %v", cfg.Server.WriteTimeout)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins); diff != "" {
		t.Fatalf("cors origins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Export.Dir != "/tmp/rx-exports" {
		t.Fatalf("expected env expansion in file, got %q", cfg.Export.Dir)
	}
	if cfg.Log.Format != "text" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if !cfg.Letterhead.Sanitize {
		t.Fatalf("sanitize flag not loaded")
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Fatalf("unexpected slog level %v", cfg.Log.SlogLevel())
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"RXPAD_LOG_LEVEL":        "verbose",
		"RXPAD_BASE_PATH":        "no-slash",
		"RXPAD_TIME_ZONE":        "Mars/Olympus",
		"RXPAD_READ_TIMEOUT":     "soon",
		"RXPAD_MAX_UPLOAD_BYTES": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected %s=%q to be rejected", key, value)
			}
		})
	}
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load optional: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("expected defaults, got %+v", cfg.Server)
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestApplyEnv_Lookup(t *testing.T) {
	env := map[string]string{
		"RXPAD_LETTERHEAD_SANITIZE": "true",
		"RXPAD_MAX_UPLOAD_BYTES":    "2048",
		"RXPAD_PRINT_COMMAND":       " lpr ",
	}
	cfg := Default()
	err := applyEnv(&cfg, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if !cfg.Letterhead.Sanitize || cfg.Server.MaxUploadBytes != 2048 || cfg.Export.PrintCommand != "lpr" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected local time, got %v %v", loc, err)
	}
	cfg.Render.TimeZone = "UTC"
	loc, err = cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v %v", loc, err)
	}
}

func TestMain(m *testing.M) {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			os.Unsetenv(key)
		}
	}
	os.Exit(m.Run())
}
