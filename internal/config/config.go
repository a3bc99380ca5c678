package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RXPAD_"

// Config holds all configuration for the prescription pad server and CLI.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Render     RenderConfig     `yaml:"render"`
	Letterhead LetterheadConfig `yaml:"letterhead"`
	Export     ExportConfig     `yaml:"export"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `yaml:"address" validate:"required"`
	BasePath        string        `yaml:"base_path" validate:"omitempty,startswith=/"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	// MaxUploadBytes caps request bodies; 0 leaves them unbounded.
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" validate:"gte=0"`
	CORSOrigins     []string      `yaml:"cors_origins" validate:"dive,required"`
}

// RenderConfig holds document rendering configuration.
type RenderConfig struct {
	DateLayout   string `yaml:"date_layout" validate:"required"`
	TimeZone     string `yaml:"time_zone" validate:"omitempty,timezone"`
	Theme        string `yaml:"theme"`
	ThemeVariant string `yaml:"theme_variant"`
	TemplatesDir string `yaml:"templates_dir" validate:"omitempty,dir"`
}

// LetterheadConfig holds letterhead handling configuration.
type LetterheadConfig struct {
	// Sanitize runs uploaded and edited letterhead HTML through an HTML
	// sanitizer. Off keeps the fragments byte-for-byte.
	Sanitize    bool   `yaml:"sanitize"`
	AccentColor string `yaml:"accent_color" validate:"omitempty,hexcolor"`
	LoadDefault bool   `yaml:"load_default"`
}

// ExportConfig holds download and print configuration.
type ExportConfig struct {
	Dir          string `yaml:"dir" validate:"required"`
	PrintCommand string `yaml:"print_command"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Render: RenderConfig{
			DateLayout: "1/2/2006",
		},
		Letterhead: LetterheadConfig{
			AccentColor: "#2563eb",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// path is non-empty, then RXPAD_* environment overrides. The result is
// validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional is Load but treats a missing file as empty.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return Load(path)
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Location resolves the configured time zone. Empty means local time.
func (c Config) Location() (*time.Location, error) {
	if c.Render.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Render.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: time zone %q: %w", c.Render.TimeZone, err)
	}
	return loc, nil
}

// SlogLevel maps the configured level onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	var errs []error

	setString(lookup, "ADDRESS", &cfg.Server.Address)
	setString(lookup, "BASE_PATH", &cfg.Server.BasePath)
	errs = append(errs,
		setDuration(lookup, "READ_TIMEOUT", &cfg.Server.ReadTimeout),
		setDuration(lookup, "WRITE_TIMEOUT", &cfg.Server.WriteTimeout),
		setDuration(lookup, "SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout),
		setInt64(lookup, "MAX_UPLOAD_BYTES", &cfg.Server.MaxUploadBytes),
	)
	if value, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok {
		cfg.Server.CORSOrigins = splitList(value)
	}

	setString(lookup, "DATE_LAYOUT", &cfg.Render.DateLayout)
	setString(lookup, "TIME_ZONE", &cfg.Render.TimeZone)
	setString(lookup, "THEME", &cfg.Render.Theme)
	setString(lookup, "THEME_VARIANT", &cfg.Render.ThemeVariant)
	setString(lookup, "TEMPLATES_DIR", &cfg.Render.TemplatesDir)

	errs = append(errs,
		setBool(lookup, "LETTERHEAD_SANITIZE", &cfg.Letterhead.Sanitize),
		setBool(lookup, "LETTERHEAD_LOAD_DEFAULT", &cfg.Letterhead.LoadDefault),
	)
	setString(lookup, "LETTERHEAD_ACCENT_COLOR", &cfg.Letterhead.AccentColor)

	setString(lookup, "EXPORT_DIR", &cfg.Export.Dir)
	setString(lookup, "PRINT_COMMAND", &cfg.Export.PrintCommand)

	setString(lookup, "LOG_LEVEL", &cfg.Log.Level)
	setString(lookup, "LOG_FORMAT", &cfg.Log.Format)

	return errors.Join(errs...)
}

func setString(lookup lookupFunc, key string, dst *string) {
	if value, ok := lookup(EnvPrefix + key); ok {
		*dst = strings.TrimSpace(value)
	}
}

func setBool(lookup lookupFunc, key string, dst *bool) error {
	value, ok := lookup(EnvPrefix + key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
	}
	*dst = b
	return nil
}

func setInt64(lookup lookupFunc, key string, dst *int64) error {
	value, ok := lookup(EnvPrefix + key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func setDuration(lookup lookupFunc, key string, dst *time.Duration) error {
	value, ok := lookup(EnvPrefix + key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
	}
	*dst = d
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
