// Package config loads mytime-ics settings.
//
// Settings are read from a YAML file (created with defaults on first run), then
// overridden by MYTIME_* environment variables, which may also come from a .env
// file. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. MYTIME_OUTPUT_DIR.
const EnvPrefix = "MYTIME_"

// CaptureConfig configures live page capture.
type CaptureConfig struct {
	// URL of the myTime weekly schedule. Empty disables capture.
	URL string `yaml:"url" json:"url" env:"URL" validate:"omitempty,url"`
	// WaitSelector must match before the page is read.
	WaitSelector string `yaml:"wait_selector" json:"wait_selector" env:"WAIT_SELECTOR"`
	// Timeout bounds one capture.
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT" validate:"gte=0"`
	// UserDataDir is the Chromium profile that keeps the login.
	UserDataDir string `yaml:"user_data_dir" json:"user_data_dir" env:"USER_DATA_DIR"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is how long a watched file must be quiet before rescanning.
	Debounce time.Duration `yaml:"debounce" json:"debounce" env:"DEBOUNCE" validate:"gte=0"`
	// Schedule is a cron expression for re-capturing a live page.
	Schedule string `yaml:"schedule" json:"schedule" env:"SCHEDULE"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone shift times are interpreted in. Empty means
	// the system zone.
	Timezone string `yaml:"timezone" json:"timezone" env:"TIMEZONE" validate:"omitempty,timezone"`

	// OutputDir receives exported .ics files.
	OutputDir string `yaml:"output_dir" json:"output_dir" env:"OUTPUT_DIR" validate:"required"`

	// FilenamePrefix starts every export file name.
	FilenamePrefix string `yaml:"filename_prefix" json:"filename_prefix" env:"FILENAME_PREFIX" validate:"required"`

	// FilenameMode is "week-of" or "as-of".
	FilenameMode string `yaml:"filename_mode" json:"filename_mode" env:"FILENAME_MODE" validate:"oneof=week-of as-of"`

	// LocationPrefix is prepended to the store number in event locations.
	LocationPrefix string `yaml:"location_prefix" json:"location_prefix" env:"LOCATION_PREFIX" validate:"required"`

	// StableUID derives event UIDs from the shifts so re-exports update events.
	StableUID bool `yaml:"stable_uid" json:"stable_uid" env:"STABLE_UID"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	Capture CaptureConfig `yaml:"capture" json:"capture" envPrefix:"CAPTURE_"`
	Watch   WatchConfig   `yaml:"watch" json:"watch" envPrefix:"WATCH_"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "~/Downloads",
		FilenamePrefix: "Target Shifts",
		FilenameMode:   "week-of",
		LocationPrefix: "Target #",
		StableUID:      true,
		LogLevel:       "info",
		Capture: CaptureConfig{
			WaitSelector: `[id="0"]`,
			Timeout:      30 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Schedule: "*/30 * * * *",
		},
	}
}

// Normalize fills in missing values with defaults so that partially filled
// files still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.FilenamePrefix == "" {
		c.FilenamePrefix = def.FilenamePrefix
	}
	c.FilenameMode = strings.ToLower(strings.TrimSpace(c.FilenameMode))
	if c.FilenameMode == "" {
		c.FilenameMode = def.FilenameMode
	}
	if c.LocationPrefix == "" {
		c.LocationPrefix = def.LocationPrefix
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Capture.WaitSelector == "" {
		c.Capture.WaitSelector = def.Capture.WaitSelector
	}
	if c.Capture.Timeout == 0 {
		c.Capture.Timeout = def.Capture.Timeout
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = def.Watch.Debounce
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = def.Watch.Schedule
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mytime-ics.yaml"
	}
	return filepath.Join(dir, "mytime-ics", "config.yaml")
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written with 0600
// permissions and returned. Otherwise the file is read and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, fmt.Errorf("writing default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Keys missing from the file keep their defaults.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename, leaving the
// file with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".mytime-ics-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ApplyEnv overrides fields from MYTIME_* variables in environ. A nil environ
// uses the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return fmt.Errorf("environment overrides: %w", aggErr.Errors[0])
		}
		return fmt.Errorf("environment overrides: %w", err)
	}
	c.Normalize()
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports the first violation.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves Timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Resolve runs the whole pipeline: the YAML file at path, then variables from
// dotenvPath (if it exists), then the process environment, which wins over the
// .env file. The result is validated.
func Resolve(path, dotenvPath string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	environ, err := mergedEnviron(dotenvPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergedEnviron(dotenvPath string) (map[string]string, error) {
	environ := make(map[string]string)

	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
		}
		for k, v := range vars {
			environ[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return environ, nil
}
