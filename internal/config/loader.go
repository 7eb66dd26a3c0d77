package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sohd/internal/common/fsutil"
)

// Config holds runtime parameters for the service and the collector.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	// Inference service listen address.
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// Directory the artifact file names are resolved against.
	ArtifactsDir string `json:"artifacts_dir" yaml:"artifacts_dir" toml:"artifacts_dir"`
	ScalerFile   string `json:"scaler_file" yaml:"scaler_file" toml:"scaler_file"`
	ModelFile    string `json:"model_file" yaml:"model_file" toml:"model_file"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	Swagger      bool   `json:"swagger" yaml:"swagger" toml:"swagger"`

	CORS      CORSConfig      `json:"cors" yaml:"cors" toml:"cors"`
	Log       LogConfig       `json:"log" yaml:"log" toml:"log"`
	Collector CollectorConfig `json:"collector" yaml:"collector" toml:"collector"`
}

// CORSConfig is opt-in; when disabled no CORS middleware is installed.
type CORSConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// LogConfig selects level, format and an optional rotated file sink.
type LogConfig struct {
	Level      string `json:"level" yaml:"level" toml:"level"`
	Format     string `json:"format" yaml:"format" toml:"format"`
	File       string `json:"file" yaml:"file" toml:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days" toml:"max_age_days"`
}

// CollectorConfig configures the operator UI and the predict CLI.
type CollectorConfig struct {
	Addr           string `json:"addr" yaml:"addr" toml:"addr"`
	ServiceURL     string `json:"service_url" yaml:"service_url" toml:"service_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// Defaults applied when the corresponding fields are unset.
const (
	DefaultAddr           = ":8000"
	DefaultArtifactsDir   = "outputs"
	DefaultScalerFile     = "scaler.json"
	DefaultModelFile      = "random_forest_model.json"
	DefaultMaxBodyBytes   = 1 << 20
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultCollectorAddr  = ":8501"
	DefaultServiceURL     = "http://api:8000"
	DefaultTimeoutSeconds = 10
)

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ArtifactsDir == "" {
		c.ArtifactsDir = DefaultArtifactsDir
	}
	if c.ScalerFile == "" {
		c.ScalerFile = DefaultScalerFile
	}
	if c.ModelFile == "" {
		c.ModelFile = DefaultModelFile
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Collector.Addr == "" {
		c.Collector.Addr = DefaultCollectorAddr
	}
	if c.Collector.ServiceURL == "" {
		c.Collector.ServiceURL = DefaultServiceURL
	}
	if c.Collector.TimeoutSeconds <= 0 {
		c.Collector.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Validate reports values no default can repair.
func (c Config) Validate() error {
	var errs []error
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported %q (want console|json)", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "off":
	default:
		errs = append(errs, fmt.Errorf("log.level: unsupported %q", c.Log.Level))
	}
	if u := c.Collector.ServiceURL; !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		errs = append(errs, fmt.Errorf("collector.service_url: must be an http(s) URL, got %q", u))
	}
	return errors.Join(errs...)
}

// ScalerPath returns the scaler file resolved against ArtifactsDir.
func (c Config) ScalerPath() (string, error) { return fsutil.Resolve(c.ArtifactsDir, c.ScalerFile) }

// ModelPath returns the model file resolved against ArtifactsDir.
func (c Config) ModelPath() (string, error) { return fsutil.Resolve(c.ArtifactsDir, c.ModelFile) }

// Load reads a configuration file based on its extension and applies defaults.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
