// Package config loads the command line configuration from a viper instance:
// defaults, an optional drafter.yaml and DRAFTER_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drafter/drafter/internal/page"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override settings, e.g.
// DRAFTER_DOCUMENT_FORMAT=png
const EnvPrefix = "DRAFTER"

// Config is the complete configuration
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Document  DocumentConfig  `mapstructure:"document" yaml:"document"`
	Render    RenderConfig    `mapstructure:"render" yaml:"render"`
	Resources ResourcesConfig `mapstructure:"resources" yaml:"resources"`
}

// LoggerConfig holds the logger settings
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// DocumentConfig holds the defaults of rendered documents
type DocumentConfig struct {
	Format      string  `mapstructure:"format" yaml:"format"`
	PageSize    string  `mapstructure:"page_size" yaml:"page_size"`
	Orientation string  `mapstructure:"orientation" yaml:"orientation"`
	Margin      float64 `mapstructure:"margin" yaml:"margin"`
	Title       string  `mapstructure:"title" yaml:"title"`
	Author      string  `mapstructure:"author" yaml:"author"`
	Subject     string  `mapstructure:"subject" yaml:"subject"`
	Keywords    string  `mapstructure:"keywords" yaml:"keywords"`
	Creator     string  `mapstructure:"creator" yaml:"creator"`
}

// RenderConfig holds the backend settings
type RenderConfig struct {
	NoBackgrounds bool     `mapstructure:"no_backgrounds" yaml:"no_backgrounds"`
	NoBorders     bool     `mapstructure:"no_borders" yaml:"no_borders"`
	DebugBoxes    bool     `mapstructure:"debug_boxes" yaml:"debug_boxes"`
	DPI           float64  `mapstructure:"dpi" yaml:"dpi"`
	Compress      bool     `mapstructure:"compress" yaml:"compress"`
	FontDirs      []string `mapstructure:"font_dirs" yaml:"font_dirs"`
}

// ResourcesConfig controls how images and stylesheets are fetched
type ResourcesConfig struct {
	SearchPaths []string      `mapstructure:"search_paths" yaml:"search_paths"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SetDefaults registers the default of every setting
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "drafter")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)

	// -- Document --
	v.SetDefault("document.format", "pdf")
	v.SetDefault("document.page_size", "A4")
	v.SetDefault("document.orientation", "")
	v.SetDefault("document.margin", 0)
	v.SetDefault("document.title", "")
	v.SetDefault("document.author", "")
	v.SetDefault("document.subject", "")
	v.SetDefault("document.keywords", "")
	v.SetDefault("document.creator", "drafter")

	// -- Render --
	v.SetDefault("render.dpi", 96)
	v.SetDefault("render.compress", true)
	v.SetDefault("render.no_backgrounds", false)
	v.SetDefault("render.no_borders", false)
	v.SetDefault("render.debug_boxes", false)
	v.SetDefault("render.font_dirs", []string{})

	// -- Resources --
	v.SetDefault("resources.timeout", "30s")
	v.SetDefault("resources.search_paths", []string{})
}

// New returns a viper instance with defaults and environment overrides
// registered. It does not read a config file.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads a config file into v. With an empty path drafter.yaml is
// looked up in the working directory and a missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}
	v.SetConfigName("drafter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// NewConfigFromViper decodes and validates the configuration held by v
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems at once
func (c *Config) Validate() error {
	var result *multierror.Error
	switch c.Logger.Format {
	case "console", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	switch strings.ToLower(c.Document.Format) {
	case "pdf", "png":
	default:
		result = multierror.Append(result, fmt.Errorf("document.format must be pdf or png, got %q", c.Document.Format))
	}
	if _, err := page.ParseSize(c.Document.PageSize); err != nil {
		result = multierror.Append(result, fmt.Errorf("document.page_size: %w", err))
	}
	if _, err := page.ParseOrientation(c.Document.Orientation); err != nil {
		result = multierror.Append(result, fmt.Errorf("document.orientation: %w", err))
	}
	if c.Document.Margin < 0 {
		result = multierror.Append(result, fmt.Errorf("document.margin must not be negative"))
	}
	if c.Render.DPI <= 0 {
		result = multierror.Append(result, fmt.Errorf("render.dpi must be positive"))
	}
	if c.Resources.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("resources.timeout must not be negative"))
	}
	if c.Logger.LogFile != "" && c.Logger.MaxSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("logger.max_size must be positive when logging to a file"))
	}
	return result.ErrorOrNil()
}
