// Package config reads carprice settings from viper.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/display"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting the commands use.
type Config struct {
	Models struct {
		Regression     string `mapstructure:"regression"`
		Classification string `mapstructure:"classification"`
	} `mapstructure:"models"`
	Server struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Logging struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	} `mapstructure:"logging"`
	Display struct {
		Language string `mapstructure:"language"`
		Currency string `mapstructure:"currency"`
	} `mapstructure:"display"`
	Schema struct {
		Strict bool `mapstructure:"strict"`
	} `mapstructure:"schema"`
	Cache struct {
		Size int `mapstructure:"size"`
	} `mapstructure:"cache"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("models.regression", "regression_model.json")
	v.SetDefault("models.classification", "classification_model.json")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("display.language", string(display.French))
	v.SetDefault("display.currency", "$")
	v.SetDefault("schema.strict", false)
	v.SetDefault("cache.size", 128)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Models.Regression == "" {
		return fmt.Errorf("%w: models.regression is required", ErrInvalidConfig)
	}
	if c.Models.Classification == "" {
		return fmt.Errorf("%w: models.classification is required", ErrInvalidConfig)
	}
	if _, err := display.ParseLanguage(c.Display.Language); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("%w: cache.size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Formatter builds the display formatter from the display section.
func (c *Config) Formatter() display.Formatter {
	return display.Formatter{
		Currency: c.Display.Currency,
		Language: display.Language(c.Display.Language),
	}
}
