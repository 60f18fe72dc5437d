package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/display"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "regression_model.json", cfg.Models.Regression)
	assert.Equal(t, "classification_model.json", cfg.Models.Classification)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 128, cfg.Cache.Size)
	assert.False(t, cfg.Schema.Strict)
	assert.Equal(t, display.Formatter{Currency: "$", Language: display.French}, cfg.Formatter())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  regression: /srv/models/reg.yaml
display:
  language: en
  currency: "€"
schema:
  strict: true
cache:
  size: 0
`), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/models/reg.yaml", cfg.Models.Regression)
	assert.Equal(t, "classification_model.json", cfg.Models.Classification)
	assert.True(t, cfg.Schema.Strict)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.Equal(t, "€12.00", cfg.Formatter().Price(12))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{name: "empty regression path", key: "models.regression", val: ""},
		{name: "empty classification path", key: "models.classification", val: ""},
		{name: "unknown language", key: "display.language", val: "de"},
		{name: "negative cache", key: "cache.size", val: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
