package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/unidist/internal/model"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, "div#mw-content-text > div.mw-parser-output > table tr ul li a", cfg.Source.Selector)
	assert.Equal(t, "unidist/1.0", cfg.Source.UserAgent)
	assert.Equal(t, "key", cfg.Geocode.KeyFile)
	assert.Empty(t, cfg.Geocode.BaseURL)
	assert.Equal(t, "output.csv", cfg.Output.Path)
	assert.InDelta(t, 37.388282, cfg.Reference.Latitude, 1e-9)
	assert.InDelta(t, -122.030361, cfg.Reference.Longitude, 1e-9)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
geocode:
  key_file: secrets/gmaps.key
output:
  path: results/near.csv
reference:
  latitude: 37.7749
  longitude: -122.4194
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secrets/gmaps.key", cfg.Geocode.KeyFile)
	assert.Equal(t, "results/near.csv", cfg.Output.Path)
	assert.Equal(t, model.Coordinate{Latitude: 37.7749, Longitude: -122.4194}, cfg.Reference)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
output:
  path: from-file.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("UNIDIST_OUTPUT_PATH", "from-env.csv")
	t.Setenv("UNIDIST_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "from-env.csv", cfg.Output.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("UNIDIST_SOURCE_URL", "http://localhost:8080/page")
	t.Setenv("UNIDIST_REFERENCE_LATITUDE", "40.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/page", cfg.Source.URL)
	assert.InDelta(t, 40.5, cfg.Reference.Latitude, 1e-9)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: [unterminated"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func validDefaults() *Config {
	return &Config{
		Source:    SourceConfig{URL: DefaultSourceURL, Selector: "a", UserAgent: "x"},
		Geocode:   GeocodeConfig{KeyFile: DefaultKeyFile},
		Output:    OutputConfig{Path: DefaultOutput},
		Reference: model.Coordinate{Latitude: DefaultLatitude, Longitude: DefaultLongitude},
	}
}

func TestValidate_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := validDefaults()
	cfg.Source.URL = ""
	cfg.Source.Selector = "  "
	cfg.Geocode.KeyFile = ""
	cfg.Output.Path = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.url is required")
	assert.Contains(t, err.Error(), "source.selector is required")
	assert.Contains(t, err.Error(), "geocode.key_file is required")
	assert.Contains(t, err.Error(), "output.path is required")
}

func TestValidate_ReferenceBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Reference.Latitude = 91
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference.latitude")

	cfg.Reference.Latitude = -90
	cfg.Reference.Longitude = -180.5
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference.longitude")

	cfg.Reference.Longitude = 180
	assert.NoError(t, cfg.Validate())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
