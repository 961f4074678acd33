package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/unidist/internal/fetcher"
	"github.com/sells-group/unidist/internal/model"
	"github.com/sells-group/unidist/internal/scrape"
)

// Config holds the full application configuration.
type Config struct {
	Source    SourceConfig     `yaml:"source" mapstructure:"source"`
	Geocode   GeocodeConfig    `yaml:"geocode" mapstructure:"geocode"`
	Output    OutputConfig     `yaml:"output" mapstructure:"output"`
	Reference model.Coordinate `yaml:"reference" mapstructure:"reference"`
	Log       LogConfig        `yaml:"log" mapstructure:"log"`
}

// SourceConfig points at the page the university names are scraped from.
type SourceConfig struct {
	URL       string `yaml:"url" mapstructure:"url"`
	Selector  string `yaml:"selector" mapstructure:"selector"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// GeocodeConfig holds Google Geocoding API settings.
type GeocodeConfig struct {
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// OutputConfig configures where the result table is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Defaults for the single supported run.
const (
	DefaultSourceURL = "https://en.wikipedia.org/wiki/List_of_colleges_and_universities_in_the_San_Francisco_Bay_Area"
	DefaultKeyFile   = "key"
	DefaultOutput    = "output.csv"
	DefaultLatitude  = 37.388282
	DefaultLongitude = -122.030361
)

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("UNIDIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.selector", scrape.DefaultSelector)
	v.SetDefault("source.user_agent", fetcher.DefaultUserAgent)
	v.SetDefault("geocode.key_file", DefaultKeyFile)
	v.SetDefault("geocode.base_url", "")
	v.SetDefault("output.path", DefaultOutput)
	v.SetDefault("reference.latitude", DefaultLatitude)
	v.SetDefault("reference.longitude", DefaultLongitude)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that every setting the run depends on is usable.
func (c *Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Source.URL) == "" {
		errs = append(errs, "source.url is required")
	}
	if strings.TrimSpace(c.Source.Selector) == "" {
		errs = append(errs, "source.selector is required")
	}
	if strings.TrimSpace(c.Geocode.KeyFile) == "" {
		errs = append(errs, "geocode.key_file is required")
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		errs = append(errs, "output.path is required")
	}
	if c.Reference.Latitude < -90 || c.Reference.Latitude > 90 {
		errs = append(errs, "reference.latitude must be between -90 and 90")
	}
	if c.Reference.Longitude < -180 || c.Reference.Longitude > 180 {
		errs = append(errs, "reference.longitude must be between -180 and 180")
	}
	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
