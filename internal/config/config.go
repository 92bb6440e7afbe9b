package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete pipeline configuration. Values come from built-in
// defaults, optionally a YAML file, then environment variables (prefix
// ECOPANEL), each layer overriding the previous one.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the base directory for all pipeline artifacts.
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR"`
}

// SourcesConfig describes where the three raw datasets come from.
type SourcesConfig struct {
	OWIDCO2URL           string        `yaml:"owid_co2_url" envconfig:"OWID_CO2_URL" validate:"required,url"`
	SustainableEnergyURL string        `yaml:"sustainable_energy_url" envconfig:"SUSTAINABLE_ENERGY_URL" validate:"required,url"`
	CountriesSQLitePath  string        `yaml:"countries_sqlite_path" envconfig:"COUNTRIES_SQLITE_PATH"`
	CountriesTable       string        `yaml:"countries_table" envconfig:"COUNTRIES_TABLE"`
	RequestTimeout       time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	RequestsPerSecond    float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	MaxRetries           int           `yaml:"max_retries" envconfig:"MAX_RETRIES" validate:"min=0,max=10"`
}

// PipelineConfig holds the analytical parameters of the preparation steps.
type PipelineConfig struct {
	MinYear          int     `yaml:"min_year" envconfig:"MIN_YEAR" validate:"min=1750"`
	MaxYear          int     `yaml:"max_year" envconfig:"MAX_YEAR" validate:"min=1750"`
	MaxMissingPct    float64 `yaml:"max_missing_pct" envconfig:"MAX_MISSING_PCT" validate:"min=0,max=100"`
	IQRMultiplier    float64 `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER" validate:"gt=0"`
	ZScoreThreshold  float64 `yaml:"zscore_threshold" envconfig:"ZSCORE_THRESHOLD" validate:"gt=0"`
	QuantileBins     int     `yaml:"quantile_bins" envconfig:"QUANTILE_BINS" validate:"min=2,max=10"`
	SafeCountryMatch bool    `yaml:"safe_country_match" envconfig:"SAFE_COUNTRY_MATCH"`
}

// TracingConfig controls the optional OpenTelemetry stage spans.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
}

// defaultConfig returns the built-in defaults. Defaults live here rather than
// in envconfig tags: a tag default would be re-applied on every Process call
// and stomp values a config file already set.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/pipeline.log",
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
		Sources: SourcesConfig{
			OWIDCO2URL:           "https://nyc3.digitaloceanspaces.com/owid-public/data/co2/owid-co2-data.csv",
			SustainableEnergyURL: "https://storage.googleapis.com/kaggle-data/global-data-on-sustainable-energy.csv",
			CountriesSQLitePath:  "countries-of-the-world-2023.sqlite",
			CountriesTable:       "countries",
			RequestTimeout:       5 * time.Minute,
			RequestsPerSecond:    1,
			MaxRetries:           3,
		},
		Pipeline: PipelineConfig{
			MinYear:         2000,
			MaxYear:         2020,
			MaxMissingPct:   30,
			IQRMultiplier:   1.5,
			ZScoreThreshold: 3,
			QuantileBins:    4,
		},
	}
}

// Load builds the configuration: defaults first, then the YAML file at
// configFile when present (pass "" to skip), then environment variables on
// top, so the environment always wins.
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("ECOPANEL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks struct tags and cross-field constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Pipeline.MinYear > c.Pipeline.MaxYear {
		return fmt.Errorf("min_year %d is after max_year %d", c.Pipeline.MinYear, c.Pipeline.MaxYear)
	}
	return nil
}
