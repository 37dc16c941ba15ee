package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "VOCA"

// ConfigPathEnv names the environment variable holding an explicit config file path.
const ConfigPathEnv = "VOCA_CONFIG"

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigPathEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidConfig, err)
	}

	switch cfg.Dataset.Source {
	case SourceSheets:
		if cfg.Dataset.Sheets.SpreadsheetID == "" || cfg.Dataset.Sheets.CredentialsFile == "" {
			return fmt.Errorf("%w: validation failed: sheets source needs spreadsheet_id and credentials_file", ErrInvalidConfig)
		}
	case SourceSQL:
		if cfg.Dataset.SQL.Driver == "" || cfg.Dataset.SQL.URL == "" {
			return fmt.Errorf("%w: validation failed: sql source needs driver and url", ErrInvalidConfig)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("dataset.source", SourceCSV)
	v.SetDefault("dataset.csv_path", "vocabulary.csv")
	v.SetDefault("dataset.sheets.range", "A:Z")
	v.SetDefault("dataset.cache_seconds", 0)

	v.SetDefault("exam.fallback_span", 15)
	v.SetDefault("exam.message_max_chars", 200)
	v.SetDefault("exam.default_message", "오늘도 화이팅!")
	v.SetDefault("exam.show_day_counts", true)

	v.SetDefault("session.ttl_minutes", 120)

	v.SetDefault("export.rate_per_second", 1.0)
	v.SetDefault("export.burst", 5)

	v.SetDefault("pdf.allow_core_font", false)
}

// bindEnvs registers every key so AutomaticEnv also reaches keys that have
// no default and never appear in a config file.
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"dataset.sheets.credentials_file",
		"dataset.sheets.spreadsheet_id",
		"dataset.sql.driver",
		"dataset.sql.url",
		"pdf.regular_font",
		"pdf.bold_font",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
