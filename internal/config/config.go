// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Davis       DavisConfig       `mapstructure:"davis"`
	MeteoFrance MeteoFranceConfig `mapstructure:"meteofrance"`
	Scraper     ScraperConfig     `mapstructure:"scraper"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig carries the shared key checked on every ingestion endpoint.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type DavisConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	APISecret   string        `mapstructure:"api_secret"`
	StationID   int64         `mapstructure:"station_id"`
	StationUUID string        `mapstructure:"station_uuid"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UploadPath  string        `mapstructure:"upload_path"`
}

type MeteoFranceConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	StationID string        `mapstructure:"station_id"`
	Format    string        `mapstructure:"format"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ScraperConfig struct {
	URL          string `mapstructure:"url"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Station      string `mapstructure:"station"`
	DownloadPath string `mapstructure:"download_path"`
	FileType     string `mapstructure:"file_type"`
}

type SchedulerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	DavisTriggerFreq    time.Duration `mapstructure:"davis_trigger_freq"`
	CampbellTriggerFreq time.Duration `mapstructure:"campbell_trigger_freq"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("METEOHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.postgres.sslmode", "disable")
	viper.SetDefault("database.postgres.port", 5432)

	// Provider defaults
	viper.SetDefault("davis.base_url", "https://api.weatherlink.com/v2")
	viper.SetDefault("davis.timeout", "30s")
	viper.SetDefault("davis.upload_path", "./uploads/davis")
	viper.SetDefault("meteofrance.base_url", "https://public-api.meteofrance.fr/public/DPObs/v1")
	viper.SetDefault("meteofrance.format", "json")
	viper.SetDefault("meteofrance.timeout", "30s")

	// Scraper defaults
	viper.SetDefault("scraper.download_path", "./downloads")
	viper.SetDefault("scraper.file_type", "csv")

	// Scheduler defaults
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.davis_trigger_freq", "15m")
	viper.SetDefault("scheduler.campbell_trigger_freq", "60m")
}

func validateConfig(config *Config) error {
	if config.Database.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if config.Auth.APIKey == "" {
		return fmt.Errorf("auth api_key is required")
	}
	if config.Davis.StationUUID != "" {
		if _, err := uuid.Parse(config.Davis.StationUUID); err != nil {
			return fmt.Errorf("davis station_uuid is not a valid uuid: %w", err)
		}
	}
	return nil
}
