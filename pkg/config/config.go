package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Flat-file storage configuration
	Storage StorageConfig `mapstructure:"storage"`

	// JWT configuration
	JWT JWTConfig `mapstructure:"jwt"`

	// Bootstrap configuration
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// StorageConfig holds the flat-file store layout: a base directory plus one
// file name per entity store. Nothing else in the system knows file paths.
type StorageConfig struct {
	DataDir           string `mapstructure:"data_dir"`
	UsersFile         string `mapstructure:"users_file"`
	PatientsFile      string `mapstructure:"patients_file"`
	ConsultationsFile string `mapstructure:"consultations_file"`
	PrescriptionsFile string `mapstructure:"prescriptions_file"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	AccessTokenTTL int    `mapstructure:"access_token_ttl"`
	Issuer         string `mapstructure:"issuer"`
	Audience       string `mapstructure:"audience"`
}

// BootstrapConfig controls store creation and demo seeding at startup
type BootstrapConfig struct {
	SeedSampleData bool `mapstructure:"seed_sample_data"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/mentcare")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables
	overrideWithEnv(&config)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	// Storage defaults match the legacy desktop layout (data/*.csv)
	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("storage.users_file", "users.csv")
	viper.SetDefault("storage.patients_file", "patients.csv")
	viper.SetDefault("storage.consultations_file", "consultations.csv")
	viper.SetDefault("storage.prescriptions_file", "prescriptions.csv")

	// JWT defaults
	viper.SetDefault("jwt.secret_key", "mentcare-dev-secret")
	viper.SetDefault("jwt.access_token_ttl", 3600) // 1 hour
	viper.SetDefault("jwt.issuer", "mentcare-records")
	viper.SetDefault("jwt.audience", "mentcare-users")

	// Bootstrap defaults
	viper.SetDefault("bootstrap.seed_sample_data", true)

	// Logging defaults
	viper.SetDefault("log_level", "info")
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if dataDir := os.Getenv("MENTCARE_DATA_DIR"); dataDir != "" {
		config.Storage.DataDir = dataDir
	}

	if jwtSecret := os.Getenv("JWT_SECRET_KEY"); jwtSecret != "" {
		config.JWT.SecretKey = jwtSecret
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.JWT.SecretKey == "" {
		return fmt.Errorf("JWT secret key is required")
	}

	if config.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	return nil
}
