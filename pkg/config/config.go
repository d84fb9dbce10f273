package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Record store
	DBPath string `mapstructure:"db_path"`

	// Content area: "local" (ContentDir) or "s3" (S3Bucket)
	ContentBackend string `mapstructure:"content_backend"`
	ContentDir     string `mapstructure:"content_dir"`
	S3Bucket       string `mapstructure:"s3_bucket"`
	S3Region       string `mapstructure:"s3_region"`
	S3Endpoint     string `mapstructure:"s3_endpoint"`
	S3Prefix       string `mapstructure:"s3_prefix"`

	AllowedMediaTypes []string `mapstructure:"allowed_media_types"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile string `mapstructure:"log_file"`

	DevMode bool `mapstructure:"dev_mode"`

	ConfigPath string
}

const (
	DefaultConfigPath     = "/etc/garage/config.yml"
	DefaultAPIHost        = "0.0.0.0"
	DefaultAPIPort        = 5000
	DefaultDBPath         = "/var/lib/garage/garage.sqlite3"
	DefaultContentBackend = "local"
	DefaultContentDir     = "/var/lib/garage/uploads"
	DefaultS3Region       = "us-east-1"
	DefaultCORSOrigin     = "http://localhost:3000"

	ContentBackendLocal = "local"
	ContentBackendS3    = "s3"
)

var DefaultAllowedMediaTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// Load reads the YAML config file, then GARAGE_* environment variables. A
// .env file in the working directory is loaded into the environment first.
// The default config path may be missing; an explicit one may not.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("content_backend", DefaultContentBackend)
	v.SetDefault("content_dir", DefaultContentDir)
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_region", DefaultS3Region)
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_prefix", "")
	v.SetDefault("allowed_media_types", DefaultAllowedMediaTypes)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("cors_origins", []string{DefaultCORSOrigin})
	v.SetDefault("log_file", "")
	v.SetDefault("dev_mode", false)

	// Allow environment variable overrides
	v.SetEnvPrefix("GARAGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
		if explicit || !missing {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}

	switch c.ContentBackend {
	case ContentBackendLocal:
		if c.ContentDir == "" {
			return fmt.Errorf("content_dir is required for the local content backend")
		}
	case ContentBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 content backend")
		}
	default:
		return fmt.Errorf("content_backend must be 'local' or 's3'")
	}

	for _, mt := range c.AllowedMediaTypes {
		if !strings.Contains(mt, "/") {
			return fmt.Errorf("allowed_media_types: invalid media type %q", mt)
		}
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return c.DevMode || os.Getenv("GARAGE_DEV_MODE") == "1"
}
