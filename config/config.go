package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DEFAULT_ENV_FILE = ".env"

type Config struct {
	// Provider
	ProviderAPIKey  string `env:"OPENAI_API_KEY,required,notEmpty"`
	ProviderBaseURL string `env:"PROVIDER_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ProviderModel   string `env:"PROVIDER_MODEL" envDefault:"image-stylization-v1"`
	// 0 leaves the transport default in place
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"0s"`

	// Server
	Host        string `env:"HOST"`
	Port        int    `env:"PORT" envDefault:"5003"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// Uploads
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Logging
	ErrLogFile string `env:"ERR_LOG_FILE"`

	// CORS / rate limit
	AllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimitPerMin int      `env:"RATE_LIMIT_PER_MIN" envDefault:"0"`
}

var (
	ErrInvalidPort           = errors.New("PORT must be between 1 and 65535")
	ErrInvalidMaxUploadBytes = errors.New("MAX_UPLOAD_BYTES must be greater than 0")
	ErrEmptyModel            = errors.New("PROVIDER_MODEL must not be empty")
	ErrInvalidRateLimit      = errors.New("RATE_LIMIT_PER_MIN must not be negative")
	ErrIncompleteTLS         = errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
)

// Load reads an optional .env file from the working directory,
// then parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(DEFAULT_ENV_FILE); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DEFAULT_ENV_FILE, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.MaxUploadBytes <= 0 {
		return ErrInvalidMaxUploadBytes
	}
	if c.ProviderModel == "" {
		return ErrEmptyModel
	}
	if c.RateLimitPerMin < 0 {
		return ErrInvalidRateLimit
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return ErrIncompleteTLS
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) UsesTLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
