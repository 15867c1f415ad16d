package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	CORS    CORSConfig    `yaml:"cors"`
	Jobs    JobsConfig    `yaml:"jobs"`
}

// HTTPConfig: WriteTimeout cubre el enriquecimiento (hasta gemini.timeout por endpoint).
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"QMS_HTTP_ADDR" env-default:":8001"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"QMS_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"QMS_HTTP_WRITE_TIMEOUT" env-default:"90s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"QMS_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig: driver memory | postgres | sqlite. El pool solo aplica a postgres.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"QMS_DB_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"QMS_DB_DSN" env-default:"data/qms.sqlite"`

	MaxOpenConns    int           `yaml:"max_open_conns" env:"QMS_DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"QMS_DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"QMS_DB_CONN_MAX_IDLE_TIME" env-default:"5m"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"QMS_DB_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"QMS_DB_CONNECT_TIMEOUT" env-default:"3s"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app" env:"APP_NAME" env-default:"qms-backend"`
}

// GeminiConfig: sin APIKey el enriquecimiento queda deshabilitado (sin error).
type GeminiConfig struct {
	APIKey    string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model     string        `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-pro"`
	Endpoints []string      `yaml:"endpoints" env:"GEMINI_ENDPOINTS" env-separator:"," env-default:"https://generativelanguage.googleapis.com/v1,https://generativelanguage.googleapis.com/v1beta"`
	Timeout   time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT" env-default:"40s"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"QMS_CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// JobsConfig: digest periódico de eventos high-risk (solo log).
type JobsConfig struct {
	DigestEnabled bool   `yaml:"digest_enabled" env:"QMS_DIGEST_ENABLED" env-default:"false"`
	DigestSpec    string `yaml:"digest_spec" env:"QMS_DIGEST_SPEC" env-default:"0 7 * * *"`
}

// Load lee .env (si existe), luego el yaml en path (si se indica) y por último env vars.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	path = strings.TrimSpace(path)
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv usa QMS_CONFIG como path opcional del yaml.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv("QMS_CONFIG"))
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres", "sqlite":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Gemini.Timeout <= 0 {
		return errors.New("gemini.timeout must be positive")
	}
	return nil
}

// GeminiEnabled: hay credencial.
func (c Config) GeminiEnabled() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}
