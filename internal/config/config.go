package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvProduction disables loading of the local dotenv file.
const EnvProduction = "PRODUCTION"

// DotenvPath is where local overrides live outside production.
const DotenvPath = "config/.env"

// ErrMissingSecret is returned by RequireAuth when JWT_SECRET_KEY is unset.
var ErrMissingSecret = errors.New("JWT_SECRET_KEY is required")

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Settle"`
		Port int    `envconfig:"PORT" default:"8080"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"settle"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	CORS struct {
		Origin string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	}

	Auth struct {
		Secret string `envconfig:"JWT_SECRET_KEY"`
		Cookie string `envconfig:"AUTH_COOKIE" default:"token"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// RequireAuth reports whether the settings needed to verify session tokens are
// present. Only the API server serves authenticated routes.
func (c *Config) RequireAuth() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}

	return nil
}

func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != EnvProduction {
		if err := godotenv.Load(DotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", DotenvPath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
