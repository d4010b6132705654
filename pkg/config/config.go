package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn warning error"`

	HTTPPort int `validate:"gt=0,lt=65536"`

	StorageDriver string `validate:"oneof=memory sqlite"`
	SQLitePath    string
	SessionTTL    time.Duration `validate:"gte=0"`

	CatalogPath    string
	CurrencySymbol string `validate:"required"`
}

// Load reads an optional .env file and then the environment. Values already
// set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	port, err := getEnvInt("HTTP_PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	ttl, err := getEnvDuration("SESSION_TTL", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       port,
		StorageDriver:  getEnv("STORAGE_DRIVER", "memory"),
		SQLitePath:     getEnv("SQLITE_PATH", "falc.db"),
		SessionTTL:     ttl,
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)

	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}

	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}
