package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrSecretMissing = errors.New("JWT_SECRET is not set")

// Config agrupa todo lo que la app lee de env.
// El .env se carga en main (godotenv); aquí solo se lee os.Getenv.
type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string

	TokenTTL   time.Duration
	BcryptCost int

	LogLevel  string
	LogFormat string
	AppName   string
}

// FromEnv lee la config. Solo JWT_SECRET es obligatorio; sin DB_DSN la app
// corre con almacenamiento en memoria (modo dev).
func FromEnv() (Config, error) {
	cfg := Config{
		Port:       getenv("PORT", "8080"),
		DBDSN:      os.Getenv("DB_DSN"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
		LogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:  os.Getenv("LOG_FORMAT"),
		AppName:    getenv("APP_NAME", "pet-care-api"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrSecretMissing
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= bcrypt.MinCost && n <= bcrypt.MaxCost {
			cfg.BcryptCost = n
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
