package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	DBPath        string
	JWTSigningKey string
	TokenTTL      time.Duration
}

// FromEnv builds a Server config from the environment so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("CURATOR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbPath := os.Getenv("CURATOR_DB_PATH")
	if dbPath == "" {
		dbPath = "curator.db"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	return Server{
		Addr:          addr,
		DBPath:        dbPath,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
	}
}
