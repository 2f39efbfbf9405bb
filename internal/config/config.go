// README: Config loader with env defaults for HTTP, Gemini, Maps, Firestore, Redis and Postgres.
package config

import (
	"os"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	AI struct {
		GeminiKey string
		Model     string
	}
	Maps struct {
		APIKey string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Redis struct {
		Addr string
	}
	DB struct {
		DSN string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIP_HTTP_ADDR", ":8080")
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.AI.Model = envOrDefault("TRIP_GEMINI_MODEL", "gemini-2.5-flash")
	cfg.Maps.APIKey = envOrError("TRIP_MAPS_API_KEY")
	cfg.Firebase.ProjectID = envOrDefault("TRIP_FIREBASE_PROJECT_ID", "")
	cfg.Firebase.CredentialsFile = envOrDefault("TRIP_FIREBASE_CREDENTIALS", "")
	cfg.Redis.Addr = envOrDefault("TRIP_REDIS_ADDR", "localhost:6379")
	// Empty DSN runs the service without the generation-quota bound.
	cfg.DB.DSN = envOrDefault("TRIP_DB_DSN", "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}
