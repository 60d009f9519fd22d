package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	Env           string
	FrontendURL   string
	StreamKey     string
	StreamSecret  string
	StreamBaseURL string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":5000"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Env:           env,
		FrontendURL:   frontendURL,
		StreamKey:     os.Getenv("STREAM_API_KEY"),
		StreamSecret:  os.Getenv("STREAM_API_SECRET"),
		StreamBaseURL: os.Getenv("STREAM_BASE_URL"),
	}
}

func (c Config) Production() bool {
	return c.Env == "production"
}
