package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the api process reads from the environment.
type Config struct {
	Env  string
	Port string

	JWTSecret string
	JWTTTL    time.Duration

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	CORSOrigins []string

	CartIdleTTL       time.Duration
	CartSweepInterval time.Duration

	// zero disables the periodic insights refresh
	InsightsRefreshInterval time.Duration

	R2 R2Config

	GeminiAPIKey string
	GeminiModel  string

	// optional bootstrap admin account
	AdminEmail    string
	AdminPassword string
}

type R2Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" &&
		c.Bucket != "" && c.PublicBaseURL != ""
}

// Required keys; the process refuses to start without them.
var Required = []string{
	"JWT_SECRET",
	"DATABASE_URL",
}

// Load reads .env (outside production) and the process environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	for _, k := range Required {
		if os.Getenv(k) == "" {
			return nil, fmt.Errorf("missing env var: %s", k)
		}
	}

	cfg := &Config{
		Env:           getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "8000"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		R2: R2Config{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}

	var err error
	if cfg.JWTTTL, err = durationEnv("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CartIdleTTL, err = durationEnv("CART_IDLE_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CartSweepInterval, err = durationEnv("CART_SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CartSweepInterval <= 0 {
		return nil, fmt.Errorf("invalid CART_SWEEP_INTERVAL: must be positive, got %s", cfg.CartSweepInterval)
	}
	if cfg.InsightsRefreshInterval, err = durationEnv("INSIGHTS_REFRESH_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	maxConns, err := intEnv("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := intEnv("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = int32(maxConns)
	cfg.DBMinConns = int32(minConns)

	return cfg, nil
}

// IsProduction is true when APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
