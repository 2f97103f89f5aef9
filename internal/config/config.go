package config

import (
	"os"
	"strconv"
	"time"

	"creature_packs/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Catalog cache / rate limiter backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// External creature data provider
	PokeAPIBaseURL string

	// Store limits
	BoosterpackAmountLimit int

	// Rate limits
	APIRateLimit       int
	APIRateWindow      time.Duration
	AuthRateLimit      int
	AuthRateWindow     time.Duration
	PurchaseRateLimit  int
	PurchaseRateWindow time.Duration

	// Passive balance accrual
	AccrualInterval time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, falling back to an .env
// file when present.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("POKEAPI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://pokeapi.co/api/v2"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		PokeAPIBaseURL: baseURL,

		BoosterpackAmountLimit: envInt("BOOSTERPACK_AMOUNT_LIMIT", 25),

		APIRateLimit:       envInt("API_RATE_LIMIT", 60),
		APIRateWindow:      envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:      envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:     envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		PurchaseRateLimit:  envInt("PURCHASE_RATE_LIMIT", 30),
		PurchaseRateWindow: envSeconds("PURCHASE_RATE_WINDOW_SECONDS", time.Minute),

		AccrualInterval: envSeconds("ACCRUAL_INTERVAL_SECONDS", 5*time.Minute),

		LogLevel: os.Getenv("LOG_LEVEL"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
