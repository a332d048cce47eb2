package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret       string
	BackendBaseURL  string
	BackendAPIKey   string
	InstitutionName string
	LogoPath        string
	BatchPause      time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using system environment")
	} else {
		log.Println("[INFO] .env file loaded")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	BackendBaseURL = GetEnv("HMS_BACKEND_URL", "http://localhost:8080")
	BackendAPIKey = GetEnv("HMS_API_KEY")
	InstitutionName = GetEnv("INSTITUTION_NAME")
	LogoPath = GetEnv("LOGO_PATH")
	BatchPause = envDuration("BATCH_PAUSE_MS", 300*time.Millisecond)

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	}
	if BackendAPIKey == "" {
		log.Println("[ERROR] HMS_API_KEY is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		log.Printf("[WARN] %s=%q is not a millisecond count, using default", key, v)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
