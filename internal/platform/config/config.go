package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LLMBaseURL        string
	LLMAPIKey         string
	LLMModel          string
	LLMTimeoutSeconds int

	CompletionMaxTokens int
	ReviewMaxTokens     int

	CompletionCacheTTL  time.Duration
	ReviewLockTTL       time.Duration
	EntitlementCacheTTL time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:       getEnv("API_PORT", "8080"),
		JWTKey:        []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:        time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "tle_zone_db"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		LLMBaseURL:        getEnv("LLM_BASE_URL", "http://localhost:1234/v1"),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),

		CompletionMaxTokens: getEnvAsInt("AI_COMPLETION_MAX_TOKENS", 128),
		ReviewMaxTokens:     getEnvAsInt("AI_REVIEW_MAX_TOKENS", 1024),

		CompletionCacheTTL:  time.Duration(getEnvAsInt("AI_COMPLETION_CACHE_TTL_SECONDS", 600)) * time.Second,
		ReviewLockTTL:       time.Duration(getEnvAsInt("AI_REVIEW_LOCK_TTL_SECONDS", 120)) * time.Second,
		EntitlementCacheTTL: time.Duration(getEnvAsInt("ENTITLEMENT_CACHE_TTL_SECONDS", 60)) * time.Second,
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
