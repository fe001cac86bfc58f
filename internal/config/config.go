package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

type Config struct {
	Port           string
	JWTSecret      string
	AuthEmail      string
	AuthPassword   string
	StorageBackend string
	BoltPath       string
	DBUrl          string
	SheetsURL      string
	GeminiAPIKey   string
	GeminiModel    string
	Timezone       string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	authEmail := getEnv("AUTH_EMAIL", "")
	authPassword := getEnv("AUTH_PASSWORD", "")
	if authEmail == "" || authPassword == "" {
		return nil, fmt.Errorf("AUTH_EMAIL and AUTH_PASSWORD are required")
	}

	backend := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", BackendBolt)))
	switch backend {
	case BackendBolt, BackendPostgres, BackendSheets:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %s, %s or %s", BackendBolt, BackendPostgres, BackendSheets)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      jwtSecret,
		AuthEmail:      authEmail,
		AuthPassword:   authPassword,
		StorageBackend: backend,
		BoltPath:       getEnv("BOLT_PATH", "data/sessions.db"),
		DBUrl:          getEnv("DB_URL", ""),
		SheetsURL:      getEnv("SHEETS_URL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		Timezone:       getEnv("TIMEZONE", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
