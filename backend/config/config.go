package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Artifact storage: "local" or "b2".
	StorageBackend string
	UploadDir      string
	B2AccountID    string
	B2AppKey       string
	B2Bucket       string
	MaxUploadMB    int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "classhub"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads/assignments"),
		B2AccountID:    getEnv("B2_ACCOUNT_ID", ""),
		B2AppKey:       getEnv("B2_APP_KEY", ""),
		B2Bucket:       getEnv("B2_BUCKET", ""),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 50),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
