package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App  Client
	API  API
	Mock MockServer
}

type Client struct {
	Environment string
	LogFilePath string
}

type API struct {
	BaseURL        string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

type MockServer struct {
	Port               string
	CorsAllowedOrigins string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: Client{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "client.log"),
		},
		API: API{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8000"),
			RequestTimeout: time.Duration(getEnvAsInt("API_REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
			UploadTimeout:  time.Duration(getEnvAsInt("API_UPLOAD_TIMEOUT_SECONDS", 300)) * time.Second,
		},
		Mock: MockServer{
			Port:               getEnv("MOCK_SERVER_PORT", "8000"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
