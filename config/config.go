package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	APP_URL    string
	APP_ENV    string

	MIDTRANS_SERVER_KEY    string
	MIDTRANS_CLIENT_KEY    string
	MIDTRANS_IS_PRODUCTION bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_URL = getEnv("APP_URL", "http://localhost:"+PORT)
	APP_ENV = getEnv("APP_ENV", "development")

	MIDTRANS_SERVER_KEY = mustEnv("MIDTRANS_SERVER_KEY")
	MIDTRANS_CLIENT_KEY = getEnv("MIDTRANS_CLIENT_KEY", "")
	MIDTRANS_IS_PRODUCTION = getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true"
}

func IsProduction() bool {
	return APP_ENV == "production"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
