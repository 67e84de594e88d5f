package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BasePath       string
	DBHost         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBCharset      string
	SessionSecret  []byte
	SessionMaxAge  int
	BcryptCost     int
	Port           string
	LogLevel       string
	Environment    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config := &Config{}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if len(sessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}
	config.SessionSecret = []byte(sessionSecret)

	config.BasePath = getEnvWithDefault("BASE_PATH", "")
	config.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	config.DBName = getEnvWithDefault("DB_NAME", "golden_girl")
	config.DBUser = getEnvWithDefault("DB_USER", "root")
	config.DBPassword = os.Getenv("DB_PASSWORD")
	config.DBCharset = getEnvWithDefault("DB_CHARSET", "utf8mb4")
	config.Port = getEnvWithDefault("PORT", "8080")
	config.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	config.Environment = getEnvWithDefault("ENVIRONMENT", "development")

	maxAge, err := strconv.Atoi(getEnvWithDefault("SESSION_MAX_AGE", "86400"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_MAX_AGE: %v", err)
	}
	config.SessionMaxAge = maxAge

	cost, err := strconv.Atoi(getEnvWithDefault("BCRYPT_COST", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	config.BcryptCost = cost

	return config, nil
}

// DSN builds the MySQL data source name from the configured credentials.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName, c.DBCharset)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
