package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SimulatorURL  string
	JWTSecret     string
	QueueCapacity int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	capacity, err := strconv.Atoi(getEnv("QUEUE_CAPACITY", "1000"))
	if err != nil || capacity <= 0 {
		capacity = 1000
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SimulatorURL:  getEnv("SIMULATOR_URL", "http://localhost:8081"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		QueueCapacity: capacity,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
