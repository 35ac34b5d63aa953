package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	TokenTTLHours int
	ServerPort    string

	// Polling intervals advertised to clients, in seconds. The dashboard
	// polls slower than participants because it also receives ws pushes
	// for its own writes.
	FacilitatorPollSeconds int
	ParticipantPollSeconds int
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "firedrill"),
		JWTSecret:              getEnv("JWT_SECRET", "super-secret-key-change-me"),
		TokenTTLHours:          getEnvInt("JWT_TTL_HOURS", 24),
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		FacilitatorPollSeconds: getEnvInt("FACILITATOR_POLL_SECONDS", 3),
		ParticipantPollSeconds: getEnvInt("PARTICIPANT_POLL_SECONDS", 2),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
