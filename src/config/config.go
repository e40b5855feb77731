package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

const (
	CODE_PREFIX       = "BM"
	CODE_LENGTH       = 6
	CODE_MAX_ATTEMPTS = 5
)

// HoldWindow is how long a pending reservation keeps its rooms before the
// expiration job reclaims them.
func HoldWindow() time.Duration {
	raw := os.Getenv("HOLD_WINDOW_MINUTES")
	if raw == "" {
		return 30 * time.Minute
	}
	mins, err := strconv.Atoi(raw)
	if err != nil || mins < 1 {
		return 30 * time.Minute
	}
	return time.Duration(mins) * time.Minute
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func MaxIdleConns() int {
	return envInt("DATABASE_MAX_IDLE_CONNS", 10)
}

func MaxOpenConns() int {
	return envInt("DATABASE_MAX_OPEN_CONNS", 100)
}
