package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldWindow(t *testing.T) {
	t.Setenv("HOLD_WINDOW_MINUTES", "")
	assert.Equal(t, 30*time.Minute, HoldWindow())

	t.Setenv("HOLD_WINDOW_MINUTES", "45")
	assert.Equal(t, 45*time.Minute, HoldWindow())

	t.Setenv("HOLD_WINDOW_MINUTES", "bogus")
	assert.Equal(t, 30*time.Minute, HoldWindow())

	t.Setenv("HOLD_WINDOW_MINUTES", "0")
	assert.Equal(t, 30*time.Minute, HoldWindow())
}

func TestPoolLimits(t *testing.T) {
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "")
	assert.Equal(t, 10, MaxIdleConns())
	assert.Equal(t, 100, MaxOpenConns())

	t.Setenv("DATABASE_MAX_IDLE_CONNS", "4")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "25")
	assert.Equal(t, 4, MaxIdleConns())
	assert.Equal(t, 25, MaxOpenConns())

	t.Setenv("DATABASE_MAX_OPEN_CONNS", "-1")
	assert.Equal(t, 100, MaxOpenConns())
}

func TestGetDSN(t *testing.T) {
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("DATABASE_USER", "gbs")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_NAME", "gbs")
	t.Setenv("DATABASE_PORT", "5432")
	t.Setenv("DATABASE_SSLMODE", "disable")
	t.Setenv("DATABASE_TIMEZONE", "UTC")
	assert.Equal(t, "host=localhost user=gbs password=secret dbname=gbs port=5432 sslmode=disable TimeZone=UTC", GetDSN())
}
