package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNightCount(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, NightCount(checkIn, checkOut))
}

func TestNightCountIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)
	early := time.Date(2025, 6, 4, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, 3, NightCount(late, early))

	noonish := time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 4, 18, 45, 0, 0, time.UTC)

	assert.Equal(t, 3, NightCount(noonish, evening))
}

func TestNightCountNonPositive(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, NightCount(day, day))
	assert.Equal(t, -3, NightCount(day.AddDate(0, 0, 3), day))
}

func TestCanonicalInstant(t *testing.T) {
	morning := time.Date(2025, 3, 30, 8, 15, 42, 0, time.UTC)
	night := time.Date(2025, 3, 30, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, CanonicalInstant(morning), CanonicalInstant(night))
	assert.Equal(t, 12, CanonicalInstant(morning).Hour())
}
