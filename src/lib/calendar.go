package lib

import (
	"math"
	"time"
)

// refZone is the fixed reference offset all stay dates are normalized into.
// Pinning dates to noon in a fixed offset keeps night counts stable across
// DST transitions and stray time-of-day components.
var refZone = time.FixedZone("UTC", 0)

const msPerNight = 24 * 60 * 60 * 1000

func CanonicalInstant(t time.Time) time.Time {
	y, m, d := t.In(refZone).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, refZone)
}

// NightCount returns the whole nights between check-in and check-out.
// Callers must reject results <= 0.
func NightCount(checkIn, checkOut time.Time) int {
	diff := CanonicalInstant(checkOut).Sub(CanonicalInstant(checkIn))
	return int(math.Round(float64(diff.Milliseconds()) / msPerNight))
}
