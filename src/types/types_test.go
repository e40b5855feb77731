package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(RESERVATION_PENDING, RESERVATION_CONFIRMED))
	assert.True(t, CanTransition(RESERVATION_PENDING, RESERVATION_PAID))
	assert.True(t, CanTransition(RESERVATION_PENDING, RESERVATION_CANCELLED))
	assert.True(t, CanTransition(RESERVATION_CONFIRMED, RESERVATION_PAID))
	assert.True(t, CanTransition(RESERVATION_CONFIRMED, RESERVATION_CANCELLED))
}

func TestCanTransitionTerminalStates(t *testing.T) {
	assert.False(t, CanTransition(RESERVATION_PAID, RESERVATION_CONFIRMED))
	assert.False(t, CanTransition(RESERVATION_PAID, RESERVATION_CANCELLED))
	assert.False(t, CanTransition(RESERVATION_CANCELLED, RESERVATION_PENDING))
	assert.False(t, CanTransition(RESERVATION_CANCELLED, RESERVATION_PAID))
	assert.False(t, CanTransition(RESERVATION_CONFIRMED, RESERVATION_PENDING))
	assert.False(t, CanTransition(RESERVATION_PENDING, RESERVATION_PENDING))
}
