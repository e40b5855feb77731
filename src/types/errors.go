package types

import "errors"

// Domain errors surfaced by the availability and reservation paths. All of
// them are caller-recoverable except ErrCodeGenerationFailed, which signals
// an exhausted retry budget and is reported as an internal fault.
var (
	ErrRoomNotFound         = errors.New("ROOM_NOT_FOUND")
	ErrCapacityExceeded     = errors.New("CAPACITY_EXCEEDED")
	ErrPropertyNotFound     = errors.New("PROPERTY_NOT_FOUND")
	ErrDatesNotAvailable    = errors.New("DATES_NOT_AVAILABLE")
	ErrCodeGenerationFailed = errors.New("CODE_GENERATION_FAILED")
	ErrNotEnoughCapacity    = errors.New("NOT_ENOUGH_CAPACITY")
)
