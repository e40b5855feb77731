package models

import (
	"gbs/src/types"
	"time"
)

// RoomBlock marks a single night as unavailable for a room regardless of
// reservation state. One row per room per night, enforced by the composite
// unique index.
type RoomBlock struct {
	ID     uint      `gorm:"primarykey" json:"id"`
	RoomID uint      `gorm:"uniqueIndex:idx_room_blocks_room_date" json:"room_id,omitempty"`
	Date   time.Time `gorm:"uniqueIndex:idx_room_blocks_room_date" json:"date,omitempty"`
	Reason string    `json:"reason,omitempty"`

	Room Room `json:"room,omitempty"`

	types.Timestamps
}
