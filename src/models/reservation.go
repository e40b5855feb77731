package models

import (
	"gbs/src/types"
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	ID             uint         `gorm:"primarykey" json:"id"`
	Code           string       `gorm:"uniqueIndex" json:"code,omitempty"`
	PropertyID     uint         `json:"property_id,omitempty"`
	CheckIn        time.Time    `json:"check_in,omitempty"`
	CheckOut       time.Time    `json:"check_out,omitempty"`
	Nights         uint         `json:"nights,omitempty"`
	Guests         uint         `json:"guests,omitempty"`
	PricePerPerson int64        `json:"price_per_person,omitempty"`
	PriceTotal     int64        `json:"price_total,omitempty"`
	Status         string       `gorm:"default:'pending'" json:"status,omitempty"`
	Channel        string       `json:"channel,omitempty"`
	Customer       *types.JSONB `gorm:"type:jsonb" json:"customer,omitempty"`
	Payment        *types.JSONB `gorm:"type:jsonb" json:"payment,omitempty"`
	HoldExpiresAt  *time.Time   `json:"hold_expires_at,omitempty"`
	RequestID      *uuid.UUID   `gorm:"type:uuid" json:"-"`

	Property Property          `json:"property,omitempty"`
	Items    []ReservationItem `json:"items,omitempty"`

	types.Timestamps
}

// Price reports the breakdown the reservation was priced with.
func (r *Reservation) Price() types.PriceBreakdown {
	return types.PriceBreakdown{
		NightlyBasePerPerson: r.PricePerPerson,
		Nights:               r.Nights,
		Persons:              r.Guests,
		Total:                r.PriceTotal,
	}
}

type ReservationItem struct {
	ID            uint `gorm:"primarykey" json:"id"`
	ReservationID uint `gorm:"uniqueIndex:idx_reservation_items_room" json:"reservation_id,omitempty"`
	RoomID        uint `gorm:"uniqueIndex:idx_reservation_items_room" json:"room_id,omitempty"`
	Guests        uint `json:"guests"`

	Room Room `json:"room,omitempty"`

	types.Timestamps
}
