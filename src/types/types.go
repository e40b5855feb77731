package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type ReservationStatus string

const (
	RESERVATION_PENDING   ReservationStatus = "pending"
	RESERVATION_CONFIRMED ReservationStatus = "confirmed"
	RESERVATION_PAID      ReservationStatus = "paid"
	RESERVATION_CANCELLED ReservationStatus = "cancelled"
)

// reservationTransitions lists the administrator-driven status moves.
// paid and cancelled are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	RESERVATION_PENDING:   {RESERVATION_CONFIRMED, RESERVATION_PAID, RESERVATION_CANCELLED},
	RESERVATION_CONFIRMED: {RESERVATION_PAID, RESERVATION_CANCELLED},
}

func CanTransition(from, to ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PriceBreakdown struct {
	NightlyBasePerPerson int64 `json:"nightly_base_per_person"`
	Nights               uint  `json:"nights"`
	Persons              uint  `json:"persons"`
	Total                int64 `json:"total"`
}

type ReservationRoomItem struct {
	RoomID uint `json:"room" binding:"required"`
	Guests uint `json:"guests" binding:"required,min=1"`
}

type AvailabilityQuery struct {
	Property string `form:"property"`
	CheckIn  string `form:"check_in" binding:"required,bookingdate"`
	CheckOut string `form:"check_out" binding:"required,bookingdate,afterdate=CheckIn"`
	Guests   uint   `form:"guests" binding:"required,min=1"`
}

type AvailabilityProperty struct {
	ID                 uint  `json:"id"`
	BasePricePerPerson int64 `json:"base_price_per_person"`
}

type AvailabilityRoom struct {
	ID       uint `json:"id"`
	Capacity uint `json:"capacity"`
}

type AvailabilitySuggestion struct {
	Items []ReservationRoomItem `json:"items"`
	Price PriceBreakdown        `json:"price"`
}

type AvailabilityResult struct {
	Property  AvailabilityProperty   `json:"property"`
	FreeRooms []AvailabilityRoom     `json:"free_rooms"`
	Suggested AvailabilitySuggestion `json:"suggested"`
}

type CreateReservationRequestBody struct {
	Property string                `json:"property" binding:"required"`
	CheckIn  string                `json:"check_in" binding:"required,bookingdate"`
	CheckOut string                `json:"check_out" binding:"required,bookingdate,afterdate=CheckIn"`
	Items    []ReservationRoomItem `json:"items" binding:"required,min=1,dive"`
	Customer JSONB                 `json:"customer,omitempty"`
	Payment  JSONB                 `json:"payment,omitempty"`
	Channel  string                `json:"channel,omitempty"`
}

type CreatePropertyRequestBody struct {
	Name               string `json:"name" binding:"required"`
	BasePricePerPerson int64  `json:"base_price_per_person" binding:"required,min=1"`
	Currency           string `json:"currency,omitempty"`
}

type CreateRoomRequestBody struct {
	PropertyID uint   `json:"property" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Capacity   uint   `json:"capacity" binding:"required,min=1"`
}

type CreateRoomBlockRequestBody struct {
	RoomID uint   `json:"room" binding:"required"`
	Date   string `json:"date" binding:"required,bookingdate"`
	Reason string `json:"reason,omitempty"`
}

type UpdateReservationStatusRequestBody struct {
	Status ReservationStatus `json:"status" binding:"required,oneof=confirmed paid cancelled"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CodeRequestParams struct {
	Code string `uri:"code" binding:"required"`
}
