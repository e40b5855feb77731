package models

import "gbs/src/types"

type Room struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	PropertyID uint   `json:"property_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Capacity   uint   `gorm:"not null" json:"capacity"`

	Property Property `json:"property,omitempty"`

	types.Timestamps
}
