package models

import "gbs/src/types"

type Property struct {
	ID                 uint   `gorm:"primarykey" json:"id"`
	Name               string `json:"name,omitempty"`
	Slug               string `gorm:"uniqueIndex" json:"slug,omitempty"`
	BasePricePerPerson int64  `json:"base_price_per_person"`
	Currency           string `gorm:"default:'usd'" json:"currency,omitempty"`

	Rooms []Room `json:"rooms,omitempty"`

	types.Timestamps
}
