package models

import "time"

type Horse struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StableID uint `gorm:"index" json:"stable_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Breed     string `gorm:"size:100" json:"breed"`
	BirthYear int    `json:"birth_year"`
	Notes     string `gorm:"size:255" json:"notes"`
	PhotoURL  string `gorm:"size:512" json:"photo_url"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
