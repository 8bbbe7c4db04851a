package models

import "time"

type FacilityReservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// referência pública (uuid) usada pelos clientes
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	StableID uint   `json:"stable_id"`
	Stable   Stable `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stable"`

	FacilityID uint     `gorm:"index" json:"facility_id"`
	Facility   Facility `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"facility"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// cavalos da hípica presentes na reserva
	Horses []Horse `gorm:"many2many:reservation_horses;" json:"horses"`

	// cavalos convidados, só contam para a capacidade
	ExternalHorses int `json:"external_horses"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HorseCount é a contribuição da reserva para a capacidade:
// cavalos próprios distintos + cavalos externos.
func (r *FacilityReservation) HorseCount() int {
	seen := make(map[uint]struct{}, len(r.Horses))
	for _, h := range r.Horses {
		seen[h.ID] = struct{}{}
	}
	return len(seen) + r.ExternalHorses
}
