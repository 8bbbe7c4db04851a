package models

import "time"

// ===============================
// Facility
// ===============================

const (
	FacilityStatusActive      = "active"
	FacilityStatusInactive    = "inactive"
	FacilityStatusMaintenance = "maintenance"
)

type Facility struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StableID uint `gorm:"index" json:"stable_id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// categoria aberta: arena, paddock, walker, round_pen...
	Type   string `gorm:"size:50" json:"type"`
	Status string `gorm:"size:20;default:'active'" json:"status"`

	// teto de cavalos simultâneos em qualquer instante
	MaxHorsesPerReservation int `gorm:"default:1" json:"max_horses_per_reservation"`

	// granularidade mínima de agendamento, em minutos
	MinSlotMinutes int `gorm:"default:30" json:"min_slot_minutes"`

	// 0 = sem limite
	MaxMinutesPerReservation int `json:"max_minutes_per_reservation"`

	// janela de planejamento: 0 = sem limite / sem antecedência mínima
	PlanningOpensDays int `json:"planning_opens_days"`
	MinAdvanceMinutes int `json:"min_advance_minutes"`

	// duração precisa ser múltiplo de MinSlotMinutes?
	EnforceSlotMultiple bool `gorm:"default:true" json:"enforce_slot_multiple"`

	// reservas nascem "pending" quando true, "confirmed" quando false
	RequiresApproval bool `gorm:"default:false" json:"requires_approval"`

	TimeBlocks []FacilityTimeBlock `gorm:"constraint:OnDelete:CASCADE;" json:"time_blocks"`
	Exceptions []FacilityException `gorm:"constraint:OnDelete:CASCADE;" json:"exceptions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===============================
// Weekly availability
// ===============================

// WeekdayDefault marca um bloco válido para todos os dias sem override
const WeekdayDefault = -1

type FacilityTimeBlock struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	FacilityID uint `gorm:"index" json:"facility_id"`

	// -1 = default semanal; 0 (domingo) a 6 (sábado) = override do dia
	Weekday int `json:"weekday"`

	FromTime string `gorm:"size:5" json:"from_time"` // "08:00"
	ToTime   string `gorm:"size:5" json:"to_time"`   // "20:00"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===============================
// Date exceptions
// ===============================

type FacilityException struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	FacilityID uint `gorm:"index" json:"facility_id"`

	Date   string `gorm:"size:10;index" json:"date"` // "2006-01-02"
	Closed bool   `json:"closed"`

	// blocos substitutos quando Closed = false
	FromTime string `gorm:"size:5" json:"from_time"`
	ToTime   string `gorm:"size:5" json:"to_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
