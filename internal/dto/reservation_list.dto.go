package dto

import "time"

type ReservationListDTO struct {
	ID             uint      `json:"id"`
	Reference      string    `json:"reference"`
	FacilityID     uint      `json:"facility_id"`
	FacilityName   string    `json:"facility_name"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	UserName       string    `json:"user_name"`
	HorseNames     []string  `json:"horse_names"`
	ExternalHorses int       `json:"external_horses"`
	Notes          string    `json:"notes"`
}

// ReservationSummaryDTO é o resumo devolvido na lista de conflitos
type ReservationSummaryDTO struct {
	ID        uint      `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Horses    int       `json:"horses"`
}
