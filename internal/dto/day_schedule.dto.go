package dto

import "time"

// DayScheduleSlotDTO é um slot da grade diária com a capacidade restante
// ("3 vagas") já calculada para exibição.
type DayScheduleSlotDTO struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	RemainingCapacity int       `json:"remaining_capacity"`
	Full              bool      `json:"full"`
}

type DayScheduleDTO struct {
	FacilityID              uint                 `json:"facility_id"`
	Date                    string               `json:"date"`
	Closed                  bool                 `json:"closed"`
	MaxHorsesPerReservation int                  `json:"max_horses_per_reservation"`
	Slots                   []DayScheduleSlotDTO `json:"slots"`
	Reservations            []ReservationListDTO `json:"reservations"`
}
