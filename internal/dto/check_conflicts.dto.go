package dto

// CheckConflictsDTO é o resultado da checagem de conflito/capacidade.
// Reason distingue "lotado" de "fechado" de "instalação indisponível":
// a UI mostra mensagens diferentes para cada um.
type CheckConflictsDTO struct {
	HasConflicts            bool                    `json:"has_conflicts"`
	Reason                  string                  `json:"reason,omitempty"`
	Conflicts               []ReservationSummaryDTO `json:"conflicts"`
	MaxHorsesPerReservation int                     `json:"max_horses_per_reservation"`
	PeakConcurrentHorses    int                     `json:"peak_concurrent_horses"`
	RemainingCapacity       int                     `json:"remaining_capacity"`
}

const (
	ReasonCapacityExceeded    = "capacity_exceeded"
	ReasonOutsideAvailability = "outside_availability"
	ReasonDayClosed           = "day_closed"
	ReasonFacilityUnavailable = "facility_unavailable"
)

// SuggestedSlotDTO é uma janela alternativa pronta para exibição
type SuggestedSlotDTO struct {
	StartTime         string `json:"start_time"` // ISO8601
	EndTime           string `json:"end_time"`
	RemainingCapacity int    `json:"remaining_capacity"`
}
