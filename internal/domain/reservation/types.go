package reservation

import (
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// Booking é a visão mínima de uma reserva ativa que o motor de
// capacidade precisa: intervalo [Start, End) e quantos cavalos ocupa.
type Booking struct {
	ID     uint
	Start  time.Time
	End    time.Time
	Horses int
}

// Load projeta uma reserva persistida na visão do motor.
func Load(r *models.FacilityReservation) Booking {
	return Booking{
		ID:     r.ID,
		Start:  r.StartTime,
		End:    r.EndTime,
		Horses: r.HorseCount(),
	}
}

// LoadActive filtra só o que conta para capacidade (pending/confirmed).
func LoadActive(rs []models.FacilityReservation) []Booking {
	out := make([]Booking, 0, len(rs))
	for i := range rs {
		if !CountsTowardCapacity(Status(rs[i].Status)) {
			continue
		}
		out = append(out, Load(&rs[i]))
	}
	return out
}

// TimeBlock é um bloco de disponibilidade em hora local ("HH:MM").
type TimeBlock struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Window materializa o bloco na data e timezone recebidos.
func (b TimeBlock) Window(date time.Time) (time.Time, time.Time, error) {
	from, err := time.Parse("15:04", b.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse("15:04", b.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	loc := date.Location()
	start := time.Date(date.Year(), date.Month(), date.Day(), from.Hour(), from.Minute(), 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), to.Hour(), to.Minute(), 0, 0, loc)
	return start, end, nil
}

// CapacityResult é o veredito do motor para uma janela candidata.
// Rejeição por capacidade não é erro: é resultado de negócio.
type CapacityResult struct {
	Accepted             bool      `json:"accepted"`
	PeakConcurrentHorses int       `json:"peak_concurrent_horses"`
	RemainingCapacity    int       `json:"remaining_capacity"`
	Conflicts            []Booking `json:"conflicts"`
}

// SuggestedSlot é uma janela alternativa com capacidade suficiente.
type SuggestedSlot struct {
	Start             time.Time `json:"start_time"`
	End               time.Time `json:"end_time"`
	RemainingCapacity int       `json:"remaining_capacity"`
}
