package reservation

import (
	"sort"
	"time"
)

// EvaluateCapacity decide se a janela candidata cabe na instalação.
//
// Sweep-line: coleta os limites (inícios e fins) das reservas que cruzam a
// janela, recortados em [start, end), e soma a ocupação em cada subintervalo.
// "Quantas reservas sobrepõem ≤ max" NÃO funciona: duas reservas podem se
// cruzar entre si sem nunca dividir o mesmo instante com a candidata.
//
// Função pura sobre o snapshot recebido; quem persiste é responsável por
// repetir a checagem dentro da transação (ver infra/repository).
func EvaluateCapacity(
	existing []Booking,
	start time.Time,
	end time.Time,
	horses int,
	maxHorses int,
	excludeID uint,
) CapacityResult {

	overlapping := Overlapping(existing, start, end, excludeID)

	candidate := Booking{Start: start, End: end, Horses: horses}
	all := make([]Booking, 0, len(overlapping)+1)
	all = append(all, overlapping...)
	all = append(all, candidate)

	peak := peakWithin(all, start, end)
	peakExisting := peakWithin(overlapping, start, end)

	remaining := maxHorses - peakExisting
	if remaining < 0 {
		remaining = 0
	}

	return CapacityResult{
		Accepted:             peak <= maxHorses,
		PeakConcurrentHorses: peak,
		RemainingCapacity:    remaining,
		Conflicts:            overlapping,
	}
}

// peakWithin devolve o máximo de cavalos simultâneos dentro de [start, end).
func peakWithin(bookings []Booking, start, end time.Time) int {
	if len(bookings) == 0 {
		return 0
	}

	bounds := []time.Time{start, end}
	for _, b := range bookings {
		if b.Start.After(start) && b.Start.Before(end) {
			bounds = append(bounds, b.Start)
		}
		if b.End.After(start) && b.End.Before(end) {
			bounds = append(bounds, b.End)
		}
	}

	sort.Slice(bounds, func(i, j int) bool { return bounds[i].Before(bounds[j]) })

	peak := 0
	for i := 0; i+1 < len(bounds); i++ {
		t1, t2 := bounds[i], bounds[i+1]
		if !t2.After(t1) {
			continue // limite duplicado
		}

		sum := 0
		for _, b := range bookings {
			if b.Start.Before(t2) && b.End.After(t1) {
				sum += b.Horses
			}
		}
		if sum > peak {
			peak = sum
		}
	}

	return peak
}
