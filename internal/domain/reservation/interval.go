package reservation

import "time"

// Overlaps compara intervalos semiabertos [aStart, aEnd) e [bStart, bEnd).
// Pontas encostadas (aEnd == bStart) não contam como sobreposição.
// A comparação é por instante absoluto, nunca por string de relógio local.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overlapping devolve as reservas ativas que cruzam a janela candidata.
// excludeID > 0 tira a própria reserva do conjunto (edição não conflita
// consigo mesma).
func Overlapping(existing []Booking, start, end time.Time, excludeID uint) []Booking {
	var out []Booking
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(b.Start, b.End, start, end) {
			out = append(out, b)
		}
	}
	return out
}
