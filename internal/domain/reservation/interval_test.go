package reservation

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"cruzamento parcial", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contido", at(9, 0), at(11, 0), at(9, 30), at(10, 0), true},
		{"identicos", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"pontas encostadas nao sobrepoem", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"pontas encostadas invertido", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjuntos", at(9, 0), at(10, 0), at(14, 0), at(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverlapping_ExcludesSelf(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(10, 0), Horses: 1},
		{ID: 2, Start: at(9, 30), End: at(10, 30), Horses: 1},
	}

	// edição da reserva 1: ela não conflita consigo mesma
	got := Overlapping(existing, at(9, 0), at(10, 0), 1)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only booking 2, got %+v", got)
	}

	// sem exclusão, as duas cruzam a janela
	got = Overlapping(existing, at(9, 0), at(10, 0), 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 overlapping bookings, got %d", len(got))
	}
}
