package reservation

import (
	"testing"
)

// Cenário clássico: duas reservas de 1 cavalo já cruzadas entre si e uma
// candidata no miolo. Contagem de sobreposições diria 2 ≤ 2; a soma por
// instante chega a 3.
func TestEvaluateCapacity_PeakNotPairwise(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(10, 0), Horses: 1},
		{ID: 2, Start: at(9, 30), End: at(10, 30), Horses: 1},
	}

	res := EvaluateCapacity(existing, at(9, 45), at(10, 15), 1, 2, 0)

	if res.Accepted {
		t.Fatalf("expected rejection, got accepted")
	}
	if res.PeakConcurrentHorses != 3 {
		t.Fatalf("peak = %d, want 3", res.PeakConcurrentHorses)
	}
	if res.RemainingCapacity != 0 {
		t.Fatalf("remaining = %d, want 0", res.RemainingCapacity)
	}
	if len(res.Conflicts) != 2 {
		t.Fatalf("conflicts = %d, want 2", len(res.Conflicts))
	}
}

func TestEvaluateCapacity_AcceptsAfterBusyWindow(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(10, 0), Horses: 1},
		{ID: 2, Start: at(9, 30), End: at(10, 30), Horses: 1},
	}

	// [10:30, 11:00) encosta no fim da reserva 2: sem sobreposição
	res := EvaluateCapacity(existing, at(10, 30), at(11, 0), 1, 2, 0)

	if !res.Accepted {
		t.Fatalf("expected acceptance, got rejection")
	}
	if res.PeakConcurrentHorses != 1 {
		t.Fatalf("peak = %d, want 1", res.PeakConcurrentHorses)
	}
	if res.RemainingCapacity != 2 {
		t.Fatalf("remaining = %d, want 2", res.RemainingCapacity)
	}
	if len(res.Conflicts) != 0 {
		t.Fatalf("conflicts = %d, want 0", len(res.Conflicts))
	}
}

// Três reservas que se cruzam duas a duas, cada par dentro do teto, mas o
// instante comum soma acima dele.
func TestEvaluateCapacity_TripleOverlap(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(10, 0), Horses: 2},
		{ID: 2, Start: at(9, 30), End: at(10, 30), Horses: 2},
	}

	res := EvaluateCapacity(existing, at(9, 45), at(10, 15), 2, 5, 0)

	if res.Accepted {
		t.Fatalf("expected rejection: peak 6 > max 5")
	}
	if res.PeakConcurrentHorses != 6 {
		t.Fatalf("peak = %d, want 6", res.PeakConcurrentHorses)
	}
}

func TestEvaluateCapacity_WeightsByHorses(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(10, 0), Horses: 3},
	}

	// 3 ocupados + 2 candidatos = 5, exatamente no teto
	res := EvaluateCapacity(existing, at(9, 0), at(10, 0), 2, 5, 0)
	if !res.Accepted || res.PeakConcurrentHorses != 5 {
		t.Fatalf("accepted=%v peak=%d, want accepted peak 5", res.Accepted, res.PeakConcurrentHorses)
	}

	// um cavalo a mais estoura
	res = EvaluateCapacity(existing, at(9, 0), at(10, 0), 3, 5, 0)
	if res.Accepted {
		t.Fatalf("expected rejection at peak 6 > max 5")
	}
}

func TestEvaluateCapacity_ExcludeSelfOnEdit(t *testing.T) {
	existing := []Booking{
		{ID: 7, Start: at(9, 0), End: at(10, 0), Horses: 2},
	}

	// sem exclusão a própria reserva conta e estoura o teto
	res := EvaluateCapacity(existing, at(9, 0), at(10, 0), 2, 2, 0)
	if res.Accepted {
		t.Fatalf("expected rejection without self-exclusion")
	}

	// excluindo a si mesma, a edição mantém o mesmo horário sem conflito
	res = EvaluateCapacity(existing, at(9, 0), at(10, 0), 2, 2, 7)
	if !res.Accepted {
		t.Fatalf("expected acceptance when editing own window")
	}
	if len(res.Conflicts) != 0 {
		t.Fatalf("conflicts = %d, want 0", len(res.Conflicts))
	}
}

func TestEvaluateCapacity_EmptyFacility(t *testing.T) {
	res := EvaluateCapacity(nil, at(9, 0), at(10, 0), 1, 4, 0)

	if !res.Accepted {
		t.Fatalf("expected acceptance on empty facility")
	}
	if res.RemainingCapacity != 4 {
		t.Fatalf("remaining = %d, want 4", res.RemainingCapacity)
	}
}

// O pico recortado na janela candidata ignora o que acontece fora dela.
func TestEvaluateCapacity_PeakClampedToWindow(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(8, 0), End: at(9, 30), Horses: 2},
		{ID: 2, Start: at(8, 0), End: at(8, 30), Horses: 4}, // fora da janela
	}

	res := EvaluateCapacity(existing, at(9, 0), at(10, 0), 1, 3, 0)

	if !res.Accepted {
		t.Fatalf("expected acceptance: booking 2 ends before the window")
	}
	if res.PeakConcurrentHorses != 3 {
		t.Fatalf("peak = %d, want 3 (2 existing + 1 candidate)", res.PeakConcurrentHorses)
	}
}

func TestEvaluateCapacity_Monotonic(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(11, 0), Horses: 2},
		{ID: 2, Start: at(10, 0), End: at(12, 0), Horses: 1},
	}

	// aceita com n cavalos ⇒ aceita com menos; rejeita com n ⇒ rejeita com mais
	prev := true
	for horses := 1; horses <= 6; horses++ {
		res := EvaluateCapacity(existing, at(10, 0), at(11, 0), horses, 4, 0)
		if res.Accepted && !prev {
			t.Fatalf("acceptance is not monotonic at horses=%d", horses)
		}
		prev = res.Accepted
	}
}

func TestEvaluateCapacity_Idempotent(t *testing.T) {
	existing := []Booking{
		{ID: 1, Start: at(9, 0), End: at(10, 0), Horses: 1},
		{ID: 2, Start: at(9, 30), End: at(10, 30), Horses: 2},
	}

	first := EvaluateCapacity(existing, at(9, 15), at(10, 15), 1, 4, 0)
	second := EvaluateCapacity(existing, at(9, 15), at(10, 15), 1, 4, 0)

	if first.Accepted != second.Accepted ||
		first.PeakConcurrentHorses != second.PeakConcurrentHorses ||
		first.RemainingCapacity != second.RemainingCapacity {
		t.Fatalf("same snapshot produced different verdicts: %+v vs %+v", first, second)
	}
}

func TestPeakWithin_Bounds(t *testing.T) {
	bookings := []Booking{
		{Start: at(9, 0), End: at(10, 0), Horses: 2},
		{Start: at(9, 30), End: at(10, 30), Horses: 3},
	}

	peak := peakWithin(bookings, at(9, 0), at(10, 30))

	// pico nunca passa da soma total nem fica abaixo da maior reserva
	if peak > 5 {
		t.Fatalf("peak %d above total horses", peak)
	}
	if peak < 3 {
		t.Fatalf("peak %d below largest booking", peak)
	}
	if peak != 5 {
		t.Fatalf("peak = %d, want 5 in [09:30, 10:00)", peak)
	}
}

func TestPeakWithin_ZeroLengthGuard(t *testing.T) {
	bookings := []Booking{
		{Start: at(9, 0), End: at(9, 0), Horses: 2},
	}

	if peak := peakWithin(bookings, at(9, 0), at(10, 0)); peak != 0 {
		t.Fatalf("zero-length booking should not occupy, got peak %d", peak)
	}
}
