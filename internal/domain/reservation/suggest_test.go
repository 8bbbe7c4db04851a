package reservation

import (
	"testing"
	"time"
)

func suggestBase() SuggestInput {
	return SuggestInput{
		Date:           testDate(),
		Duration:       60 * time.Minute,
		Horses:         1,
		MaxHorses:      2,
		StepMinutes:    30,
		Blocks:         []TimeBlock{{From: "08:00", To: "12:00"}},
		RequestedStart: at(9, 0),
	}
}

func TestSuggestSlots_SkipsRequestedStart(t *testing.T) {
	in := suggestBase()

	slots := SuggestSlots(in)

	if len(slots) == 0 {
		t.Fatalf("expected suggestions on an empty day")
	}
	for _, s := range slots {
		if s.Start.Equal(in.RequestedStart) {
			t.Fatalf("rejected window suggested back: %s", s.Start.Format(time.RFC3339))
		}
	}
}

func TestSuggestSlots_OrderedByDistance(t *testing.T) {
	in := suggestBase()

	slots := SuggestSlots(in)

	// vizinhos imediatos do início pedido vêm primeiro; empate resolve
	// pelo mais cedo
	if !slots[0].Start.Equal(at(8, 30)) {
		t.Fatalf("first suggestion = %s, want 08:30", slots[0].Start.Format("15:04"))
	}
	if !slots[1].Start.Equal(at(9, 30)) {
		t.Fatalf("second suggestion = %s, want 09:30", slots[1].Start.Format("15:04"))
	}
}

func TestSuggestSlots_CapsAtMax(t *testing.T) {
	in := suggestBase()
	in.Blocks = []TimeBlock{{From: "06:00", To: "22:00"}}

	slots := SuggestSlots(in)

	if len(slots) != MaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", MaxSuggestions, len(slots))
	}
}

// Toda sugestão devolvida precisa passar de novo na checagem de
// capacidade com o mesmo snapshot.
func TestSuggestSlots_SuggestionsAreValid(t *testing.T) {
	in := suggestBase()
	in.Existing = []Booking{
		{ID: 1, Start: at(8, 0), End: at(10, 0), Horses: 2},
		{ID: 2, Start: at(10, 30), End: at(11, 30), Horses: 1},
	}

	slots := SuggestSlots(in)

	for _, s := range slots {
		res := EvaluateCapacity(in.Existing, s.Start, s.End, in.Horses, in.MaxHorses, 0)
		if !res.Accepted {
			t.Fatalf("suggested slot %s fails its own capacity check", s.Start.Format("15:04"))
		}
		if res.RemainingCapacity != s.RemainingCapacity {
			t.Fatalf("slot %s remaining = %d, recheck = %d",
				s.Start.Format("15:04"), s.RemainingCapacity, res.RemainingCapacity)
		}
	}
}

func TestSuggestSlots_FullyBookedDay(t *testing.T) {
	in := suggestBase()
	in.Existing = []Booking{
		{ID: 1, Start: at(8, 0), End: at(12, 0), Horses: 2},
	}

	slots := SuggestSlots(in)

	if slots == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(slots) != 0 {
		t.Fatalf("expected no suggestions on a full day, got %d", len(slots))
	}
}

func TestSuggestSlots_ClosedDay(t *testing.T) {
	in := suggestBase()
	in.Blocks = nil

	slots := SuggestSlots(in)

	if slots == nil || len(slots) != 0 {
		t.Fatalf("closed day must return empty slice, got %+v", slots)
	}
}

func TestSuggestSlots_WindowMustFitInsideBlock(t *testing.T) {
	in := suggestBase()
	in.Blocks = []TimeBlock{{From: "11:30", To: "12:00"}}

	// bloco de 30min não comporta janela de 60min
	if slots := SuggestSlots(in); len(slots) != 0 {
		t.Fatalf("expected no suggestions, got %+v", slots)
	}
}
