package reservation

import (
	"sort"
	"time"
)

// MaxSuggestions limita a lista para continuar acionável na UI
const MaxSuggestions = 5

type SuggestInput struct {
	Date     time.Time // meia-noite no timezone da instalação
	Duration time.Duration
	Horses   int

	MaxHorses   int
	StepMinutes int // MinSlotMinutes da instalação

	Blocks   []TimeBlock // disponibilidade efetiva da data
	Existing []Booking   // reservas ativas da data

	// janela originalmente rejeitada; nunca é sugerida de volta
	RequestedStart time.Time
}

// SuggestSlots varre os blocos efetivos da data com janelas da duração
// pedida, em passos de StepMinutes, e devolve as que passam na checagem de
// capacidade. Ordena pela distância do início pedido (mais perto primeiro)
// e corta em MaxSuggestions. Dia fechado ou lotado ⇒ lista vazia, sem erro.
func SuggestSlots(in SuggestInput) []SuggestedSlot {
	if in.Duration <= 0 || in.StepMinutes <= 0 || len(in.Blocks) == 0 {
		return []SuggestedSlot{}
	}

	step := time.Duration(in.StepMinutes) * time.Minute
	var found []SuggestedSlot

	for _, block := range in.Blocks {
		blockStart, blockEnd, err := block.Window(in.Date)
		if err != nil {
			continue
		}

		for cur := blockStart; !cur.Add(in.Duration).After(blockEnd); cur = cur.Add(step) {
			if cur.Equal(in.RequestedStart) {
				continue
			}

			res := EvaluateCapacity(in.Existing, cur, cur.Add(in.Duration), in.Horses, in.MaxHorses, 0)
			if !res.Accepted {
				continue
			}

			found = append(found, SuggestedSlot{
				Start:             cur,
				End:               cur.Add(in.Duration),
				RemainingCapacity: res.RemainingCapacity,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		di := absDuration(found[i].Start.Sub(in.RequestedStart))
		dj := absDuration(found[j].Start.Sub(in.RequestedStart))
		if di == dj {
			return found[i].Start.Before(found[j].Start)
		}
		return di < dj
	})

	if len(found) > MaxSuggestions {
		found = found[:MaxSuggestions]
	}
	if found == nil {
		found = []SuggestedSlot{}
	}
	return found
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
