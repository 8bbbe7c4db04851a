package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type SuggestSlotsInput struct {
	StableID   uint
	FacilityID uint

	// meia-noite no timezone da hípica
	Date time.Time

	DurationMinutes int
	HorseIDs        []uint
	ExternalHorses  int

	// início da janela rejeitada; ordena as sugestões por proximidade
	RequestedStart time.Time
}

// ======================================================
// USE CASE
// ======================================================

type SuggestSlots struct {
	repo domain.Repository
}

func NewSuggestSlots(repo domain.Repository) *SuggestSlots {
	return &SuggestSlots{repo: repo}
}

// Execute propõe janelas alternativas com capacidade suficiente na data.
// Lista vazia é resultado válido ("lotado hoje"), não erro.
func (uc *SuggestSlots) Execute(
	ctx context.Context,
	in SuggestSlotsInput,
) ([]domain.SuggestedSlot, error) {

	if in.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	facility, err := uc.repo.GetFacilityWithSchedule(ctx, in.StableID, in.FacilityID)
	if err != nil {
		return nil, httperr.ErrBusiness("facility_not_found")
	}

	if err := domain.ValidateFacility(facility); err != nil {
		return nil, err
	}

	horses, err := countHorses(ctx, uc.repo, in.StableID, in.HorseIDs, in.ExternalHorses)
	if err != nil {
		return nil, err
	}

	avail := domain.EffectiveAvailability(facility.TimeBlocks, facility.Exceptions, in.Date)
	if len(avail) == 0 {
		// dia fechado: curto-circuito, sem varrer bloco nenhum
		return []domain.SuggestedSlot{}, nil
	}

	dayStart := in.Date
	dayEnd := dayStart.Add(24 * time.Hour)

	active, err := uc.repo.ListActiveReservations(ctx, facility.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return domain.SuggestSlots(domain.SuggestInput{
		Date:           in.Date,
		Duration:       time.Duration(in.DurationMinutes) * time.Minute,
		Horses:         horses,
		MaxHorses:      facility.MaxHorsesPerReservation,
		StepMinutes:    facility.MinSlotMinutes,
		Blocks:         avail,
		Existing:       domain.LoadActive(active),
		RequestedStart: in.RequestedStart,
	}), nil
}
