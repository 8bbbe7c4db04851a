package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/dto"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CheckConflictsInput struct {
	StableID   uint
	FacilityID uint

	Start time.Time
	End   time.Time

	HorseIDs       []uint
	ExternalHorses int

	// > 0 em edição: a própria reserva não conflita consigo mesma
	ExcludeReservationID uint
}

// ======================================================
// USE CASE
// ======================================================

type CheckConflicts struct {
	repo domain.Repository
}

func NewCheckConflicts(repo domain.Repository) *CheckConflicts {
	return &CheckConflicts{repo: repo}
}

// Execute roda o motor de conflito/capacidade sobre um snapshot fresco.
// Rejeições de negócio (lotado, fechado, indisponível) voltam como
// resultado, nunca como erro; só entrada inválida falha.
func (uc *CheckConflicts) Execute(
	ctx context.Context,
	in CheckConflictsInput,
) (*dto.CheckConflictsDTO, error) {

	facility, err := uc.repo.GetFacilityWithSchedule(ctx, in.StableID, in.FacilityID)
	if err != nil {
		return nil, httperr.ErrBusiness("facility_not_found")
	}

	horses, err := countHorses(ctx, uc.repo, in.StableID, in.HorseIDs, in.ExternalHorses)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateWindow(facility, in.Start, in.End, horses); err != nil {
		return nil, err
	}

	out := &dto.CheckConflictsDTO{
		Conflicts:               []dto.ReservationSummaryDTO{},
		MaxHorsesPerReservation: facility.MaxHorsesPerReservation,
	}

	if err := domain.ValidateFacility(facility); err != nil {
		out.HasConflicts = true
		out.Reason = dto.ReasonFacilityUnavailable
		return out, nil
	}

	avail := domain.EffectiveAvailability(facility.TimeBlocks, facility.Exceptions, in.Start)
	if len(avail) == 0 {
		out.HasConflicts = true
		out.Reason = dto.ReasonDayClosed
		return out, nil
	}
	if !domain.WithinAvailability(avail, in.Start, in.Start, in.End) {
		out.HasConflicts = true
		out.Reason = dto.ReasonOutsideAvailability
		return out, nil
	}

	active, err := uc.repo.ListActiveReservations(ctx, facility.ID, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	result := domain.EvaluateCapacity(
		domain.LoadActive(active),
		in.Start,
		in.End,
		horses,
		facility.MaxHorsesPerReservation,
		in.ExcludeReservationID,
	)

	out.PeakConcurrentHorses = result.PeakConcurrentHorses
	out.RemainingCapacity = result.RemainingCapacity
	for _, c := range result.Conflicts {
		out.Conflicts = append(out.Conflicts, dto.ReservationSummaryDTO{
			ID:        c.ID,
			StartTime: c.Start,
			EndTime:   c.End,
			Horses:    c.Horses,
		})
	}

	if !result.Accepted {
		out.HasConflicts = true
		out.Reason = dto.ReasonCapacityExceeded
	}

	return out, nil
}

// countHorses normaliza a lista de cavalos próprios (distintos, da própria
// hípica) e soma os externos.
func countHorses(
	ctx context.Context,
	repo domain.Repository,
	stableID uint,
	horseIDs []uint,
	external int,
) (int, error) {

	if external < 0 {
		return 0, httperr.ErrBusiness("invalid_horse_count")
	}

	ids := dedupeIDs(horseIDs)
	if len(ids) == 0 {
		return external, nil
	}

	horses, err := repo.ListHorsesByIDs(ctx, stableID, ids)
	if err != nil {
		return 0, err
	}
	if len(horses) != len(ids) {
		return 0, httperr.ErrBusiness("horse_not_found")
	}

	return len(horses) + external, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	var out []uint
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// fetchHorses devolve os próprios registros, validando dono e existência
func fetchHorses(
	ctx context.Context,
	repo domain.Repository,
	stableID uint,
	horseIDs []uint,
) ([]models.Horse, error) {

	ids := dedupeIDs(horseIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	horses, err := repo.ListHorsesByIDs(ctx, stableID, ids)
	if err != nil {
		return nil, err
	}
	if len(horses) != len(ids) {
		return nil, httperr.ErrBusiness("horse_not_found")
	}
	return horses, nil
}
