package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/audit"
	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
	"github.com/BruksfildServices01/stable-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type UpdateReservationInput struct {
	StableID      uint
	UserID        uint
	UserRole      string
	ReservationID uint

	Start time.Time
	End   time.Time

	HorseIDs       []uint
	ExternalHorses int
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewUpdateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *UpdateReservation {
	return &UpdateReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute edita horário/cavalos/notas de uma reserva ativa, revalidando
// tudo e excluindo a própria reserva da checagem de conflito.
func (uc *UpdateReservation) Execute(
	ctx context.Context,
	in UpdateReservationInput,
) (*models.FacilityReservation, error) {

	res, err := uc.repo.GetReservation(ctx, in.StableID, in.ReservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if err := domain.CanEdit(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	// só o dono da reserva ou um gestor editam
	if res.UserID != in.UserID && !models.CanManage(in.UserRole) {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	facility, err := uc.repo.GetFacilityWithSchedule(ctx, in.StableID, res.FacilityID)
	if err != nil {
		return nil, httperr.ErrBusiness("facility_not_found")
	}

	if err := domain.ValidateFacility(facility); err != nil {
		return nil, err
	}

	horses, err := fetchHorses(ctx, uc.repo, in.StableID, in.HorseIDs)
	if err != nil {
		return nil, err
	}
	if in.ExternalHorses < 0 {
		return nil, httperr.ErrBusiness("invalid_horse_count")
	}

	if err := domain.ValidateWindow(facility, in.Start, in.End, len(horses)+in.ExternalHorses); err != nil {
		return nil, err
	}

	// mover a reserva respeita a mesma janela de planejamento da criação
	if !res.StartTime.Equal(in.Start) || !res.EndTime.Equal(in.End) {
		stable, err := uc.repo.GetStableByID(ctx, in.StableID)
		if err != nil {
			return nil, err
		}
		now := timezone.NowIn(stable.Timezone)
		if err := domain.ValidatePlanningWindow(facility, in.Start, now); err != nil {
			return nil, err
		}
	}

	avail := domain.EffectiveAvailability(facility.TimeBlocks, facility.Exceptions, in.Start)
	if len(avail) == 0 {
		return nil, httperr.ErrBusiness("day_closed")
	}
	if !domain.WithinAvailability(avail, in.Start, in.Start, in.End) {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	oldDay := res.StartTime.Format("2006-01-02")

	res.StartTime = in.Start
	res.EndTime = in.End
	res.Horses = horses
	res.ExternalHorses = in.ExternalHorses
	res.Notes = in.Notes

	if err := uc.repo.UpdateReservationChecked(ctx, facility, res); err != nil {
		return nil, err
	}

	uc.cache.InvalidateFacilityDay(ctx, facility.ID, oldDay)
	uc.cache.InvalidateFacilityDay(ctx, facility.ID, in.Start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StableID: in.StableID,
		UserID:   &in.UserID,
		Action:   "reservation_updated",
		Entity:   "facility_reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
