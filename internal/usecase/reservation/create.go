package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

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

type CreateReservationInput struct {
	StableID   uint
	UserID     uint
	FacilityID uint

	Start time.Time
	End   time.Time

	HorseIDs       []uint
	ExternalHorses int
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.FacilityReservation, error) {

	stable, err := uc.repo.GetStableByID(ctx, in.StableID)
	if err != nil {
		return nil, err
	}

	facility, err := uc.repo.GetFacilityWithSchedule(ctx, in.StableID, in.FacilityID)
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

	now := timezone.NowIn(stable.Timezone)
	if err := domain.ValidatePlanningWindow(facility, in.Start, now); err != nil {
		return nil, err
	}

	avail := domain.EffectiveAvailability(facility.TimeBlocks, facility.Exceptions, in.Start)
	if len(avail) == 0 {
		return nil, httperr.ErrBusiness("day_closed")
	}
	if !domain.WithinAvailability(avail, in.Start, in.Start, in.End) {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	res := &models.FacilityReservation{
		Reference:      uuid.NewString(),
		StableID:       in.StableID,
		FacilityID:     facility.ID,
		UserID:         in.UserID,
		StartTime:      in.Start,
		EndTime:        in.End,
		Status:         string(domain.InitialStatus(facility.RequiresApproval)),
		Horses:         horses,
		ExternalHorses: in.ExternalHorses,
		Notes:          in.Notes,
	}

	// a checagem de capacidade definitiva roda dentro da transação
	if err := uc.repo.CreateReservationChecked(ctx, facility, res); err != nil {
		return nil, err
	}

	uc.cache.InvalidateFacilityDay(ctx, facility.ID, in.Start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StableID: in.StableID,
		UserID:   &in.UserID,
		Action:   "reservation_created",
		Entity:   "facility_reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
