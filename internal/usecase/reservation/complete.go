package reservation

import (
	"context"

	"github.com/BruksfildServices01/stable-scheduler/internal/audit"
	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
	"github.com/BruksfildServices01/stable-scheduler/internal/timezone"
)

type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewCompleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	stableID uint,
	userID uint,
	reservationID uint,
) (*models.FacilityReservation, error) {

	stable, err := uc.repo.GetStableByID(ctx, stableID)
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.GetReservation(ctx, stableID, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if err := domain.CanComplete(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	now := timezone.NowIn(stable.Timezone)
	res.Status = string(domain.StatusCompleted)
	res.CompletedAt = &now

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.cache.InvalidateFacilityDay(ctx, res.FacilityID, res.StartTime.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StableID: stableID,
		UserID:   &userID,
		Action:   "reservation_completed",
		Entity:   "facility_reservation",
		EntityID: &res.ID,
	})

	return res, nil
}

// MarkNoShow registra que ninguém apareceu; também libera a capacidade
func (uc *CompleteReservation) MarkNoShow(
	ctx context.Context,
	stableID uint,
	userID uint,
	userRole string,
	reservationID uint,
) (*models.FacilityReservation, error) {

	if !models.CanManage(userRole) {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	res, err := uc.repo.GetReservation(ctx, stableID, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if err := domain.CanMarkNoShow(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	res.Status = string(domain.StatusNoShow)

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.cache.InvalidateFacilityDay(ctx, res.FacilityID, res.StartTime.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StableID: stableID,
		UserID:   &userID,
		Action:   "reservation_no_show",
		Entity:   "facility_reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
