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

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute cancela pelo dono da reserva ou por um gestor. Reserva
// cancelada sai das contas de capacidade mas fica no histórico.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	stableID uint,
	userID uint,
	userRole string,
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

	if res.UserID != userID && !models.CanManage(userRole) {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	if err := domain.CanCancel(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	now := timezone.NowIn(stable.Timezone)
	res.Status = string(domain.StatusCancelled)
	res.CancelledAt = &now

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.cache.InvalidateFacilityDay(ctx, res.FacilityID, res.StartTime.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StableID: stableID,
		UserID:   &userID,
		Action:   "reservation_cancelled",
		Entity:   "facility_reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
