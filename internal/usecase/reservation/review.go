package reservation

import (
	"context"

	"github.com/BruksfildServices01/stable-scheduler/internal/audit"
	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// ReviewReservation cobre as decisões de gestor sobre reservas pendentes:
// confirmar ou rejeitar.
type ReviewReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewReviewReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Cache,
) *ReviewReservation {
	return &ReviewReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *ReviewReservation) Confirm(
	ctx context.Context,
	stableID uint,
	userID uint,
	userRole string,
	reservationID uint,
) (*models.FacilityReservation, error) {

	return uc.decide(ctx, stableID, userID, userRole, reservationID,
		domain.CanConfirm, domain.StatusConfirmed, "reservation_confirmed")
}

func (uc *ReviewReservation) Reject(
	ctx context.Context,
	stableID uint,
	userID uint,
	userRole string,
	reservationID uint,
) (*models.FacilityReservation, error) {

	return uc.decide(ctx, stableID, userID, userRole, reservationID,
		domain.CanReject, domain.StatusRejected, "reservation_rejected")
}

func (uc *ReviewReservation) decide(
	ctx context.Context,
	stableID uint,
	userID uint,
	userRole string,
	reservationID uint,
	guard func(domain.Status) error,
	next domain.Status,
	action string,
) (*models.FacilityReservation, error) {

	if !models.CanManage(userRole) {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	res, err := uc.repo.GetReservation(ctx, stableID, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if err := guard(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	res.Status = string(next)

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.cache.InvalidateFacilityDay(ctx, res.FacilityID, res.StartTime.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		StableID: stableID,
		UserID:   &userID,
		Action:   action,
		Entity:   "facility_reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
