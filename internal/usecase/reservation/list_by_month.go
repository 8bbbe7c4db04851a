package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/dto"
	"github.com/BruksfildServices01/stable-scheduler/internal/timezone"
)

type ListReservationsByMonth struct {
	repo domain.Repository
}

func NewListReservationsByMonth(
	repo domain.Repository,
) *ListReservationsByMonth {
	return &ListReservationsByMonth{
		repo: repo,
	}
}

func (uc *ListReservationsByMonth) Execute(
	ctx context.Context,
	stableID uint,
	year int,
	month int,
) ([]dto.ReservationListDTO, error) {

	stable, err := uc.repo.GetStableByID(ctx, stableID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(stable.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	reservations, err := uc.repo.ListReservationsForPeriod(
		ctx,
		stableID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(reservations), nil
}
