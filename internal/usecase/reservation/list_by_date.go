package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/dto"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
	"github.com/BruksfildServices01/stable-scheduler/internal/timezone"
)

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(
	repo domain.Repository,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
	}
}

func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	stableID uint,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	stable, err := uc.repo.GetStableByID(ctx, stableID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(stable.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

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

func toListDTOs(rs []models.FacilityReservation) []dto.ReservationListDTO {
	out := make([]dto.ReservationListDTO, 0, len(rs))
	for i := range rs {
		r := &rs[i]

		names := make([]string, 0, len(r.Horses))
		for _, h := range r.Horses {
			names = append(names, h.Name)
		}

		out = append(out, dto.ReservationListDTO{
			ID:             r.ID,
			Reference:      r.Reference,
			FacilityID:     r.FacilityID,
			FacilityName:   r.Facility.Name,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			Status:         r.Status,
			UserName:       r.User.Name,
			HorseNames:     names,
			ExternalHorses: r.ExternalHorses,
			Notes:          r.Notes,
		})
	}
	return out
}
