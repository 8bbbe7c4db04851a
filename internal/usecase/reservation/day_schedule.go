package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/dto"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
)

type GetDaySchedule struct {
	repo domain.Repository
}

func NewGetDaySchedule(repo domain.Repository) *GetDaySchedule {
	return &GetDaySchedule{repo: repo}
}

// Execute monta a grade diária de uma instalação: slots na granularidade
// mínima, cada um com a capacidade restante, mais as reservas do dia.
func (uc *GetDaySchedule) Execute(
	ctx context.Context,
	stableID uint,
	facilityID uint,
	date time.Time,
) (*dto.DayScheduleDTO, error) {

	facility, err := uc.repo.GetFacilityWithSchedule(ctx, stableID, facilityID)
	if err != nil {
		return nil, httperr.ErrBusiness("facility_not_found")
	}

	out := &dto.DayScheduleDTO{
		FacilityID:              facility.ID,
		Date:                    date.Format("2006-01-02"),
		MaxHorsesPerReservation: facility.MaxHorsesPerReservation,
		Slots:                   []dto.DayScheduleSlotDTO{},
		Reservations:            []dto.ReservationListDTO{},
	}

	avail := domain.EffectiveAvailability(facility.TimeBlocks, facility.Exceptions, date)
	if len(avail) == 0 {
		out.Closed = true
		return out, nil
	}

	dayStart := date
	dayEnd := dayStart.Add(24 * time.Hour)

	all, err := uc.repo.ListActiveReservations(ctx, facility.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	active := domain.LoadActive(all)
	out.Reservations = toListDTOs(all)

	step := time.Duration(facility.MinSlotMinutes) * time.Minute
	if step <= 0 {
		step = 30 * time.Minute
	}

	for _, block := range avail {
		blockStart, blockEnd, err := block.Window(date)
		if err != nil {
			continue
		}

		for cur := blockStart; !cur.Add(step).After(blockEnd); cur = cur.Add(step) {
			// candidata vazia: sobra = teto - pico já ocupado no slot
			res := domain.EvaluateCapacity(
				active, cur, cur.Add(step), 0,
				facility.MaxHorsesPerReservation, 0,
			)
			out.Slots = append(out.Slots, dto.DayScheduleSlotDTO{
				StartTime:         cur,
				EndTime:           cur.Add(step),
				RemainingCapacity: res.RemainingCapacity,
				Full:              res.RemainingCapacity == 0,
			})
		}
	}

	return out, nil
}
