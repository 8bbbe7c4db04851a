package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Stable
// --------------------------------------------------

func (r *ReservationGormRepository) GetStableByID(
	ctx context.Context,
	id uint,
) (*models.Stable, error) {

	var stable models.Stable
	if err := r.db.WithContext(ctx).First(&stable, id).Error; err != nil {
		return nil, err
	}
	return &stable, nil
}

// --------------------------------------------------
// Facility
// --------------------------------------------------

func (r *ReservationGormRepository) GetFacility(
	ctx context.Context,
	stableID uint,
	facilityID uint,
) (*models.Facility, error) {

	var facility models.Facility
	if err := r.db.WithContext(ctx).
		Where("id = ? AND stable_id = ?", facilityID, stableID).
		First(&facility).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

func (r *ReservationGormRepository) GetFacilityWithSchedule(
	ctx context.Context,
	stableID uint,
	facilityID uint,
) (*models.Facility, error) {

	var facility models.Facility
	if err := r.db.WithContext(ctx).
		Preload("TimeBlocks").
		Preload("Exceptions").
		Where("id = ? AND stable_id = ?", facilityID, stableID).
		First(&facility).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

// --------------------------------------------------
// Horses
// --------------------------------------------------

func (r *ReservationGormRepository) ListHorsesByIDs(
	ctx context.Context,
	stableID uint,
	ids []uint,
) ([]models.Horse, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var horses []models.Horse
	if err := r.db.WithContext(ctx).
		Where("stable_id = ? AND id IN ?", stableID, ids).
		Find(&horses).Error; err != nil {
		return nil, err
	}
	return horses, nil
}

// --------------------------------------------------
// Reservation (read)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	stableID uint,
	reservationID uint,
) (*models.FacilityReservation, error) {

	var res models.FacilityReservation
	if err := r.db.WithContext(ctx).
		Preload("Horses").
		Where("id = ? AND stable_id = ?", reservationID, stableID).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) ListActiveReservations(
	ctx context.Context,
	facilityID uint,
	start time.Time,
	end time.Time,
) ([]models.FacilityReservation, error) {

	return listActive(r.db.WithContext(ctx), facilityID, start, end, false)
}

func (r *ReservationGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	stableID uint,
	start time.Time,
	end time.Time,
) ([]models.FacilityReservation, error) {

	var rs []models.FacilityReservation
	err := r.db.WithContext(ctx).
		Preload("Horses").
		Preload("Facility").
		Preload("User").
		Where(
			"stable_id = ? AND start_time >= ? AND start_time < ?",
			stableID, start, end,
		).
		Order("start_time ASC").
		Find(&rs).Error
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// listActive busca pending/confirmed que cruzam [start, end); com lock,
// segura as linhas até o commit da transação corrente
func listActive(
	tx *gorm.DB,
	facilityID uint,
	start time.Time,
	end time.Time,
	lock bool,
) ([]models.FacilityReservation, error) {

	q := tx.Preload("Horses").
		Where(
			"facility_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			facilityID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			end,
			start,
		).
		Order("start_time ASC")

	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rs []models.FacilityReservation
	if err := q.Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

// --------------------------------------------------
// Reservation (write)
// --------------------------------------------------

// CreateReservationChecked grava a reserva repetindo a checagem de
// capacidade dentro da transação. O snapshot usado na pré-validação pode
// envelhecer entre a checagem e o commit; aqui ele é relido com FOR UPDATE.
func (r *ReservationGormRepository) CreateReservationChecked(
	ctx context.Context,
	facility *models.Facility,
	res *models.FacilityReservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		existing, err := listActive(tx, facility.ID, res.StartTime, res.EndTime, true)
		if err != nil {
			return err
		}

		result := domain.EvaluateCapacity(
			domain.LoadActive(existing),
			res.StartTime,
			res.EndTime,
			res.HorseCount(),
			facility.MaxHorsesPerReservation,
			0,
		)
		if !result.Accepted {
			return httperr.ErrBusiness("capacity_exceeded")
		}

		return tx.Create(res).Error
	})
}

func (r *ReservationGormRepository) UpdateReservationChecked(
	ctx context.Context,
	facility *models.Facility,
	res *models.FacilityReservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		existing, err := listActive(tx, facility.ID, res.StartTime, res.EndTime, true)
		if err != nil {
			return err
		}

		result := domain.EvaluateCapacity(
			domain.LoadActive(existing),
			res.StartTime,
			res.EndTime,
			res.HorseCount(),
			facility.MaxHorsesPerReservation,
			res.ID,
		)
		if !result.Accepted {
			return httperr.ErrBusiness("capacity_exceeded")
		}

		if err := tx.Save(res).Error; err != nil {
			return err
		}
		// substitui o conjunto de cavalos da reserva
		return tx.Model(res).Association("Horses").Replace(res.Horses)
	})
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.FacilityReservation,
) error {
	return r.db.WithContext(ctx).Omit("Horses").Save(res).Error
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
