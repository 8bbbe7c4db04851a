package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

type Repository interface {
	// -------- Stable --------
	GetStableByID(
		ctx context.Context,
		id uint,
	) (*models.Stable, error)

	// -------- Facility --------
	GetFacility(
		ctx context.Context,
		stableID uint,
		facilityID uint,
	) (*models.Facility, error)

	// GetFacilityWithSchedule carrega também blocos semanais e exceções
	GetFacilityWithSchedule(
		ctx context.Context,
		stableID uint,
		facilityID uint,
	) (*models.Facility, error)

	// -------- Horses --------
	ListHorsesByIDs(
		ctx context.Context,
		stableID uint,
		ids []uint,
	) ([]models.Horse, error)

	// -------- Reservation (read) --------
	GetReservation(
		ctx context.Context,
		stableID uint,
		reservationID uint,
	) (*models.FacilityReservation, error)

	// ListActiveReservations devolve pending/confirmed da instalação que
	// cruzam [start, end), com os cavalos carregados
	ListActiveReservations(
		ctx context.Context,
		facilityID uint,
		start time.Time,
		end time.Time,
	) ([]models.FacilityReservation, error)

	ListReservationsForPeriod(
		ctx context.Context,
		stableID uint,
		start time.Time,
		end time.Time,
	) ([]models.FacilityReservation, error)

	// -------- Reservation (write) --------

	// CreateReservationChecked repete a checagem de capacidade dentro da
	// transação, com lock FOR UPDATE, antes de gravar (corrida de reserva)
	CreateReservationChecked(
		ctx context.Context,
		facility *models.Facility,
		res *models.FacilityReservation,
	) error

	// UpdateReservationChecked revalida excluindo a própria reserva
	UpdateReservationChecked(
		ctx context.Context,
		facility *models.Facility,
		res *models.FacilityReservation,
	) error

	UpdateReservation(
		ctx context.Context,
		res *models.FacilityReservation,
	) error
}
