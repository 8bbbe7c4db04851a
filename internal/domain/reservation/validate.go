package reservation

import (
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// ValidateWindow aplica as invariantes básicas da janela candidata.
// Entrada malformada é bug do caller: falha alto, antes de qualquer
// cálculo de sobreposição ou capacidade.
func ValidateWindow(f *models.Facility, start, end time.Time, horses int) error {
	if !end.After(start) {
		return httperr.ErrBusiness("invalid_window")
	}
	if horses < 0 {
		return httperr.ErrBusiness("invalid_horse_count")
	}

	dur := end.Sub(start)

	if f.EnforceSlotMultiple && f.MinSlotMinutes > 0 {
		slot := time.Duration(f.MinSlotMinutes) * time.Minute
		if dur%slot != 0 {
			return httperr.ErrBusiness("duration_not_slot_multiple")
		}
	}

	if f.MaxMinutesPerReservation > 0 {
		if dur > time.Duration(f.MaxMinutesPerReservation)*time.Minute {
			return httperr.ErrBusiness("duration_too_long")
		}
	}

	return nil
}

// ValidateFacility: só instalação ativa aceita reservas
func ValidateFacility(f *models.Facility) error {
	if f.Status != models.FacilityStatusActive {
		return httperr.ErrBusiness("facility_unavailable")
	}
	return nil
}

// ValidatePlanningWindow aplica a janela de planejamento no momento da
// criação/edição. "now" vem do caller: o motor não conhece relógio.
func ValidatePlanningWindow(f *models.Facility, start, now time.Time) error {
	if f.MinAdvanceMinutes > 0 {
		if start.Before(now.Add(time.Duration(f.MinAdvanceMinutes) * time.Minute)) {
			return httperr.ErrBusiness("too_soon")
		}
	}
	if f.PlanningOpensDays > 0 {
		if start.After(now.AddDate(0, 0, f.PlanningOpensDays)) {
			return httperr.ErrBusiness("too_far_ahead")
		}
	}
	return nil
}
