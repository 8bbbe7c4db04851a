package reservation

import (
	"context"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/stable-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/stable-scheduler/internal/dto"
	"github.com/BruksfildServices01/stable-scheduler/internal/httperr"
	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	stable       *models.Stable
	facility     *models.Facility
	horses       []models.Horse
	reservations []models.FacilityReservation
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetStableByID(ctx context.Context, id uint) (*models.Stable, error) {
	return r.stable, nil
}

func (r *fakeRepo) GetFacility(ctx context.Context, stableID, facilityID uint) (*models.Facility, error) {
	if r.facility == nil || r.facility.ID != facilityID {
		return nil, httperr.ErrBusiness("facility_not_found")
	}
	return r.facility, nil
}

func (r *fakeRepo) GetFacilityWithSchedule(ctx context.Context, stableID, facilityID uint) (*models.Facility, error) {
	return r.GetFacility(ctx, stableID, facilityID)
}

func (r *fakeRepo) ListHorsesByIDs(ctx context.Context, stableID uint, ids []uint) ([]models.Horse, error) {
	var out []models.Horse
	for _, id := range ids {
		for _, h := range r.horses {
			if h.ID == id && h.StableID == stableID {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) GetReservation(ctx context.Context, stableID, reservationID uint) (*models.FacilityReservation, error) {
	for i := range r.reservations {
		if r.reservations[i].ID == reservationID {
			return &r.reservations[i], nil
		}
	}
	return nil, httperr.ErrBusiness("reservation_not_found")
}

func (r *fakeRepo) ListActiveReservations(ctx context.Context, facilityID uint, start, end time.Time) ([]models.FacilityReservation, error) {
	var out []models.FacilityReservation
	for _, res := range r.reservations {
		if res.FacilityID != facilityID {
			continue
		}
		if !domain.CountsTowardCapacity(domain.Status(res.Status)) {
			continue
		}
		if domain.Overlaps(res.StartTime, res.EndTime, start, end) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListReservationsForPeriod(ctx context.Context, stableID uint, start, end time.Time) ([]models.FacilityReservation, error) {
	return r.reservations, nil
}

func (r *fakeRepo) CreateReservationChecked(ctx context.Context, f *models.Facility, res *models.FacilityReservation) error {
	res.ID = uint(len(r.reservations) + 1)
	r.reservations = append(r.reservations, *res)
	return nil
}

func (r *fakeRepo) UpdateReservationChecked(ctx context.Context, f *models.Facility, res *models.FacilityReservation) error {
	return r.UpdateReservation(ctx, res)
}

func (r *fakeRepo) UpdateReservation(ctx context.Context, res *models.FacilityReservation) error {
	for i := range r.reservations {
		if r.reservations[i].ID == res.ID {
			r.reservations[i] = *res
			return nil
		}
	}
	return httperr.ErrBusiness("reservation_not_found")
}

// ======================================================
// FIXTURES
// ======================================================

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stable: &models.Stable{ID: 1, Timezone: "UTC"},
		facility: &models.Facility{
			ID:                      10,
			StableID:                1,
			Status:                  models.FacilityStatusActive,
			MaxHorsesPerReservation: 2,
			MinSlotMinutes:          30,
			EnforceSlotMultiple:     true,
			TimeBlocks: []models.FacilityTimeBlock{
				{Weekday: models.WeekdayDefault, FromTime: "08:00", ToTime: "20:00"},
			},
		},
		horses: []models.Horse{
			{ID: 1, StableID: 1, Name: "Trovão"},
			{ID: 2, StableID: 1, Name: "Estrela"},
		},
	}
}

func when(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func booking(id uint, start, end time.Time, external int) models.FacilityReservation {
	return models.FacilityReservation{
		ID:             id,
		StableID:       1,
		FacilityID:     10,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.StatusConfirmed),
		ExternalHorses: external,
	}
}

// ======================================================
// CHECK CONFLICTS
// ======================================================

func TestCheckConflicts_CapacityExceeded(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations = []models.FacilityReservation{
		booking(1, when(9, 0), when(10, 0), 1),
		booking(2, when(9, 30), when(10, 30), 1),
	}

	uc := NewCheckConflicts(repo)

	out, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:       1,
		FacilityID:     10,
		Start:          when(9, 30),
		End:            when(10, 0),
		ExternalHorses: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.HasConflicts {
		t.Fatalf("expected conflict")
	}
	if out.Reason != dto.ReasonCapacityExceeded {
		t.Fatalf("reason = %q, want %q", out.Reason, dto.ReasonCapacityExceeded)
	}
	if out.PeakConcurrentHorses != 3 {
		t.Fatalf("peak = %d, want 3", out.PeakConcurrentHorses)
	}
	if len(out.Conflicts) != 2 {
		t.Fatalf("conflicts = %d, want 2", len(out.Conflicts))
	}
}

func TestCheckConflicts_Accepted(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations = []models.FacilityReservation{
		booking(1, when(9, 0), when(10, 0), 1),
	}

	uc := NewCheckConflicts(repo)

	out, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:   1,
		FacilityID: 10,
		Start:      when(10, 0), // encosta na ponta, sem sobrepor
		End:        when(11, 0),
		HorseIDs:   []uint{1, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.HasConflicts {
		t.Fatalf("expected acceptance, got reason %q", out.Reason)
	}
	if out.RemainingCapacity != 2 {
		t.Fatalf("remaining = %d, want 2", out.RemainingCapacity)
	}
}

func TestCheckConflicts_DayClosed(t *testing.T) {
	repo := newFakeRepo()
	repo.facility.Exceptions = []models.FacilityException{
		{Date: "2026-03-10", Closed: true},
	}

	uc := NewCheckConflicts(repo)

	out, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:       1,
		FacilityID:     10,
		Start:          when(9, 0),
		End:            when(10, 0),
		ExternalHorses: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reason != dto.ReasonDayClosed {
		t.Fatalf("reason = %q, want %q", out.Reason, dto.ReasonDayClosed)
	}
}

func TestCheckConflicts_OutsideAvailability(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCheckConflicts(repo)

	out, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:       1,
		FacilityID:     10,
		Start:          when(6, 0), // antes da abertura
		End:            when(7, 0),
		ExternalHorses: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reason != dto.ReasonOutsideAvailability {
		t.Fatalf("reason = %q, want %q", out.Reason, dto.ReasonOutsideAvailability)
	}
}

func TestCheckConflicts_FacilityUnavailable(t *testing.T) {
	repo := newFakeRepo()
	repo.facility.Status = models.FacilityStatusMaintenance

	uc := NewCheckConflicts(repo)

	out, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:       1,
		FacilityID:     10,
		Start:          when(9, 0),
		End:            when(10, 0),
		ExternalHorses: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reason != dto.ReasonFacilityUnavailable {
		t.Fatalf("reason = %q, want %q", out.Reason, dto.ReasonFacilityUnavailable)
	}
}

func TestCheckConflicts_InvalidWindowFailsLoud(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCheckConflicts(repo)

	_, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:       1,
		FacilityID:     10,
		Start:          when(10, 0),
		End:            when(9, 0), // invertida: bug do caller
		ExternalHorses: 1,
	})
	if httperr.BusinessCode(err) != "invalid_window" {
		t.Fatalf("expected invalid_window error, got %v", err)
	}
}

func TestCheckConflicts_UnknownHorse(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCheckConflicts(repo)

	_, err := uc.Execute(context.Background(), CheckConflictsInput{
		StableID:   1,
		FacilityID: 10,
		Start:      when(9, 0),
		End:        when(10, 0),
		HorseIDs:   []uint{99},
	})
	if httperr.BusinessCode(err) != "horse_not_found" {
		t.Fatalf("expected horse_not_found error, got %v", err)
	}
}

// ======================================================
// SUGGESTIONS
// ======================================================

func TestSuggestSlots_ClosedDayShortCircuit(t *testing.T) {
	repo := newFakeRepo()
	repo.facility.Exceptions = []models.FacilityException{
		{Date: "2026-03-10", Closed: true},
	}

	uc := NewSuggestSlots(repo)

	slots, err := uc.Execute(context.Background(), SuggestSlotsInput{
		StableID:        1,
		FacilityID:      10,
		Date:            when(0, 0),
		DurationMinutes: 60,
		ExternalHorses:  1,
		RequestedStart:  when(9, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("closed day must return empty slice, got %+v", slots)
	}
}

func TestSuggestSlots_AvoidsBusyWindows(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations = []models.FacilityReservation{
		booking(1, when(9, 0), when(11, 0), 2), // instalação cheia no meio da manhã
	}

	uc := NewSuggestSlots(repo)

	slots, err := uc.Execute(context.Background(), SuggestSlotsInput{
		StableID:        1,
		FacilityID:      10,
		Date:            when(0, 0),
		DurationMinutes: 60,
		ExternalHorses:  1,
		RequestedStart:  when(9, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatalf("expected suggestions outside the busy window")
	}

	for _, s := range slots {
		if domain.Overlaps(s.Start, s.End, when(9, 0), when(11, 0)) {
			t.Fatalf("suggestion %s overlaps the full window", s.Start.Format("15:04"))
		}
		if s.Start.Equal(when(9, 0)) {
			t.Fatalf("rejected start suggested back")
		}
	}
}
