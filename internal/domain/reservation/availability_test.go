package reservation

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// 2026-03-10 é uma terça-feira (weekday 2)
func testDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveAvailability_WeeklyDefault(t *testing.T) {
	blocks := []models.FacilityTimeBlock{
		{Weekday: models.WeekdayDefault, FromTime: "08:00", ToTime: "12:00"},
		{Weekday: models.WeekdayDefault, FromTime: "14:00", ToTime: "20:00"},
	}

	got := EffectiveAvailability(blocks, nil, testDate())

	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	if got[0].From != "08:00" || got[1].From != "14:00" {
		t.Fatalf("blocks out of order: %+v", got)
	}
}

func TestEffectiveAvailability_WeekdayOverrideReplacesDefault(t *testing.T) {
	blocks := []models.FacilityTimeBlock{
		{Weekday: models.WeekdayDefault, FromTime: "08:00", ToTime: "20:00"},
		{Weekday: 2, FromTime: "10:00", ToTime: "16:00"}, // terça
	}

	got := EffectiveAvailability(blocks, nil, testDate())

	// override substitui o default por inteiro, não soma
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got))
	}
	if got[0].From != "10:00" || got[0].To != "16:00" {
		t.Fatalf("expected override block, got %+v", got[0])
	}
}

func TestEffectiveAvailability_OverrideOfOtherDayIgnored(t *testing.T) {
	blocks := []models.FacilityTimeBlock{
		{Weekday: models.WeekdayDefault, FromTime: "08:00", ToTime: "20:00"},
		{Weekday: 0, FromTime: "10:00", ToTime: "12:00"}, // domingo
	}

	got := EffectiveAvailability(blocks, nil, testDate())

	if len(got) != 1 || got[0].From != "08:00" {
		t.Fatalf("expected weekly default, got %+v", got)
	}
}

func TestEffectiveAvailability_ExceptionReplacesEverything(t *testing.T) {
	blocks := []models.FacilityTimeBlock{
		{Weekday: models.WeekdayDefault, FromTime: "08:00", ToTime: "20:00"},
		{Weekday: 2, FromTime: "10:00", ToTime: "16:00"},
	}
	exceptions := []models.FacilityException{
		{Date: "2026-03-10", FromTime: "13:00", ToTime: "15:00"},
		{Date: "2026-03-11", FromTime: "06:00", ToTime: "07:00"}, // outra data
	}

	got := EffectiveAvailability(blocks, exceptions, testDate())

	if len(got) != 1 || got[0].From != "13:00" || got[0].To != "15:00" {
		t.Fatalf("expected exception block only, got %+v", got)
	}
}

func TestEffectiveAvailability_ClosedException(t *testing.T) {
	blocks := []models.FacilityTimeBlock{
		{Weekday: models.WeekdayDefault, FromTime: "08:00", ToTime: "20:00"},
	}
	exceptions := []models.FacilityException{
		{Date: "2026-03-10", Closed: true, Reason: "manutenção do piso"},
	}

	if got := EffectiveAvailability(blocks, exceptions, testDate()); len(got) != 0 {
		t.Fatalf("closed day must have no blocks, got %+v", got)
	}
}

func TestEffectiveAvailability_NoBlocksAtAll(t *testing.T) {
	if got := EffectiveAvailability(nil, nil, testDate()); len(got) != 0 {
		t.Fatalf("expected empty availability, got %+v", got)
	}
}

func TestWithinAvailability(t *testing.T) {
	avail := []TimeBlock{
		{From: "08:00", To: "12:00"},
		{From: "14:00", To: "18:00"},
	}
	date := testDate()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"dentro do primeiro bloco", at(9, 0), at(10, 0), true},
		{"exatamente o bloco inteiro", at(8, 0), at(12, 0), true},
		{"comeca antes da abertura", at(7, 30), at(9, 0), false},
		{"termina depois do fechamento", at(11, 30), at(12, 30), false},
		{"atravessa o intervalo entre blocos", at(11, 0), at(15, 0), false},
		{"dentro do segundo bloco", at(14, 0), at(15, 0), true},
		{"fora de qualquer bloco", at(12, 30), at(13, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinAvailability(avail, date, tc.start, tc.end); got != tc.want {
				t.Fatalf("WithinAvailability = %v, want %v", got, tc.want)
			}
		})
	}
}
