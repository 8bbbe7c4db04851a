package handlers

import (
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

const defaultTimezone = "America/Sao_Paulo"

// resolve o timezone oficial da hípica
func locationFromStable(stable *models.Stable) *time.Location {
	if stable != nil && stable.Timezone != "" {
		if loc, err := time.LoadLocation(stable.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

func parseDateInStable(stable *models.Stable, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromStable(stable),
	)
}

func parseDateTimeInStable(
	stable *models.Stable,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromStable(stable),
	)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// validHourRange aceita "HH:MM" com fim depois do início
func validHourRange(from, to string) bool {
	f, err := time.Parse("15:04", from)
	if err != nil {
		return false
	}
	t, err := time.Parse("15:04", to)
	if err != nil {
		return false
	}
	return t.After(f)
}
