package reservation

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/models"
)

// EffectiveAvailability resolve os blocos concretos de uma instalação numa
// data: exceção da data > override do dia da semana > default semanal.
// Exceção com Closed = true fecha o dia inteiro (nenhum bloco).
func EffectiveAvailability(
	blocks []models.FacilityTimeBlock,
	exceptions []models.FacilityException,
	date time.Time,
) []TimeBlock {

	dateStr := date.Format("2006-01-02")

	var dayExceptions []models.FacilityException
	for _, ex := range exceptions {
		if ex.Date != dateStr {
			continue
		}
		if ex.Closed {
			return nil
		}
		dayExceptions = append(dayExceptions, ex)
	}

	if len(dayExceptions) > 0 {
		out := make([]TimeBlock, 0, len(dayExceptions))
		for _, ex := range dayExceptions {
			out = append(out, TimeBlock{From: ex.FromTime, To: ex.ToTime})
		}
		return sortBlocks(out)
	}

	weekday := int(date.Weekday())

	var override, def []TimeBlock
	for _, b := range blocks {
		switch b.Weekday {
		case weekday:
			override = append(override, TimeBlock{From: b.FromTime, To: b.ToTime})
		case models.WeekdayDefault:
			def = append(def, TimeBlock{From: b.FromTime, To: b.ToTime})
		}
	}

	if len(override) > 0 {
		return sortBlocks(override)
	}
	return sortBlocks(def)
}

// WithinAvailability diz se [start, end) cabe inteiro num único bloco
// efetivo da data. Reserva não pode atravessar o intervalo entre blocos.
func WithinAvailability(avail []TimeBlock, date, start, end time.Time) bool {
	for _, b := range avail {
		bs, be, err := b.Window(date)
		if err != nil {
			continue
		}
		if !start.Before(bs) && !end.After(be) {
			return true
		}
	}
	return false
}

func sortBlocks(bs []TimeBlock) []TimeBlock {
	sort.Slice(bs, func(i, j int) bool { return bs[i].From < bs[j].From })
	return bs
}
