package booking

import (
	"sort"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// SlotIndex maps an ISO date to the bookable time labels of one
// worker/service pair. Dates without open slots are never keys.
type SlotIndex map[string][]string

// NewSlotIndex copies raw backend output, dropping empty days and
// malformed dates.
func NewSlotIndex(raw map[string][]string) SlotIndex {
	idx := make(SlotIndex, len(raw))
	for date, slots := range raw {
		if len(slots) == 0 {
			continue
		}
		if _, err := time.Parse(DateLayout, date); err != nil {
			continue
		}
		idx[date] = append([]string(nil), slots...)
	}
	return idx
}

func (ix SlotIndex) Has(date string) bool {
	_, ok := ix[date]
	return ok
}

func (ix SlotIndex) SlotsFor(date string) []string {
	return ix[date]
}

func (ix SlotIndex) Contains(date, slot string) bool {
	for _, s := range ix[date] {
		if s == slot {
			return true
		}
	}
	return false
}

// Dates returns the selectable dates in ascending order.
func (ix SlotIndex) Dates() []string {
	out := make([]string, 0, len(ix))
	for d := range ix {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Datetime is the wire form of a booking moment.
func Datetime(date, slot string) string {
	return date + "T" + slot + ":00"
}

type CalendarDay struct {
	Date       string   `json:"date"`
	Day        int      `json:"day"`
	Weekday    string   `json:"weekday"`
	Selectable bool     `json:"selectable"`
	Slots      []string `json:"slots,omitempty"`
}

type Calendar struct {
	Month string        `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// Calendar lays out every day of month ("YYYY-MM"); only index keys are selectable.
func (ix SlotIndex) Calendar(month string) (Calendar, error) {
	first, err := time.Parse(MonthLayout, month)
	if err != nil {
		return Calendar{}, ErrInvalidMonth
	}

	cal := Calendar{Month: month}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		slots := ix.SlotsFor(date)
		cal.Days = append(cal.Days, CalendarDay{
			Date:       date,
			Day:        d.Day(),
			Weekday:    d.Weekday().String(),
			Selectable: len(slots) > 0,
			Slots:      slots,
		})
	}
	return cal, nil
}

// FirstMonth is the month of the earliest selectable date, or fallback when empty.
func (ix SlotIndex) FirstMonth(fallback string) string {
	dates := ix.Dates()
	if len(dates) == 0 {
		return fallback
	}
	return dates[0][:len(MonthLayout)]
}
