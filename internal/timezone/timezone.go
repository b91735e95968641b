package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Kyiv"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// MonthIn formats t as "YYYY-MM" in the business timezone.
func MonthIn(tz string, t time.Time) string {
	return t.In(Location(tz)).Format("2006-01")
}

// TodayIn formats t as "YYYY-MM-DD" in the business timezone.
func TodayIn(tz string, t time.Time) string {
	return t.In(Location(tz)).Format("2006-01-02")
}
