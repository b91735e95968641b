package handlers

import (
	"time"

	"github.com/BruksfildServices01/booking-panel/internal/timezone"
)

const defaultScheduleDays = 7

// scheduleRange fills a missing worker schedule range: from today in tz,
// one week long.
func scheduleRange(tz string, now time.Time, start, end string) (string, string) {
	if start == "" {
		start = timezone.TodayIn(tz, now)
	}
	if end == "" {
		from, err := time.Parse("2006-01-02", start)
		if err != nil {
			return start, end
		}
		end = from.AddDate(0, 0, defaultScheduleDays-1).Format("2006-01-02")
	}
	return start, end
}
