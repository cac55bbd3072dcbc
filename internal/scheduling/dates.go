package scheduling

import (
	"strings"
	"time"

	"marigold-suites/internal/domain"
)

// CurrentDateInfo gives the dispatching layer the anchors it needs to
// resolve relative requests ("tomorrow", "next week") into dates.
func CurrentDateInfo(now time.Time) domain.DateInfo {
	weekStart := startOfWeek(now)
	return domain.DateInfo{
		CurrentDate: now.Format("2006-01-02"),
		DayOfWeek:   strings.ToLower(now.Weekday().String()),
		Tomorrow:    now.AddDate(0, 0, 1).Format("2006-01-02"),
		WeekStart:   weekStart.Format("2006-01-02"),
		WeekEnd:     weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
		Unix:        now.Unix(),
	}
}

// FutureDate resolves "N days from now" into a concrete date.
func FutureDate(now time.Time, daysAhead int) domain.FutureDate {
	target := now.AddDate(0, 0, daysAhead)
	return domain.FutureDate{
		Date:      target.Format("2006-01-02"),
		DayOfWeek: strings.ToLower(target.Weekday().String()),
		DaysAhead: daysAhead,
	}
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
