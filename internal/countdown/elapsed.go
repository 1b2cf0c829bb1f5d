package countdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// dateLayout matches the short date shown next to future timestamps.
const dateLayout = "Jan 2, 2006"

// TimeElapsed is the time since a past instant. When the instant is in the
// future every component is negative and TotalSeconds < 0.
type TimeElapsed struct {
	Days         int   `json:"days"`
	Hours        int   `json:"hours"`
	Minutes      int   `json:"minutes"`
	Seconds      int   `json:"seconds"`
	TotalSeconds int64 `json:"total_seconds"`
}

// InFuture reports whether the measured instant had not happened yet.
func (e TimeElapsed) InFuture() bool {
	return e.TotalSeconds < 0
}

// Elapsed returns the whole days, hours, minutes and seconds from since to now.
func Elapsed(since, now time.Time) TimeElapsed {
	diff := int64(now.Sub(since) / time.Second)

	sign := int64(1)
	abs := diff
	if diff < 0 {
		sign = -1
		abs = -diff
	}

	return TimeElapsed{
		Days:         int(sign * (abs / secondsPerDay)),
		Hours:        int(sign * ((abs % secondsPerDay) / secondsPerHour)),
		Minutes:      int(sign * ((abs % secondsPerHour) / secondsPerMinute)),
		Seconds:      int(sign * (abs % secondsPerMinute)),
		TotalSeconds: diff,
	}
}

// RelativeElapsed renders since relative to now, e.g. "2 years ago".
func RelativeElapsed(since, now time.Time) string {
	if since.After(now) {
		return fmt.Sprintf("in the future (%s)", since.Format(dateLayout))
	}
	return humanize.RelTime(since, now, "ago", "from now")
}

// AbsoluteElapsed renders the calendar distance from since to now as
// years, months and days, e.g. "1 year 5 months 2 days". Zero components
// are left out but at least the day count is always present.
func AbsoluteElapsed(since, now time.Time) string {
	if since.After(now) {
		return fmt.Sprintf("%s (in the future)", since.Format(dateLayout))
	}

	since = since.In(now.Location())
	months := monthsBetween(since, now)
	years := months / 12
	months %= 12
	days := int(wallClock(now).Sub(wallClock(addMonths(since, years*12+months))) / (24 * time.Hour))

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if days > 0 || len(parts) == 0 {
		parts = append(parts, plural(days, "day"))
	}
	return strings.Join(parts, " ")
}

// wallClock reads t's local date and time as if it were UTC, so a
// subtraction counts calendar days even across a DST change.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
