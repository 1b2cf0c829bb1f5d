// Package countdown computes the time left until a release and the time
// elapsed since past events.
package countdown

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// TimeRemaining is a one-shot snapshot of the time left until a target.
// Hours, minutes and seconds are derived from the total remaining seconds,
// months and days from calendar arithmetic.
type TimeRemaining struct {
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`

	ShowMonths  bool `json:"show_months"`
	ShowDays    bool `json:"show_days"`
	ShowHours   bool `json:"show_hours"`
	ShowMinutes bool `json:"show_minutes"`
}

// Remaining decomposes the time between reference and target.
// A target at or before reference yields the zero value (terminal state).
func Remaining(target, reference time.Time) TimeRemaining {
	diff := int64(target.Sub(reference) / time.Second)
	if diff <= 0 {
		return TimeRemaining{}
	}

	// Calendar arithmetic happens in the reference's zone.
	target = target.In(reference.Location())

	months := monthsBetween(reference, target)
	days := int(target.Sub(addMonths(reference, months)) / (24 * time.Hour))

	r := TimeRemaining{
		Months:  months,
		Days:    days,
		Hours:   int((diff % secondsPerDay) / secondsPerHour),
		Minutes: int((diff % secondsPerHour) / secondsPerMinute),
		Seconds: int(diff % secondsPerMinute),
	}

	// Hours and minutes stay visible once a coarser unit is shown; months and
	// days only depend on their own value.
	r.ShowMonths = r.Months > 0
	r.ShowDays = r.Days > 0
	r.ShowHours = r.Hours > 0 || r.ShowDays || r.ShowMonths
	r.ShowMinutes = r.Minutes > 0 || r.ShowHours
	return r
}

// Reached reports whether r is the terminal state.
func (r TimeRemaining) Reached() bool {
	return r == TimeRemaining{}
}

// Calculator binds a target to a clock. Live displays and one-shot
// commands both compute through it.
type Calculator struct {
	Target time.Time
	Clock  clockwork.Clock
}

// NewCalculator returns a Calculator on the real clock.
func NewCalculator(target time.Time) *Calculator {
	return &Calculator{Target: target, Clock: clockwork.NewRealClock()}
}

// Now returns the clock's current instant, or the wall clock when no clock
// is set.
func (c *Calculator) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

// At returns the remaining time at a given reference instant.
func (c *Calculator) At(reference time.Time) TimeRemaining {
	return Remaining(c.Target, reference)
}

// monthsBetween counts whole calendar months from start that fit before end.
func monthsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	// Jump close to the answer, then settle by stepping.
	n := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if n < 0 {
		n = 0
	}
	for n > 0 && addMonths(start, n).After(end) {
		n--
	}
	for !addMonths(start, n+1).After(end) {
		n++
	}
	return n
}

// addMonths adds n calendar months, clamping the day to the end of the
// resulting month instead of overflowing into the next one.
func addMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
