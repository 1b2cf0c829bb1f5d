package countdown

import "fmt"

// Unit is a display unit of a countdown, from most to least significant.
type Unit int

const (
	Months Unit = iota
	Days
	Hours
	Minutes
	Seconds
)

// Units lists every unit in display order.
var Units = []Unit{Months, Days, Hours, Minutes, Seconds}

// String returns the lower-case plural name used in JSON and logs.
func (u Unit) String() string {
	switch u {
	case Months:
		return "months"
	case Days:
		return "days"
	case Hours:
		return "hours"
	case Minutes:
		return "minutes"
	case Seconds:
		return "seconds"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Label returns the singular display label.
func (u Unit) Label() string {
	switch u {
	case Months:
		return "Month"
	case Days:
		return "Day"
	case Hours:
		return "Hour"
	case Minutes:
		return "Minute"
	default:
		return "Second"
	}
}

// Plural returns the label to show next to value: singular only for exactly 1.
func (u Unit) Plural(value int) string {
	if value == 1 {
		return u.Label()
	}
	return u.Label() + "s"
}

// Greatest picks the most significant visible unit. Seconds is the floor.
func Greatest(r TimeRemaining) Unit {
	switch {
	case r.ShowMonths:
		return Months
	case r.ShowDays:
		return Days
	case r.ShowHours:
		return Hours
	case r.ShowMinutes:
		return Minutes
	default:
		return Seconds
	}
}

// Value returns the numeric value of u.
func (r TimeRemaining) Value(u Unit) int {
	switch u {
	case Months:
		return r.Months
	case Days:
		return r.Days
	case Hours:
		return r.Hours
	case Minutes:
		return r.Minutes
	default:
		return r.Seconds
	}
}

// Visible reports whether the cell for u should render. Seconds always does.
func (r TimeRemaining) Visible(u Unit) bool {
	switch u {
	case Months:
		return r.ShowMonths
	case Days:
		return r.ShowDays
	case Hours:
		return r.ShowHours
	case Minutes:
		return r.ShowMinutes
	default:
		return true
	}
}

// Clock renders the sub-day part as hh:mm:ss.
func (r TimeRemaining) Clock() string {
	return fmt.Sprintf("%s:%s:%s", FormatValue(r.Hours), FormatValue(r.Minutes), FormatValue(r.Seconds))
}

// Slot is one display cell's view of a snapshot.
type Slot struct {
	Unit     Unit   `json:"unit"`
	Value    int    `json:"value"`
	Label    string `json:"label"`
	Visible  bool   `json:"visible"`
	Greatest bool   `json:"greatest"`
}

// Slots fans r out to one slot per unit, in display order.
func (r TimeRemaining) Slots() []Slot {
	greatest := Greatest(r)
	slots := make([]Slot, 0, len(Units))
	for _, u := range Units {
		v := r.Value(u)
		slots = append(slots, Slot{
			Unit:     u,
			Value:    v,
			Label:    u.Plural(v),
			Visible:  r.Visible(u),
			Greatest: u == greatest,
		})
	}
	return slots
}

// FormatValue zero-pads a unit value to two digits.
func FormatValue(n int) string {
	if n < 0 {
		return fmt.Sprintf("-%02d", -n)
	}
	return fmt.Sprintf("%02d", n)
}
