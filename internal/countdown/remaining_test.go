package countdown

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var release = time.Date(2026, 5, 26, 0, 0, 0, 0, time.UTC)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name      string
		target    time.Time
		reference time.Time
		want      TimeRemaining
		greatest  Unit
	}{
		{
			name:      "thirty seconds left",
			target:    release,
			reference: time.Date(2026, 5, 25, 23, 59, 30, 0, time.UTC),
			want:      TimeRemaining{Seconds: 30},
			greatest:  Seconds,
		},
		{
			name:      "exactly two months",
			target:    release,
			reference: time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC),
			want: TimeRemaining{
				Months:      2,
				ShowMonths:  true,
				ShowHours:   true,
				ShowMinutes: true,
			},
			greatest: Months,
		},
		{
			name:      "hours minutes seconds",
			target:    release,
			reference: time.Date(2026, 5, 25, 10, 30, 15, 0, time.UTC),
			want: TimeRemaining{
				Hours:       13,
				Minutes:     29,
				Seconds:     45,
				ShowHours:   true,
				ShowMinutes: true,
			},
			greatest: Hours,
		},
		{
			name:      "minutes only",
			target:    release,
			reference: time.Date(2026, 5, 25, 23, 55, 0, 0, time.UTC),
			want: TimeRemaining{
				Minutes:     5,
				ShowMinutes: true,
			},
			greatest: Minutes,
		},
		{
			name:      "whole days cascade into hours and minutes",
			target:    release,
			reference: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
			want: TimeRemaining{
				Days:        6,
				ShowDays:    true,
				ShowHours:   true,
				ShowMinutes: true,
			},
			greatest: Days,
		},
		{
			name:      "month end clamps instead of overflowing",
			target:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			reference: time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC),
			want: TimeRemaining{
				Months:      1,
				Days:        1,
				ShowMonths:  true,
				ShowDays:    true,
				ShowHours:   true,
				ShowMinutes: true,
			},
			greatest: Months,
		},
		{
			name:      "leap february",
			target:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			reference: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want: TimeRemaining{
				Months:      1,
				Days:        1,
				ShowMonths:  true,
				ShowDays:    true,
				ShowHours:   true,
				ShowMinutes: true,
			},
			greatest: Months,
		},
		{
			name:      "reference equals target",
			target:    release,
			reference: release,
			want:      TimeRemaining{},
			greatest:  Seconds,
		},
		{
			name:      "target in the past",
			target:    release,
			reference: release.AddDate(1, 0, 0),
			want:      TimeRemaining{},
			greatest:  Seconds,
		},
		{
			name:      "less than a second left",
			target:    release,
			reference: release.Add(-500 * time.Millisecond),
			want:      TimeRemaining{},
			greatest:  Seconds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(tt.target, tt.reference)
			if got != tt.want {
				t.Errorf("Remaining() = %+v, want %+v", got, tt.want)
			}
			if g := Greatest(got); g != tt.greatest {
				t.Errorf("Greatest() = %v, want %v", g, tt.greatest)
			}
		})
	}
}

// reconstruct adds a snapshot back onto its reference instant.
func reconstruct(reference time.Time, r TimeRemaining) time.Time {
	return addMonths(reference, r.Months).
		Add(time.Duration(r.Days) * 24 * time.Hour).
		Add(time.Duration(r.Hours) * time.Hour).
		Add(time.Duration(r.Minutes) * time.Minute).
		Add(time.Duration(r.Seconds) * time.Second)
}

func TestRemainingReconstructsTarget(t *testing.T) {
	target := time.Date(2026, 5, 26, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 29, 7, 41, 3, 0, time.UTC)

	for ref := start; ref.Before(target); ref = ref.Add(7*time.Hour + 13*time.Minute + 17*time.Second) {
		r := Remaining(target, ref)
		if got := reconstruct(ref, r); !got.Equal(target) {
			t.Fatalf("reference %s: reconstructed %s from %+v, want %s", ref, got, r, target)
		}
		if r.ShowDays && !(r.ShowHours && r.ShowMinutes) {
			t.Fatalf("reference %s: days shown without hours and minutes: %+v", ref, r)
		}
	}
}

func TestRemainingIsMonotonic(t *testing.T) {
	ref := release.Add(-26*time.Hour - 90*time.Second)
	prev := reconstruct(ref, Remaining(release, ref)).Sub(ref)

	for i := 0; i < 26*60*60+120; i++ {
		ref = ref.Add(time.Second)
		r := Remaining(release, ref)
		if !ref.Before(release) {
			if !r.Reached() {
				t.Fatalf("reference %s: expected terminal state, got %+v", ref, r)
			}
			continue
		}
		left := reconstruct(ref, r).Sub(ref)
		if left != prev-time.Second {
			t.Fatalf("reference %s: represents %s, want %s", ref, left, prev-time.Second)
		}
		prev = left
	}
}

func TestRemainingSubSecondTruncation(t *testing.T) {
	r := Remaining(release, release.Add(-1500*time.Millisecond))
	if r.Seconds != 1 {
		t.Errorf("Seconds = %d, want 1", r.Seconds)
	}
}

func TestRemainingUsesReferenceZone(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	ref := time.Date(2026, 4, 25, 17, 0, 0, 0, loc) // 2026-04-26T00:00Z
	r := Remaining(release, ref)
	if r.Months != 1 || r.Days != 0 || r.Hours != 0 {
		t.Errorf("Remaining() = %+v, want exactly one month", r)
	}
}

func TestReached(t *testing.T) {
	if !Remaining(release, release).Reached() {
		t.Error("expected terminal state when reference equals target")
	}
	if Remaining(release, release.Add(-time.Second)).Reached() {
		t.Error("one second left should not be terminal")
	}
	if Remaining(release, release.Add(-24*time.Hour)).Reached() {
		t.Error("one day left should not be terminal")
	}
}

func TestCalculator(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 25, 23, 59, 0, 0, time.UTC))
	calc := &Calculator{Target: release, Clock: clock}

	if got := calc.At(calc.Now()); got.Minutes != 1 || got.Seconds != 0 {
		t.Errorf("At(Now()) = %+v, want 1 minute", got)
	}

	clock.Advance(45 * time.Second)
	if got := calc.At(calc.Now()); got.Seconds != 15 || got.ShowMinutes {
		t.Errorf("At(Now()) after advance = %+v, want 15 seconds", got)
	}

	clock.Advance(time.Hour)
	if got := calc.At(calc.Now()); !got.Reached() {
		t.Errorf("At(Now()) after target = %+v, want terminal state", got)
	}

	if got := calc.At(release.Add(-2 * time.Second)); got.Seconds != 2 {
		t.Errorf("At() = %+v, want 2 seconds", got)
	}

	wall := &Calculator{Target: release}
	if d := time.Since(wall.Now()); d < 0 || d > time.Minute {
		t.Errorf("Now() without a clock = %s off the wall clock", d)
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC), 1, time.Date(2026, 9, 30, 9, 30, 0, 0, time.UTC)},
		{time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), 3, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 0, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := addMonths(tt.in, tt.n); !got.Equal(tt.want) {
			t.Errorf("addMonths(%s, %d) = %s, want %s", tt.in, tt.n, got, tt.want)
		}
	}
}
