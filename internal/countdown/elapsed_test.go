package countdown

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestElapsed(t *testing.T) {
	span := 24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second

	past := Elapsed(now.Add(-span), now)
	want := TimeElapsed{Days: 1, Hours: 2, Minutes: 3, Seconds: 4, TotalSeconds: 93784}
	if past != want {
		t.Errorf("Elapsed(past) = %+v, want %+v", past, want)
	}
	if past.InFuture() {
		t.Error("past instant reported as future")
	}

	future := Elapsed(now.Add(span), now)
	want = TimeElapsed{Days: -1, Hours: -2, Minutes: -3, Seconds: -4, TotalSeconds: -93784}
	if future != want {
		t.Errorf("Elapsed(future) = %+v, want %+v", future, want)
	}
	if !future.InFuture() {
		t.Error("future instant not reported as future")
	}

	if got := Elapsed(now, now); got != (TimeElapsed{}) {
		t.Errorf("Elapsed(now, now) = %+v, want zero", got)
	}
}

func TestRelativeElapsed(t *testing.T) {
	tests := []struct {
		name  string
		since time.Time
		want  string
	}{
		{"minutes", now.Add(-3 * time.Minute), "3 minutes ago"},
		{"days", now.Add(-5 * 24 * time.Hour), "5 days ago"},
		{"future", time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), "in the future (Jan 2, 2027)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeElapsed(tt.since, now); got != tt.want {
				t.Errorf("RelativeElapsed() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAbsoluteElapsed(t *testing.T) {
	tests := []struct {
		name  string
		since time.Time
		want  string
	}{
		{"first trailer", time.Date(2023, 12, 4, 18, 7, 0, 0, time.UTC), "2 years 10 months 14 days"},
		{"exactly a year", time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC), "1 year"},
		{"one month one day", time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC), "1 month 1 day"},
		{"hours only", now.Add(-5 * time.Hour), "0 days"},
		{"days only", now.Add(-3 * 24 * time.Hour), "3 days"},
		{"future", time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 2, 2027 (in the future)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AbsoluteElapsed(tt.since, now); got != tt.want {
				t.Errorf("AbsoluteElapsed() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAbsoluteElapsedAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	tests := []struct {
		since, now time.Time
		want       string
	}{
		// Spring forward on March 8, 2026.
		{time.Date(2026, 3, 1, 0, 0, 0, 0, ny), time.Date(2026, 3, 15, 0, 0, 0, 0, ny), "14 days"},
		// Fall back on November 1, 2026.
		{time.Date(2026, 10, 25, 0, 0, 0, 0, ny), time.Date(2026, 11, 8, 0, 0, 0, 0, ny), "14 days"},
		{time.Date(2026, 2, 20, 0, 0, 0, 0, ny), time.Date(2026, 3, 21, 0, 0, 0, 0, ny), "1 month 1 day"},
	}
	for _, tt := range tests {
		if got := AbsoluteElapsed(tt.since, tt.now); got != tt.want {
			t.Errorf("AbsoluteElapsed(%s, %s) = %q, want %q", tt.since, tt.now, got, tt.want)
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-05-26T00:00:00Z", want: release},
		{in: "2026-05-26", want: release},
		{in: "  2026-05-26T00:00:00Z ", want: release},
		{in: "2026-05-25T20:00:00-04:00", want: release},
		{in: "2026-05-26T00:00:00", want: release},
		{in: "", wantErr: true},
		{in: "May 26, 2026", wantErr: true},
		{in: "2026-13-01T00:00:00Z", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTarget) {
					t.Fatalf("ParseTarget(%q) error = %v, want ErrInvalidTarget", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTarget(%q) unexpected error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTarget(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
