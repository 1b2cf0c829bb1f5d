package countdown

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTarget is returned when a release target cannot be parsed.
var ErrInvalidTarget = errors.New("invalid target date")

var targetLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTarget parses an ISO-8601 timestamp. Timestamps without a zone are
// taken as UTC.
func ParseTarget(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	for _, layout := range targetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 timestamp", ErrInvalidTarget, s)
}
