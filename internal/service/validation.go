package service

import (
	"fmt"
	"regexp"
	"time"
)

// timeOfDayPattern matches HH:MM and HH:MM:SS wall-clock values.
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

func validTimeOfDay(raw string) bool {
	return timeOfDayPattern.MatchString(raw)
}

// parseDate accepts date-only strings as submitted by the admin panel and
// falls back to RFC 3339 for API callers sending full timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}
