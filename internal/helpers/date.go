package helpers

import (
	"errors"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

var ErrInvalidDate = errors.New("invalid date")

// ParseEventDate reads an RFC 3339 timestamp, falling back to natural
// language ("2026-11-02 18:30", "next friday 7pm") relative to now.
func ParseEventDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	cfg := &dps.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dps.Future,
		DefaultTimezone:     time.UTC,
	}
	dt, err := dps.Parse(cfg, raw)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, ErrInvalidDate
	}
	return dt.Time.UTC(), nil
}
