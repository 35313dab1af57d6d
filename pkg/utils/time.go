package utils

import (
	"strings"
	"time"

	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

const dateOnly = "2006-01-02"

func location() *time.Location {
	timeZone := config.GetConfig().Postgres.TimeZone
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		logutils.Log.Errorf("Failed to load location: %v", err)
		return time.UTC
	}
	return loc
}

func GetLocalTime() time.Time {
	return time.Now().In(location())
}

// FormatLocal renders t in the configured time zone for human readers.
func FormatLocal(t time.Time) string {
	return t.In(location()).Format("2006-01-02 15:04 MST")
}

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date and
// returns it normalized to UTC. An empty string means no date and yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperror.Validation("invalid date: " + s)
}

// ParseOptionalDate is ParseDate for optional request fields: a nil input
// yields nil with set false.
func ParseOptionalDate(s *string) (t *time.Time, set bool, err error) {
	if s == nil {
		return nil, false, nil
	}
	t, err = ParseDate(*s)
	return t, true, err
}
