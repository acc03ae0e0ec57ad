package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// DateOnly cuts an API timestamp ("2025-03-01T00:00:00.000Z") down to its date part.
func DateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

// TimeHM extracts HH:MM from either "08:30:00" or a full ISO timestamp.
func TimeHM(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[i+1:]
	}
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}
