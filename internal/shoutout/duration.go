package shoutout

import (
	"regexp"
	"strconv"
	"time"
)

// Archived broadcast durations arrive in ISO-8601 form like "PT3H12M5S".
// Every component is optional, but the PT prefix is not.
var iso8601Pattern = regexp.MustCompile(`(?i)^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration converts an ISO-8601 duration string into a
// time.Duration. Returns false for anything that does not match the
// PT#H#M#S shape.
func parseISO8601Duration(s string) (time.Duration, bool) {
	m := iso8601Pattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, false
	}

	var d time.Duration
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		d += time.Duration(h) * time.Hour
	}
	if m[2] != "" {
		min, _ := strconv.Atoi(m[2])
		d += time.Duration(min) * time.Minute
	}
	if m[3] != "" {
		sec, _ := strconv.Atoi(m[3])
		d += time.Duration(sec) * time.Second
	}
	return d, true
}
