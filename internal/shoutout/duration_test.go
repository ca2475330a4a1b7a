package shoutout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"PT15M", 15 * time.Minute, true},
		{"PT45M", 45 * time.Minute, true},
		{"PT1H", time.Hour, true},
		{"PT3H12M5S", 3*time.Hour + 12*time.Minute + 5*time.Second, true},
		{"PT30S", 30 * time.Second, true},
		{"pt2h", 2 * time.Hour, true},
		{"PT", 0, false},
		{"", 0, false},
		{"15M", 0, false},
		{"P1DT2H", 0, false},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseISO8601Duration(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
