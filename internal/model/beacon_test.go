package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeaconMetricName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "fetch_joke", "fetch_joke"},
		{"trimmed and lowered", "  Add_Joke ", "add_joke"},
		{"empty", "", OtherSpanName},
		{"spaces inside", "fetch joke", OtherSpanName},
		{"too long", strings.Repeat("a", 65), OtherSpanName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Beacon{Name: tt.in}.MetricName())
		})
	}
}

func TestBeaconDurationMs(t *testing.T) {
	d := 12.5
	neg := -3.0

	assert.Equal(t, 12.5, Beacon{Duration: &d}.DurationMs())
	assert.Equal(t, -1.0, Beacon{Duration: &neg}.DurationMs())
	assert.Equal(t, -1.0, Beacon{}.DurationMs())
}
