package model

import (
	"regexp"
	"strings"
)

// Beacon is a span reported by the browser telemetry shim.
//
// Duration is absent for resource timing entries.
type Beacon struct {
	Name       string         `json:"name"`
	Duration   *float64       `json:"duration,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Events     []BeaconEvent  `json:"events,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Page       string         `json:"page,omitempty"`
}

// BeaconEvent is a point-in-time annotation inside a Beacon.
type BeaconEvent struct {
	Name       string         `json:"name"`
	Timestamp  float64        `json:"timestamp"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// OtherSpanName replaces client span names that are not safe metric labels.
const OtherSpanName = "other"

var spanNamePattern = regexp.MustCompile(`^[a-z0-9_.]{1,64}$`)

// MetricName returns the span name used as a metric label. Names sent by
// browsers are untrusted, so anything outside [a-z0-9_.]{1,64} collapses
// into OtherSpanName.
func (b Beacon) MetricName() string {
	name := strings.ToLower(strings.TrimSpace(b.Name))
	if !spanNamePattern.MatchString(name) {
		return OtherSpanName
	}
	return name
}

// DurationMs returns the reported duration, or -1 when none was sent.
func (b Beacon) DurationMs() float64 {
	if b.Duration == nil || *b.Duration < 0 {
		return -1
	}
	return *b.Duration
}
