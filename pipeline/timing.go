package pipeline

import "time"

// TimeTracker accumulates timing statistics for frame processing.
type TimeTracker struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// Record adds one observed duration.
func (t *TimeTracker) Record(d time.Duration) {
	if t.count == 0 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.total += d
	t.count++
}

// TimingStats is the read-only summary of a TimeTracker.
type TimingStats struct {
	Frames    int64   `json:"frames"`
	AverageMs float64 `json:"average_ms"`
	MinMs     float64 `json:"min_ms"`
	MaxMs     float64 `json:"max_ms"`
}

// Stats summarizes the recorded durations in milliseconds.
func (t *TimeTracker) Stats() TimingStats {
	if t.count == 0 {
		return TimingStats{}
	}
	return TimingStats{
		Frames:    t.count,
		AverageMs: float64(t.total.Microseconds()) / float64(t.count) / 1000.0,
		MinMs:     float64(t.min.Microseconds()) / 1000.0,
		MaxMs:     float64(t.max.Microseconds()) / 1000.0,
	}
}
