package pipeline

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/streetlens/go-activity/analysis"
	"github.com/streetlens/go-activity/video"
)

// AggregatorState tracks the forward-only lifecycle of an aggregation run.
type AggregatorState int

const (
	// Collecting accepts per-frame results.
	Collecting AggregatorState = iota
	// Finalizing computes averages; no further results are accepted.
	Finalizing
	// Complete means the report has been produced.
	Complete
)

// metricAgg keeps the running sum/min/max for one metric. All three
// operations are commutative, so aggregation is order-independent.
type metricAgg struct {
	sum, min, max float64
}

func (m *metricAgg) add(v float64, first bool) {
	if first || v < m.min {
		m.min = v
	}
	if first || v > m.max {
		m.max = v
	}
	m.sum += v
}

func (m *metricAgg) summary(n int) MetricSummary {
	if n == 0 {
		return MetricSummary{Level: analysis.MetricLow}
	}
	avg := round2(m.sum / float64(n))
	return MetricSummary{
		Average: avg,
		Min:     round2(m.min),
		Max:     round2(m.max),
		Level:   analysis.MetricLevel(avg),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Meta carries the run context into the final report.
type Meta struct {
	Location   string
	Source     video.SourceInfo
	Processing TimingStats
}

// Aggregator accumulates per-frame results into the final report. It only
// moves forward: Collecting, then Finalizing, then Complete.
type Aggregator struct {
	state    AggregatorState
	frames   []analysis.FrameAnalysis
	crowd    metricAgg
	vehicle  metricAgg
	foot     metricAgg
	activity metricAgg
}

// NewAggregator returns an Aggregator in the Collecting state.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// State returns the current lifecycle state.
func (a *Aggregator) State() AggregatorState {
	return a.state
}

// Count returns the number of results collected so far.
func (a *Aggregator) Count() int {
	return len(a.frames)
}

// Add records one per-frame result. It fails once finalization has begun.
func (a *Aggregator) Add(fa analysis.FrameAnalysis) error {
	if a.state != Collecting {
		return errors.New("aggregator is no longer collecting")
	}
	first := len(a.frames) == 0
	a.crowd.add(fa.CrowdDensityPct, first)
	a.vehicle.add(fa.VehicleTrafficPct, first)
	a.foot.add(fa.FootTrafficPct, first)
	a.activity.add(fa.ActivityScore, first)
	a.frames = append(a.frames, fa)
	return nil
}

// Finalize transitions to Complete and produces the immutable report. With
// zero collected frames it returns the explicit empty-result report rather
// than dividing by zero.
func (a *Aggregator) Finalize(meta Meta) *Report {
	a.state = Finalizing
	n := len(a.frames)

	report := &Report{
		ID:             uuid.NewString(),
		Location:       meta.Location,
		GeneratedAt:    time.Now().UTC(),
		Source:         meta.Source,
		FramesAnalyzed: n,
		Empty:          n == 0,
		Crowd:          a.crowd.summary(n),
		Vehicle:        a.vehicle.summary(n),
		Foot:           a.foot.summary(n),
		Frames:         a.frames,
		Processing:     meta.Processing,
	}
	if n > 0 {
		report.AverageActivityScore = round2(a.activity.sum / float64(n))
		report.ActivityLevel = analysis.ActivityLevel(report.AverageActivityScore)
		report.Recommendation = analysis.Recommendation(report.ActivityLevel)
	} else {
		report.Recommendation = "No frames were analyzed"
	}

	a.state = Complete
	return report
}
