package pipeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetlens/go-activity/analysis"
	"github.com/streetlens/go-activity/video"
)

func frameResult(crowd, vehicle, foot float64) analysis.FrameAnalysis {
	return analysis.FrameAnalysis{
		CrowdDensityPct:   crowd,
		VehicleTrafficPct: vehicle,
		FootTrafficPct:    foot,
		ActivityScore:     analysis.ActivityScore(crowd, vehicle, foot),
	}
}

func TestAggregatorComputesSummaries(t *testing.T) {
	agg := NewAggregator()
	require.NoError(t, agg.Add(frameResult(80, 20, 10)))
	require.NoError(t, agg.Add(frameResult(40, 60, 30)))
	require.NoError(t, agg.Add(frameResult(60, 10, 50)))

	report := agg.Finalize(Meta{Location: "Times Square", Source: video.SourceInfo{FPS: 30}})

	assert.Equal(t, 3, report.FramesAnalyzed)
	assert.False(t, report.Empty)
	assert.Equal(t, "Times Square", report.Location)
	assert.NotEmpty(t, report.ID)

	assert.InDelta(t, 60.0, report.Crowd.Average, 0.01)
	assert.InDelta(t, 40.0, report.Crowd.Min, 0.01)
	assert.InDelta(t, 80.0, report.Crowd.Max, 0.01)
	assert.Equal(t, analysis.MetricHigh, report.Crowd.Level)

	assert.InDelta(t, 30.0, report.Vehicle.Average, 0.01)
	assert.InDelta(t, 30.0, report.Foot.Average, 0.01)

	// 0.4*60 + 0.3*30 + 0.3*30 = 42
	assert.InDelta(t, 42.0, report.AverageActivityScore, 0.01)
	assert.Equal(t, analysis.LevelModerate, report.ActivityLevel)
	assert.Equal(t, analysis.Recommendation(analysis.LevelModerate), report.Recommendation)
	assert.Len(t, report.Frames, 3)
}

func TestAggregatorOrderIndependence(t *testing.T) {
	results := []analysis.FrameAnalysis{
		frameResult(12, 88, 45),
		frameResult(97, 3, 71),
		frameResult(55, 55, 55),
		frameResult(0, 100, 23),
		frameResult(33, 41, 9),
		frameResult(76, 12, 64),
	}

	agg := NewAggregator()
	for _, r := range results {
		require.NoError(t, agg.Add(r))
	}
	want := agg.Finalize(Meta{})

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]analysis.FrameAnalysis(nil), results...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		agg := NewAggregator()
		for _, r := range shuffled {
			require.NoError(t, agg.Add(r))
		}
		got := agg.Finalize(Meta{})

		for _, pair := range []struct{ want, got MetricSummary }{
			{want.Crowd, got.Crowd},
			{want.Vehicle, got.Vehicle},
			{want.Foot, got.Foot},
		} {
			assert.InDelta(t, pair.want.Average, pair.got.Average, 1e-9)
			assert.InDelta(t, pair.want.Min, pair.got.Min, 1e-9)
			assert.InDelta(t, pair.want.Max, pair.got.Max, 1e-9)
			assert.Equal(t, pair.want.Level, pair.got.Level)
		}
		assert.InDelta(t, want.AverageActivityScore, got.AverageActivityScore, 1e-9)
		assert.Equal(t, want.ActivityLevel, got.ActivityLevel)
		assert.Equal(t, want.FramesAnalyzed, got.FramesAnalyzed)
	}
}

func TestAggregatorEmptyRun(t *testing.T) {
	agg := NewAggregator()
	report := agg.Finalize(Meta{Source: video.SourceInfo{Live: true}})

	assert.True(t, report.Empty)
	assert.Equal(t, 0, report.FramesAnalyzed)
	assert.Zero(t, report.AverageActivityScore)
	assert.Empty(t, report.ActivityLevel)
	assert.Equal(t, "No frames were analyzed", report.Recommendation)
	assert.Empty(t, report.Frames)
}

func TestAggregatorStateMovesForwardOnly(t *testing.T) {
	agg := NewAggregator()
	assert.Equal(t, Collecting, agg.State())

	require.NoError(t, agg.Add(frameResult(10, 10, 10)))
	agg.Finalize(Meta{})
	assert.Equal(t, Complete, agg.State())

	err := agg.Add(frameResult(10, 10, 10))
	assert.Error(t, err)
	assert.Equal(t, 1, agg.Count())
}

func TestTimeTrackerStats(t *testing.T) {
	var tr TimeTracker
	assert.Zero(t, tr.Stats())

	tr.Record(10e6) // 10ms
	tr.Record(30e6)
	tr.Record(20e6)

	stats := tr.Stats()
	assert.Equal(t, int64(3), stats.Frames)
	assert.InDelta(t, 20.0, stats.AverageMs, 0.01)
	assert.InDelta(t, 10.0, stats.MinMs, 0.01)
	assert.InDelta(t, 30.0, stats.MaxMs, 0.01)
}
