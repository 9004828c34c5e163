package pipeline

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetlens/go-activity/analysis"
	"github.com/streetlens/go-activity/video"
)

// fakeSource serves empty frames with sequential indices; total < 0 means
// unbounded.
type fakeSource struct {
	info   video.SourceInfo
	total  int
	reads  int
	closed bool
}

func (s *fakeSource) Info() video.SourceInfo { return s.info }

func (s *fakeSource) Next() (video.Frame, error) {
	if s.total >= 0 && s.reads >= s.total {
		return video.Frame{}, io.EOF
	}
	idx := s.reads
	s.reads++
	return video.Frame{Index: idx, Timestamp: float64(idx) / s.info.EffectiveFPS()}, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

// fakeAnalyzer returns canned results keyed by call order.
type fakeAnalyzer struct {
	results []analysis.FrameAnalysis
	failAt  map[int]bool
	calls   int
}

func (a *fakeAnalyzer) AnalyzeFrame(f video.Frame) (analysis.FrameAnalysis, error) {
	call := a.calls
	a.calls++
	if a.failAt[call] {
		return analysis.FrameAnalysis{}, errors.New("detector failure")
	}
	result := a.results[call%len(a.results)]
	result.FrameIndex = f.Index
	result.Timestamp = f.Timestamp
	return result, nil
}

func testResults() []analysis.FrameAnalysis {
	return []analysis.FrameAnalysis{
		{CrowdDensityPct: 80, VehicleTrafficPct: 20, FootTrafficPct: 10, ActivityScore: 41},
		{CrowdDensityPct: 40, VehicleTrafficPct: 40, FootTrafficPct: 40, ActivityScore: 40},
		{CrowdDensityPct: 60, VehicleTrafficPct: 30, FootTrafficPct: 20, ActivityScore: 39},
	}
}

func TestPipelineAnalyzesBoundedSource(t *testing.T) {
	src := &fakeSource{info: video.SourceInfo{FPS: 1, TotalFrames: 3}, total: 3}
	fa := &fakeAnalyzer{results: testResults()}

	var observed int
	report, err := New(fa, nil).Analyze(context.Background(), src, Options{
		Location:      "Shibuya Crossing",
		SampleFrames:  3,
		FrameInterval: time.Second, // skip of 1 at 1 fps: every frame sampled
		OnFrame:       func(analysis.FrameAnalysis) { observed++ },
	})
	require.NoError(t, err)

	assert.True(t, src.closed)
	assert.Equal(t, 3, report.FramesAnalyzed)
	assert.Equal(t, 3, observed)
	assert.Equal(t, "Shibuya Crossing", report.Location)
	assert.InDelta(t, 60.0, report.Crowd.Average, 0.01)
	assert.InDelta(t, 40.0, report.AverageActivityScore, 0.01)
	assert.Equal(t, analysis.LevelModerate, report.ActivityLevel)
	assert.Equal(t, video.SourceInfo{FPS: 1, TotalFrames: 3}, report.Source)
	assert.Equal(t, int64(3), report.Processing.Frames)
}

func TestPipelineRejectsInvalidParameters(t *testing.T) {
	src := &fakeSource{info: video.SourceInfo{FPS: 30, TotalFrames: 10}, total: 10}

	report, err := New(&fakeAnalyzer{results: testResults()}, nil).
		Analyze(context.Background(), src, Options{SampleFrames: -1, FrameInterval: time.Second})

	assert.ErrorIs(t, err, ErrInvalidParameters)
	assert.Nil(t, report)
	assert.True(t, src.closed, "source must be released even on rejected parameters")
	assert.Equal(t, 0, src.reads, "no I/O before validation")
}

func TestPipelineCancelledBeforeFirstSample(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{info: video.SourceInfo{FPS: 30, Live: true}, total: -1}
	report, err := New(&fakeAnalyzer{results: testResults()}, nil).
		Analyze(ctx, src, Options{SampleFrames: 5, FrameInterval: 10 * time.Second})

	require.NoError(t, err)
	assert.True(t, src.closed)
	assert.True(t, report.Empty)
	assert.Equal(t, 0, report.FramesAnalyzed)
}

func TestPipelineSkipsFailedFrames(t *testing.T) {
	src := &fakeSource{info: video.SourceInfo{FPS: 1, TotalFrames: 3}, total: 3}
	fa := &fakeAnalyzer{results: testResults(), failAt: map[int]bool{1: true}}

	report, err := New(fa, nil).Analyze(context.Background(), src, Options{
		SampleFrames:  3,
		FrameInterval: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.FramesAnalyzed)
	assert.False(t, report.Empty)
}

func TestPipelineDefaultsSamplingOptions(t *testing.T) {
	// 5 default samples at the default 10s interval over a 30fps source
	// exhausts a 300-frame recording after one sample.
	src := &fakeSource{info: video.SourceInfo{FPS: 30, TotalFrames: 300}, total: 300}

	report, err := New(&fakeAnalyzer{results: testResults()}, nil).
		Analyze(context.Background(), src, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.FramesAnalyzed)
	assert.Equal(t, 0, report.Frames[0].FrameIndex)
}
