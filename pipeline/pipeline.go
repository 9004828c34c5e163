// Package pipeline composes frame sampling, per-frame analysis and result
// aggregation into one activity-analysis run over a video source.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/streetlens/go-activity/analysis"
	"github.com/streetlens/go-activity/video"
)

// ErrInvalidParameters indicates sampling parameters rejected before any I/O.
var ErrInvalidParameters = errors.New("invalid analysis parameters")

// FrameAnalyzer analyzes one sampled frame. *analysis.Analyzer is the
// production implementation.
type FrameAnalyzer interface {
	AnalyzeFrame(video.Frame) (analysis.FrameAnalysis, error)
}

// Options configures one pipeline run.
type Options struct {
	// Location is an opaque label attached unmodified to the report.
	Location string
	// SampleFrames is the target number of frames to analyze.
	SampleFrames int
	// FrameInterval is the source-time spacing between samples.
	FrameInterval time.Duration
	// MaxReads caps total frames read; 0 uses the sampler default.
	MaxReads int
	// OnFrame, if set, observes each per-frame result as it is produced.
	OnFrame func(analysis.FrameAnalysis)
}

func (o Options) withDefaults() Options {
	if o.SampleFrames == 0 {
		o.SampleFrames = video.DefaultSampleFrames
	}
	if o.FrameInterval == 0 {
		o.FrameInterval = video.DefaultFrameInterval
	}
	return o
}

// Pipeline runs sampling, analysis and aggregation over one source at a time.
type Pipeline struct {
	analyzer FrameAnalyzer
	log      *slog.Logger
}

// New returns a pipeline around the given analyzer. A nil logger falls back
// to slog.Default.
func New(analyzer FrameAnalyzer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{analyzer: analyzer, log: log}
}

// Analyze samples frames from src at the configured cadence, analyzes each
// one, and aggregates the results into a report.
//
// The source is always closed, also on error or cancellation. Faults past
// parameter validation never discard analyzed frames: cancellation, stream
// end and mid-read errors all finalize the report from whatever was
// gathered, down to the explicit empty report for zero frames.
func (p *Pipeline) Analyze(ctx context.Context, src video.Source, opts Options) (*Report, error) {
	defer src.Close()

	opts = opts.withDefaults()
	sampler := &video.Sampler{
		SampleFrames:  opts.SampleFrames,
		FrameInterval: opts.FrameInterval,
		MaxReads:      opts.MaxReads,
	}
	if err := sampler.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidParameters, err.Error())
	}

	info := src.Info()
	p.log.Info("starting analysis",
		"title", info.Title,
		"live", info.Live,
		"fps", info.EffectiveFPS(),
		"sample_frames", opts.SampleFrames,
		"frame_interval", opts.FrameInterval,
		"frame_skip", sampler.FrameSkip(info.EffectiveFPS()))

	agg := NewAggregator()
	var timing TimeTracker

	_, err := sampler.Sample(ctx, src, func(f video.Frame) error {
		start := time.Now()
		result, err := p.analyzer.AnalyzeFrame(f)
		if err != nil {
			// Recoverable, like a decode failure: the frame is dropped and
			// sampling continues.
			p.log.Warn("frame analysis failed", "frame", f.Index, "error", err)
			return nil
		}
		timing.Record(time.Since(start))

		if err := agg.Add(result); err != nil {
			return err
		}
		if opts.OnFrame != nil {
			opts.OnFrame(result)
		}
		p.log.Debug("frame analyzed",
			"frame", f.Index,
			"activity_score", result.ActivityScore)
		return nil
	})
	if err != nil {
		p.log.Warn("sampling ended early", "frames_analyzed", agg.Count(), "error", err)
	}

	report := agg.Finalize(Meta{
		Location:   opts.Location,
		Source:     info,
		Processing: timing.Stats(),
	})
	p.log.Info("analysis complete",
		"frames_analyzed", report.FramesAnalyzed,
		"activity_level", report.ActivityLevel)
	return report, nil
}
