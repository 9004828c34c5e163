package video

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultSampleFrames is the number of frames sampled per run.
	DefaultSampleFrames = 5
	// DefaultFrameInterval is the source-time spacing between samples.
	DefaultFrameInterval = 10 * time.Second
	// DefaultMaxReads bounds the total frames read from a source, so an
	// unbounded stream cannot spin forever even without cancellation.
	DefaultMaxReads = 10000
)

// Sampler walks a Source and emits frames at a fixed time cadence until the
// target sample count is reached or the source is exhausted.
type Sampler struct {
	// SampleFrames is the target number of emitted frames (min 1).
	SampleFrames int
	// FrameInterval is the source-time spacing between emitted frames.
	FrameInterval time.Duration
	// MaxReads caps total reads; 0 means DefaultMaxReads.
	MaxReads int
}

// Validate checks the sampling parameters before any I/O happens.
func (s *Sampler) Validate() error {
	if s.SampleFrames < 1 {
		return errors.Errorf("sample frames must be >= 1, got %d", s.SampleFrames)
	}
	if s.FrameInterval <= 0 {
		return errors.Errorf("frame interval must be > 0, got %s", s.FrameInterval)
	}
	return nil
}

// FrameSkip converts the time cadence into a frame stride for the given
// frame rate. The stride is never below 1.
func (s *Sampler) FrameSkip(fps float64) int {
	skip := int(math.Round(fps * s.FrameInterval.Seconds()))
	if skip < 1 {
		skip = 1
	}
	return skip
}

// Sample reads frames sequentially from src, calling emit for every frame
// that falls on the cadence, starting with frame index 0. It stops when
// SampleFrames frames have been emitted, the source reports io.EOF, the
// context is cancelled, or MaxReads frames have been read.
//
// Decode failures are skipped and still consume their frame index. The
// emitted count is returned even when an error ends sampling early, so
// already-analyzed work is never discarded.
func (s *Sampler) Sample(ctx context.Context, src Source, emit func(Frame) error) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	skip := s.FrameSkip(src.Info().EffectiveFPS())
	maxReads := s.MaxReads
	if maxReads <= 0 {
		maxReads = DefaultMaxReads
	}

	emitted := 0
	for reads := 0; emitted < s.SampleFrames && reads < maxReads; reads++ {
		if err := ctx.Err(); err != nil {
			return emitted, err
		}

		frame, err := src.Next()
		switch {
		case errors.Is(err, io.EOF):
			return emitted, nil
		case errors.Is(err, ErrDecodeFailure):
			continue
		case err != nil:
			return emitted, errors.Wrap(err, "reading frame")
		}

		if frame.Index%skip != 0 {
			continue
		}
		if err := emit(frame); err != nil {
			return emitted, err
		}
		emitted++
	}
	return emitted, nil
}
