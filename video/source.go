// Package video provides frame sources and fixed-cadence sampling for
// stream-based activity analysis.
package video

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// DefaultFPS is assumed when a source cannot report its frame rate.
const DefaultFPS = 30.0

var (
	// ErrSourceUnavailable indicates a source that could not be opened at all.
	// It is fatal and surfaces before any frame is read.
	ErrSourceUnavailable = errors.New("video source unavailable")

	// ErrDecodeFailure indicates a single frame that could not be decoded.
	// It is recoverable: callers skip the frame and keep reading.
	ErrDecodeFailure = errors.New("frame decode failure")
)

// Frame is a single decoded frame. The Image Mat is owned by the source and
// is only valid until the next call to Next; callers must not retain it.
type Frame struct {
	Image gocv.Mat
	// Index is the sequence position from stream start.
	Index int
	// Timestamp is Index divided by the source frame rate, in seconds.
	Timestamp float64
}

// SourceKind distinguishes finite recordings from unbounded live streams.
type SourceKind int

const (
	// SourceBounded is a recording with a known total frame count.
	SourceBounded SourceKind = iota
	// SourceUnbounded is a live stream with no known end.
	SourceUnbounded
)

// SourceInfo describes a resolved video source.
type SourceInfo struct {
	Title string `json:"title,omitempty"`
	// FPS is the source frame rate; 0 means unknown (see EffectiveFPS).
	FPS float64 `json:"fps"`
	// TotalFrames is 0 for unbounded/live sources.
	TotalFrames int  `json:"total_frames"`
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	Live        bool `json:"is_live"`
}

// Kind reports whether the source is bounded or unbounded.
func (si SourceInfo) Kind() SourceKind {
	if si.Live || si.TotalFrames == 0 {
		return SourceUnbounded
	}
	return SourceBounded
}

// EffectiveFPS returns the frame rate to use for cadence math, falling back
// to DefaultFPS when the source did not report one.
func (si SourceInfo) EffectiveFPS() float64 {
	if si.FPS > 0 {
		return si.FPS
	}
	return DefaultFPS
}

// Source is a finite or unbounded sequence of decoded frames.
//
// Next returns io.EOF once the stream is exhausted and ErrDecodeFailure for
// a frame that could not be decoded. Reading is strictly sequential.
type Source interface {
	Info() SourceInfo
	Next() (Frame, error)
	Close() error
}

// Resolver turns a location/video locator into an open Source. Implementations
// that cannot open the locator return an error wrapping ErrSourceUnavailable.
type Resolver interface {
	Resolve(locator string) (Source, error)
}
