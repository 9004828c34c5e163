package pipeline

import (
	"time"

	"github.com/streetlens/go-activity/analysis"
	"github.com/streetlens/go-activity/video"
)

// MetricSummary aggregates one metric across all analyzed frames.
type MetricSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Level   string  `json:"level"`
}

// Report is the terminal, immutable artifact of a pipeline run.
//
// An empty run (stream ended or cancelled before the first sample) is a
// distinct report state with Empty set, not an error.
type Report struct {
	ID          string    `json:"report_id"`
	Location    string    `json:"location,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	Source         video.SourceInfo `json:"source"`
	FramesAnalyzed int              `json:"frames_analyzed"`
	Empty          bool             `json:"empty"`

	Crowd   MetricSummary `json:"crowd_analysis"`
	Vehicle MetricSummary `json:"vehicle_analysis"`
	Foot    MetricSummary `json:"foot_traffic_analysis"`

	AverageActivityScore float64 `json:"average_activity_score"`
	ActivityLevel        string  `json:"activity_level"`
	Recommendation       string  `json:"recommendation"`

	Frames     []analysis.FrameAnalysis `json:"frame_analyses,omitempty"`
	Processing TimingStats              `json:"processing"`
}
