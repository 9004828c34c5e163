package analysis

import "math"

// Weights for the combined activity score. Crowd density dominates; vehicle
// and foot traffic contribute equally.
const (
	crowdWeight   = 0.4
	vehicleWeight = 0.3
	footWeight    = 0.3
)

// Activity levels, from least to most busy.
const (
	LevelQuiet    = "Quiet"
	LevelModerate = "Moderate"
	LevelBusy     = "Busy"
	LevelVeryBusy = "Very Busy"
)

// Metric levels shared by the three per-metric percentages.
const (
	MetricLow      = "Low"
	MetricMedium   = "Medium"
	MetricHigh     = "High"
	MetricVeryHigh = "Very High"
)

// SaturatingPct maps a raw detection count onto [0,100]: counts at or above
// saturation read as 100%.
func SaturatingPct(count, saturation int) float64 {
	if saturation < 1 {
		saturation = 1
	}
	return math.Min(float64(count)/float64(saturation)*100, 100)
}

// ActivityScore combines the three per-frame percentages into one 0-100
// scalar.
func ActivityScore(crowdPct, vehiclePct, footPct float64) float64 {
	return crowdWeight*crowdPct + vehicleWeight*vehiclePct + footWeight*footPct
}

// MetricLevel classifies a metric percentage. A reading of exactly 50 is
// still "Medium"; each band owns its upper boundary.
func MetricLevel(pct float64) string {
	switch {
	case pct > 75:
		return MetricVeryHigh
	case pct > 50:
		return MetricHigh
	case pct > 25:
		return MetricMedium
	default:
		return MetricLow
	}
}

// ActivityLevel classifies an activity score; band lower bounds are
// inclusive.
func ActivityLevel(score float64) string {
	switch {
	case score >= 70:
		return LevelVeryBusy
	case score >= 50:
		return LevelBusy
	case score >= 30:
		return LevelModerate
	default:
		return LevelQuiet
	}
}

// Recommendation returns the visit advice for an activity level.
func Recommendation(level string) string {
	switch level {
	case LevelVeryBusy:
		return "Very crowded - consider visiting during off-peak hours"
	case LevelBusy:
		return "Busy - expect crowds, consider timing your visit"
	case LevelModerate:
		return "Moderately busy - good time to visit"
	default:
		return "Quiet location - excellent time to visit"
	}
}

// FrameSummary pairs one frame's metrics with their classifications, for
// callers analyzing a single snapshot rather than a stream.
type FrameSummary struct {
	FrameAnalysis
	CrowdLevel     string `json:"crowd_level"`
	VehicleLevel   string `json:"vehicle_level"`
	FootLevel      string `json:"foot_traffic_level"`
	ActivityLevel  string `json:"activity_level"`
	Recommendation string `json:"recommendation"`
}

// Summarize classifies a single frame's metrics.
func Summarize(fa FrameAnalysis) FrameSummary {
	level := ActivityLevel(fa.ActivityScore)
	return FrameSummary{
		FrameAnalysis:  fa,
		CrowdLevel:     MetricLevel(fa.CrowdDensityPct),
		VehicleLevel:   MetricLevel(fa.VehicleTrafficPct),
		FootLevel:      MetricLevel(fa.FootTrafficPct),
		ActivityLevel:  level,
		Recommendation: Recommendation(level),
	}
}
