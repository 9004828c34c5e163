// Package analysis implements per-frame activity detectors and scoring:
// crowd density via blob detection, vehicle traffic via edge/contour
// analysis, and foot traffic via HOG pedestrian detection.
package analysis

// CrowdConfig tunes the blob detector used for crowd density estimation.
type CrowdConfig struct {
	// MinBlobArea and MaxBlobArea bound the pixel area of blobs counted as
	// clustered human shapes.
	MinBlobArea float64 `json:"min_blob_area" yaml:"min_blob_area"`
	MaxBlobArea float64 `json:"max_blob_area" yaml:"max_blob_area"`
	// SaturationCount is the blob count that maps to 100%.
	SaturationCount int `json:"saturation_count" yaml:"saturation_count"`
}

// VehicleConfig tunes the edge/contour detector used for vehicle traffic.
type VehicleConfig struct {
	// BlurKernelSize is the Gaussian kernel width applied before edge
	// detection. Must be odd.
	BlurKernelSize int `json:"blur_kernel_size" yaml:"blur_kernel_size"`
	// CannyLowThreshold and CannyHighThreshold are the gradient-magnitude
	// hysteresis thresholds.
	CannyLowThreshold  float32 `json:"canny_low_threshold" yaml:"canny_low_threshold"`
	CannyHighThreshold float32 `json:"canny_high_threshold" yaml:"canny_high_threshold"`
	// MinContourArea excludes contours too small to be a vehicle silhouette.
	MinContourArea float64 `json:"min_contour_area" yaml:"min_contour_area"`
	// SaturationCount is the contour count that maps to 100%.
	SaturationCount int `json:"saturation_count" yaml:"saturation_count"`
}

// PedestrianConfig tunes the HOG people detector used for foot traffic.
type PedestrianConfig struct {
	// MaxWidth downscales wider frames before detection; 0 disables.
	MaxWidth int `json:"max_width" yaml:"max_width"`
	// WinStride and Padding are the multi-scale detection window parameters,
	// in pixels, applied on both axes.
	WinStride int `json:"win_stride" yaml:"win_stride"`
	Padding   int `json:"padding" yaml:"padding"`
	// Scale is the pyramid scale step.
	Scale float64 `json:"scale" yaml:"scale"`
	// SaturationCount is the box count that maps to 100%.
	SaturationCount int `json:"saturation_count" yaml:"saturation_count"`
}

// Config carries the tuning for all three detectors. Thresholds live here
// rather than in process-wide constants so deployments can tune them and
// tests stay deterministic.
type Config struct {
	Crowd      CrowdConfig      `json:"crowd" yaml:"crowd"`
	Vehicle    VehicleConfig    `json:"vehicle" yaml:"vehicle"`
	Pedestrian PedestrianConfig `json:"pedestrian" yaml:"pedestrian"`
}

// DefaultConfig returns the detector tuning the analyzer ships with. The
// saturation counts (100 blobs, 50 contours, 20 boxes) are deliberately
// crude linear mappings, not calibrated object counts.
func DefaultConfig() Config {
	return Config{
		Crowd: CrowdConfig{
			MinBlobArea:     100,
			MaxBlobArea:     5000,
			SaturationCount: 100,
		},
		Vehicle: VehicleConfig{
			BlurKernelSize:     5,
			CannyLowThreshold:  50,
			CannyHighThreshold: 150,
			MinContourArea:     500,
			SaturationCount:    50,
		},
		Pedestrian: PedestrianConfig{
			MaxWidth:        800,
			WinStride:       8,
			Padding:         32,
			Scale:           1.05,
			SaturationCount: 20,
		},
	}
}
