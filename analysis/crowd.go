package analysis

import (
	"gocv.io/x/gocv"
)

// CrowdDetector estimates crowd density by counting compact intensity blobs,
// a proxy for clustered human silhouettes seen from an elevated camera.
type CrowdDetector struct {
	cfg      CrowdConfig
	detector gocv.SimpleBlobDetector
}

// NewCrowdDetector builds a blob detector filtered only by area; circularity,
// convexity and inertia filters are disabled so loose clusters still count.
func NewCrowdDetector(cfg CrowdConfig) *CrowdDetector {
	params := gocv.NewSimpleBlobDetectorParams()
	params.SetFilterByArea(true)
	params.SetMinArea(cfg.MinBlobArea)
	params.SetMaxArea(cfg.MaxBlobArea)
	params.SetFilterByCircularity(false)
	params.SetFilterByConvexity(false)
	params.SetFilterByInertia(false)

	return &CrowdDetector{
		cfg:      cfg,
		detector: gocv.NewSimpleBlobDetectorWithParams(params),
	}
}

// Detect counts blobs in a single-channel intensity image and maps the count
// onto the saturating 0-100 scale.
func (d *CrowdDetector) Detect(gray gocv.Mat) (count int, pct float64) {
	keypoints := d.detector.Detect(gray)
	return len(keypoints), SaturatingPct(len(keypoints), d.cfg.SaturationCount)
}

// Close releases the underlying OpenCV detector.
func (d *CrowdDetector) Close() error {
	return d.detector.Close()
}
