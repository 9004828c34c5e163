package analysis

import (
	"image"

	"gocv.io/x/gocv"
)

// VehicleDetector estimates vehicle traffic by counting large closed contours
// in an edge map. The blur suppresses sensor noise and the area floor drops
// pedestrians and small objects, leaving car/truck-sized silhouettes.
type VehicleDetector struct {
	cfg VehicleConfig
}

// NewVehicleDetector returns a detector with the given tuning.
func NewVehicleDetector(cfg VehicleConfig) *VehicleDetector {
	return &VehicleDetector{cfg: cfg}
}

// Detect counts vehicle-sized contours in a single-channel intensity image
// and maps the count onto the saturating 0-100 scale.
func (d *VehicleDetector) Detect(gray gocv.Mat) (count int, pct float64) {
	blurred := gocv.NewMat()
	defer blurred.Close()
	k := d.cfg.BlurKernelSize
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, d.cfg.CannyLowThreshold, d.cfg.CannyHighThreshold)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		if gocv.ContourArea(contours.At(i)) > d.cfg.MinContourArea {
			count++
		}
	}
	return count, SaturatingPct(count, d.cfg.SaturationCount)
}
