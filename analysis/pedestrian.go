package analysis

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// PedestrianDetector estimates foot traffic with a multi-scale HOG descriptor
// and the pretrained linear classifier for upright human silhouettes.
type PedestrianDetector struct {
	cfg PedestrianConfig
	hog gocv.HOGDescriptor
}

// NewPedestrianDetector builds a HOG descriptor loaded with the default
// people detector.
func NewPedestrianDetector(cfg PedestrianConfig) (*PedestrianDetector, error) {
	hog := gocv.NewHOGDescriptor()
	if err := hog.SetSVMDetector(gocv.HOGDefaultPeopleDetector()); err != nil {
		hog.Close()
		return nil, errors.Wrap(err, "loading default people detector")
	}
	return &PedestrianDetector{cfg: cfg, hog: hog}, nil
}

// Detect counts pedestrian bounding boxes in a color frame and maps the count
// onto the saturating 0-100 scale. Frames wider than MaxWidth are downscaled
// first for throughput; counting is unaffected by the scale.
func (d *PedestrianDetector) Detect(frame gocv.Mat) (count int, pct float64) {
	img := frame
	if w := frame.Cols(); d.cfg.MaxWidth > 0 && w > d.cfg.MaxWidth {
		scale := float64(d.cfg.MaxWidth) / float64(w)
		scaled := gocv.NewMat()
		defer scaled.Close()
		gocv.Resize(frame, &scaled,
			image.Pt(d.cfg.MaxWidth, int(float64(frame.Rows())*scale)), 0, 0,
			gocv.InterpolationLinear)
		img = scaled
	}

	boxes := d.hog.DetectMultiScaleWithParams(img, 0,
		image.Pt(d.cfg.WinStride, d.cfg.WinStride),
		image.Pt(d.cfg.Padding, d.cfg.Padding),
		d.cfg.Scale, 2.0, false)
	return len(boxes), SaturatingPct(len(boxes), d.cfg.SaturationCount)
}

// Close releases the underlying OpenCV descriptor.
func (d *PedestrianDetector) Close() error {
	return d.hog.Close()
}
