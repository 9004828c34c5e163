package analysis

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"

	"github.com/streetlens/go-activity/video"
)

// FrameAnalysis is the immutable per-frame result: the three bounded
// percentages, the raw counts behind them, and the combined activity score.
type FrameAnalysis struct {
	FrameIndex        int     `json:"frame_index"`
	Timestamp         float64 `json:"timestamp_seconds"`
	CrowdCount        int     `json:"detected_blobs"`
	CrowdDensityPct   float64 `json:"crowd_density_pct"`
	VehicleCount      int     `json:"detected_vehicles"`
	VehicleTrafficPct float64 `json:"vehicle_traffic_pct"`
	PedestrianCount   int     `json:"detected_pedestrians"`
	FootTrafficPct    float64 `json:"foot_traffic_pct"`
	ActivityScore     float64 `json:"activity_score"`
}

// Analyzer runs the three detectors over single frames. It owns native
// OpenCV resources and must be closed after use.
type Analyzer struct {
	cfg        Config
	crowd      *CrowdDetector
	vehicle    *VehicleDetector
	pedestrian *PedestrianDetector
}

// NewAnalyzer constructs the three detectors from one configuration.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	pedestrian, err := NewPedestrianDetector(cfg.Pedestrian)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		cfg:        cfg,
		crowd:      NewCrowdDetector(cfg.Crowd),
		vehicle:    NewVehicleDetector(cfg.Vehicle),
		pedestrian: pedestrian,
	}, nil
}

// Close releases the detectors' native resources.
func (a *Analyzer) Close() error {
	err := a.crowd.Close()
	if perr := a.pedestrian.Close(); err == nil {
		err = perr
	}
	return err
}

// AnalyzeFrame analyzes one sampled frame, carrying its index and timestamp
// into the result.
func (a *Analyzer) AnalyzeFrame(f video.Frame) (FrameAnalysis, error) {
	result, err := a.AnalyzeMat(f.Image)
	if err != nil {
		return FrameAnalysis{}, err
	}
	result.FrameIndex = f.Index
	result.Timestamp = f.Timestamp
	return result, nil
}

// AnalyzeMat runs the three detectors over one decoded frame. The detectors
// have no data dependency on one another, so they fan out over the read-only
// Mat and join before scoring.
func (a *Analyzer) AnalyzeMat(frame gocv.Mat) (FrameAnalysis, error) {
	if frame.Empty() {
		return FrameAnalysis{}, errors.New("empty frame")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() == 1 {
		frame.CopyTo(&gray)
	} else {
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	}

	var result FrameAnalysis
	g := new(errgroup.Group)
	g.Go(func() error {
		result.CrowdCount, result.CrowdDensityPct = a.crowd.Detect(gray)
		return nil
	})
	g.Go(func() error {
		result.VehicleCount, result.VehicleTrafficPct = a.vehicle.Detect(gray)
		return nil
	})
	g.Go(func() error {
		result.PedestrianCount, result.FootTrafficPct = a.pedestrian.Detect(frame)
		return nil
	})
	if err := g.Wait(); err != nil {
		return FrameAnalysis{}, err
	}

	result.ActivityScore = ActivityScore(
		result.CrowdDensityPct, result.VehicleTrafficPct, result.FootTrafficPct)
	return result, nil
}

// AnalyzeImage analyzes a single decoded image, for callers that hold one
// snapshot rather than a stream. Wide images are downscaled before
// conversion.
func (a *Analyzer) AnalyzeImage(img image.Image) (FrameAnalysis, error) {
	if maxW := a.cfg.Pedestrian.MaxWidth; maxW > 0 && img.Bounds().Dx() > maxW {
		img = resize.Resize(uint(maxW), 0, img, resize.Bilinear)
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return FrameAnalysis{}, errors.Wrap(err, "converting image")
	}
	defer mat.Close()
	return a.AnalyzeMat(mat)
}

// AnalyzeFile analyzes a single image file.
func (a *Analyzer) AnalyzeFile(path string) (FrameAnalysis, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return FrameAnalysis{}, errors.Errorf("failed to load image %q", path)
	}
	defer mat.Close()
	return a.AnalyzeMat(mat)
}
