package video

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Capture is a Source backed by gocv.VideoCapture. It handles files, stream
// URLs and capture devices alike.
type Capture struct {
	cap   *gocv.VideoCapture
	mat   gocv.Mat
	info  SourceInfo
	index int
}

// OpenCapture opens the given locator and reads its descriptive properties.
// A locator that cannot be opened yields ErrSourceUnavailable.
func OpenCapture(locator string) (*Capture, error) {
	cap, err := gocv.OpenVideoCapture(locator)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "opening %q: %v", locator, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, errors.Wrapf(ErrSourceUnavailable, "opening %q", locator)
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	total := int(cap.Get(gocv.VideoCaptureFrameCount))
	if total < 0 {
		total = 0
	}

	return &Capture{
		cap: cap,
		mat: gocv.NewMat(),
		info: SourceInfo{
			Title:       filepath.Base(locator),
			FPS:         fps,
			TotalFrames: total,
			Width:       int(cap.Get(gocv.VideoCaptureFrameWidth)),
			Height:      int(cap.Get(gocv.VideoCaptureFrameHeight)),
			Live:        total == 0,
		},
	}, nil
}

// Info returns the properties read when the capture was opened.
func (c *Capture) Info() SourceInfo {
	return c.info
}

// Next reads the next frame. The returned Frame reuses an internal Mat and is
// only valid until the following call.
func (c *Capture) Next() (Frame, error) {
	if ok := c.cap.Read(&c.mat); !ok {
		return Frame{}, io.EOF
	}
	idx := c.index
	c.index++
	if c.mat.Empty() {
		return Frame{}, errors.Wrapf(ErrDecodeFailure, "frame %d", idx)
	}
	return Frame{
		Image:     c.mat,
		Index:     idx,
		Timestamp: float64(idx) / c.info.EffectiveFPS(),
	}, nil
}

// Close releases the decoder handle and the frame buffer.
func (c *Capture) Close() error {
	c.mat.Close()
	return c.cap.Close()
}

// FileResolver opens locators (file paths, RTSP/HTTP stream URLs) directly
// with OpenCV. Extraction of decodable URLs from video-sharing sites is the
// job of an upstream resolver.
type FileResolver struct{}

// Resolve implements Resolver.
func (FileResolver) Resolve(locator string) (Source, error) {
	return OpenCapture(locator)
}
