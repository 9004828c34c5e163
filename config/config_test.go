package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Sampling.SampleFrames)
	assert.InDelta(t, 10.0, cfg.Sampling.FrameIntervalSeconds, 1e-9)
	assert.Equal(t, 100, cfg.Detectors.Crowd.SaturationCount)
	assert.Equal(t, 50, cfg.Detectors.Vehicle.SaturationCount)
	assert.Equal(t, 20, cfg.Detectors.Pedestrian.SaturationCount)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
sampling:
  sample_frames: 7
detectors:
  vehicle:
    min_contour_area: 800
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.Sampling.SampleFrames)
	assert.InDelta(t, 800.0, cfg.Detectors.Vehicle.MinContourArea, 1e-9)
	// Untouched fields keep their defaults.
	assert.InDelta(t, 10.0, cfg.Sampling.FrameIntervalSeconds, 1e-9)
	assert.Equal(t, 50, cfg.Detectors.Vehicle.SaturationCount)
	assert.Equal(t, 100, cfg.Detectors.Crowd.SaturationCount)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ACTIVITY_LOG_LEVEL", "warn")
	t.Setenv("ACTIVITY_SAMPLE_FRAMES", "9")
	t.Setenv("ACTIVITY_FRAME_INTERVAL_SECONDS", "2.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 9, cfg.Sampling.SampleFrames)
	assert.InDelta(t, 2.5, cfg.Sampling.FrameIntervalSeconds, 1e-9)
}
