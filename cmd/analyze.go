package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/streetlens/go-activity/analysis"
	"github.com/streetlens/go-activity/pipeline"
	"github.com/streetlens/go-activity/video"
)

var (
	analyzeLocation string
	analyzeFrames   int
	analyzeInterval float64
	analyzeTimeout  time.Duration
	analyzeQuiet    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source>",
	Short: "Sample and analyze frames from a video file, stream URL or device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if analyzeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, analyzeTimeout)
			defer cancel()
		}

		frames := analyzeFrames
		if frames == 0 {
			frames = Cfg.Sampling.SampleFrames
		}
		interval := analyzeInterval
		if interval == 0 {
			interval = Cfg.Sampling.FrameIntervalSeconds
		}

		src, err := video.FileResolver{}.Resolve(args[0])
		if err != nil {
			return err
		}

		analyzer, err := analysis.NewAnalyzer(Cfg.Detectors)
		if err != nil {
			src.Close()
			return err
		}
		defer analyzer.Close()

		opts := pipeline.Options{
			Location:      analyzeLocation,
			SampleFrames:  frames,
			FrameInterval: time.Duration(interval * float64(time.Second)),
			MaxReads:      Cfg.Sampling.MaxReads,
		}
		if !analyzeQuiet {
			bar := progressbar.NewOptions(frames,
				progressbar.OptionSetDescription("sampling"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			)
			opts.OnFrame = func(analysis.FrameAnalysis) { _ = bar.Add(1) }
			defer bar.Finish()
		}

		report, err := pipeline.New(analyzer, Log).Analyze(ctx, src, opts)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLocation, "location", "", "Location label attached to the report")
	analyzeCmd.Flags().IntVar(&analyzeFrames, "frames", 0, "Frames to sample (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeInterval, "interval", 0, "Seconds between samples (default from config)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "Wall-clock budget for the whole run (0 = none)")
	analyzeCmd.Flags().BoolVar(&analyzeQuiet, "quiet", false, "Disable the progress bar")
	rootCmd.AddCommand(analyzeCmd)
}
