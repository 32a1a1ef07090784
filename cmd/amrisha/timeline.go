package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/story"
)

var (
	timelineOut      string
	timelineInterval float64
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Export the scenario as a keyframe timeline",
	Long: `Runs the story headless and records every scene write as keyframes,
thinned to the sample interval, for offline animation tooling.`,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVarP(&timelineOut, "out", "o", "timeline.toml", "output file")
	timelineCmd.Flags().Float64Var(&timelineInterval, "interval", 0.1, "keyframe sample interval in seconds")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if timelineInterval <= 0 {
		return fmt.Errorf("interval must be > 0, got %f", timelineInterval)
	}

	rec := scene.NewRecorder(timelineInterval)
	driver, err := story.New(cfg, rec,
		story.WithTickHook(func(dt float64) { rec.Advance(dt) }))
	if err != nil {
		return err
	}
	if err := driver.Start(); err != nil {
		return err
	}

	dt := cfg.Dt()
	limit := cfg.Render.MaxTicks
	if limit <= 0 {
		limit = 100000
	}
	for tick := 0; !driver.Done(); tick++ {
		if tick >= limit {
			return fmt.Errorf("story did not finish within %d ticks", limit)
		}
		driver.Tick(dt)
	}

	if err := rec.WriteFile(timelineOut); err != nil {
		return err
	}
	logger.Info("timeline written",
		zap.String("path", timelineOut),
		zap.Int("channels", len(rec.ChannelNames())),
		zap.Float64("duration", rec.Clock()))
	return nil
}
