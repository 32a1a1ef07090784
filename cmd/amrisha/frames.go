package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/amrisha/render"
	"github.com/lixenwraith/amrisha/status"
	"github.com/lixenwraith/amrisha/story"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Export the scenario as numbered PNG frames",
	Long: `Runs the story to completion as fast as possible and writes one
PNG per simulation tick into the configured output directory.`,
	RunE: runFrames,
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	frames, err := render.NewFrames(cfg.Render.OutDir, cfg.Render.Width, cfg.Render.Height)
	if err != nil {
		return err
	}

	reg := status.NewRegistry()
	driver, err := story.New(cfg, frames, story.WithStatus(reg))
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
		if err := frames.Flush(); err != nil {
			return err
		}
	}

	for _, line := range reg.Snapshot() {
		logger.Debug("status", zap.String("metric", line))
	}
	logger.Info("frames written",
		zap.Int("count", frames.Count()),
		zap.String("dir", cfg.Render.OutDir),
		zap.Float64("seconds", driver.Clock()))
	return nil
}
