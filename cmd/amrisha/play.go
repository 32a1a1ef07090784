package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/amrisha/narration"
	"github.com/lixenwraith/amrisha/render"
	"github.com/lixenwraith/amrisha/status"
	"github.com/lixenwraith/amrisha/story"
)

var playSound bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the scenario live in the terminal",
	Long: `Runs the story at the configured frame rate on a tcell screen.
Quit with Escape, Ctrl-C or q.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playSound, "sound", false, "narration and beat cues through the speaker")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	term, err := render.NewTerminal()
	if err != nil {
		return err
	}
	defer term.Fini()

	var player *narration.Player
	if playSound {
		player = narration.NewPlayer(cfg.Narration.SampleRate)
		if err := player.Initialize(); err != nil {
			// The demo can run silent
			logger.Warn("audio unavailable", zap.Error(err))
			player = nil
		} else {
			defer player.Cleanup()
			player.PlayScript(narration.DefaultScript(), cfg.Narration.Slow)
		}
	}

	reg := status.NewRegistry()
	opts := []story.Option{
		story.WithStatus(reg),
		story.WithTickHook(func(dt float64) { term.Draw() }),
	}
	if player != nil {
		opts = append(opts, story.WithBeatHook(player.PlayCue))
	}

	driver, err := story.New(cfg, term, opts...)
	if err != nil {
		return err
	}
	if err := driver.Start(); err != nil {
		return err
	}
	term.Draw()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		for ev := range term.Events() {
			if !term.HandleEvent(ev) {
				cancel()
				return
			}
		}
	}()

	err = driver.Play(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	for _, line := range reg.Snapshot() {
		logger.Debug("status", zap.String("metric", line))
	}
	logger.Info("playback finished",
		zap.Float64("clock", driver.Clock()),
		zap.Bool("completed", driver.Done()))
	return err
}
