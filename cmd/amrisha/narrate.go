package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/amrisha/narration"
)

var narrateOut string

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Render the narration track to a WAV file",
	RunE:  runNarrate,
}

func init() {
	narrateCmd.Flags().StringVarP(&narrateOut, "out", "o", "", "output file (default from config)")
}

func runNarrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := narrateOut
	if out == "" {
		out = cfg.Narration.OutFile
	}

	script := narration.DefaultScript()
	if err := narration.WriteWAV(out, cfg.Narration.SampleRate, script, cfg.Narration.Slow); err != nil {
		return err
	}
	logger.Info("narration written",
		zap.String("path", out),
		zap.Int("lines", len(script)),
		zap.Int("sample_rate", cfg.Narration.SampleRate))
	return nil
}
