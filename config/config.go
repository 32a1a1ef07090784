// Package config carries every tunable of the demo: story beat durations,
// particle bands, vitals mapping, render and narration output settings.
// Precedence: built-in defaults, then TOML file, then AMRISHA_* environment.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Story holds beat durations in seconds and the demo classification label
// The label is a placeholder constant, not a clinical model
type Story struct {
	ApproachTime       float64 `toml:"approach_time" env:"APPROACH_TIME"`
	BiteTime           float64 `toml:"bite_time" env:"BITE_TIME"`
	DetectionDelay     float64 `toml:"detection_delay" env:"DETECTION_DELAY"`
	ClassificationTime float64 `toml:"classification_time" env:"CLASSIFICATION_TIME"`
	InjectionTime      float64 `toml:"injection_time" env:"INJECTION_TIME"`
	RecoveryTime       float64 `toml:"recovery_time" env:"RECOVERY_TIME"`
	Classification     string  `toml:"classification" env:"CLASSIFICATION"`
}

// Particles holds venom particle pool tuning
type Particles struct {
	PoolCapacity      int     `toml:"pool_capacity" env:"POOL_CAPACITY"`
	EmitCount         int     `toml:"emit_count" env:"EMIT_COUNT"`
	EmitRateFactor    float64 `toml:"emit_rate_factor" env:"EMIT_RATE_FACTOR"`
	Speed             float64 `toml:"speed" env:"SPEED"`
	Lifetime          float64 `toml:"lifetime" env:"LIFETIME"`
	Damping           float64 `toml:"damping" env:"DAMPING"`
	RecoveryDrainRate float64 `toml:"recovery_drain_rate" env:"RECOVERY_DRAIN_RATE"`
}

// Vitals holds the heart-rate display model: bpm band mapped onto a bar
type Vitals struct {
	BaselineBPM float64 `toml:"baseline_bpm" env:"BASELINE_BPM"`
	IncidentBPM float64 `toml:"incident_bpm" env:"INCIDENT_BPM"`
	MinBPM      float64 `toml:"min_bpm" env:"MIN_BPM"`
	MaxBPM      float64 `toml:"max_bpm" env:"MAX_BPM"`
	BarMin      float64 `toml:"bar_min" env:"BAR_MIN"`
	BarMax      float64 `toml:"bar_max" env:"BAR_MAX"`
}

// Render holds playback and frame export settings
type Render struct {
	FPS      int    `toml:"fps" env:"FPS"`
	Width    int    `toml:"width" env:"WIDTH"`
	Height   int    `toml:"height" env:"HEIGHT"`
	OutDir   string `toml:"out_dir" env:"OUT_DIR"`
	MaxTicks int    `toml:"max_ticks" env:"MAX_TICKS"`
}

// Narration holds audio track generation settings
type Narration struct {
	Lang       string `toml:"lang" env:"LANG"`
	Slow       bool   `toml:"slow" env:"SLOW"`
	SampleRate int    `toml:"sample_rate" env:"SAMPLE_RATE"`
	OutFile    string `toml:"out_file" env:"OUT_FILE"`
}

// Config is the root demo configuration
type Config struct {
	Seed uint64 `toml:"seed" env:"SEED"`

	Story     Story     `toml:"story" envPrefix:"STORY_"`
	Particles Particles `toml:"particles" envPrefix:"PARTICLES_"`
	Vitals    Vitals    `toml:"vitals" envPrefix:"VITALS_"`
	Render    Render    `toml:"render" envPrefix:"RENDER_"`
	Narration Narration `toml:"narration" envPrefix:"NARRATION_"`
}

// Default returns the built-in tuning of the demo scenario
func Default() Config {
	return Config{
		Seed: 1,
		Story: Story{
			ApproachTime:       2.0,
			BiteTime:           0.6,
			DetectionDelay:     1.2,
			ClassificationTime: 0.8,
			InjectionTime:      0.8,
			RecoveryTime:       3.0,
			Classification:     "neurotoxic",
		},
		Particles: Particles{
			PoolCapacity:      200,
			EmitCount:         40,
			EmitRateFactor:    8.0,
			Speed:             1.2,
			Lifetime:          3.5,
			Damping:           0.05,
			RecoveryDrainRate: 1.4,
		},
		Vitals: Vitals{
			BaselineBPM: 75,
			IncidentBPM: 20,
			MinBPM:      40,
			MaxBPM:      160,
			BarMin:      0.02,
			BarMax:      0.9,
		},
		Render: Render{
			FPS:      50,
			Width:    640,
			Height:   360,
			OutDir:   "frames",
			MaxTicks: 0,
		},
		Narration: Narration{
			Lang:       "en",
			Slow:       true,
			SampleRate: 44100,
			OutFile:    "narration.wav",
		},
	}
}

// Load builds the effective config: defaults, then the TOML file at path
// (skipped when path is empty), then AMRISHA_* environment overrides
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AMRISHA_"}); err != nil {
		return cfg, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the driver cannot run with
func (c *Config) Validate() error {
	if c.Render.FPS < 1 {
		return fmt.Errorf("config: fps must be >= 1, got %d", c.Render.FPS)
	}
	if c.Particles.PoolCapacity < 1 {
		return fmt.Errorf("config: pool_capacity must be >= 1, got %d", c.Particles.PoolCapacity)
	}
	durations := map[string]float64{
		"approach_time":       c.Story.ApproachTime,
		"bite_time":           c.Story.BiteTime,
		"detection_delay":     c.Story.DetectionDelay,
		"classification_time": c.Story.ClassificationTime,
		"injection_time":      c.Story.InjectionTime,
		"recovery_time":       c.Story.RecoveryTime,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("config: story.%s must be > 0, got %f", name, d)
		}
	}
	if c.Vitals.MaxBPM <= c.Vitals.MinBPM {
		return fmt.Errorf("config: vitals bpm band is empty: [%f, %f]", c.Vitals.MinBPM, c.Vitals.MaxBPM)
	}
	return nil
}

// Dt returns the fixed timestep in seconds
func (c *Config) Dt() float64 {
	return 1.0 / float64(c.Render.FPS)
}
