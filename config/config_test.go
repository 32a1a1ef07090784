package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Story.ApproachTime != 2.0 {
		t.Errorf("approach_time = %f, want 2.0", cfg.Story.ApproachTime)
	}
	if cfg.Particles.PoolCapacity != 200 {
		t.Errorf("pool_capacity = %d, want 200", cfg.Particles.PoolCapacity)
	}
	if cfg.Story.Classification != "neurotoxic" {
		t.Errorf("classification = %q, want neurotoxic", cfg.Story.Classification)
	}
}

func TestDt(t *testing.T) {
	cfg := Default()
	if got := cfg.Dt(); got != 1.0/50.0 {
		t.Errorf("Dt = %f, want 0.02", got)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amrisha.toml")
	content := []byte(`
seed = 99

[story]
approach_time = 1.5

[particles]
pool_capacity = 64
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Seed)
	}
	if cfg.Story.ApproachTime != 1.5 {
		t.Errorf("approach_time = %f, want 1.5", cfg.Story.ApproachTime)
	}
	if cfg.Particles.PoolCapacity != 64 {
		t.Errorf("pool_capacity = %d, want 64", cfg.Particles.PoolCapacity)
	}
	// Untouched fields keep defaults
	if cfg.Story.BiteTime != 0.6 {
		t.Errorf("bite_time = %f, want default 0.6", cfg.Story.BiteTime)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amrisha.toml")
	if err := os.WriteFile(path, []byte("[render]\nfps = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AMRISHA_RENDER_FPS", "25")
	t.Setenv("AMRISHA_STORY_CLASSIFICATION", "hemotoxic")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.FPS != 25 {
		t.Errorf("fps = %d, want env override 25", cfg.Render.FPS)
	}
	if cfg.Story.Classification != "hemotoxic" {
		t.Errorf("classification = %q, want hemotoxic", cfg.Story.Classification)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/amrisha.toml"); err == nil {
		t.Error("Load with missing file should fail")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Render.FPS = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero fps should be rejected")
	}

	cfg = Default()
	cfg.Story.BiteTime = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative bite_time should be rejected")
	}

	cfg = Default()
	cfg.Vitals.MinBPM = 160
	cfg.Vitals.MaxBPM = 40
	if err := cfg.Validate(); err == nil {
		t.Error("inverted bpm band should be rejected")
	}
}
