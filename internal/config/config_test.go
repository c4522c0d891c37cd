package config

import (
	"os"
	"path/filepath"
	"testing"

	"loop-route-service/internal/domain"
)

func TestGetFallsBack(t *testing.T) {
	t.Setenv("LOOP_TEST_KEY", "")
	if got := Get("LOOP_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}

	t.Setenv("LOOP_TEST_KEY", "explicit")
	if got := Get("LOOP_TEST_KEY", "fallback"); got != "explicit" {
		t.Errorf("Get = %q, want explicit", got)
	}
}

func TestLoadTuningMissingFileUsesDefaults(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tuning != domain.DefaultTuning() {
		t.Errorf("tuning = %+v, want defaults", tuning)
	}
}

func TestLoadTuningPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "attempts: 500\nroad_factor: 1.25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}

	if tuning.Attempts != 500 {
		t.Errorf("Attempts = %d, want 500", tuning.Attempts)
	}
	if tuning.RoadFactor != 1.25 {
		t.Errorf("RoadFactor = %f, want 1.25", tuning.RoadFactor)
	}
	if tuning.TopVerify != domain.DefaultTuning().TopVerify {
		t.Errorf("TopVerify = %d, want untouched default", tuning.TopVerify)
	}
}

func TestLoadTuningRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("attempts: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTuning(path); err == nil {
		t.Error("expected error for malformed tuning file")
	}
}
