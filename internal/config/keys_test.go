package config

import (
	"errors"
	"testing"
	"time"
)

func TestKeys(t *testing.T) {
	want := []string{"log.file", "log.level", "tasks.backend", "timer.duration", "tui.alt_screen"}
	got := Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGet(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key  string
		want string
	}{
		{"timer.duration", "25m0s"},
		{"tasks.backend", "memory"},
		{"tui.alt_screen", "true"},
		{"log.level", "info"},
		{"log.file", "(not set)"},
		{"TIMER.DURATION", "25m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := Get(cfg, tt.key)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get(Default(), "anthropic.api_key")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(unknown) error = %v, want ErrUnknownKey", err)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	if err := Set(cfg, "timer.duration", "45m"); err != nil {
		t.Fatalf("Set duration failed: %v", err)
	}
	if cfg.Timer.Duration != 45*time.Minute {
		t.Errorf("duration = %v, want 45m", cfg.Timer.Duration)
	}

	if err := Set(cfg, "tui.alt_screen", "false"); err != nil {
		t.Fatalf("Set alt_screen failed: %v", err)
	}
	if cfg.TUI.AltScreen {
		t.Error("alt_screen should be false")
	}

	if err := Set(cfg, "log.level", "DEBUG"); err != nil {
		t.Fatalf("Set log.level failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestSet_InvalidLeavesConfigUnchanged(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"timer.duration", "soon"},
		{"timer.duration", "0s"},
		{"tui.alt_screen", "maybe"},
		{"tasks.backend", "postgres"},
		{"nope.key", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			if err := Set(cfg, tt.key, tt.value); err == nil {
				t.Fatalf("Set(%q, %q) should fail", tt.key, tt.value)
			}
			if *cfg != *Default() {
				t.Errorf("config changed after failed Set: %+v", cfg)
			}
		})
	}
}

func TestAsMap(t *testing.T) {
	m := AsMap(Default())

	timer, ok := m["timer"].(map[string]any)
	if !ok {
		t.Fatalf("timer section missing: %v", m)
	}
	if timer["duration"] != "25m0s" {
		t.Errorf("timer.duration = %v, want 25m0s", timer["duration"])
	}
	tui, ok := m["tui"].(map[string]any)
	if !ok || tui["alt_screen"] != true {
		t.Errorf("tui.alt_screen = %v, want true", m["tui"])
	}
}
