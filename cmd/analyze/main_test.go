package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
)

func quickConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:     "quick",
		Critters: []string{"crocodile", "crocodile", "crocodile"},
		Locations: []engine.LocationConfig{
			{Type: "beach", Mushrooms: 3},
			{Type: "canyon", Mushrooms: 4},
			{Type: "jungle", Mushrooms: 3},
		},
	}
}

func hasWarning(a *Analysis, fragment string) bool {
	for _, w := range a.Warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func TestAnalyze(t *testing.T) {
	t.Run("winnable roster", func(t *testing.T) {
		a := Analyze(quickConfig())

		if a.TotalMushrooms != 10 {
			t.Errorf("Expected 10 mushrooms, got %d", a.TotalMushrooms)
		}
		if a.BeachCeiling != 54 {
			t.Errorf("Expected beach ceiling 54, got %d", a.BeachCeiling)
		}
		if a.DecayCeiling != 18 {
			t.Errorf("Expected decay ceiling 18, got %d", a.DecayCeiling)
		}
		if a.JungleGatherers != 3 {
			t.Errorf("Expected 3 jungle gatherers, got %d", a.JungleGatherers)
		}
		if len(a.Warnings) != 0 {
			t.Errorf("Expected no warnings, got %v", a.Warnings)
		}
		if a.SampleRoll {
			t.Error("Expected a fixed roster")
		}
	})

	t.Run("slow roster", func(t *testing.T) {
		a := Analyze(&engine.GameConfig{
			Name:     "sheep",
			Critters: []string{"sheep", "sheep", "sheep", "sheep", "sheep", "sheep", "sheep", "sheep"},
		})

		if a.TotalMushrooms != 56 {
			t.Errorf("Expected the 56 default mushrooms, got %d", a.TotalMushrooms)
		}
		if a.BeachCeiling != 28 {
			t.Errorf("Expected beach ceiling 28, got %d", a.BeachCeiling)
		}
		if !hasWarning(a, "even without ageing") {
			t.Errorf("Expected an unwinnable warning, got %v", a.Warnings)
		}
		if !hasWarning(a, "Jungle") {
			t.Errorf("Expected a Jungle warning, got %v", a.Warnings)
		}
	})

	t.Run("too many crocodiles", func(t *testing.T) {
		a := Analyze(&engine.GameConfig{
			Name:     "crocs",
			Critters: []string{"crocodile", "crocodile", "crocodile", "crocodile"},
		})

		if a.DecayCeiling != 24 {
			t.Errorf("Expected decay ceiling 24, got %d", a.DecayCeiling)
		}
		if !hasWarning(a, "needs buffs") {
			t.Errorf("Expected a buff warning, got %v", a.Warnings)
		}
		if !hasWarning(a, "4 crocodiles") {
			t.Errorf("Expected a crocodile warning, got %v", a.Warnings)
		}
	})

	t.Run("unknown critters only", func(t *testing.T) {
		a := Analyze(&engine.GameConfig{Name: "typo", Critters: []string{"grizly"}})

		if len(a.Roster) != 0 {
			t.Errorf("Expected an empty roster, got %v", a.Roster)
		}
		if !hasWarning(a, "did you mean") {
			t.Errorf("Expected the config warning to be reported, got %v", a.Warnings)
		}
		if !hasWarning(a, "roster is empty") {
			t.Errorf("Expected an empty roster warning, got %v", a.Warnings)
		}
	})

	t.Run("random roster is a stable sample", func(t *testing.T) {
		first := Analyze(config.RandomConfig())
		second := Analyze(nil)

		if !first.SampleRoll || !second.SampleRoll {
			t.Error("Expected random rosters to be marked as a sample roll")
		}
		if len(first.Roster) != engine.RosterSize {
			t.Fatalf("Expected %d critters, got %d", engine.RosterSize, len(first.Roster))
		}
		for i := range first.Roster {
			if first.Roster[i] != second.Roster[i] {
				t.Fatalf("Expected identical sample rolls, got %v and %v", first.Roster, second.Roster)
			}
		}
	})
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Analyze(quickConfig()).Print(&buf)
	out := buf.String()

	for _, want := range []string{
		"Name: quick",
		"Crocodile 3/2",
		"Total Mushrooms: 10",
		"Ceiling (base lifespans): 18",
		"No obvious problems",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	Analyze(&engine.GameConfig{Name: "typo", Critters: []string{"grizly"}}).Print(&buf)
	if !strings.Contains(buf.String(), "Roster: (none)") || !strings.Contains(buf.String(), "Warnings:") {
		t.Errorf("Expected empty roster report, got:\n%s", buf.String())
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	if _, err := config.WriteExamples(dir); err != nil {
		t.Fatalf("Failed to write example configs: %v", err)
	}

	var buf bytes.Buffer
	if err := run(&buf, dir); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"=== Analyzing balanced.json ===", "Name: Balanced", "=== Analyzing easy.json ==="} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	if err := run(&buf, "/non/existent/path"); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}
