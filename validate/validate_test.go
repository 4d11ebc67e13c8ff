package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/spilled-mushrooms/game/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, "quick.json", `{
		"name": "Quick",
		"description": "Three crocodiles",
		"critters": ["crocodile", "crocodile", "crocodile"],
		"locations": [
			{"type": "beach", "mushrooms": 3},
			{"type": "canyon", "mushrooms": 4},
			{"type": "jungle", "mushrooms": 3}
		]
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "quick.json" {
		t.Errorf("Expected file quick.json, got %s", result.File)
	}
	for _, want := range []string{"✓ Name: Quick", "✓ Roster: 3 critters", "✓ Mushrooms: 10"} {
		if !hasError(result, want) {
			t.Errorf("Expected info %q, got %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_YAMLRandomRoster(t *testing.T) {
	path := writeConfig(t, "wild.yaml", "name: Wild\ncritters: null\n")

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if !hasError(result, "✓ Roster: random") || !hasError(result, "✓ Mushrooms: 56") {
		t.Errorf("Expected a random roster at the default pools, got %v", result.Errors)
	}
}

func TestValidateConfig_EmptyRoster(t *testing.T) {
	path := writeConfig(t, "empty.yaml", "name: Empty\ncritters: []\n")

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if !hasError(result, "✓ Roster: 0 critters") {
		t.Errorf("Expected an explicit empty roster to stay empty, got %v", result.Errors)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "broken.json", `{"name": "Broken", "critters": [`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config")
	}
	if !hasError(result, "Invalid syntax") {
		t.Errorf("Expected a syntax error, got %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/config.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Errorf("Expected a read error, got %v", result.Errors)
	}
}

func TestValidateConfig_UnknownNames(t *testing.T) {
	path := writeConfig(t, "typos.json", `{
		"name": "Typos",
		"critters": ["grizly", "frog", "pengiun"],
		"locations": [
			{"type": "beech", "mushrooms": 3},
			{"type": "canyon", "mushrooms": 4},
			{"type": "jungle", "mushrooms": 3}
		]
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid config")
	}
	for _, want := range []string{`did you mean "grizzly"?`, `did you mean "penguin"?`, `did you mean "beach"?`} {
		if !hasError(result, want) {
			t.Errorf("Expected %q in %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_SchemaViolations(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		path := writeConfig(t, "extra.json", `{"name": "Extra", "critters": ["frog"], "difficulty": "hard"}`)

		result := validateConfig(path)
		if result.Valid || !hasError(result, "Schema") {
			t.Errorf("Expected a schema error, got %v", result.Errors)
		}
	})

	t.Run("too many critters", func(t *testing.T) {
		path := writeConfig(t, "crowd.json",
			`{"name": "Crowd", "critters": ["frog","frog","frog","frog","frog","frog","frog","frog","frog"]}`)

		result := validateConfig(path)
		if result.Valid {
			t.Fatal("Expected invalid config")
		}
		if !hasError(result, "Schema") || !hasError(result, "at most 8 critters") {
			t.Errorf("Expected schema and roster errors, got %v", result.Errors)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		path := writeConfig(t, "dry.json", `{
			"name": "Dry",
			"critters": ["frog"],
			"locations": [
				{"type": "beach", "mushrooms": 0},
				{"type": "canyon", "mushrooms": 4},
				{"type": "jungle", "mushrooms": 3}
			]
		}`)

		result := validateConfig(path)
		if result.Valid || !hasError(result, "mushrooms must be positive") {
			t.Errorf("Expected a pool error, got %v", result.Errors)
		}
	})
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "notes.txt", "c.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := configFiles(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 config files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[2]) != "c.yml" {
		t.Errorf("Expected files sorted by name, got %v", files)
	}
}

func TestExamplePresetsAreValid(t *testing.T) {
	dir := t.TempDir()
	written, err := config.WriteExamples(dir)
	if err != nil {
		t.Fatalf("Failed to write examples: %v", err)
	}
	for _, path := range written {
		if result := validateConfig(path); !result.Valid {
			t.Errorf("Expected %s to be valid, got %v", filepath.Base(path), result.Errors)
		}
	}
}
