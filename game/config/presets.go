package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wricardo/spilled-mushrooms/game/engine"
)

// Preset is a named example configuration
type Preset struct {
	ID     string
	Config *engine.GameConfig
}

func locations(beach, canyon, jungle int) []engine.LocationConfig {
	return []engine.LocationConfig{
		{Type: string(engine.Beach), Mushrooms: beach},
		{Type: string(engine.Canyon), Mushrooms: canyon},
		{Type: string(engine.Jungle), Mushrooms: jungle},
	}
}

// ExamplePresets returns the bundled example configurations
func ExamplePresets() []Preset {
	return []Preset{
		{"balanced", &engine.GameConfig{
			Name:        "Balanced",
			Description: "A mixed team at the default locations",
			Critters:    []string{"frog", "frog", "rhino", "sheep", "penguin", "crocodile", "grizzly", "goose"},
			Locations:   locations(20, 21, 15),
		}},
		{"high_damage", &engine.GameConfig{
			Name:        "High Damage",
			Description: "Heavy gatherers against deep pools",
			Critters:    []string{"crocodile", "crocodile", "grizzly", "grizzly", "penguin", "rhino", "goose", "frog"},
			Locations:   locations(25, 25, 20),
		}},
		{"support", &engine.GameConfig{
			Name:        "Support",
			Description: "Rhinos and sheep that grow as the team arrives",
			Critters:    []string{"rhino", "rhino", "sheep", "sheep", "penguin", "penguin", "gopher", "goose"},
			Locations:   locations(15, 15, 10),
		}},
		{"easy", &engine.GameConfig{
			Name:        "Easy",
			Description: "Strong critters and shallow pools",
			Critters:    []string{"crocodile", "grizzly", "penguin", "rhino", "crocodile", "grizzly", "penguin", "rhino"},
			Locations:   locations(10, 10, 8),
		}},
	}
}

// WriteExamples writes every preset to dir as <id>.json, creating dir if needed
func WriteExamples(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	var written []string
	for _, p := range ExamplePresets() {
		filename := p.ID + ".json"
		data, err := engine.MarshalGameConfig(filename, p.Config)
		if err != nil {
			return written, fmt.Errorf("failed to marshal preset %s: %w", p.ID, err)
		}
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write preset %s: %w", p.ID, err)
		}
		written = append(written, path)
	}
	return written, nil
}
