package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RandomCritter is the roster entry that rolls a random critter type
const RandomCritter = "random"

// LocationConfig is one location entry in a config file
type LocationConfig struct {
	Type      string `json:"type" yaml:"type"`
	Mushrooms int    `json:"mushrooms" yaml:"mushrooms"`
}

// GameConfig is the persisted roster and location record. Names are kept as
// strings so that unknown entries survive loading and can be reported.
type GameConfig struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Critters    []string         `json:"critters" yaml:"critters"`
	Locations   []LocationConfig `json:"locations,omitempty" yaml:"locations,omitempty"`
}

// LocationSetup is a parsed location slot
type LocationSetup struct {
	Type      LocationType `json:"type"`
	Mushrooms int          `json:"mushrooms"`
}

// Setup is the fully parsed input the engine is built from
type Setup struct {
	Name      string          `json:"name"`
	Roster    []CritterType   `json:"roster"`
	Locations []LocationSetup `json:"locations"`
}

func (s *Setup) clone() *Setup {
	return &Setup{
		Name:      s.Name,
		Roster:    append([]CritterType(nil), s.Roster...),
		Locations: append([]LocationSetup(nil), s.Locations...),
	}
}

// DefaultLocations returns the three default location slots
func DefaultLocations() []LocationSetup {
	locs := make([]LocationSetup, len(LocationTypes))
	for i, t := range LocationTypes {
		locs[i] = LocationSetup{Type: t, Mushrooms: t.DefaultMushrooms()}
	}
	return locs
}

// ConfigWarning describes a config entry that was skipped or replaced while
// building a setup. It unwraps to ErrInvalidConfiguration.
type ConfigWarning struct {
	Field      string `json:"field"` // "critters" or "locations"
	Index      int    `json:"index"`
	Value      string `json:"value"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (w ConfigWarning) Error() string {
	msg := fmt.Sprintf("%s[%d] %q: %s", w.Field, w.Index, w.Value, w.Reason)
	if w.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", w.Suggestion)
	}
	return msg
}

func (w ConfigWarning) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewRand returns a randomly seeded generator for roster rolls
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RandomRoster rolls n critter types uniformly
func RandomRoster(rng *rand.Rand, n int) []CritterType {
	if rng == nil {
		rng = NewRand()
	}
	roster := make([]CritterType, n)
	for i := range roster {
		roster[i] = CritterTypes[rng.IntN(len(CritterTypes))]
	}
	return roster
}

// BuildSetup turns a config into an engine setup. Bad entries never abort the
// build: unknown critters are skipped and bad location slots fall back to the
// slot default, each with a warning. A nil config or one whose critters are
// missing rolls a random roster of RosterSize critters; an explicit empty list
// stays empty.
func BuildSetup(cfg *GameConfig, rng *rand.Rand) (*Setup, []ConfigWarning) {
	if cfg == nil {
		cfg = &GameConfig{Name: "random"}
	}
	if rng == nil {
		rng = NewRand()
	}

	setup := &Setup{Name: cfg.Name}
	var warnings []ConfigWarning

	if cfg.Critters == nil {
		setup.Roster = RandomRoster(rng, RosterSize)
	} else {
		setup.Roster = make([]CritterType, 0, len(cfg.Critters))
		for i, name := range cfg.Critters {
			n := normalizeName(name)
			if n == RandomCritter {
				setup.Roster = append(setup.Roster, CritterTypes[rng.IntN(len(CritterTypes))])
				continue
			}
			t := CritterType(n)
			if !t.Valid() {
				warnings = append(warnings, ConfigWarning{
					Field:      "critters",
					Index:      i,
					Value:      name,
					Reason:     "unknown critter type, skipped",
					Suggestion: string(SuggestCritterType(n)),
				})
				continue
			}
			setup.Roster = append(setup.Roster, t)
		}
	}

	setup.Locations = DefaultLocations()
	if len(cfg.Locations) > 0 {
		for i, lc := range cfg.Locations {
			if i >= LocationCount {
				warnings = append(warnings, ConfigWarning{
					Field:  "locations",
					Index:  i,
					Value:  lc.Type,
					Reason: fmt.Sprintf("only %d locations are played, skipped", LocationCount),
				})
				continue
			}
			t := LocationType(normalizeName(lc.Type))
			switch {
			case !t.Valid():
				warnings = append(warnings, ConfigWarning{
					Field:      "locations",
					Index:      i,
					Value:      lc.Type,
					Reason:     fmt.Sprintf("unknown location type, using default %s", setup.Locations[i].Type),
					Suggestion: string(SuggestLocationType(string(t))),
				})
			case lc.Mushrooms <= 0:
				warnings = append(warnings, ConfigWarning{
					Field:  "locations",
					Index:  i,
					Value:  lc.Type,
					Reason: fmt.Sprintf("mushrooms must be positive, got %d; using default %s", lc.Mushrooms, setup.Locations[i].Type),
				})
			default:
				setup.Locations[i] = LocationSetup{Type: t, Mushrooms: lc.Mushrooms}
			}
		}
		for i := len(cfg.Locations); i < LocationCount; i++ {
			warnings = append(warnings, ConfigWarning{
				Field:  "locations",
				Index:  i,
				Reason: fmt.Sprintf("missing, using default %s", setup.Locations[i].Type),
			})
		}
	}

	return setup, warnings
}

// NewEngineFromConfig builds a setup from cfg and starts a game with it
func NewEngineFromConfig(cfg *GameConfig, rng *rand.Rand) (*GameEngine, []ConfigWarning, error) {
	setup, warnings := BuildSetup(cfg, rng)
	e, err := NewEngine(setup)
	if err != nil {
		return nil, warnings, err
	}
	return e, warnings, nil
}

// ValidateGameConfig strictly checks a config. Unlike BuildSetup, which
// repairs what it can, it fails on the first problem found.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: %w: config is nil", ErrInvalidConfiguration)
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: %w: name is required", ErrInvalidConfiguration)
	}
	if len(config.Critters) > RosterSize {
		return fmt.Errorf("config validation: %w: at most %d critters, got %d", ErrInvalidConfiguration, RosterSize, len(config.Critters))
	}

	for i, name := range config.Critters {
		n := normalizeName(name)
		if n == RandomCritter || CritterType(n).Valid() {
			continue
		}
		return ConfigWarning{
			Field:      "critters",
			Index:      i,
			Value:      name,
			Reason:     "unknown critter type",
			Suggestion: string(SuggestCritterType(n)),
		}
	}

	if len(config.Locations) > 0 && len(config.Locations) != LocationCount {
		return fmt.Errorf("config validation: %w: locations must list exactly %d entries, got %d",
			ErrInvalidConfiguration, LocationCount, len(config.Locations))
	}
	for i, lc := range config.Locations {
		t := LocationType(normalizeName(lc.Type))
		if !t.Valid() {
			return ConfigWarning{
				Field:      "locations",
				Index:      i,
				Value:      lc.Type,
				Reason:     "unknown location type",
				Suggestion: string(SuggestLocationType(string(t))),
			}
		}
		if lc.Mushrooms <= 0 {
			return ConfigWarning{
				Field:  "locations",
				Index:  i,
				Value:  lc.Type,
				Reason: fmt.Sprintf("mushrooms must be positive, got %d", lc.Mushrooms),
			}
		}
	}

	return nil
}

// ParseGameConfig decodes a config as YAML when the file name ends in .yaml
// or .yml, and as JSON otherwise
func ParseGameConfig(filename string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}
	if config.Name == "" {
		config.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return &config, nil
}

// LoadGameConfig loads a game configuration from a JSON or YAML file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(configPath, data)
}

// MarshalGameConfig encodes a config as YAML or indented JSON, chosen by file extension
func MarshalGameConfig(filename string, config *GameConfig) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return marshalYAML(config)
	default:
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// marshalYAML writes a missing roster as null. yaml.v3 writes a nil slice as
// [], which would read back as an explicit empty roster.
func marshalYAML(config *GameConfig) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(config); err != nil {
		return nil, err
	}
	if config.Critters == nil {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "critters" {
				node.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			}
		}
	}
	return yaml.Marshal(&node)
}

// AsConfigWarning returns the ConfigWarning carried by err, if any
func AsConfigWarning(err error) (ConfigWarning, bool) {
	var w ConfigWarning
	ok := errors.As(err, &w)
	return w, ok
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
