package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// GameConfigSchema describes the shape of a config file. Critter and location
// names are checked by engine.ValidateGameConfig, which can suggest fixes.
const GameConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Spilled Mushrooms game config",
  "type": "object",
  "required": ["critters"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "critters": {
      "type": ["array", "null"],
      "maxItems": 8,
      "items": {"type": "string", "minLength": 1}
    },
    "locations": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["type", "mushrooms"],
        "additionalProperties": false,
        "properties": {
          "type": {"type": "string"},
          "mushrooms": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

var gameConfigSchema = jsonschema.MustCompileString("game_config.schema.json", GameConfigSchema)

// ValidateSchema checks raw config file contents against GameConfigSchema.
// The file name picks the decoder: .yaml and .yml are YAML, anything else JSON.
func ValidateSchema(filename string, data []byte) error {
	var doc interface{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		// Round-trip through JSON so numbers and maps have the types the validator expects
		b, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if err := gameConfigSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
