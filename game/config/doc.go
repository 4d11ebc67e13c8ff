// Package config provides configuration management for Spilled Mushrooms.
//
// The config package handles:
//   - Loading game configurations from JSON or YAML files
//   - Schema checks for config files (santhosh-tekuri/jsonschema)
//   - Default configuration management
//   - Configuration discovery and listing
//   - The bundled example presets
//
// Configuration Format:
//
// A config file names the roster and, optionally, the three locations:
//
//	{
//	  "name": "Balanced",
//	  "critters": ["frog", "frog", "rhino", "sheep", "penguin", "crocodile", "grizzly", "goose"],
//	  "locations": [
//	    {"type": "beach", "mushrooms": 20},
//	    {"type": "canyon", "mushrooms": 21},
//	    {"type": "jungle", "mushrooms": 15}
//	  ]
//	}
//
// An entry of "random" rolls a random critter; an empty roster rolls eight.
// Loading only checks syntax. Unknown names are reported as warnings when a
// game is built, while SaveConfig refuses them outright.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("easy")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	configs, err := manager.ListConfigs()
package config
