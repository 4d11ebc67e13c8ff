// Command validate checks every game configuration file (JSON or YAML) in a
// directory. It checks:
//   - the file parses and matches the config JSON schema
//   - critter and location names are known, suggesting the closest name when not
//   - the roster has at most eight critters and exactly three locations are given
//   - location pools are positive
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	cfg, err := engine.ParseGameConfig(filePath, data)
	if err != nil {
		result.fail("Invalid syntax: %v", err)
		return result
	}

	if err := config.ValidateSchema(filePath, data); err != nil {
		result.fail("Schema: %v", err)
	}

	// BuildSetup reports every bad entry where ValidateGameConfig stops at the first
	setup, warnings := engine.BuildSetup(cfg, nil)
	for _, w := range warnings {
		result.fail("%v", w)
	}
	if err := engine.ValidateGameConfig(cfg); err != nil && len(warnings) == 0 {
		result.fail("%v", err)
	}

	if result.Valid {
		total := 0
		for _, loc := range setup.Locations {
			total += loc.Mushrooms
		}
		roster := "random"
		if cfg.Critters != nil {
			roster = fmt.Sprintf("%d critters", len(cfg.Critters))
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", cfg.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Roster: %s", roster))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Mushrooms: %d", total))
	}

	return result
}

// configFiles returns every config file in dir, sorted by name
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, ext := range config.Extensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main validates each config file in the directory, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	configDir := flag.String("dir", "../configs", "Directory containing game configurations")
	flag.Parse()

	files, err := configFiles(*configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", *configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
