// Command analyze prints quick, human-readable heuristics about the game
// configurations in a configs directory. It summarizes the roster and the
// location pools, bounds how many mushrooms the roster could gather, and
// flags rosters that look unwinnable.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
)

// Analysis is the yield estimate of a single configuration
type Analysis struct {
	Name           string
	Roster         []engine.CritterType
	SampleRoll     bool // roster was rolled, so another game will differ
	Pools          []engine.LocationSetup
	TotalMushrooms int

	// BeachCeiling assumes every critter gathers without ageing from the day
	// it is played. DecayCeiling lets each critter age out at its lifespan.
	BeachCeiling int
	DecayCeiling int

	JungleGatherers int
	Warnings        []string
}

// Analyze estimates the yield of cfg. Random roster entries are rolled with a
// fixed seed so repeated runs print the same sample.
func Analyze(cfg *engine.GameConfig) *Analysis {
	if cfg == nil {
		cfg = config.RandomConfig()
	}
	rng := rand.New(rand.NewPCG(1, 2))
	setup, warnings := engine.BuildSetup(cfg, rng)

	a := &Analysis{
		Name:   setup.Name,
		Roster: setup.Roster,
		Pools:  setup.Locations,
	}
	if cfg.Critters == nil {
		a.SampleRoll = true
	}
	for _, name := range cfg.Critters {
		if strings.EqualFold(strings.TrimSpace(name), engine.RandomCritter) {
			a.SampleRoll = true
		}
	}
	for _, w := range warnings {
		a.Warnings = append(a.Warnings, w.Error())
	}

	for _, loc := range a.Pools {
		a.TotalMushrooms += loc.Mushrooms
	}

	crocodiles := 0
	for i, t := range a.Roster {
		stats, _ := t.BaseStats()
		if stats.MushroomsPerDay >= 2 {
			a.JungleGatherers++
		}
		if t == engine.Crocodile {
			crocodiles++
		}

		// One critter is played per day, so the i-th critter has MaxDays-i days left
		if i >= engine.MaxDays {
			continue
		}
		daysLeft := engine.MaxDays - i
		a.BeachCeiling += stats.MushroomsPerDay * daysLeft
		a.DecayCeiling += stats.MushroomsPerDay * min(stats.Lifespan, daysLeft)
	}

	switch {
	case len(a.Roster) == 0:
		a.Warnings = append(a.Warnings, "roster is empty; the game stalls before the first move")
	case a.BeachCeiling < a.TotalMushrooms:
		a.Warnings = append(a.Warnings, fmt.Sprintf(
			"roster can gather at most %d of %d mushrooms even without ageing", a.BeachCeiling, a.TotalMushrooms))
	case a.DecayCeiling < a.TotalMushrooms:
		a.Warnings = append(a.Warnings, fmt.Sprintf(
			"roster needs buffs or the Beach: base stats gather at most %d of %d mushrooms", a.DecayCeiling, a.TotalMushrooms))
	}

	for _, loc := range a.Pools {
		if loc.Type == engine.Jungle && a.JungleGatherers == 0 {
			a.Warnings = append(a.Warnings, "no critter gathers 2 or more per day; the Jungle needs a buff to be cleared")
		}
	}
	if crocodiles > engine.LocationCount {
		a.Warnings = append(a.Warnings, fmt.Sprintf(
			"%d crocodiles but only %d locations; some will share and gather nothing", crocodiles, engine.LocationCount))
	}

	return a
}

// Print writes the analysis report to w
func (a *Analysis) Print(w io.Writer) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)

	names := make([]string, len(a.Roster))
	for i, t := range a.Roster {
		stats, _ := t.BaseStats()
		names[i] = fmt.Sprintf("%s %s", t.Title(), stats)
	}
	roster := strings.Join(names, ", ")
	if roster == "" {
		roster = "(none)"
	}
	if a.SampleRoll {
		roster += " (sample roll)"
	}
	fmt.Fprintf(w, "Roster: %s\n", roster)

	for _, loc := range a.Pools {
		fmt.Fprintf(w, "  %-7s %d mushrooms\n", loc.Type.Title()+":", loc.Mushrooms)
	}
	fmt.Fprintf(w, "Total Mushrooms: %d\n", a.TotalMushrooms)
	fmt.Fprintf(w, "Ceiling (no ageing): %d\n", a.BeachCeiling)
	fmt.Fprintf(w, "Ceiling (base lifespans): %d\n", a.DecayCeiling)
	fmt.Fprintf(w, "Jungle gatherers: %d\n", a.JungleGatherers)

	if len(a.Warnings) == 0 {
		fmt.Fprintln(w, "No obvious problems")
		return
	}
	fmt.Fprintln(w, "Warnings:")
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
}

func main() {
	configDir := flag.String("config-dir", "configs", "Directory containing game configurations")
	flag.Parse()

	if err := run(os.Stdout, *configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, configDir string) error {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}
	infos, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
		cfg, err := manager.LoadConfig(info.Filename)
		if err != nil {
			fmt.Fprintf(w, "Error loading config: %v\n", err)
			continue
		}
		Analyze(cfg).Print(w)
	}
	return nil
}
