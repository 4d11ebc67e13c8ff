package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
)

func configsCommand() *cli.Command {
	dirFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "dir", Value: "configs", Usage: "Config directory"}
	}

	return &cli.Command{
		Name:  "configs",
		Usage: "Manage game configurations",
		Commands: []*cli.Command{
			{
				Name:  "examples",
				Usage: "Write the example configurations",
				Flags: []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					written, err := config.WriteExamples(cmd.String("dir"))
					if err != nil {
						return err
					}
					out := writer(cmd)
					for _, path := range written {
						fmt.Fprintf(out, "Created %s\n", path)
					}
					fmt.Fprintf(out, "Example configurations created in %s\n", cmd.String("dir"))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the configurations in a directory",
				Flags: []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					manager, err := config.NewManager(cmd.String("dir"))
					if err != nil {
						return err
					}
					infos, err := manager.ListConfigs()
					if err != nil {
						return err
					}
					out := writer(cmd)
					for _, info := range infos {
						roster := strings.Join(info.Critters, ", ")
						if info.RandomRoster && len(info.Critters) == 0 {
							roster = "random"
						}
						fmt.Fprintf(out, "%-14s %-14s %3d mushrooms  %s\n", info.ConfigID, info.Name, info.TotalMushrooms, roster)
					}
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "Build a configuration interactively",
				Flags: []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir := cmd.String("dir")
					if err := os.MkdirAll(dir, 0755); err != nil {
						return fmt.Errorf("failed to create config directory: %w", err)
					}
					manager, err := config.NewManager(dir)
					if err != nil {
						return err
					}

					b := &configBuilder{prompt: newPrompt(reader(cmd), writer(cmd)), rng: engine.NewRand()}
					name, cfg, err := b.build()
					if err != nil {
						return err
					}
					if err := manager.SaveConfig(name, cfg); err != nil {
						return err
					}
					fmt.Fprintf(writer(cmd), "Custom config created: %s.json\n", name)
					return nil
				},
			},
		},
	}
}

var errAborted = errors.New("input ended before the configuration was complete")

// configBuilder asks for a roster and optional locations
type configBuilder struct {
	prompt *prompt
	rng    *rand.Rand
}

func (b *configBuilder) build() (string, *engine.GameConfig, error) {
	out := b.prompt.out
	fmt.Fprintln(out, "Creating custom game configuration...")

	names := make([]string, len(engine.CritterTypes))
	for i, t := range engine.CritterTypes {
		names[i] = string(t)
	}
	fmt.Fprintf(out, "\nAvailable critters: %s\n", strings.Join(names, ", "))

	cfg := &engine.GameConfig{}
	for i := 0; i < engine.RosterSize; i++ {
		t, err := b.askCritter(i)
		if err != nil {
			return "", nil, err
		}
		cfg.Critters = append(cfg.Critters, string(t))
	}

	answer, ok := b.prompt.ask("\nUse custom locations? (y/n, default: n): ")
	if !ok {
		return "", nil, errAborted
	}
	if strings.EqualFold(answer, "y") {
		locs, err := b.askLocations()
		if err != nil {
			return "", nil, err
		}
		cfg.Locations = locs
	}

	filename, ok := b.prompt.ask("\nEnter config filename (without extension): ")
	if !ok {
		return "", nil, errAborted
	}
	if filename == "" {
		filename = "custom"
	}
	cfg.Name = filename
	return filename, cfg, nil
}

func (b *configBuilder) askCritter(i int) (engine.CritterType, error) {
	for {
		answer, ok := b.prompt.ask(fmt.Sprintf("Enter critter %d/%d (or 'random' for random): ", i+1, engine.RosterSize))
		if !ok {
			return "", errAborted
		}
		name := strings.ToLower(answer)
		if name == engine.RandomCritter {
			t := engine.CritterTypes[b.rng.IntN(len(engine.CritterTypes))]
			fmt.Fprintf(b.prompt.out, "  Selected: %s\n", t)
			return t, nil
		}
		if t := engine.CritterType(name); t.Valid() {
			return t, nil
		}

		fmt.Fprintf(b.prompt.out, "Invalid critter: %s\n", answer)
		if s := engine.SuggestCritterType(name); s != "" {
			fmt.Fprintf(b.prompt.out, "  Did you mean %q?\n", s)
		}
	}
}

func (b *configBuilder) askLocations() ([]engine.LocationConfig, error) {
	names := make([]string, len(engine.LocationTypes))
	for i, t := range engine.LocationTypes {
		names[i] = string(t)
	}
	fmt.Fprintf(b.prompt.out, "Available location types: %s\n", strings.Join(names, ", "))

	locs := make([]engine.LocationConfig, 0, engine.LocationCount)
	for i := 0; i < engine.LocationCount; i++ {
		var t engine.LocationType
		for {
			answer, ok := b.prompt.ask(fmt.Sprintf("Location %d type: ", i+1))
			if !ok {
				return nil, errAborted
			}
			t = engine.LocationType(strings.ToLower(answer))
			if t.Valid() {
				break
			}
			fmt.Fprintf(b.prompt.out, "Invalid location type: %s\n", answer)
			if s := engine.SuggestLocationType(answer); s != "" {
				fmt.Fprintf(b.prompt.out, "  Did you mean %q?\n", s)
			}
		}

		for {
			answer, ok := b.prompt.ask(fmt.Sprintf("Location %d mushrooms: ", i+1))
			if !ok {
				return nil, errAborted
			}
			n, err := strconv.Atoi(answer)
			if err != nil {
				fmt.Fprintln(b.prompt.out, "Please enter a valid number")
				continue
			}
			if n <= 0 {
				fmt.Fprintln(b.prompt.out, "Mushrooms must be positive")
				continue
			}
			locs = append(locs, engine.LocationConfig{Type: string(t), Mushrooms: n})
			break
		}
	}
	return locs, nil
}
