package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/runlog"
	"github.com/wricardo/spilled-mushrooms/pkg/logger"
)

var rule = strings.Repeat("=", 60)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a game at the prompt",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to a JSON or YAML config (random roster when empty)"},
			&cli.Int64Flag{Name: "seed", Usage: "Seed for random roster entries (0 = random)"},
			&cli.StringFlag{Name: "log-dir", Value: "logs", Usage: "Directory for the run transcript (empty disables it)"},
			&cli.StringFlag{Name: "runs-db", Usage: "Sqlite run archive to record the finished game in"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := writer(cmd)

			cfg := loadPlayConfig(out, cmd.String("config"))
			rng := engine.NewRand()
			if seed := cmd.Int64("seed"); seed != 0 {
				rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
			}
			e, warnings, err := engine.NewEngineFromConfig(cfg, rng)
			if err != nil {
				return err
			}

			if dir := cmd.String("log-dir"); dir != "" {
				transcript, err := runlog.NewTranscript(dir, out)
				if err != nil {
					return err
				}
				defer transcript.Close()
				transcript.Printf("Game session logging to: %s\n", transcript.Path())
				transcript.Printf("Configuration: %s\n", cfg.Name)
				out = transcript
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "Warning: %v\n", w)
			}

			g := &game{engine: e, prompt: newPrompt(reader(cmd), out), out: out}
			started := time.Now()
			g.play()

			if path := cmd.String("runs-db"); path != "" && e.IsGameOver() {
				return archiveRun(ctx, out, path, e, started)
			}
			return nil
		},
	}
}

// loadPlayConfig reads the config at path, falling back to a random roster
func loadPlayConfig(out io.Writer, path string) *engine.GameConfig {
	if path == "" {
		return config.RandomConfig()
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, "Config file not found: %s\nUsing default configuration...\n", path)
		return config.RandomConfig()
	}
	cfg, err := engine.LoadGameConfig(path)
	if err != nil {
		fmt.Fprintf(out, "Could not read %s: %v\nUsing default configuration...\n", path, err)
		return config.RandomConfig()
	}
	fmt.Fprintf(out, "Loading configuration from: %s\n", path)
	return cfg
}

func archiveRun(ctx context.Context, out io.Writer, path string, e *engine.GameEngine, started time.Time) error {
	store, err := runlog.Open(path)
	if err != nil {
		return fmt.Errorf("open run archive: %w", err)
	}
	defer store.Close()

	run := runlog.NewRun("", e, started, time.Now())
	if err := store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	logger.Get().WithFields(logrus.Fields{"run_id": run.ID, "outcome": run.Outcome()}).Debug("run archived")
	fmt.Fprintf(out, "Run archived as %s\n", run.ID)
	return nil
}

// game drives one engine from the prompt
type game struct {
	engine *engine.GameEngine
	prompt *prompt
	out    io.Writer
}

func (g *game) play() {
	fmt.Fprintln(g.out, "🍄 Welcome to Spilled Mushrooms! 🍄")
	fmt.Fprintf(g.out, "Collect all mushrooms within %d days to win!\n", engine.MaxDays)
	fmt.Fprintln(g.out, "Type 'help' during any turn to see critter abilities.")

	for !g.engine.IsGameOver() {
		g.showState()

		moves := g.engine.ValidMoves()
		if len(moves) == 0 {
			fmt.Fprintln(g.out, "No valid moves available!")
			break
		}

		m, ok := g.chooseMove(moves)
		if !ok {
			fmt.Fprintln(g.out, "\nGame interrupted!")
			return
		}

		queue := g.engine.GetQueue()
		report, err := g.engine.ApplyMove(m.CritterIndex, m.LocationIndex)
		if err != nil {
			fmt.Fprintf(g.out, "Error: %v\n", err)
			continue
		}
		g.showTurn(queue[m.CritterIndex], report)
	}

	g.showGameOver()
}

func (g *game) showState() {
	state := g.engine.GetState()
	fmt.Fprintf(g.out, "\n%s\nDAY %d/%d - Spilled Mushrooms\n", rule, state.Day, state.MaxDays)
	fmt.Fprintf(g.out, "Total mushrooms remaining: %d\n%s\n", state.TotalMushrooms, rule)

	fmt.Fprintln(g.out, "\nLOCATIONS:")
	for i, loc := range state.Locations {
		fmt.Fprintf(g.out, "  %d. %s\n", i+1, loc)
	}

	fmt.Fprintln(g.out, "\nAVAILABLE CRITTERS:")
	for i, c := range state.Queue {
		fmt.Fprintf(g.out, "  %d. %s\n", i+1, c)
	}
	if waiting := state.QueueLength - len(state.Queue); waiting > 0 {
		fmt.Fprintf(g.out, "  (%d more waiting)\n", waiting)
	}
	fmt.Fprintln(g.out)
}

func (g *game) chooseMove(moves []engine.Move) (engine.Move, bool) {
	queue := g.engine.GetQueue()
	state := g.engine.GetState()

	fmt.Fprintln(g.out, "VALID MOVES:")
	for i, m := range moves {
		fmt.Fprintf(g.out, "  %d. Send %s to %s\n", i+1,
			queue[m.CritterIndex].Type.Title(), state.Locations[m.LocationIndex].Type.Title())
	}

	for {
		answer, ok := g.prompt.ask(fmt.Sprintf("\nChoose move (1-%d) or 'help' for abilities: ", len(moves)))
		if !ok {
			return engine.Move{}, false
		}
		switch strings.ToLower(answer) {
		case "help", "h":
			g.showHelp()
			continue
		case "quit", "q", "exit":
			return engine.Move{}, false
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(g.out, "Please enter a valid number or 'help'")
			continue
		}
		if n < 1 || n > len(moves) {
			fmt.Fprintf(g.out, "Please enter a number between 1 and %d\n", len(moves))
			continue
		}
		return moves[n-1], true
	}
}

func (g *game) showHelp() {
	fmt.Fprintln(g.out, "\nCRITTER ABILITIES:")
	fmt.Fprintln(g.out, strings.Repeat("-", 40))
	for _, t := range engine.CritterTypes {
		stats, _ := t.BaseStats()
		fmt.Fprintf(g.out, "%s (%s): %s\n", t.Title(), stats, engine.AbilityText[t])
	}

	fmt.Fprintln(g.out, "\nLOCATION EFFECTS:")
	fmt.Fprintln(g.out, strings.Repeat("-", 40))
	for _, t := range engine.LocationTypes {
		fmt.Fprintf(g.out, "%s: %s\n", t.Title(), engine.LocationEffectText[t])
	}
	fmt.Fprintln(g.out)
}

func (g *game) showTurn(sent engine.Critter, report *engine.TurnReport) {
	fmt.Fprintln(g.out, "\nTurn Summary:")
	fmt.Fprintf(g.out, "Sent %s to %s\n", sent.Type.Title(), report.Location.Title())
	for _, ev := range report.Events {
		if ev.Kind == engine.EventPlaced {
			continue
		}
		fmt.Fprintf(g.out, "  - %s\n", ev.Message)
	}
	fmt.Fprintf(g.out, "Gathered %d mushrooms this turn\n", report.TotalCollected())
}

func (g *game) showGameOver() {
	state := g.engine.GetState()

	fmt.Fprintf(g.out, "\n%s\n", rule)
	switch {
	case state.Victory:
		fmt.Fprintln(g.out, "🎉 CONGRATULATIONS! YOU WON! 🎉")
		fmt.Fprintln(g.out, "All mushrooms have been successfully collected!")
	case state.GameOver:
		fmt.Fprintln(g.out, "💀 GAME OVER 💀")
		fmt.Fprintf(g.out, "Time ran out with %d mushrooms remaining.\n", state.TotalMushrooms)
	default:
		fmt.Fprintf(g.out, "Game stopped on day %d with %d mushrooms remaining.\n", state.Day, state.TotalMushrooms)
	}
	fmt.Fprintf(g.out, "Final day: %d/%d\n", min(state.Day-1, engine.MaxDays), engine.MaxDays)

	summary := g.engine.Summary()
	fmt.Fprintf(g.out, "\nMushrooms gathered: %d\n", summary.TotalCollected)
	for _, ts := range summary.ByType {
		fmt.Fprintf(g.out, "  %s x%d: %d\n", ts.Type.Title(), ts.Count, ts.TotalCollected)
	}
	fmt.Fprintln(g.out, rule)
}
