// Command solve searches every placement order of a configuration for a
// winning line. It plays the engine directly, cloning it at each branch, and
// prints the first line that gathers every mushroom within the day limit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/pkg/logger"
)

// ErrSearchExhausted is returned when the node budget runs out before the tree is explored
var ErrSearchExhausted = errors.New("search budget exhausted")

// Result is the outcome of a search
type Result struct {
	Victory bool
	Line    []engine.Move // winning line, or the line that left the fewest mushrooms
	Left    int           // mushrooms left at the end of Line
	Nodes   int
}

// Solver runs a depth-first search over the valid moves of a game
type Solver struct {
	MaxNodes int
	// Check runs the engine invariant checks after every move
	Check bool

	log   *logrus.Logger
	nodes int
	best  Result
}

// NewSolver creates a solver with a node budget (zero or less means unbounded)
func NewSolver(maxNodes int) *Solver {
	return &Solver{MaxNodes: maxNodes, log: logger.Get()}
}

// Solve searches from the current position of e, which is left untouched
func (s *Solver) Solve(e *engine.GameEngine) (*Result, error) {
	s.nodes = 0
	s.best = Result{Left: e.GetTotalMushrooms()}

	err := s.search(e.Clone(), nil)
	s.best.Nodes = s.nodes
	if errors.Is(err, errFound) {
		return &s.best, nil
	}
	return &s.best, err
}

var errFound = errors.New("found")

func (s *Solver) search(e *engine.GameEngine, line []engine.Move) error {
	if left := e.GetTotalMushrooms(); left < s.best.Left || e.IsVictory() {
		s.best.Left = left
		s.best.Line = append([]engine.Move(nil), line...)
	}
	if e.IsVictory() {
		s.best.Victory = true
		return errFound
	}
	if e.IsGameOver() {
		return nil
	}

	for _, m := range e.ValidMoves() {
		if s.MaxNodes > 0 && s.nodes >= s.MaxNodes {
			return ErrSearchExhausted
		}
		s.nodes++

		next := e.Clone()
		if _, err := next.ApplyMove(m.CritterIndex, m.LocationIndex); err != nil {
			return fmt.Errorf("move %s after %v: %w", m, line, err)
		}
		if s.Check {
			if err := next.CheckInvariants(); err != nil {
				s.log.WithFields(logrus.Fields{"line": append(line, m), "error": err}).Error("invariant violated")
				return err
			}
		}
		if err := s.search(next, append(line, m)); err != nil {
			return err
		}
	}
	return nil
}

// Replay plays line on a fresh copy of e and prints each turn to w
func Replay(w io.Writer, e *engine.GameEngine, line []engine.Move) error {
	g := e.Clone()
	for _, m := range line {
		queue := g.GetQueue()
		report, err := g.ApplyMove(m.CritterIndex, m.LocationIndex)
		if err != nil {
			return err
		}
		critter := queue[m.CritterIndex]
		fmt.Fprintf(w, "Turn %d (day %d): %s %s -> %s, gathered %d\n",
			report.Turn, report.Day, m, critter, report.Location.Title(), report.TotalCollected())
	}
	state := g.GetState()
	fmt.Fprintf(w, "Result: %s\n", state.Message)
	return nil
}

func main() {
	configDir := flag.String("config-dir", "configs", "Directory containing game configurations")
	configName := flag.String("config", "", "Configuration to solve (random roster when empty)")
	seed := flag.Uint64("seed", 0, "Seed for random roster entries (0 = random)")
	maxNodes := flag.Int("max-nodes", 500000, "Maximum moves to try (0 = unbounded)")
	check := flag.Bool("check", false, "Verify engine invariants after every move")
	flag.Parse()

	if *check {
		logger.Get().SetLevel(logrus.DebugLevel)
	}

	if err := run(os.Stdout, *configDir, *configName, *seed, *maxNodes, *check); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, configDir, configName string, seed uint64, maxNodes int, check bool) error {
	cfg := config.RandomConfig()
	if configName != "" {
		manager, err := config.NewManager(configDir)
		if err != nil {
			return err
		}
		if cfg, err = manager.LoadConfig(configName); err != nil {
			return fmt.Errorf("load %s: %w", configName, err)
		}
	}

	rng := engine.NewRand()
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	e, warnings, err := engine.NewEngineFromConfig(cfg, rng)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "Warning: %v\n", warning)
	}

	roster := e.GetQueue()
	fmt.Fprintf(w, "Solving %s: %d critters, %d mushrooms\n", cfg.Name, len(roster), e.GetTotalMushrooms())

	solver := NewSolver(maxNodes)
	solver.Check = check
	result, err := solver.Solve(e)
	if err != nil && !errors.Is(err, ErrSearchExhausted) {
		return err
	}
	if errors.Is(err, ErrSearchExhausted) {
		fmt.Fprintf(w, "Stopped after %d moves without finishing the search\n", result.Nodes)
	}

	if result.Victory {
		fmt.Fprintf(w, "Winning line found after %d moves:\n", result.Nodes)
	} else {
		fmt.Fprintf(w, "No winning line; best leaves %d mushrooms after %d moves tried:\n", result.Left, result.Nodes)
	}
	return Replay(w, e, result.Line)
}
