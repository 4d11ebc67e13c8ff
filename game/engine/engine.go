package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove          = errors.New("invalid move")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	IsStalled() bool
	GetDay() int
	GetTotalMushrooms() int

	// Turn operations
	ValidMoves() []Move
	CanMove(critterIndex, locationIndex int) bool
	ApplyMove(critterIndex, locationIndex int) (*TurnReport, error)

	// Setup
	GetSetup() *Setup

	// History
	GetTurnHistory() []TurnReport
	GetLastTurn() *TurnReport
	Summary() *CollectionSummary
}

// GameEngine implements the Engine interface. It is the aggregate root of a
// single game: it owns every critter ever created, the queue, the locations
// and the terminal flags.
type GameEngine struct {
	setup *Setup

	// critters is the arena; a CritterID indexes into it and entries are never removed
	critters  []*Critter
	queue     []CritterID
	locations []*Location

	day      int
	turn     int
	gameOver bool
	victory  bool
	message  string
	history  []TurnReport
}

// NewEngine creates a game engine from a fully parsed setup
func NewEngine(setup *Setup) (*GameEngine, error) {
	if setup == nil {
		return nil, fmt.Errorf("%w: setup cannot be nil", ErrInvalidConfiguration)
	}
	if len(setup.Locations) != LocationCount {
		return nil, fmt.Errorf("%w: expected %d locations, got %d", ErrInvalidConfiguration, LocationCount, len(setup.Locations))
	}
	for i, loc := range setup.Locations {
		if !loc.Type.Valid() {
			return nil, fmt.Errorf("%w: location %d has unknown type %q", ErrInvalidConfiguration, i, loc.Type)
		}
		if loc.Mushrooms <= 0 {
			return nil, fmt.Errorf("%w: location %d must start with mushrooms, got %d", ErrInvalidConfiguration, i, loc.Mushrooms)
		}
	}
	for i, t := range setup.Roster {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: roster entry %d has unknown type %q", ErrInvalidConfiguration, i, t)
		}
	}

	e := &GameEngine{setup: setup.clone()}
	e.init()
	return e, nil
}

// NewEngineWithDefaults creates a game engine with a random roster and the default locations
func NewEngineWithDefaults() *GameEngine {
	setup, _ := BuildSetup(nil, nil)
	e := &GameEngine{setup: setup}
	e.init()
	return e
}

func (e *GameEngine) init() {
	e.critters = make([]*Critter, 0, len(e.setup.Roster)+LocationCount*LocationCapacity)
	e.queue = make([]CritterID, 0, len(e.setup.Roster))
	e.locations = make([]*Location, len(e.setup.Locations))
	e.day = 1
	e.turn = 0
	e.gameOver = false
	e.victory = false
	e.history = []TurnReport{}

	for i, ls := range e.setup.Locations {
		e.locations[i] = &Location{
			ID:        i,
			Type:      ls.Type,
			Mushrooms: ls.Mushrooms,
			Capacity:  LocationCapacity,
			Occupants: []CritterID{},
		}
	}

	for _, t := range e.setup.Roster {
		c := e.spawn(t, false)
		c.Status = StatusQueued
		e.queue = append(e.queue, c.ID)
	}

	e.message = fmt.Sprintf("Collect all %d mushrooms within %d days!", e.GetTotalMushrooms(), MaxDays)
}

// spawn creates a critter in the arena with base stats for its type
func (e *GameEngine) spawn(t CritterType, duplicate bool) *Critter {
	stats, _ := t.BaseStats()
	if duplicate {
		stats = Stats{MushroomsPerDay: GooseCopyMushroomsPerDay, Lifespan: GooseCopyLifespan}
	}
	c := &Critter{
		ID:                  CritterID(len(e.critters)),
		Type:                t,
		BaseMushroomsPerDay: stats.MushroomsPerDay,
		BaseLifespan:        stats.Lifespan,
		MushroomsPerDay:     stats.MushroomsPerDay,
		Lifespan:            stats.Lifespan,
		LocationID:          NoLocation,
		Duplicate:           duplicate,
	}
	e.critters = append(e.critters, c)
	return c
}

func (e *GameEngine) critter(id CritterID) *Critter {
	return e.critters[id]
}

// GetState returns a fresh snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		ConfigName:     e.setup.Name,
		Day:            e.day,
		MaxDays:        MaxDays,
		Turn:           e.turn,
		Locations:      make([]LocationState, len(e.locations)),
		Queue:          []Critter{},
		QueueLength:    len(e.queue),
		GameOver:       e.gameOver,
		Victory:        e.victory,
		TotalMushrooms: e.GetTotalMushrooms(),
		Message:        e.message,
		ValidMoves:     e.ValidMoves(),
	}
	state.Stalled = !e.gameOver && len(state.ValidMoves) == 0

	for i, loc := range e.locations {
		ls := LocationState{
			ID:        loc.ID,
			Type:      loc.Type,
			Mushrooms: loc.Mushrooms,
			Capacity:  loc.Capacity,
			Full:      loc.IsFull(),
			Occupants: make([]Critter, 0, len(loc.Occupants)),
		}
		for _, id := range loc.Occupants {
			ls.Occupants = append(ls.Occupants, *e.critter(id))
		}
		state.Locations[i] = ls
	}

	for i := 0; i < len(e.queue) && i < SelectableCritters; i++ {
		state.Queue = append(state.Queue, *e.critter(e.queue[i]))
	}

	return state
}

// Reset rebuilds the game from the same setup, including the same rolled roster
func (e *GameEngine) Reset() *GameState {
	e.init()
	return e.GetState()
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.gameOver
}

// IsVictory returns whether the player has won
func (e *GameEngine) IsVictory() bool {
	return e.victory
}

// IsStalled reports whether the game is still running but no move can be made,
// which happens when the queue is empty or every location is full
func (e *GameEngine) IsStalled() bool {
	return !e.gameOver && len(e.ValidMoves()) == 0
}

// GetDay returns the current day, starting at 1
func (e *GameEngine) GetDay() int {
	return e.day
}

// GetTotalMushrooms returns the mushrooms remaining across all locations
func (e *GameEngine) GetTotalMushrooms() int {
	total := 0
	for _, loc := range e.locations {
		if loc.Mushrooms > 0 {
			total += loc.Mushrooms
		}
	}
	return total
}

// ValidMoves returns every (critter, location) pair that ApplyMove accepts
func (e *GameEngine) ValidMoves() []Move {
	moves := []Move{}
	if e.gameOver {
		return moves
	}
	for ci := 0; ci < len(e.queue) && ci < SelectableCritters; ci++ {
		for li, loc := range e.locations {
			if !loc.IsFull() {
				moves = append(moves, Move{CritterIndex: ci, LocationIndex: li})
			}
		}
	}
	return moves
}

// CanMove checks whether a move is currently valid
func (e *GameEngine) CanMove(critterIndex, locationIndex int) bool {
	if e.gameOver {
		return false
	}
	if critterIndex < 0 || critterIndex >= SelectableCritters || critterIndex >= len(e.queue) {
		return false
	}
	if locationIndex < 0 || locationIndex >= len(e.locations) {
		return false
	}
	return !e.locations[locationIndex].IsFull()
}

// GetSetup returns a copy of the setup the game was built from
func (e *GameEngine) GetSetup() *Setup {
	return e.setup.clone()
}

// GetQueue returns every queued critter in turn order
func (e *GameEngine) GetQueue() []Critter {
	out := make([]Critter, len(e.queue))
	for i, id := range e.queue {
		out[i] = *e.critter(id)
	}
	return out
}

// GetCritter returns a copy of a critter by ID
func (e *GameEngine) GetCritter(id CritterID) (Critter, bool) {
	if id < 0 || int(id) >= len(e.critters) {
		return Critter{}, false
	}
	return *e.critter(id), true
}

// GetAllCritters returns every critter ever created, in creation order
func (e *GameEngine) GetAllCritters() []Critter {
	out := make([]Critter, len(e.critters))
	for i, c := range e.critters {
		out[i] = *c
	}
	return out
}

// GetTurnHistory returns the report of every applied move
func (e *GameEngine) GetTurnHistory() []TurnReport {
	return append([]TurnReport(nil), e.history...)
}

// GetLastTurn returns the last applied move, or nil if none
func (e *GameEngine) GetLastTurn() *TurnReport {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// Clone returns an independent deep copy of the engine
func (e *GameEngine) Clone() *GameEngine {
	c := &GameEngine{
		setup:     e.setup.clone(),
		critters:  make([]*Critter, len(e.critters)),
		queue:     append([]CritterID(nil), e.queue...),
		locations: make([]*Location, len(e.locations)),
		day:       e.day,
		turn:      e.turn,
		gameOver:  e.gameOver,
		victory:   e.victory,
		message:   e.message,
		history:   append([]TurnReport(nil), e.history...),
	}
	for i, cr := range e.critters {
		cp := *cr
		c.critters[i] = &cp
	}
	for i, loc := range e.locations {
		cp := *loc
		cp.Occupants = append([]CritterID(nil), loc.Occupants...)
		c.locations[i] = &cp
	}
	return c
}
