package engine

import (
	"fmt"
	"strings"
)

// CritterType identifies one of the eight critter kinds
type CritterType string

const (
	Frog      CritterType = "frog"
	Crocodile CritterType = "crocodile"
	Gopher    CritterType = "gopher"
	Penguin   CritterType = "penguin"
	Rhino     CritterType = "rhino"
	Grizzly   CritterType = "grizzly"
	Goose     CritterType = "goose"
	Sheep     CritterType = "sheep"
)

// LocationType identifies one of the three location kinds
type LocationType string

const (
	Beach  LocationType = "beach"
	Canyon LocationType = "canyon"
	Jungle LocationType = "jungle"
)

const (
	// Game limits
	LocationCount      = 3
	LocationCapacity   = 3
	MaxDays            = 7
	MaxQueueSize       = 8
	RosterSize         = 8
	SelectableCritters = 2
	MaxBulkMoves       = 20

	// Stats of the copies a Goose summons
	GooseCopyMushroomsPerDay = 1
	GooseCopyLifespan        = 2

	// NoLocation marks a critter that is not (or was never) at a location
	NoLocation = -1
)

// CritterTypes lists every critter type in display order
var CritterTypes = []CritterType{Frog, Crocodile, Gopher, Penguin, Rhino, Grizzly, Goose, Sheep}

// LocationTypes lists every location type in default slot order
var LocationTypes = []LocationType{Beach, Canyon, Jungle}

// Stats is a mushrooms-per-day / lifespan pair
type Stats struct {
	MushroomsPerDay int `json:"mushrooms_per_day"`
	Lifespan        int `json:"lifespan"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d", s.MushroomsPerDay, s.Lifespan)
}

var critterBaseStats = map[CritterType]Stats{
	Frog:      {1, 5},
	Crocodile: {3, 2},
	Gopher:    {1, 4},
	Penguin:   {2, 3},
	Rhino:     {1, 4},
	Grizzly:   {3, 2},
	Goose:     {1, 2},
	Sheep:     {1, 4},
}

var locationDefaultMushrooms = map[LocationType]int{
	Beach:  20,
	Canyon: 21,
	Jungle: 15,
}

// BaseStats returns the fixed starting stats for a critter type
func (t CritterType) BaseStats() (Stats, bool) {
	s, ok := critterBaseStats[t]
	return s, ok
}

// Valid reports whether t is one of the known critter types
func (t CritterType) Valid() bool {
	_, ok := critterBaseStats[t]
	return ok
}

// Title returns the capitalized display name
func (t CritterType) Title() string {
	return title(string(t))
}

// DefaultMushrooms returns the starting pool of a location type
func (t LocationType) DefaultMushrooms() int {
	return locationDefaultMushrooms[t]
}

// Valid reports whether t is one of the known location types
func (t LocationType) Valid() bool {
	_, ok := locationDefaultMushrooms[t]
	return ok
}

// Title returns the capitalized display name
func (t LocationType) Title() string {
	return title(string(t))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CritterID is the stable identity of a critter within one game
type CritterID int

// PlacementStatus describes which container currently holds a critter
type PlacementStatus string

const (
	StatusQueued  PlacementStatus = "queued"
	StatusPlaced  PlacementStatus = "placed"
	StatusEvicted PlacementStatus = "evicted" // its location ran out of mushrooms
	StatusExpired PlacementStatus = "expired" // its lifespan reached zero
)

// InPlay reports whether a critter with this status is still in a live container
func (s PlacementStatus) InPlay() bool {
	return s == StatusQueued || s == StatusPlaced
}

// Critter is a single unit. Critters are owned by the engine's arena and
// referenced by ID from the queue and location occupant lists.
type Critter struct {
	ID                  CritterID       `json:"id"`
	Type                CritterType     `json:"type"`
	BaseMushroomsPerDay int             `json:"base_mushrooms_per_day"`
	BaseLifespan        int             `json:"base_lifespan"`
	MushroomsPerDay     int             `json:"mushrooms_per_day"`
	Lifespan            int             `json:"lifespan"`
	Collected           int             `json:"collected"`
	Status              PlacementStatus `json:"status"`
	LocationID          int             `json:"location_id"` // last known location, NoLocation when queued
	Duplicate           bool            `json:"duplicate,omitempty"`
}

// Stats returns the current mushrooms-per-day / lifespan pair
func (c Critter) Stats() Stats {
	return Stats{MushroomsPerDay: c.MushroomsPerDay, Lifespan: c.Lifespan}
}

func (c Critter) String() string {
	s := fmt.Sprintf("%s (%d/%d)", c.Type.Title(), c.MushroomsPerDay, c.Lifespan)
	if c.Status == StatusPlaced {
		s += fmt.Sprintf(" at location %d", c.LocationID)
	}
	return s
}

// apply adds a stat delta. Mushrooms per day never drops below zero.
func (c *Critter) apply(d Stats) {
	c.MushroomsPerDay += d.MushroomsPerDay
	if c.MushroomsPerDay < 0 {
		c.MushroomsPerDay = 0
	}
	c.Lifespan += d.Lifespan
}

// Location is one of the three sites critters are sent to
type Location struct {
	ID        int          `json:"id"`
	Type      LocationType `json:"type"`
	Mushrooms int          `json:"mushrooms"`
	Capacity  int          `json:"capacity"`
	Occupants []CritterID  `json:"occupants"`
}

// IsFull reports whether the location is at capacity
func (l *Location) IsFull() bool {
	return len(l.Occupants) >= l.Capacity
}

// IsDepleted reports whether the location has no mushrooms left
func (l *Location) IsDepleted() bool {
	return l.Mushrooms <= 0
}

func (l *Location) remove(id CritterID) bool {
	for i, occ := range l.Occupants {
		if occ == id {
			l.Occupants = append(l.Occupants[:i:i], l.Occupants[i+1:]...)
			return true
		}
	}
	return false
}

// Move is a player decision: which of the two visible critters goes where
type Move struct {
	CritterIndex  int `json:"critter_index"`
	LocationIndex int `json:"location_index"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.CritterIndex, m.LocationIndex)
}

// LocationState is a read-only view of a location with resolved occupants
type LocationState struct {
	ID        int          `json:"id"`
	Type      LocationType `json:"type"`
	Mushrooms int          `json:"mushrooms"`
	Capacity  int          `json:"capacity"`
	Full      bool         `json:"full"`
	Occupants []Critter    `json:"occupants"`
}

func (l LocationState) String() string {
	if len(l.Occupants) == 0 {
		return fmt.Sprintf("%s: %d mushrooms [Empty]", l.Type.Title(), l.Mushrooms)
	}
	parts := make([]string, len(l.Occupants))
	for i, c := range l.Occupants {
		parts[i] = fmt.Sprintf("%s(%d/%d)", c.Type.Title(), c.MushroomsPerDay, c.Lifespan)
	}
	return fmt.Sprintf("%s: %d mushrooms [%s]", l.Type.Title(), l.Mushrooms, strings.Join(parts, ", "))
}

// GameState is a snapshot of the session returned to callers
type GameState struct {
	ConfigName     string          `json:"config_name"`
	Day            int             `json:"day"`
	MaxDays        int             `json:"max_days"`
	Turn           int             `json:"turn"`
	Locations      []LocationState `json:"locations"`
	Queue          []Critter       `json:"queue"` // only the selectable front of the queue
	QueueLength    int             `json:"queue_length"`
	GameOver       bool            `json:"game_over"`
	Victory        bool            `json:"victory"`
	Stalled        bool            `json:"stalled,omitempty"` // running, but no move is possible
	TotalMushrooms int             `json:"total_mushrooms"`
	Message        string          `json:"message"`
	ValidMoves     []Move          `json:"valid_moves"`
}

// EventKind classifies a turn event
type EventKind string

const (
	EventPlaced          EventKind = "placed"
	EventGrizzlyPenalty  EventKind = "grizzly_penalty"
	EventBuff            EventKind = "buff"
	EventDuplicate       EventKind = "duplicate"
	EventLocationBonus   EventKind = "location_bonus"
	EventRotated         EventKind = "rotated"
	EventCollected       EventKind = "collected"
	EventDepleted        EventKind = "depleted"
	EventMoved           EventKind = "moved"
	EventReturnedToQueue EventKind = "returned_to_queue"
	EventStayed          EventKind = "stayed"
	EventExpired         EventKind = "expired"
	EventVictory         EventKind = "victory"
	EventGameOver        EventKind = "game_over"
)

// TurnEvent is one observable effect produced while resolving a turn
type TurnEvent struct {
	Kind       EventKind   `json:"kind"`
	CritterID  CritterID   `json:"critter_id"`
	Critter    CritterType `json:"critter,omitempty"`
	LocationID int         `json:"location_id"`
	Amount     int         `json:"amount,omitempty"`
	Delta      *Stats      `json:"delta,omitempty"`
	Message    string      `json:"message"`
}

// TurnReport records everything a single ApplyMove did
type TurnReport struct {
	Turn      int          `json:"turn"`
	Day       int          `json:"day"` // day on which the move was played
	Move      Move         `json:"move"`
	CritterID CritterID    `json:"critter_id"`
	Critter   CritterType  `json:"critter"`
	Location  LocationType `json:"location"`
	Collected []int        `json:"collected"` // mushrooms gathered per location this turn
	Events    []TurnEvent  `json:"events"`
	GameOver  bool         `json:"game_over"`
	Victory   bool         `json:"victory"`
}

// TotalCollected sums the mushrooms gathered in this turn
func (r *TurnReport) TotalCollected() int {
	total := 0
	for _, n := range r.Collected {
		total += n
	}
	return total
}
