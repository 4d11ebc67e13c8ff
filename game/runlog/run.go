package runlog

import (
	"time"

	"github.com/google/uuid"
	"github.com/wricardo/spilled-mushrooms/game/engine"
)

// Run is the archived record of one finished game
type Run struct {
	ID             string          `json:"id"`
	SessionID      string          `json:"session_id,omitempty"`
	ConfigName     string          `json:"config_name"`
	Roster         []string        `json:"roster"`
	Victory        bool            `json:"victory"`
	Stalled        bool            `json:"stalled,omitempty"`
	Days           int             `json:"days"` // days played
	Turns          int             `json:"turns"`
	MushroomsLeft  int             `json:"mushrooms_left"`
	TotalCollected int             `json:"total_collected"`
	StartedAt      time.Time       `json:"started_at"`
	EndedAt        time.Time       `json:"ended_at"`
	Critters       []CritterRecord `json:"critters,omitempty"`
}

// CritterRecord is one critter's line in an archived run
type CritterRecord struct {
	CritterID       int    `json:"critter_id"`
	Type            string `json:"type"`
	Duplicate       bool   `json:"duplicate,omitempty"`
	Collected       int    `json:"collected"`
	MushroomsPerDay int    `json:"mushrooms_per_day"`
	Lifespan        int    `json:"lifespan"`
	Status          string `json:"status"`
	LastLocation    int    `json:"last_location"` // engine.NoLocation when last seen in the queue
}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// NewRun captures the outcome of a game
func NewRun(sessionID string, e *engine.GameEngine, startedAt, endedAt time.Time) *Run {
	setup := e.GetSetup()
	state := e.GetState()
	summary := e.Summary()

	run := &Run{
		ID:             NewRunID(),
		SessionID:      sessionID,
		ConfigName:     setup.Name,
		Roster:         make([]string, len(setup.Roster)),
		Victory:        state.Victory,
		Stalled:        state.Stalled,
		Days:           state.Day - 1,
		Turns:          state.Turn,
		MushroomsLeft:  state.TotalMushrooms,
		TotalCollected: summary.TotalCollected,
		StartedAt:      startedAt.UTC(),
		EndedAt:        endedAt.UTC(),
		Critters:       make([]CritterRecord, 0, len(summary.Individual)),
	}
	if run.Days > engine.MaxDays {
		run.Days = engine.MaxDays
	}
	for i, t := range setup.Roster {
		run.Roster[i] = string(t)
	}
	for _, c := range summary.Individual {
		run.Critters = append(run.Critters, CritterRecord{
			CritterID:       int(c.ID),
			Type:            string(c.Type),
			Duplicate:       c.Duplicate,
			Collected:       c.Collected,
			MushroomsPerDay: c.FinalStats.MushroomsPerDay,
			Lifespan:        c.FinalStats.Lifespan,
			Status:          string(c.Status),
			LastLocation:    c.LastLocation,
		})
	}
	return run
}

// Outcome is a one-word result for listings
func (r *Run) Outcome() string {
	switch {
	case r.Victory:
		return "victory"
	case r.Stalled:
		return "stalled"
	default:
		return "defeat"
	}
}
