package service

import (
	"time"

	"github.com/wricardo/spilled-mushrooms/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string                 `json:"id"`
	ConfigName     string                 `json:"config_name"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	GameState      *engine.GameState      `json:"game_state"`
	GameConfig     *engine.GameConfig     `json:"game_config"`
	Roster         []engine.CritterType   `json:"roster"`
	Warnings       []engine.ConfigWarning `json:"warnings,omitempty"`
	RunID          string                 `json:"run_id,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool               `json:"success"`
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	Step      *StepInfo          `json:"step,omitempty"`
	Report    *engine.TurnReport `json:"report,omitempty"`
	Error     string             `json:"error,omitempty"` // set when the move was rejected
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: invalid_move|stalled|game_over|victory
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartDay       int `json:"start_day"`
	EndDay         int `json:"end_day"`
	StartMushrooms int `json:"start_mushrooms"`
	EndMushrooms   int `json:"end_mushrooms"`
	Collected      int `json:"collected"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver   bool         `json:"game_over"`
	Victory    bool         `json:"victory"`
	Message    string       `json:"message,omitempty"`
	ValidMoves []MoveOption `json:"valid_moves,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx             int                 `json:"idx"`
	Turn            int                 `json:"turn"`
	Day             int                 `json:"day"`
	CritterIndex    int                 `json:"critter_index"`
	LocationIndex   int                 `json:"location_index"`
	Critter         engine.CritterType  `json:"critter"`
	Location        engine.LocationType `json:"location"`
	Collected       int                 `json:"collected"`
	MushroomsBefore int                 `json:"mushrooms_before"`
	MushroomsAfter  int                 `json:"mushrooms_after"`
	Duplicates      int                 `json:"duplicates,omitempty"`
	Expired         int                 `json:"expired,omitempty"`
	Depleted        bool                `json:"depleted,omitempty"`
	Victory         bool                `json:"victory,omitempty"`
}

// MoveOption is a valid move with readable names attached
type MoveOption struct {
	CritterIndex  int                 `json:"critter_index"`
	LocationIndex int                 `json:"location_index"`
	Critter       engine.CritterType  `json:"critter"`
	Location      engine.LocationType `json:"location"`
	Description   string              `json:"description"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "placement", "duplicate", "collect", "depleted", "gopher_move", "expired", "victory", "game_over", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Turn      int       `json:"turn,omitempty"`
	Location  int       `json:"location,omitempty"`
	Amount    int       `json:"amount,omitempty"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnReport `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string   `json:"filename"`
	ConfigID       string   `json:"config_id"` // The identifier to use for session creation
	Name           string   `json:"name"`      // Display name
	Description    string   `json:"description"`
	Critters       []string `json:"critters"`
	RandomRoster   bool     `json:"random_roster,omitempty"`
	TotalMushrooms int      `json:"total_mushrooms"`
}
