package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/pkg/logger"
)

// Stop reason codes reported by BulkMove
const (
	StopInvalidMove = "invalid_move"
	StopGameOver    = "game_over"
	StopVictory     = "victory"
	StopStalled     = "stalled"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
		Roster:         sess.Engine.GetSetup().Roster,
		Warnings:       sess.Warnings,
		RunID:          sess.RunID,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Get().WithFields(logrus.Fields{
		"session_id": session.ID,
		"config":     config.Name,
		"roster":     session.Engine.GetSetup().Roster,
	}).Info("Session created")

	return s.sessionInfo(session, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move places one of the two selectable critters and resolves the turn.
// An invalid move returns an error wrapping engine.ErrInvalidMove and leaves
// the game unchanged.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, critterIndex, locationIndex int, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		s.resetSession(sess)
		events = append(events, resetEvent())
	}

	before := sess.Engine.GetTotalMushrooms()
	report, err := sess.Engine.ApplyMove(critterIndex, locationIndex)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()
	s.logTurn(sess, report)

	moveEvents := extractTurnEvents(report)
	step := buildStep(1, report, before, state.TotalMushrooms)
	s.archiveIfFinished(sess)

	return &MoveResult{
		Success:   true,
		GameState: state,
		Message:   state.Message,
		Events:    append(events, moveEvents...),
		Step:      &step,
		Report:    report,
	}, nil
}

// BulkMove executes multiple moves in sequence, stopping at the first
// invalid move or when the game ends.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []engine.Move, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		s.resetSession(sess)
		result.Events = append(result.Events, resetEvent())
	}

	start := sess.Engine.GetState()
	result.StartDay = start.Day
	result.StartMushrooms = start.TotalMushrooms

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if code, reason := stopReason(sess.Engine); code != "" {
			result.StopReasonCode = code
			result.StoppedReason = reason
			result.StoppedOnMove = i + 1
			break
		}

		before := sess.Engine.GetTotalMushrooms()
		report, err := sess.Engine.ApplyMove(move.CritterIndex, move.LocationIndex)
		if err != nil {
			result.Success = false
			result.StopReasonCode = StopInvalidMove
			result.StoppedReason = fmt.Sprintf("move %d invalid: %v", i+1, err)
			result.StoppedOnMove = i + 1
			break
		}
		s.logTurn(sess, report)

		result.MovesExecuted++
		result.Events = append(result.Events, extractTurnEvents(report)...)
		result.Steps = append(result.Steps, buildStep(i+1, report, before, sess.Engine.GetTotalMushrooms()))
	}

	end := sess.Engine.GetState()
	result.GameState = end
	result.EndDay = end.Day
	result.EndMushrooms = end.TotalMushrooms
	result.Collected = result.StartMushrooms - end.TotalMushrooms
	result.GameOver = end.GameOver
	result.Victory = end.Victory
	result.Message = end.Message
	result.ValidMoves = describeMoves(sess.Engine)

	// Ended by the last executed move without an explicit stop
	if result.StopReasonCode == "" {
		if code, reason := stopReason(sess.Engine); code != "" {
			result.StopReasonCode = code
			result.StoppedReason = reason
		}
	}

	s.archiveIfFinished(sess)
	return result, nil
}

// stopReason reports why no further move can be played, or "" if play can continue
func stopReason(e *engine.GameEngine) (string, string) {
	switch {
	case e.IsVictory():
		return StopVictory, "all locations cleared"
	case e.IsGameOver():
		return StopGameOver, fmt.Sprintf("day limit of %d reached", engine.MaxDays)
	case e.IsStalled():
		return StopStalled, "no valid moves remain"
	}
	return "", ""
}

// Reset resets a game session to its initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.resetSession(sess), nil
}

func (s *gameServiceImpl) resetSession(sess *Session) *engine.GameState {
	sess.RunID = ""
	logger.Get().WithField("session_id", sess.ID).Info("Game reset")
	return sess.Engine.Reset()
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetValidMoves lists the moves the player can make right now
func (s *gameServiceImpl) GetValidMoves(ctx context.Context, sessionID string) ([]MoveOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return describeMoves(sess.Engine), nil
}

// GetSummary returns mushrooms collected per critter type and per critter
func (s *gameServiceImpl) GetSummary(ctx context.Context, sessionID string) (*engine.CollectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess.Engine.Summary(), nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetTurnHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var turns []engine.TurnReport
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else if start < total {
		turns = history[start:end]
	}
	if turns == nil {
		turns = []engine.TurnReport{}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) logTurn(sess *Session, report *engine.TurnReport) {
	logger.Get().WithFields(logrus.Fields{
		"session_id": sess.ID,
		"turn":       report.Turn,
		"day":        report.Day,
		"critter":    report.Critter,
		"location":   report.Location,
		"collected":  report.TotalCollected(),
	}).Info("Turn resolved")
}

// ArchiveFinished archives every finished session that has no run yet and
// returns how many runs were written. It holds the service lock so archiving
// never overlaps a move or reset on the same session.
func (s *gameServiceImpl) ArchiveFinished(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	archived := 0
	var errs []error
	for _, sess := range s.sessions.List() {
		if sess.RunID != "" || (!sess.Engine.IsGameOver() && !sess.Engine.IsStalled()) {
			continue
		}
		if err := s.sessions.Archive(sess.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		if sess.RunID != "" {
			archived++
		}
	}
	return archived, errors.Join(errs...)
}

// archiveIfFinished hands a finished run to the session manager's archiver
func (s *gameServiceImpl) archiveIfFinished(sess *Session) {
	if !sess.Engine.IsGameOver() && !sess.Engine.IsStalled() {
		return
	}
	if err := s.sessions.Archive(sess.ID); err != nil {
		logger.Get().WithError(err).WithField("session_id", sess.ID).Warn("Failed to archive run")
	}
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Game reset to initial state",
		Timestamp: time.Now(),
	}
}

// eventTypes maps engine turn events onto the coarser service event types.
// Buffs, penalties, bonuses and rotation stay in the turn report only.
var eventTypes = map[engine.EventKind]string{
	engine.EventPlaced:          "placement",
	engine.EventDuplicate:       "duplicate",
	engine.EventCollected:       "collect",
	engine.EventDepleted:        "depleted",
	engine.EventMoved:           "gopher_move",
	engine.EventReturnedToQueue: "gopher_move",
	engine.EventExpired:         "expired",
	engine.EventVictory:         "victory",
	engine.EventGameOver:        "game_over",
}

// extractTurnEvents generates service events from a turn report
func extractTurnEvents(report *engine.TurnReport) []GameEvent {
	events := []GameEvent{}
	now := time.Now()
	for _, ev := range report.Events {
		typ, ok := eventTypes[ev.Kind]
		if !ok {
			continue
		}
		events = append(events, GameEvent{
			Type:      typ,
			Message:   ev.Message,
			Timestamp: now,
			Turn:      report.Turn,
			Location:  ev.LocationID,
			Amount:    ev.Amount,
		})
	}
	return events
}

func buildStep(idx int, report *engine.TurnReport, before, after int) StepInfo {
	step := StepInfo{
		Idx:             idx,
		Turn:            report.Turn,
		Day:             report.Day,
		CritterIndex:    report.Move.CritterIndex,
		LocationIndex:   report.Move.LocationIndex,
		Critter:         report.Critter,
		Location:        report.Location,
		Collected:       report.TotalCollected(),
		MushroomsBefore: before,
		MushroomsAfter:  after,
		Victory:         report.Victory,
	}
	for _, ev := range report.Events {
		switch ev.Kind {
		case engine.EventDuplicate:
			step.Duplicates++
		case engine.EventExpired:
			step.Expired++
		case engine.EventDepleted:
			step.Depleted = true
		}
	}
	return step
}

// describeMoves attaches critter and location names to each valid move
func describeMoves(e *engine.GameEngine) []MoveOption {
	moves := e.ValidMoves()
	queue := e.GetQueue()
	state := e.GetState()
	options := make([]MoveOption, 0, len(moves))
	for _, m := range moves {
		c := queue[m.CritterIndex]
		loc := state.Locations[m.LocationIndex]
		options = append(options, MoveOption{
			CritterIndex:  m.CritterIndex,
			LocationIndex: m.LocationIndex,
			Critter:       c.Type,
			Location:      loc.Type,
			Description: fmt.Sprintf("%s (%d/%d) to %s (%d mushrooms, %d/%d occupied)",
				c.Type.Title(), c.MushroomsPerDay, c.Lifespan,
				loc.Type.Title(), loc.Mushrooms, len(loc.Occupants), loc.Capacity),
		})
	}
	return options
}
