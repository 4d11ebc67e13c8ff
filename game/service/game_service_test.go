package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	archived map[string]int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		archived: make(map[string]int),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, warnings, err := engine.NewEngineFromConfig(config, nil)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		Warnings:       warnings,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Archive(id string) error {
	session, exists := m.sessions[id]
	if !exists {
		return errors.New("session not found")
	}
	if session.RunID != "" {
		return nil
	}
	m.archived[id]++
	session.RunID = "run-" + id
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

// quickConfig is won in three moves: one crocodile clears each location
func quickConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "quick",
		Description: "Three crocodiles, three small pools",
		Critters:    []string{"crocodile", "crocodile", "crocodile"},
		Locations: []engine.LocationConfig{
			{Type: "beach", Mushrooms: 3},
			{Type: "canyon", Mushrooms: 4},
			{Type: "jungle", Mushrooms: 3},
		},
	}
}

var quickWin = []engine.Move{
	{CritterIndex: 0, LocationIndex: 0},
	{CritterIndex: 0, LocationIndex: 1},
	{CritterIndex: 0, LocationIndex: 2},
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"quick":   quickConfig(),
			"default": {Name: "random", Description: "Random roster"},
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Critters:    config.Critters,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, string) {
	t.Helper()
	sessions := NewMockSessionManager()
	svc := service.NewGameService(sessions, NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "quick")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, sessions, info.ID
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	tests := []struct {
		name       string
		configName string
		wantRoster int
		wantErr    bool
	}{
		{"create with default config", "", engine.RosterSize, false},
		{"create with specific config", "quick", 3, false},
		{"create with invalid config", "nonexistent", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if session == nil {
				t.Fatal("CreateSession() returned nil session")
			}
			if len(session.Roster) != tt.wantRoster {
				t.Errorf("Expected roster of %d, got %v", tt.wantRoster, session.Roster)
			}
			if session.GameState.Day != 1 {
				t.Errorf("Expected day 1, got %d", session.GameState.Day)
			}
		})
	}

	t.Run("config id is reported for the default config", func(t *testing.T) {
		session, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatal(err)
		}
		if session.ConfigName != "default" {
			t.Errorf("Expected config id default, got %q", session.ConfigName)
		}
	})
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	t.Run("valid move", func(t *testing.T) {
		result, err := svc.Move(ctx, id, 0, 0, false)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if !result.Success || result.Report == nil || result.Step == nil {
			t.Fatalf("Expected success with report and step, got %+v", result)
		}
		if result.Step.Collected != 3 || result.Step.MushroomsBefore != 10 || result.Step.MushroomsAfter != 7 {
			t.Errorf("Unexpected step %+v", result.Step)
		}
		if !result.Step.Depleted {
			t.Error("Expected the beach to be depleted")
		}
		if result.GameState.Day != 2 {
			t.Errorf("Expected day 2, got %d", result.GameState.Day)
		}

		types := map[string]int{}
		for _, ev := range result.Events {
			types[ev.Type]++
		}
		if types["placement"] != 1 || types["collect"] != 1 || types["depleted"] != 1 {
			t.Errorf("Unexpected events %v", types)
		}
	})

	t.Run("invalid location", func(t *testing.T) {
		before, _ := svc.GetGameState(ctx, id)
		_, err := svc.Move(ctx, id, 0, 5, false)
		if !errors.Is(err, engine.ErrInvalidMove) {
			t.Errorf("Expected ErrInvalidMove, got %v", err)
		}
		after, _ := svc.GetGameState(ctx, id)
		if before.Turn != after.Turn || before.TotalMushrooms != after.TotalMushrooms {
			t.Error("Expected an invalid move to leave the game unchanged")
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		if _, err := svc.Move(ctx, "nonexistent", 0, 0, false); err == nil {
			t.Error("Expected an error for unknown session")
		}
	})

	t.Run("move with reset", func(t *testing.T) {
		result, err := svc.Move(ctx, id, 0, 1, true)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if result.Events[0].Type != "reset" {
			t.Errorf("Expected reset event first, got %s", result.Events[0].Type)
		}
		if result.GameState.Turn != 1 {
			t.Errorf("Expected turn 1 after reset, got %d", result.GameState.Turn)
		}
	})
}

func TestGameService_MoveToVictory(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)

	var last *service.MoveResult
	for _, m := range quickWin {
		res, err := svc.Move(ctx, id, m.CritterIndex, m.LocationIndex, false)
		if err != nil {
			t.Fatalf("Move %v failed: %v", m, err)
		}
		last = res
	}

	if !last.GameState.Victory || !last.GameState.GameOver {
		t.Fatalf("Expected victory, got %+v", last.GameState)
	}
	if last.Events[len(last.Events)-1].Type != "victory" {
		t.Errorf("Expected victory event last, got %s", last.Events[len(last.Events)-1].Type)
	}
	if sessions.archived[id] != 1 {
		t.Errorf("Expected run archived once, got %d", sessions.archived[id])
	}

	if _, err := svc.Move(ctx, id, 0, 0, false); !errors.Is(err, engine.ErrInvalidMove) {
		t.Errorf("Expected moves after victory to be rejected, got %v", err)
	}

	summary, err := svc.GetSummary(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalCollected != 10 {
		t.Errorf("Expected 10 collected, got %d", summary.TotalCollected)
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()

	t.Run("stops on victory", func(t *testing.T) {
		svc, sessions, id := newTestService(t)
		moves := append(append([]engine.Move{}, quickWin...), engine.Move{})
		result, err := svc.BulkMove(ctx, id, moves, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if result.MovesExecuted != 3 || len(result.Steps) != 3 {
			t.Errorf("Expected 3 executed moves, got %d (%d steps)", result.MovesExecuted, len(result.Steps))
		}
		if result.StopReasonCode != service.StopVictory || result.StoppedOnMove != 4 {
			t.Errorf("Expected victory stop on move 4, got %s on %d", result.StopReasonCode, result.StoppedOnMove)
		}
		if result.StartMushrooms != 10 || result.EndMushrooms != 0 || result.Collected != 10 {
			t.Errorf("Unexpected totals %d -> %d (%d)", result.StartMushrooms, result.EndMushrooms, result.Collected)
		}
		if result.RequestedMoves != 4 || !result.Victory {
			t.Errorf("Unexpected result %+v", result)
		}
		if sessions.archived[id] != 1 {
			t.Errorf("Expected run archived once, got %d", sessions.archived[id])
		}
	})

	t.Run("stops on invalid move", func(t *testing.T) {
		svc, _, id := newTestService(t)
		result, err := svc.BulkMove(ctx, id, []engine.Move{{CritterIndex: 0, LocationIndex: 0}, {CritterIndex: 0, LocationIndex: 9}, {CritterIndex: 0, LocationIndex: 1}}, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if result.Success || result.MovesExecuted != 1 {
			t.Errorf("Expected failure after 1 move, got success=%v executed=%d", result.Success, result.MovesExecuted)
		}
		if result.StopReasonCode != service.StopInvalidMove || result.StoppedOnMove != 2 {
			t.Errorf("Expected invalid_move on move 2, got %s on %d", result.StopReasonCode, result.StoppedOnMove)
		}
		if result.GameState.Turn != 1 {
			t.Errorf("Expected turn 1, got %d", result.GameState.Turn)
		}
	})

	t.Run("truncates long requests", func(t *testing.T) {
		svc, _, id := newTestService(t)
		moves := make([]engine.Move, engine.MaxBulkMoves+5)
		result, err := svc.BulkMove(ctx, id, moves, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if !result.Truncated || result.Limit != engine.MaxBulkMoves {
			t.Errorf("Expected truncation at %d, got %+v", engine.MaxBulkMoves, result)
		}
	})

	t.Run("empty moves", func(t *testing.T) {
		svc, _, id := newTestService(t)
		result, err := svc.BulkMove(ctx, id, nil, true)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if result.MovesExecuted != 0 || result.StopReasonCode != "" || len(result.ValidMoves) == 0 {
			t.Errorf("Unexpected result %+v", result)
		}
		if result.Events[0].Type != "reset" {
			t.Errorf("Expected reset event, got %v", result.Events)
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		if _, err := svc.BulkMove(ctx, "nonexistent", quickWin, false); err == nil {
			t.Error("Expected an error for unknown session")
		}
	})
}

func TestGameService_GetValidMoves(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	moves, err := svc.GetValidMoves(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != engine.SelectableCritters*engine.LocationCount {
		t.Errorf("Expected %d moves, got %d", engine.SelectableCritters*engine.LocationCount, len(moves))
	}
	if moves[0].Critter != engine.Crocodile || moves[0].Location != engine.Beach || moves[0].Description == "" {
		t.Errorf("Unexpected first move %+v", moves[0])
	}
}

func TestGameService_GetTurnHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	if _, err := svc.BulkMove(ctx, id, quickWin, false); err != nil {
		t.Fatalf("Failed to make moves: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantTurns []int
		wantErr   bool
	}{
		{"default options", id, service.HistoryOptions{}, []int{3, 2, 1}, false},
		{"with pagination", id, service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"}, []int{1, 2}, false},
		{"second page", id, service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"}, []int{3}, false},
		{"past the end", id, service.HistoryOptions{Page: 5, Limit: 2, Order: "desc"}, []int{}, false},
		{"invalid session", "nonexistent", service.HistoryOptions{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetTurnHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetTurnHistory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if result.Turns == nil {
				t.Fatal("GetTurnHistory() returned nil turns slice")
			}
			got := make([]int, len(result.Turns))
			for i, r := range result.Turns {
				got[i] = r.Turn
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.wantTurns) {
				t.Errorf("Expected turns %v, got %v", tt.wantTurns, got)
			}
			if result.TotalTurns != 3 {
				t.Errorf("Expected 3 total turns, got %d", result.TotalTurns)
			}
		})
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession(ctx, "quick"); err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
	for _, s := range sessionList {
		if s.ConfigName != "quick" {
			t.Errorf("Expected config id quick, got %q", s.ConfigName)
		}
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	if _, err := svc.Move(ctx, id, 0, 1, false); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	state, err := svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if state.Day != 1 || state.Turn != 0 || state.TotalMushrooms != 10 {
		t.Errorf("Expected a fresh game, got day %d turn %d with %d mushrooms", state.Day, state.Turn, state.TotalMushrooms)
	}

	history, err := svc.GetTurnHistory(ctx, id, service.HistoryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if history.TotalTurns != 0 {
		t.Errorf("Expected empty history after reset, got %d", history.TotalTurns)
	}
}
