package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/spilled-mushrooms/api"
	"github.com/wricardo/spilled-mushrooms/game/config"
	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/service"
	"github.com/wricardo/spilled-mushrooms/game/session"
)

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func sampleState() *engine.GameState {
	return &engine.GameState{
		Day:     2,
		MaxDays: engine.MaxDays,
		Turn:    1,
		Locations: []engine.LocationState{
			{ID: 0, Type: engine.Beach, Mushrooms: 19, Capacity: 3, Occupants: []engine.Critter{{Type: engine.Frog, MushroomsPerDay: 1, Lifespan: 5}}},
			{ID: 1, Type: engine.Canyon, Mushrooms: 21, Capacity: 3, Occupants: []engine.Critter{}},
			{ID: 2, Type: engine.Jungle, Mushrooms: 15, Capacity: 3, Occupants: []engine.Critter{}},
		},
		Queue:          []engine.Critter{{Type: engine.Goose, MushroomsPerDay: 1, Lifespan: 2}},
		QueueLength:    1,
		TotalMushrooms: 55,
		ValidMoves:     []engine.Move{{CritterIndex: 0, LocationIndex: 1}},
		Message:        "Day 2 begins",
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "ab12"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall(context.Background(), "GET", "/api/sessions/ab12", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "ab12" {
		t.Errorf("Expected id ab12, got %v", response["id"])
	}
}

func TestClient_apiCall_Errors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		client := NewClient("http://invalid-url-that-does-not-exist:9999")
		if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
			t.Error("Expected error for invalid URL")
		}
	})

	t.Run("status without body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "API error") {
			t.Errorf("Expected 'API error', got: %v", err)
		}
	})

	t.Run("error message is passed through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid move: critter 1 to location 0"})
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "POST", "/api", map[string]int{}, nil)
		if err == nil || err.Error() != "invalid move: critter 1 to location 0" {
			t.Errorf("Expected server message, got: %v", err)
		}
	})
}

func TestClient_createSession(t *testing.T) {
	var body map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)

		resp := service.SessionInfo{
			ID:         "ab12",
			ConfigName: "easy",
			Roster:     []engine.CritterType{engine.Frog, engine.Goose},
			Warnings:   []engine.ConfigWarning{{Field: "critters", Index: 2, Value: "frogg", Reason: "unknown critter type", Suggestion: "frog"}},
			GameState:  sampleState(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{"config_id": "easy"}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"ab12", "Frog, Goose", `did you mean "frog"`, "Day: 2/7"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
	if body["config_id"] != "easy" {
		t.Errorf("Expected config_id to be forwarded, got %v", body)
	}
}

func TestClient_placeCritter(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/ab12/move" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(service.MoveResult{Success: true, GameState: sampleState()})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handlePlaceCritter(context.Background(), callTool("place_critter", map[string]interface{}{
		"session_id":     "ab12",
		"critter_index":  float64(1),
		"location_index": float64(2),
		"intent":         "jungle needs a fast gatherer",
	}))
	if err != nil {
		t.Fatalf("placeCritter failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected tool error: %s", resultText(t, result))
	}
	if body["critter_index"] != float64(1) || body["location_index"] != float64(2) {
		t.Errorf("Expected indexes to be forwarded, got %v", body)
	}

	result, _ = client.handlePlaceCritter(context.Background(), callTool("place_critter", map[string]interface{}{
		"session_id":    "ab12",
		"critter_index": float64(0),
	}))
	if !result.IsError {
		t.Error("Expected an error result without location_index")
	}
}

func TestClient_bulkPlace(t *testing.T) {
	var body struct {
		Moves []engine.Move `json:"moves"`
		Reset bool          `json:"reset"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(service.BulkMoveResult{
			MovesExecuted:  1,
			RequestedMoves: 2,
			StopReasonCode: service.StopInvalidMove,
			StoppedOnMove:  2,
			StoppedReason:  "Move 2 is not valid",
			GameState:      sampleState(),
			Steps:          []service.StepInfo{{Idx: 1, Critter: engine.Frog, Location: engine.Beach, Collected: 1, MushroomsAfter: 54}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleBulkPlace(context.Background(), callTool("bulk_place", map[string]interface{}{
		"session_id": "ab12",
		"moves": []interface{}{
			map[string]interface{}{"critter_index": float64(0), "location_index": float64(0)},
			map[string]interface{}{"critter_index": float64(1), "location_index": float64(2)},
		},
		"reset": true,
	}))
	if err != nil {
		t.Fatalf("bulkPlace failed: %v", err)
	}

	want := []engine.Move{{CritterIndex: 0, LocationIndex: 0}, {CritterIndex: 1, LocationIndex: 2}}
	if len(body.Moves) != 2 || body.Moves[0] != want[0] || body.Moves[1] != want[1] || !body.Reset {
		t.Errorf("Unexpected forwarded body %+v", body)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "executed 1/2") || !strings.Contains(text, "invalid_move") {
		t.Errorf("Expected execution summary, got: %s", text)
	}

	result, _ = client.handleBulkPlace(context.Background(), callTool("bulk_place", map[string]interface{}{
		"session_id": "ab12",
		"moves":      []interface{}{"up"},
	}))
	if !result.IsError {
		t.Error("Expected an error result for a malformed move")
	}
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(sampleState())

	expected := []string{
		"Day: 2/7",
		"Mushrooms left: 55",
		"Beach: 19 mushrooms [Frog(1/5)]",
		"Canyon: 21 mushrooms [Empty]",
		"Goose (1/2)",
		"(0,1)",
		"Day 2 begins",
	}
	for _, field := range expected {
		if !strings.Contains(result, field) {
			t.Errorf("Expected '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_Terminal(t *testing.T) {
	tests := []struct {
		name  string
		state engine.GameState
		want  string
	}{
		{"victory", engine.GameState{GameOver: true, Victory: true}, "🎉 VICTORY!"},
		{"game over", engine.GameState{GameOver: true}, "💀 GAME OVER"},
		{"stalled", engine.GameState{Stalled: true}, "STALLED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := formatGameState(&tt.state); !strings.Contains(result, tt.want) {
				t.Errorf("Expected '%s' in result, got: %s", tt.want, result)
			}
		})
	}
}

func TestFormatMoveResult(t *testing.T) {
	result := formatMoveResult(&service.MoveResult{
		Success:   true,
		GameState: sampleState(),
		Step:      &service.StepInfo{Turn: 1, Day: 1, Critter: engine.Frog, Location: engine.Beach, Collected: 1, MushroomsBefore: 56, MushroomsAfter: 55},
		Events:    []service.GameEvent{{Type: "collect", Message: "Frog gathers 1 mushrooms at Beach"}},
	})

	for _, field := range []string{"✓ Placement resolved", "Frog to Beach, gathered 1", "[collect]"} {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}

	failed := formatMoveResult(&service.MoveResult{Success: false, Error: "location is full"})
	if !strings.Contains(failed, "✗ Placement failed") || !strings.Contains(failed, "location is full") {
		t.Errorf("Expected failure output, got: %s", failed)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), callTool("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	expected := []string{
		"Spilled Mushrooms - Complete Instructions",
		"GAME OBJECTIVE:",
		"TURN STRUCTURE:",
		"VICTORY CONDITIONS:",
		"LOCATIONS:",
		"Canyon (21 mushrooms by default)",
		"CRITTERS",
		"Crocodile 3/2",
		"STRATEGY TIPS:",
	}
	for _, content := range expected {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions", content)
		}
	}
}

func TestClient_handleDescribeCritter(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	result, _ := client.handleDescribeCritter(ctx, callTool("describe_critter", map[string]interface{}{"critter": " Penguin "}))
	text := resultText(t, result)
	if !strings.Contains(text, "Mushrooms per day: 2") || !strings.Contains(text, engine.AbilityText[engine.Penguin]) {
		t.Errorf("Unexpected description: %s", text)
	}

	result, _ = client.handleDescribeCritter(ctx, callTool("describe_critter", map[string]interface{}{"critter": "grizly"}))
	if !result.IsError || !strings.Contains(resultText(t, result), `did you mean "grizzly"`) {
		t.Errorf("Expected a suggestion error, got %+v", result)
	}
}

// TestClient_AgainstAPI drives the tools through the real REST stack
func TestClient_AgainstAPI(t *testing.T) {
	dir := t.TempDir()
	data, err := engine.MarshalGameConfig("quick.json", &engine.GameConfig{
		Name:     "quick",
		Critters: []string{"crocodile", "crocodile", "crocodile"},
		Locations: []engine.LocationConfig{
			{Type: "beach", Mushrooms: 3},
			{Type: "canyon", Mushrooms: 4},
			{Type: "jungle", Mushrooms: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quick.json"), data, 0644); err != nil {
		t.Fatal(err)
	}
	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	sessions := session.NewManager()
	server := httptest.NewServer(api.NewServer(service.NewGameService(sessions, configs), nil))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, _ := client.handleCreateSession(ctx, callTool("create_session", map[string]interface{}{"config_id": "quick"}))
	if result.IsError {
		t.Fatalf("create_session failed: %s", resultText(t, result))
	}
	all := sessions.List()
	if len(all) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(all))
	}
	id := all[0].ID

	result, _ = client.handleListConfigs(ctx, callTool("list_configs", nil))
	if text := resultText(t, result); !strings.Contains(text, "quick") || !strings.Contains(text, "Mushrooms: 10") {
		t.Errorf("Unexpected config listing: %s", text)
	}

	result, _ = client.handleBulkPlace(ctx, callTool("bulk_place", map[string]interface{}{
		"session_id": id,
		"moves": []interface{}{
			map[string]interface{}{"critter_index": 0, "location_index": 0},
			map[string]interface{}{"critter_index": 0, "location_index": 1},
			map[string]interface{}{"critter_index": 0, "location_index": 2},
		},
	}))
	if text := resultText(t, result); !strings.Contains(text, "VICTORY") {
		t.Errorf("Expected victory, got: %s", text)
	}

	result, _ = client.handleCollectionSummary(ctx, callTool("collection_summary", map[string]interface{}{"session_id": id}))
	if text := resultText(t, result); !strings.Contains(text, "Total mushrooms gathered: 10") {
		t.Errorf("Unexpected summary: %s", text)
	}

	result, _ = client.handleTurnHistory(ctx, callTool("turn_history", map[string]interface{}{"session_id": id, "order": "asc"}))
	if text := resultText(t, result); !strings.Contains(text, "3 turns") {
		t.Errorf("Unexpected history: %s", text)
	}

	result, _ = client.handlePlaceCritter(ctx, callTool("place_critter", map[string]interface{}{
		"session_id": id, "critter_index": 0, "location_index": 0,
	}))
	if !result.IsError || !strings.Contains(resultText(t, result), "invalid move") {
		t.Errorf("Expected an invalid move error after victory")
	}

	result, _ = client.handleGameState(ctx, callTool("game_state", map[string]interface{}{"session_id": "zz99"}))
	if !result.IsError {
		t.Error("Expected an error for an unknown session")
	}
}
