package runlog

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/wricardo/spilled-mushrooms/game/engine"
)

// wonGame plays a three-crocodile game to victory
func wonGame(t *testing.T) *engine.GameEngine {
	t.Helper()
	e, err := engine.NewEngine(&engine.Setup{
		Name:   "quick",
		Roster: []engine.CritterType{engine.Crocodile, engine.Crocodile, engine.Crocodile},
		Locations: []engine.LocationSetup{
			{Type: engine.Beach, Mushrooms: 3},
			{Type: engine.Canyon, Mushrooms: 4},
			{Type: engine.Jungle, Mushrooms: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	for li := 0; li < engine.LocationCount; li++ {
		if _, err := e.ApplyMove(0, li); err != nil {
			t.Fatalf("Move to %d failed: %v", li, err)
		}
	}
	if !e.IsVictory() {
		t.Fatal("Expected the fixture game to be won")
	}
	return e
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewRun(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := wonGame(t)
	run := NewRun("ab12", e, start, start.Add(time.Minute))

	if run.ID == "" || run.SessionID != "ab12" || run.ConfigName != "quick" {
		t.Errorf("Unexpected identity %+v", run)
	}
	if !run.Victory || run.Days != 3 || run.Turns != 3 || run.MushroomsLeft != 0 || run.TotalCollected != 10 {
		t.Errorf("Unexpected outcome %+v", run)
	}
	if !reflect.DeepEqual(run.Roster, []string{"crocodile", "crocodile", "crocodile"}) {
		t.Errorf("Unexpected roster %v", run.Roster)
	}
	if len(run.Critters) != 3 {
		t.Fatalf("Expected 3 critter records, got %d", len(run.Critters))
	}
	for i, c := range e.Summary().Individual {
		if run.Critters[i].LastLocation != c.LastLocation {
			t.Errorf("Critter %d: expected last location %d, got %d", i, c.LastLocation, run.Critters[i].LastLocation)
		}
	}
	if run.Outcome() != "victory" {
		t.Errorf("Expected victory outcome, got %s", run.Outcome())
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	e := wonGame(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := NewRun("aaaa", e, base, base.Add(time.Minute))
	second := NewRun("bbbb", e, base, base.Add(time.Hour))
	second.Victory = false
	second.Stalled = true
	first.Critters[0].LastLocation = 2
	first.Critters[1].LastLocation = engine.NoLocation

	for _, r := range []*Run{first, second} {
		if err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	t.Run("get run with critters", func(t *testing.T) {
		got, err := store.GetRun(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetRun: %v", err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Errorf("Expected %+v, got %+v", first, got)
		}
		if len(got.Critters) != 3 || got.Critters[0].LastLocation != 2 || got.Critters[1].LastLocation != engine.NoLocation {
			t.Errorf("Expected last locations to survive, got %+v", got.Critters)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		runs, err := store.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("ListRuns: %v", err)
		}
		if len(runs) != 2 || runs[0].ID != second.ID || runs[1].ID != first.ID {
			t.Fatalf("Unexpected order %v", runs)
		}
		if runs[0].Outcome() != "stalled" || runs[0].Critters != nil {
			t.Errorf("Expected stalled run without critters, got %+v", runs[0])
		}

		limited, err := store.ListRuns(ctx, 1)
		if err != nil || len(limited) != 1 {
			t.Errorf("Expected 1 run with limit, got %d (%v)", len(limited), err)
		}
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		if err := store.SaveRun(ctx, first); err == nil {
			t.Error("Expected a duplicate run to fail")
		}
	})

	t.Run("missing run", func(t *testing.T) {
		if _, err := store.GetRun(ctx, "nope"); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Expected ErrRunNotFound, got %v", err)
		}
	})
}

func TestOpenAddsLastLocation(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE run_critters (
		run_id TEXT NOT NULL,
		critter_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		duplicate INTEGER NOT NULL,
		collected INTEGER NOT NULL,
		mushrooms_per_day INTEGER NOT NULL,
		lifespan INTEGER NOT NULL,
		status TEXT NOT NULL,
		PRIMARY KEY (run_id, critter_id)
	)`)
	db.Close()
	if err != nil {
		t.Fatalf("Failed to create old table: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	run := NewRun("old1", wonGame(t), time.Now(), time.Now())
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun on an upgraded archive: %v", err)
	}
	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if len(got.Critters) != len(run.Critters) || got.Critters[0].LastLocation != run.Critters[0].LastLocation {
		t.Errorf("Expected critters %+v, got %+v", run.Critters, got.Critters)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Expected an error for an empty path")
	}
}
