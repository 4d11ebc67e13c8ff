package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/service"
)

func TestArchiver(t *testing.T) {
	store := openTestStore(t)
	archiver := NewArchiver(store)

	sess := &service.Session{
		ID:        "c0de",
		Engine:    wonGame(t),
		Config:    &engine.GameConfig{Name: "Quick Win"},
		CreatedAt: time.Now().Add(-time.Minute),
	}

	id, err := archiver.Archive(sess)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	run, err := store.GetRun(context.Background(), id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.SessionID != "c0de" || run.ConfigName != "Quick Win" || !run.Victory {
		t.Errorf("Unexpected archived run %+v", run)
	}
}
