package runlog

import (
	"context"
	"time"

	"github.com/wricardo/spilled-mushrooms/game/service"
)

// Archiver stores finished sessions in a SQLiteStore. It satisfies
// session.RunArchiver.
type Archiver struct {
	store   *SQLiteStore
	timeout time.Duration
}

// NewArchiver returns an archiver writing to store
func NewArchiver(store *SQLiteStore) *Archiver {
	return &Archiver{store: store, timeout: 5 * time.Second}
}

// Archive saves the session's run and returns its ID
func (a *Archiver) Archive(sess *service.Session) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	run := NewRun(sess.ID, sess.Engine, sess.CreatedAt, time.Now())
	if sess.Config != nil && sess.Config.Name != "" {
		run.ConfigName = sess.Config.Name
	}
	if err := a.store.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}
