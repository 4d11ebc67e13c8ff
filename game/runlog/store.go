package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("run not found")

// SQLiteStore archives finished runs in a sqlite database
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the run archive at path
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			config_name TEXT NOT NULL,
			roster TEXT NOT NULL,
			victory INTEGER NOT NULL,
			stalled INTEGER NOT NULL,
			days INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			mushrooms_left INTEGER NOT NULL,
			total_collected INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_ended_at ON runs(ended_at);`,
		`CREATE TABLE IF NOT EXISTS run_critters (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			critter_id INTEGER NOT NULL,
			type TEXT NOT NULL,
			duplicate INTEGER NOT NULL,
			collected INTEGER NOT NULL,
			mushrooms_per_day INTEGER NOT NULL,
			lifespan INTEGER NOT NULL,
			status TEXT NOT NULL,
			last_location INTEGER NOT NULL DEFAULT -1,
			PRIMARY KEY (run_id, critter_id)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return addColumn(db, "run_critters", "last_location", "INTEGER NOT NULL DEFAULT -1")
}

// addColumn adds a column to archives created before it existed
func addColumn(db *sql.DB, table, column, decl string) error {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name=?`, table, column).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	_, err = db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl))
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun writes a run and its critters in one transaction
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	roster, err := json.Marshal(run.Roster)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs(id,session_id,config_name,roster,victory,stalled,days,turns,mushrooms_left,total_collected,started_at,ended_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.SessionID, run.ConfigName, string(roster),
		boolInt(run.Victory), boolInt(run.Stalled), run.Days, run.Turns,
		run.MushroomsLeft, run.TotalCollected,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.EndedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for _, c := range run.Critters {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_critters(run_id,critter_id,type,duplicate,collected,mushrooms_per_day,lifespan,status,last_location)
			 VALUES(?,?,?,?,?,?,?,?,?)`,
			run.ID, c.CritterID, c.Type, boolInt(c.Duplicate), c.Collected, c.MushroomsPerDay, c.Lifespan, c.Status, c.LastLocation,
		)
		if err != nil {
			return fmt.Errorf("insert critter %d of run %s: %w", c.CritterID, run.ID, err)
		}
	}
	return tx.Commit()
}

const runColumns = `id,session_id,config_name,roster,victory,stalled,days,turns,mushrooms_left,total_collected,started_at,ended_at`

// ListRuns returns the most recently ended runs first, without critters.
// A limit of zero or less returns every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY ended_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its critters
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id=?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT critter_id,type,duplicate,collected,mushrooms_per_day,lifespan,status,last_location
		 FROM run_critters WHERE run_id=? ORDER BY critter_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c CritterRecord
		var dup int
		if err := rows.Scan(&c.CritterID, &c.Type, &dup, &c.Collected, &c.MushroomsPerDay, &c.Lifespan, &c.Status, &c.LastLocation); err != nil {
			return nil, err
		}
		c.Duplicate = dup != 0
		run.Critters = append(run.Critters, c)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run              Run
		roster           string
		victory, stalled int
		started, ended   string
	)
	err := row.Scan(&run.ID, &run.SessionID, &run.ConfigName, &roster, &victory, &stalled,
		&run.Days, &run.Turns, &run.MushroomsLeft, &run.TotalCollected, &started, &ended)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(roster), &run.Roster); err != nil {
		return nil, fmt.Errorf("decode roster of run %s: %w", run.ID, err)
	}
	run.Victory = victory != 0
	run.Stalled = stalled != 0
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, err
	}
	if run.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
		return nil, err
	}
	return &run, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
