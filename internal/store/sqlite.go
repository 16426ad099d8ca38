package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// SQLiteStore persists the interaction counters in a single SQLite row so they
// survive restarts. Increments are single UPDATE ... RETURNING statements, so
// concurrent callers never lose an update.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dbPath. ":memory:" opens a
// private in-memory database, one per call. now seeds the reset time of a
// fresh database.
func OpenSQLite(ctx context.Context, dbPath string, now time.Time) (*SQLiteStore, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer keeps the counter row serialized and makes :memory: behave.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.createTables(ctx, now); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createTables(ctx context.Context, now time.Time) error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		comfort INTEGER NOT NULL DEFAULT 0,
		agitate INTEGER NOT NULL DEFAULT 0,
		last_reset INTEGER NOT NULL
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO interactions (id, comfort, agitate, last_reset) VALUES (1, 0, 0, ?)`,
		now.UnixMilli())
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Record increments the counter for kind and returns the new totals.
func (s *SQLiteStore) Record(ctx context.Context, kind zeitgeist.InteractionKind) (zeitgeist.InteractionState, error) {
	var comfort, agitate int64
	switch kind {
	case zeitgeist.InteractionComfort:
		comfort = 1
	case zeitgeist.InteractionAgitate:
		agitate = 1
	default:
		return zeitgeist.InteractionState{}, zeitgeist.ErrInvalidInteraction
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE interactions
		SET comfort = comfort + ?, agitate = agitate + ?
		WHERE id = 1
		RETURNING comfort, agitate, last_reset
	`, comfort, agitate)
	return scanState(row)
}

// State returns the current counters.
func (s *SQLiteStore) State(ctx context.Context) (zeitgeist.InteractionState, error) {
	row := s.db.QueryRowContext(ctx, `SELECT comfort, agitate, last_reset FROM interactions WHERE id = 1`)
	return scanState(row)
}

// Reset zeroes both counters and stamps the reset time.
func (s *SQLiteStore) Reset(ctx context.Context, at time.Time) (zeitgeist.InteractionState, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE interactions
		SET comfort = 0, agitate = 0, last_reset = ?
		WHERE id = 1
		RETURNING comfort, agitate, last_reset
	`, at.UnixMilli())
	return scanState(row)
}

func scanState(row *sql.Row) (zeitgeist.InteractionState, error) {
	var (
		st        zeitgeist.InteractionState
		lastReset int64
	)
	if err := row.Scan(&st.Comfort, &st.Agitate, &lastReset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zeitgeist.InteractionState{}, fmt.Errorf("interaction row missing: %w", err)
		}
		return zeitgeist.InteractionState{}, err
	}
	st.LastReset = time.UnixMilli(lastReset).UTC()
	return st, nil
}
