package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	rewards, err := json.Marshal(rec.Rewards)
	if err != nil {
		return err
	}
	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO evaluations (id, benchmark, source, ts, n_rows, dim, elapsed_ns, rewards, inputs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			benchmark = excluded.benchmark,
			source = excluded.source,
			ts = excluded.ts,
			n_rows = excluded.n_rows,
			dim = excluded.dim,
			elapsed_ns = excluded.elapsed_ns,
			rewards = excluded.rewards,
			inputs = excluded.inputs
	`, rec.ID, rec.Benchmark, rec.Source, rec.Timestamp.UnixNano(), rec.Rows, rec.Dim, int64(rec.Elapsed), rewards, inputs)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, benchmark, source, ts, n_rows, dim, elapsed_ns, rewards, inputs
		FROM evaluations WHERE id = ?
	`, id)
	rec, err := scanRecord(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, benchmark, source, ts, n_rows, dim, elapsed_ns, rewards, NULL
		FROM evaluations ORDER BY ts DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner, withInputs bool) (Record, error) {
	var (
		rec       Record
		ts        int64
		elapsed   int64
		rewards   []byte
		rawInputs []byte
	)
	if err := sc.Scan(&rec.ID, &rec.Benchmark, &rec.Source, &ts, &rec.Rows, &rec.Dim, &elapsed, &rewards, &rawInputs); err != nil {
		return Record{}, err
	}
	rec.Timestamp = time.Unix(0, ts).UTC()
	rec.Elapsed = time.Duration(elapsed)

	if err := json.Unmarshal(rewards, &rec.Rewards); err != nil {
		return Record{}, fmt.Errorf("decode rewards %s: %w", rec.ID, err)
	}
	if withInputs && len(rawInputs) > 0 {
		if err := json.Unmarshal(rawInputs, &rec.Inputs); err != nil {
			return Record{}, fmt.Errorf("decode inputs %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			benchmark TEXT NOT NULL,
			source TEXT NOT NULL,
			ts INTEGER NOT NULL,
			n_rows INTEGER NOT NULL,
			dim INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			rewards BLOB NOT NULL,
			inputs BLOB
		);
		CREATE INDEX IF NOT EXISTS evaluations_ts ON evaluations (ts);
	`)
	return err
}
