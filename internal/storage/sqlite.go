// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoRun is returned when a lookup matches no recorded run.
var ErrNoRun = errors.New("storage: no such run")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one recorded scenario run.
type RunRecord struct {
	ID         int64
	ScenarioID string
	Seed       int64
	Ticks      int
	FinalHash  uint64
	CreatedAt  time.Time
	Samples    []SyncSample
}

// SyncSample is the world sync hash at one tick of a run.
type SyncSample struct {
	Tick int
	Hash uint64
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Runs       int
	Seeds      int
	MaxTicks   int
	LastRun    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			final_hash INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario_seed ON runs(scenario_id, seed);

		CREATE TABLE IF NOT EXISTS sync_samples (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			hash INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its samples in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		"INSERT INTO runs (scenario_id, seed, ticks, final_hash) VALUES (?, ?, ?, ?)",
		run.ScenarioID, run.Seed, run.Ticks, toDB(run.FinalHash),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if len(run.Samples) > 0 {
		stmt, err := tx.Prepare("INSERT INTO sync_samples (run_id, tick, hash) VALUES (?, ?, ?)")
		if err != nil {
			return 0, fmt.Errorf("storage: cannot prepare sample insert: %w", err)
		}
		defer stmt.Close()

		for _, smp := range run.Samples {
			if _, err := stmt.Exec(id, smp.Tick, toDB(smp.Hash)); err != nil {
				return 0, fmt.Errorf("storage: cannot save sample at tick %d: %w", smp.Tick, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// Runs retrieves the most recent runs, newest first. An empty scenarioID
// matches every scenario. Samples are not loaded.
func (s *Store) Runs(scenarioID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scenario_id, seed, ticks, final_hash, created_at
		 FROM runs
		 WHERE ? = '' OR scenario_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenarioID, scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run with its samples.
func (s *Store) RunByID(id int64) (RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, scenario_id, seed, ticks, final_hash, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: id %d", ErrNoRun, id)
	}
	if err != nil {
		return RunRecord{}, err
	}

	run.Samples, err = s.Samples(id)
	if err != nil {
		return RunRecord{}, err
	}
	return run, nil
}

// LatestRun retrieves the newest run of a scenario with the given seed,
// including its samples.
func (s *Store) LatestRun(scenarioID string, seed int64) (RunRecord, error) {
	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM runs WHERE scenario_id = ? AND seed = ? ORDER BY id DESC LIMIT 1`,
		scenarioID, seed,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %s seed %d", ErrNoRun, scenarioID, seed)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot query latest run: %w", err)
	}
	return s.RunByID(id)
}

// Samples retrieves the sync samples of a run ordered by tick.
func (s *Store) Samples(runID int64) ([]SyncSample, error) {
	rows, err := s.db.Query(
		"SELECT tick, hash FROM sync_samples WHERE run_id = ? ORDER BY tick",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []SyncSample
	for rows.Next() {
		var smp SyncSample
		var hash int64
		if err := rows.Scan(&smp.Tick, &hash); err != nil {
			return nil, fmt.Errorf("storage: cannot scan sample: %w", err)
		}
		smp.Hash = fromDB(hash)
		samples = append(samples, smp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return samples, nil
}

// ClearRuns deletes every run of the given scenario with its samples.
func (s *Store) ClearRuns(scenarioID string) error {
	_, err := s.db.Exec(
		"DELETE FROM sync_samples WHERE run_id IN (SELECT id FROM runs WHERE scenario_id = ?)",
		scenarioID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear samples: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE scenario_id = ?", scenarioID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// AllScenarioStats retrieves statistics for every scenario that has runs.
func (s *Store) AllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario_id, COUNT(*), COUNT(DISTINCT seed), MAX(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY scenario_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastRun any
		if err := rows.Scan(&st.ScenarioID, &st.Runs, &st.Seeds, &st.MaxTicks, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.ScenarioID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var run RunRecord
	var hash int64
	var createdAt any
	if err := row.Scan(&run.ID, &run.ScenarioID, &run.Seed, &run.Ticks, &hash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	run.FinalHash = fromDB(hash)
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SQLite integers are signed; hashes are stored bit for bit.
func toDB(h uint64) int64   { return int64(h) }  //#nosec G115 -- bit-preserving cast
func fromDB(v int64) uint64 { return uint64(v) } //#nosec G115 -- bit-preserving cast
