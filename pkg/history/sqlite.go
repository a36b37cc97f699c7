package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const backendName = "sqlite"

// StoreConfig contains configuration for the SQLite history store.
type StoreConfig struct {
	// Path is the database file path. ":memory:" keeps the store in memory.
	Path string

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger receives store events. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultStoreConfig returns the default store configuration for path.
func DefaultStoreConfig(path string) *StoreConfig {
	return &StoreConfig{
		Path:        path,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// Store persists lint runs in SQLite. It is safe for concurrent use; the
// single underlying connection serialises writes.
type Store struct {
	db     *sql.DB
	config *StoreConfig
	logger *slog.Logger
}

// Open opens or creates the history database and applies the schema.
func Open(cfg *StoreConfig) (*Store, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, NewStorageError(backendName, "open", fmt.Errorf("db path cannot be empty"))
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "history.sqlite")

	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, NewStorageError(backendName, "create_dir", err)
			}
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, NewStorageError(backendName, "open", err)
	}
	// One connection keeps pragmas and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store opened",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

func (s *Store) initialize() error {
	if s.config.WALMode && s.config.Path != ":memory:" {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError(backendName, "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError(backendName, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(backendName, "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError(backendName, "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError(backendName, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(backendName, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Record stores one run.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	var ruleCounts any
	if len(run.RuleCounts) > 0 {
		data, err := json.Marshal(run.RuleCounts)
		if err != nil {
			return NewStorageError(backendName, "record", err)
		}
		ruleCounts = string(data)
	}

	var parseErr any
	if run.ParseError != "" {
		parseErr = run.ParseError
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, file, started_at, duration, diagnostics, rule_counts, parse_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.File, run.StartedAt.UnixMilli(), int64(run.Duration),
		run.Diagnostics, ruleCounts, parseErr,
	)
	if err != nil {
		return NewStorageError(backendName, "record", err)
	}
	return nil
}

// List returns runs matching filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Run, error) {
	where, args := buildWhereClause(filter)

	query := "SELECT id, file, started_at, duration, diagnostics, rule_counts, parse_error FROM runs"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY started_at DESC, id"

	limit := DefaultListLimit
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	query += fmt.Sprintf(" LIMIT %d", limit)
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError(backendName, "list", err)
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, NewStorageError(backendName, "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(backendName, "list", err)
	}
	return runs, nil
}

// Count returns the number of runs matching filter. Limit and Offset are
// ignored.
func (s *Store) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args := buildWhereClause(filter)

	query := "SELECT COUNT(*) FROM runs"
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, NewStorageError(backendName, "count", err)
	}
	return count, nil
}

// Prune deletes runs that started before cutoff and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE started_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, NewStorageError(backendName, "prune", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError(backendName, "prune", err)
	}
	return deleted, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError(backendName, "ping", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError(backendName, "close", err)
	}
	s.logger.Debug("history store closed")
	return nil
}

func buildWhereClause(filter Filter) (string, []any) {
	var conditions []string
	var args []any

	if filter.File != "" {
		conditions = append(conditions, "file = ?")
		args = append(args, filter.File)
	}
	if filter.Since != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, filter.Since.UnixMilli())
	}
	if filter.Until != nil {
		conditions = append(conditions, "started_at <= ?")
		args = append(args, filter.Until.UnixMilli())
	}
	if filter.FailedOnly {
		conditions = append(conditions, "parse_error IS NOT NULL")
	}

	return strings.Join(conditions, " AND "), args
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var (
		run        Run
		startedAt  int64
		duration   int64
		ruleCounts sql.NullString
		parseErr   sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.File, &startedAt, &duration, &run.Diagnostics, &ruleCounts, &parseErr); err != nil {
		return nil, err
	}

	run.StartedAt = time.UnixMilli(startedAt)
	run.Duration = time.Duration(duration)
	if parseErr.Valid {
		run.ParseError = parseErr.String
	}
	if ruleCounts.Valid && ruleCounts.String != "" {
		if err := json.Unmarshal([]byte(ruleCounts.String), &run.RuleCounts); err != nil {
			return nil, fmt.Errorf("decode rule counts of run %s: %w", run.ID, err)
		}
	}
	return &run, nil
}
