// Package sqlite provides a SQLite-backed career storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/servicerecord/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/servicerecord/internal/platform/timeouts"
	"github.com/louisbranch/servicerecord/internal/services/career/storage"
	"github.com/louisbranch/servicerecord/internal/services/career/storage/sqlite/migrations"
)

// Store persists characters and their operation history in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite career store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)",
		cleanPath, timeouts.StorageBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutCharacter inserts or replaces one character record.
func (s *Store) PutCharacter(ctx context.Context, record storage.CharacterRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return fmt.Errorf("character id is required")
	}
	if len(record.Snapshot) == 0 {
		return fmt.Errorf("snapshot is required")
	}
	updatedAt := record.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	createdAt := record.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO characters (id, name, career, status, snapshot, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   career = excluded.career,
		   status = excluded.status,
		   snapshot = excluded.snapshot,
		   updated_at = excluded.updated_at`,
		id,
		record.Name,
		record.Career,
		record.Status,
		record.Snapshot,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter returns one character record by ID.
func (s *Store) GetCharacter(ctx context.Context, id string) (storage.CharacterRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CharacterRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.CharacterRecord{}, fmt.Errorf("character id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, career, status, snapshot, created_at, updated_at
		   FROM characters
		  WHERE id = ?`,
		id,
	)
	var record storage.CharacterRecord
	var createdAt, updatedAt int64
	err := row.Scan(&record.ID, &record.Name, &record.Career, &record.Status, &record.Snapshot, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CharacterRecord{}, storage.ErrNotFound
		}
		return storage.CharacterRecord{}, fmt.Errorf("get character: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// DeleteCharacter removes one character and its operation history.
func (s *Store) DeleteCharacter(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("character id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM operations WHERE character_id = ?`, id); err != nil {
		return fmt.Errorf("delete operations: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// LatestCharacterID returns the ID of the most recently updated character.
func (s *Store) LatestCharacterID(ctx context.Context) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	var id string
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id FROM characters ORDER BY updated_at DESC, rowid DESC LIMIT 1`,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("latest character: %w", err)
	}
	return id, nil
}

// AppendOperation records one operation and returns it with its sequence
// number assigned.
func (s *Store) AppendOperation(ctx context.Context, op storage.Operation) (storage.Operation, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Operation{}, err
	}
	op.CharacterID = strings.TrimSpace(op.CharacterID)
	op.Name = strings.TrimSpace(op.Name)
	if op.CharacterID == "" {
		return storage.Operation{}, fmt.Errorf("character id is required")
	}
	if op.Name == "" {
		return storage.Operation{}, fmt.Errorf("operation name is required")
	}
	if op.Severity == "" {
		op.Severity = "INFO"
	}
	if op.Timestamp.IsZero() {
		op.Timestamp = s.now()
	}
	op.Timestamp = op.Timestamp.UTC()

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO operations (character_id, name, term, outcome, severity, detail, draws, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		op.CharacterID,
		op.Name,
		op.Term,
		op.Outcome,
		op.Severity,
		op.Detail,
		int64(op.Draws),
		toMillis(op.Timestamp),
	)
	if err != nil {
		return storage.Operation{}, fmt.Errorf("append operation: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return storage.Operation{}, fmt.Errorf("append operation: %w", err)
	}
	op.Seq = seq
	op.Timestamp = fromMillis(toMillis(op.Timestamp))
	return op, nil
}

// ListOperations returns the operations of one character in order.
func (s *Store) ListOperations(ctx context.Context, characterID string) ([]storage.Operation, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT seq, character_id, name, term, outcome, severity, detail, draws, created_at
		   FROM operations
		  WHERE character_id = ?
		  ORDER BY seq ASC`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []storage.Operation
	for rows.Next() {
		var op storage.Operation
		var draws, createdAt int64
		if err := rows.Scan(&op.Seq, &op.CharacterID, &op.Name, &op.Term, &op.Outcome, &op.Severity, &op.Detail, &draws, &createdAt); err != nil {
			return nil, fmt.Errorf("list operations: %w", err)
		}
		op.Draws = uint64(draws)
		op.Timestamp = fromMillis(createdAt)
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return ops, nil
}

var _ storage.Store = (*Store)(nil)
