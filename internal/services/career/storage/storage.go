// Package storage defines persistence contracts for career service state.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
)

// CharacterRecord is one persisted character snapshot. Name, Career and
// Status mirror the snapshot so records can be inspected without decoding.
type CharacterRecord struct {
	ID        string
	Name      string
	Career    string
	Status    string
	Snapshot  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Operation is one audited engine operation.
type Operation struct {
	Seq         int64
	CharacterID string
	Name        string
	Term        int
	Outcome     string
	Severity    string
	// Detail is the JSON form of the operation result.
	Detail    []byte
	Draws     uint64
	Timestamp time.Time
}

// CharacterStore persists character snapshots.
type CharacterStore interface {
	// PutCharacter inserts or replaces a record. CreatedAt is preserved
	// on replace.
	PutCharacter(ctx context.Context, record CharacterRecord) error
	GetCharacter(ctx context.Context, id string) (CharacterRecord, error)
	// DeleteCharacter removes a record and its operations.
	DeleteCharacter(ctx context.Context, id string) error
	// LatestCharacterID returns the most recently updated character.
	LatestCharacterID(ctx context.Context) (string, error)
}

// AuditStore persists the operation history of characters.
type AuditStore interface {
	AppendOperation(ctx context.Context, op Operation) (Operation, error)
	ListOperations(ctx context.Context, characterID string) ([]Operation, error)
}

// Store combines the contracts the career service needs.
type Store interface {
	CharacterStore
	AuditStore
	Close() error
}
