package audit

import (
	"context"
	"time"

	"github.com/louisbranch/servicerecord/internal/services/career/storage"
)

// Severity describes the audit severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Emitter records character operations.
type Emitter struct {
	store storage.AuditStore
	clock func() time.Time
}

// NewEmitter creates a new audit emitter.
func NewEmitter(store storage.AuditStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an operation. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, op storage.Operation) (storage.Operation, error) {
	if e == nil || e.store == nil {
		return op, nil
	}
	if op.Timestamp.IsZero() {
		if e.clock == nil {
			op.Timestamp = time.Now().UTC()
		} else {
			op.Timestamp = e.clock().UTC()
		}
	}
	if op.Severity == "" {
		op.Severity = string(SeverityInfo)
	}
	return e.store.AppendOperation(ctx, op)
}

// History returns the recorded operations of one character.
func (e *Emitter) History(ctx context.Context, characterID string) ([]storage.Operation, error) {
	if e == nil || e.store == nil {
		return nil, nil
	}
	return e.store.ListOperations(ctx, characterID)
}
