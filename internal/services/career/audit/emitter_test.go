package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/servicerecord/internal/services/career/storage"
)

type fakeAuditStore struct {
	ops []storage.Operation
	err error
}

func (s *fakeAuditStore) AppendOperation(_ context.Context, op storage.Operation) (storage.Operation, error) {
	if s.err != nil {
		return storage.Operation{}, s.err
	}
	op.Seq = int64(len(s.ops) + 1)
	s.ops = append(s.ops, op)
	return op, nil
}

func (s *fakeAuditStore) ListOperations(_ context.Context, characterID string) ([]storage.Operation, error) {
	var out []storage.Operation
	for _, op := range s.ops {
		if op.CharacterID == characterID {
			out = append(out, op)
		}
	}
	return out, nil
}

func TestEmitterNoopWhenNil(t *testing.T) {
	var emitter *Emitter
	if _, err := emitter.Emit(context.Background(), storage.Operation{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ops, err := emitter.History(context.Background(), "char-1")
	if err != nil || ops != nil {
		t.Fatalf("history = %v, %v", ops, err)
	}
}

func TestEmitterNoopWhenStoreNil(t *testing.T) {
	emitter := &Emitter{}
	if _, err := emitter.Emit(context.Background(), storage.Operation{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestEmitterAddsTimestampAndSeverity(t *testing.T) {
	store := &fakeAuditStore{}
	clockTime := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	emitter := &Emitter{store: store, clock: func() time.Time { return clockTime }}

	op, err := emitter.Emit(context.Background(), storage.Operation{CharacterID: "char-1", Name: "enlist"})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(store.ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(store.ops))
	}
	if !op.Timestamp.Equal(clockTime) {
		t.Fatalf("expected timestamp %v, got %v", clockTime, op.Timestamp)
	}
	if op.Severity != string(SeverityInfo) {
		t.Fatalf("severity = %q, want %q", op.Severity, SeverityInfo)
	}
	if op.Seq != 1 {
		t.Fatalf("seq = %d, want 1", op.Seq)
	}
}

func TestEmitterPreservesTimestampAndSeverity(t *testing.T) {
	store := &fakeAuditStore{}
	clockTime := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	setTime := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	emitter := &Emitter{store: store, clock: func() time.Time { return clockTime }}

	op, err := emitter.Emit(context.Background(), storage.Operation{
		CharacterID: "char-1",
		Name:        "survive",
		Severity:    string(SeverityWarn),
		Timestamp:   setTime,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !op.Timestamp.Equal(setTime) {
		t.Fatalf("expected timestamp %v, got %v", setTime, op.Timestamp)
	}
	if op.Severity != string(SeverityWarn) {
		t.Fatalf("severity = %q, want %q", op.Severity, SeverityWarn)
	}
}

func TestEmitterUsesTimeNowWhenClockNil(t *testing.T) {
	store := &fakeAuditStore{}
	emitter := &Emitter{store: store}

	op, err := emitter.Emit(context.Background(), storage.Operation{CharacterID: "char-1", Name: "age"})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if op.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestEmitterReturnsStoreError(t *testing.T) {
	boom := errors.New("disk full")
	emitter := NewEmitter(&fakeAuditStore{err: boom})
	if _, err := emitter.Emit(context.Background(), storage.Operation{CharacterID: "char-1", Name: "age"}); !errors.Is(err, boom) {
		t.Fatalf("emit error = %v, want %v", err, boom)
	}
}

func TestEmitterHistory(t *testing.T) {
	store := &fakeAuditStore{}
	emitter := NewEmitter(store)
	for _, op := range []storage.Operation{
		{CharacterID: "char-1", Name: "create"},
		{CharacterID: "char-2", Name: "create"},
		{CharacterID: "char-1", Name: "enlist"},
	} {
		if _, err := emitter.Emit(context.Background(), op); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}
	ops, err := emitter.History(context.Background(), "char-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(ops) != 2 || ops[0].Name != "create" || ops[1].Name != "enlist" {
		t.Fatalf("history = %+v", ops)
	}
}
