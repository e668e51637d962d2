package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeUnknownCareer, "unknown career")
	detailed := WithMetadata(CodeUnknownCareer, `unknown career "Pirates"`, map[string]string{"Career": "Pirates"})

	if !stderrors.Is(detailed, sentinel) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(detailed, New(CodeNotFound, "not found")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("enlist: %w", New(CodePhaseMismatch, "wrong phase"))
	if got := CodeOf(err); got != CodePhaseMismatch {
		t.Fatalf("CodeOf() = %q, want %q", got, CodePhaseMismatch)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %q, want %q", got, CodeUnknown)
	}
}

func TestWrapMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeSnapshotInvalid, "decode snapshot", stderrors.New("unexpected EOF"))
	if err.Error() != "decode snapshot: unexpected EOF" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrors.Is(err, err.Cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnknownCareer, ExitInvalidInput},
		{CodeSnapshotInvalid, ExitInvalidInput},
		{CodePhaseMismatch, ExitPrecondition},
		{CodePromotionCapReached, ExitPrecondition},
		{CodeNotFound, ExitNotFound},
		{CodeUnknown, ExitInternal},
	}
	for _, tt := range tests {
		if got := tt.code.ExitCode(); got != tt.want {
			t.Errorf("%s.ExitCode() = %d, want %d", tt.code, got, tt.want)
		}
	}
}
