package dice

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
)

func TestRoll(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr error
	}{
		{name: "single d6", spec: Spec{Sides: 6, Count: 1}},
		{name: "2d6", spec: Spec{Sides: 6, Count: 2}},
		{name: "3d8", spec: Spec{Sides: 8, Count: 3}},
		{name: "invalid sides", spec: Spec{Sides: 0, Count: 1}, wantErr: ErrInvalidDiceSpec},
		{name: "invalid count", spec: Spec{Sides: 6, Count: 0}, wantErr: ErrInvalidDiceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll, err := NewSource(42).Roll(tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Roll() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(roll.Results) != tt.spec.Count {
				t.Fatalf("got %d results, want %d", len(roll.Results), tt.spec.Count)
			}
			sum := 0
			for i, r := range roll.Results {
				if r < 1 || r > tt.spec.Sides {
					t.Fatalf("Results[%d] = %d, out of range [1, %d]", i, r, tt.spec.Sides)
				}
				sum += r
			}
			if roll.Total != sum {
				t.Fatalf("Total = %d, want %d", roll.Total, sum)
			}
		})
	}
}

func TestInvalidSpecCarriesErrorCode(t *testing.T) {
	_, err := NewSource(1).Roll(Spec{Sides: -1, Count: 2})
	if got := apperrors.CodeOf(err); got != apperrors.CodeDiceInvalidSpec {
		t.Fatalf("CodeOf() = %q, want %q", got, apperrors.CodeDiceInvalidSpec)
	}
	if got := apperrors.CodeOf(err).ExitCode(); got != apperrors.ExitInvalidInput {
		t.Fatalf("ExitCode() = %d, want %d", got, apperrors.ExitInvalidInput)
	}
}

func TestSourceRanges(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 2000; i++ {
		if v := s.RollDie(); v < 1 || v > 6 {
			t.Fatalf("RollDie() = %d, out of range", v)
		}
		if v := s.Roll2D6(); v < 2 || v > 12 {
			t.Fatalf("Roll2D6() = %d, out of range", v)
		}
		if v := s.Pick(6); v < 0 || v >= 6 {
			t.Fatalf("Pick(6) = %d, out of range", v)
		}
	}
}

func TestSourceCoversAllFaces(t *testing.T) {
	s := NewSource(99)
	seen := map[int]bool{}
	for i := 0; i < 600; i++ {
		seen[s.RollDie()] = true
	}
	for face := 1; face <= 6; face++ {
		if !seen[face] {
			t.Fatalf("face %d never rolled", face)
		}
	}
}

func TestSourceDeterminism(t *testing.T) {
	a := NewSource(12345)
	b := NewSource(12345)
	for i := 0; i < 100; i++ {
		if x, y := a.Roll2D6(), b.Roll2D6(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestResumeContinuesStream(t *testing.T) {
	original := NewSource(2024)
	for i := 0; i < 17; i++ {
		original.Roll2D6()
		original.Pick(20)
	}
	state := original.State()
	if state.Draws != 17*3 {
		t.Fatalf("draws = %d, want %d", state.Draws, 17*3)
	}

	resumed := Resume(state)
	if resumed.State() != state {
		t.Fatalf("resumed state = %+v, want %+v", resumed.State(), state)
	}
	for i := 0; i < 50; i++ {
		if x, y := original.RollDie(), resumed.RollDie(); x != y {
			t.Fatalf("draw %d after resume differs: %d vs %d", i, x, y)
		}
	}
}

func TestPickPanicsOnEmptySet(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewSource(1).Pick(0)
}
