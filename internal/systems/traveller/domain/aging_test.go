package domain

import (
	"slices"
	"testing"

	"github.com/louisbranch/servicerecord/internal/core/dice"
	"github.com/louisbranch/servicerecord/internal/core/dice/dicetest"
)

func TestAgingThresholds(t *testing.T) {
	tests := []struct {
		from, to int
		want     []int
	}{
		{18, 22, nil},
		{30, 34, []int{34}},
		{46, 50, []int{50}},
		{62, 66, []int{66}},
		{66, 70, []int{70}},
		{30, 54, []int{34, 38, 42, 46, 50, 54}},
		{60, 75, []int{62, 66, 70, 74}},
	}
	for _, tt := range tests {
		if got := AgingThresholds(tt.from, tt.to); !slices.Equal(got, tt.want) {
			t.Fatalf("AgingThresholds(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestResolveAgingEarly(t *testing.T) {
	// STR avoided on 8, DEX lost on 6, END avoided on 9.
	seq := dicetest.NewSequence(t, 4, 4, 3, 3, 4, 5)
	effects, after := ResolveAging(seq, uniform(7), 30, 34)
	if len(effects) != 3 {
		t.Fatalf("got %d effects, want 3", len(effects))
	}
	if !effects[0].Avoided || effects[1].Avoided || !effects[2].Avoided {
		t.Fatalf("effects = %+v", effects)
	}
	if effects[1].Delta != -1 || effects[1].Target != 7 || effects[1].Threshold != 34 {
		t.Fatalf("dexterity effect = %+v", effects[1])
	}
	want := uniform(7)
	want.Dexterity = 6
	if after != want {
		t.Fatalf("after = %+v, want %+v", after, want)
	}
}

func TestResolveAgingAdvancedHitsIntelligence(t *testing.T) {
	seq := dicetest.NewSequence(t, 1, 1, 1, 1, 1, 1, 1, 1)
	effects, after := ResolveAging(seq, uniform(1), 64, 68)
	if len(effects) != 4 {
		t.Fatalf("got %d effects, want 4", len(effects))
	}
	if effects[3].Characteristic != Intelligence || effects[3].Delta != -1 {
		t.Fatalf("intelligence effect = %+v", effects[3])
	}
	if effects[0].Delta != -1 {
		t.Fatalf("strength delta = %d, want -1 after flooring", effects[0].Delta)
	}
	if after.Strength != 0 || after.Intelligence != 0 || after.Education != 1 {
		t.Fatalf("after = %+v", after)
	}
}

func TestResolveAgingNeverBelowZero(t *testing.T) {
	src := dice.NewSource(7)
	c := uniform(2)
	for age := 18; age < 120; age += TermYears {
		_, c = ResolveAging(src, c, age, age+TermYears)
		for _, ch := range AllCharacteristics() {
			if v := c.Get(ch); v < 0 {
				t.Fatalf("age %d: %s = %d", age+TermYears, ch, v)
			}
		}
	}
}
