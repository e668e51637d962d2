package domain

import (
	"errors"
	"testing"

	"github.com/louisbranch/servicerecord/internal/core/dice/dicetest"
)

func TestNewCharacter(t *testing.T) {
	seq := dicetest.NewSequence(t, 19, 5, 5, 4, 4, 6, 6, 4, 5, 6, 5, 3, 4)
	c := NewCharacter(seq, true)
	if c.Name != "Maximus Ion" {
		t.Fatalf("Name = %q", c.Name)
	}
	if c.Age != StartingAge || c.Status != StatusCreated || !c.DeathRule {
		t.Fatalf("NewCharacter() = %+v", c)
	}
	if c.UPP() != "A8C9B7" || c.InitialCharacteristics != c.Characteristics {
		t.Fatalf("characteristics = %+v initial = %+v", c.Characteristics, c.InitialCharacteristics)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestRevealTracksShownCharacteristics(t *testing.T) {
	seq := dicetest.NewSequence(t, 19, 5, 5, 4, 4, 6, 6, 4, 5, 6, 5, 3, 4)
	c := NewCharacter(seq, false)

	value, err := c.Reveal(Endurance)
	if err != nil {
		t.Fatalf("Reveal() error = %v", err)
	}
	if value != 12 {
		t.Fatalf("Reveal(END) = %d, want 12", value)
	}
	if _, err := c.Reveal(Endurance); err != nil {
		t.Fatalf("Reveal() again error = %v", err)
	}
	if len(c.Revealed) != 1 {
		t.Fatalf("Revealed = %v, want one entry", c.Revealed)
	}
	hidden := c.Hidden()
	if len(hidden) != 5 || hidden[0] != Strength || hidden[2] != Intelligence {
		t.Fatalf("Hidden() = %v", hidden)
	}
	if _, err := c.Reveal(Characteristic(9)); !errors.Is(err, ErrUnknownCharacteristic) {
		t.Fatalf("Reveal(9) error = %v, want ErrUnknownCharacteristic", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	clone := c.Clone()
	clone.Revealed[0] = Social
	if c.Revealed[0] != Endurance {
		t.Fatal("Clone() shares the revealed list")
	}

	c.Revealed = append(c.Revealed, Endurance)
	if err := c.Validate(); !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("Validate() with repeated reveal error = %v, want ErrInvalidCharacter", err)
	}
}

func TestApplyGainLogsAppliedDelta(t *testing.T) {
	c := Character{Career: Navy, Characteristics: uniform(15), Skills: map[string]int{}}
	grant := c.ApplyGain(1, TermEvent(), CharacteristicGain(Social), &TableRoll{Table: PersonalDevelopment, Roll: 6})
	if grant.LevelDelta != 0 {
		t.Fatalf("LevelDelta = %d, want 0 at the cap", grant.LevelDelta)
	}
	if c.Characteristics.Social != 15 {
		t.Fatalf("Social = %d, want 15", c.Characteristics.Social)
	}
	if grant.Description == "" || grant.Table != PersonalDevelopment || *grant.Roll != 6 {
		t.Fatalf("grant = %+v", grant)
	}
}

func TestTermAccounting(t *testing.T) {
	c := Character{Career: Army, Age: StartingAge}
	from, to := c.CompleteTerm(1)
	if from != 18 || to != 22 || c.TermsServed != 1 {
		t.Fatalf("CompleteTerm() = %d,%d terms %v", from, to, c.TermsServed)
	}
	c.RecordPartialTerm(2)
	if c.Age != 24 || c.TermsServed != 1.5 {
		t.Fatalf("after partial term age %d terms %v", c.Age, c.TermsServed)
	}
	if len(c.CareerHistory) != 2 || !c.CareerHistory[1].Partial || c.CareerHistory[1].AgeStart != 22 {
		t.Fatalf("history = %+v", c.CareerHistory)
	}
	if c.CompletedTerms() != 1 {
		t.Fatalf("CompletedTerms() = %d, want 1", c.CompletedTerms())
	}
}

func TestCloneIsDeep(t *testing.T) {
	roll := 3
	ch := Social
	c := Character{
		Name:                "Nova Kin",
		Skills:              map[string]int{"Pilot": 1},
		SkillAcquisitionLog: []SkillGrant{{Roll: &roll, Characteristic: &ch}},
		AutomaticGrants:     []string{"enlistment"},
		Term:                &TermState{Number: 2, Phase: PhaseSkills, Survival: &SurvivalResult{Roll: 9}},
	}
	clone := c.Clone()
	clone.Skills["Pilot"] = 3
	*clone.SkillAcquisitionLog[0].Roll = 5
	clone.AutomaticGrants[0] = "changed"
	clone.Term.Survival.Roll = 2
	clone.Term.Phase = PhaseAging

	if c.Skills["Pilot"] != 1 || roll != 3 || c.AutomaticGrants[0] != "enlistment" {
		t.Fatalf("clone shares state with original: %+v", c)
	}
	if c.Term.Survival.Roll != 9 || c.Term.Phase != PhaseSkills {
		t.Fatalf("clone shares term with original: %+v", c.Term)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Character {
		return Character{
			Name:            "Orion Pax",
			Age:             26,
			TermsServed:     2,
			Characteristics: uniform(7),
			Career:          Navy,
			Commissioned:    true,
			Rank:            2,
			Promotions:      1,
			Skills:          map[string]int{"Pilot": 1},
			Status:          StatusActive,
			Term:            &TermState{Number: 3, Phase: PhaseSurvival},
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Character)
	}{
		{name: "missing name", mutate: func(c *Character) { c.Name = "" }},
		{name: "too young", mutate: func(c *Character) { c.Age = 17 }},
		{name: "odd terms", mutate: func(c *Character) { c.TermsServed = 1.25 }},
		{name: "characteristic too high", mutate: func(c *Character) { c.Characteristics.Social = 16 }},
		{name: "unknown career", mutate: func(c *Character) { c.Career = "Pirates" }},
		{name: "rank without commission", mutate: func(c *Character) { c.Commissioned = false }},
		{name: "promotions above cap", mutate: func(c *Character) { c.Promotions = 6 }},
		{name: "active without term", mutate: func(c *Character) { c.Term = nil }},
		{name: "unknown status", mutate: func(c *Character) { c.Status = "lost" }},
		{name: "zero skill", mutate: func(c *Character) { c.Skills["Pilot"] = 0 }},
		{name: "unsorted grants", mutate: func(c *Character) { c.AutomaticGrants = []string{"rank_5", "commission"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidCharacter) {
				t.Fatalf("Validate() error = %v, want ErrInvalidCharacter", err)
			}
		})
	}
}

func TestGrantEventText(t *testing.T) {
	events := []GrantEvent{EnlistmentEvent(), CommissionEvent(), PromotionEvent(), TermEvent(), RankEvent(4)}
	for _, e := range events {
		text, err := e.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", e, err)
		}
		var got GrantEvent
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != e {
			t.Fatalf("round trip %q = %+v, want %+v", text, got, e)
		}
	}
	for _, bad := range []string{"", "rank_", "rank_0", "rank_x", "bonus"} {
		if _, err := ParseGrantEvent(bad); err == nil {
			t.Fatalf("ParseGrantEvent(%q) succeeded", bad)
		}
	}
	if RankEvent(5).String() != "rank_5" {
		t.Fatalf("RankEvent(5) = %q", RankEvent(5))
	}
}
