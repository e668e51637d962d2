package domain

import (
	"fmt"
	"math"
	"slices"

	"github.com/louisbranch/servicerecord/internal/core/dice"
)

// StartingAge is the age every character begins with.
const StartingAge = 18

// TermYears is the length of a full term of service.
const TermYears = 4

// Status is the lifecycle state of a character.
type Status string

const (
	StatusCreated Status = "created"
	StatusActive  Status = "active"
	StatusDead    Status = "dead"
	StatusInjured Status = "injured"
	StatusDenied  Status = "denied"
	StatusRetired Status = "retired"
)

// Terminal reports whether no further career operations are possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusDead, StatusInjured, StatusDenied, StatusRetired:
		return true
	default:
		return false
	}
}

func (s Status) valid() bool {
	return s == StatusCreated || s == StatusActive || s.Terminal()
}

// Phase is the step of the current term that is waiting to be resolved.
type Phase string

const (
	PhaseSurvival     Phase = "survival"
	PhaseCommission   Phase = "commission"
	PhasePromotion    Phase = "promotion"
	PhaseSkills       Phase = "skills"
	PhaseAging        Phase = "aging"
	PhaseReenlistment Phase = "reenlistment"
)

func (p Phase) valid() bool {
	switch p {
	case PhaseSurvival, PhaseCommission, PhasePromotion, PhaseSkills, PhaseAging, PhaseReenlistment:
		return true
	default:
		return false
	}
}

// TermRecord is one entry of the career history.
type TermRecord struct {
	Term     int    `json:"term"`
	Career   Career `json:"career"`
	AgeStart int    `json:"ageStart"`
	AgeEnd   int    `json:"ageEnd"`
	Partial  bool   `json:"partial"`
}

// SkillGrant is one skill acquisition log entry. Exactly one of Skill and
// Characteristic is set.
type SkillGrant struct {
	Term           int             `json:"term"`
	Event          GrantEvent      `json:"event"`
	Table          Table           `json:"table,omitempty"`
	Roll           *int            `json:"roll"`
	Skill          string          `json:"skill,omitempty"`
	Characteristic *Characteristic `json:"characteristic,omitempty"`
	LevelDelta     int             `json:"levelDelta"`
	Description    string          `json:"description"`
}

// AgingRecord lists the aging effects resolved when a term completed.
type AgingRecord struct {
	Term    int           `json:"term"`
	Age     int           `json:"age"`
	Effects []AgingEffect `json:"effects"`
}

// TermSummary is the per-term digest of skill rolls and aging.
type TermSummary struct {
	Term         int           `json:"term"`
	Age          int           `json:"age"`
	SkillRolls   []SkillGrant  `json:"skillRolls"`
	AgingEffects []AgingEffect `json:"agingEffects"`
}

// TermState tracks the in-progress term and the checks resolved so far.
type TermState struct {
	Number       int                 `json:"number"`
	Phase        Phase               `json:"phase"`
	Survival     *SurvivalResult     `json:"survival,omitempty"`
	Commission   *CommissionResult   `json:"commission,omitempty"`
	Promotion    *PromotionResult    `json:"promotion,omitempty"`
	SkillRolls   []SkillGrant        `json:"skillRolls,omitempty"`
	Aging        *AgingRecord        `json:"aging,omitempty"`
	Reenlistment *ReenlistmentResult `json:"reenlistment,omitempty"`
}

// Character is the full career record.
type Character struct {
	Name                   string            `json:"name"`
	Age                    int               `json:"age"`
	TermsServed            float64           `json:"termsServed"`
	Characteristics        Characteristics   `json:"characteristics"`
	InitialCharacteristics Characteristics   `json:"initialCharacteristics"`
	Career                 Career            `json:"career,omitempty"`
	Drafted                bool              `json:"drafted"`
	Commissioned           bool              `json:"commissioned"`
	Rank                   int               `json:"rank"`
	Promotions             int               `json:"promotions"`
	Skills                 map[string]int    `json:"skills"`
	CareerHistory          []TermRecord      `json:"careerHistory"`
	SkillAcquisitionLog    []SkillGrant      `json:"skillAcquisitionLog"`
	AgingLog               []AgingRecord     `json:"agingLog"`
	TermLog                []TermSummary     `json:"termLog"`
	AutomaticGrants        []string          `json:"automaticSkillsGranted"`
	Status                 Status            `json:"status"`
	DeathRule              bool              `json:"deathRule"`
	Enlistment             *EnlistmentResult `json:"enlistment,omitempty"`
	Term                   *TermState        `json:"term,omitempty"`
	MusteringOutRolls      *int              `json:"musteringOutRolls,omitempty"`
	Revealed               []Characteristic  `json:"revealed,omitempty"`
}

// NewCharacter rolls a name and characteristics for a new recruit.
func NewCharacter(r dice.Roller, deathRule bool) Character {
	name := RandomName(r)
	characteristics := RollCharacteristics(r)
	return Character{
		Name:                   name,
		Age:                    StartingAge,
		Characteristics:        characteristics,
		InitialCharacteristics: characteristics,
		Skills:                 map[string]int{},
		Status:                 StatusCreated,
		DeathRule:              deathRule,
	}
}

// UPP returns the character's Universal Personality Profile.
func (c Character) UPP() string {
	return c.Characteristics.UPP()
}

// NobleTitle returns the title carried by the character's Social Standing.
func (c Character) NobleTitle() string {
	return NobleTitle(c.Characteristics.Social)
}

// RankTitle returns the officer title for the character's rank.
func (c Character) RankTitle() string {
	return RankTitle(c.Career, c.Rank)
}

// CompletedTerms returns the number of full terms served.
func (c Character) CompletedTerms() int {
	return int(math.Floor(c.TermsServed))
}

// HasAutomaticGrant reports whether the one-time grant id was awarded.
func (c Character) HasAutomaticGrant(id string) bool {
	_, found := slices.BinarySearch(c.AutomaticGrants, id)
	return found
}

// CommissionEligible reports whether the character may attempt a commission:
// a commissioning career, not yet an officer, and not serving as a draftee.
func (c Character) CommissionEligible() bool {
	return c.Career.OffersCommission() && !c.Commissioned && !c.Drafted
}

// PromotionEligible reports whether the character may attempt a promotion.
func (c Character) PromotionEligible() bool {
	return c.Commissioned && c.Promotions < c.Career.MaxPromotions()
}

// Clone returns a deep copy.
func (c Character) Clone() Character {
	out := c
	out.Skills = make(map[string]int, len(c.Skills))
	for k, v := range c.Skills {
		out.Skills[k] = v
	}
	out.CareerHistory = slices.Clone(c.CareerHistory)
	out.SkillAcquisitionLog = cloneGrants(c.SkillAcquisitionLog)
	out.AgingLog = make([]AgingRecord, len(c.AgingLog))
	for i, rec := range c.AgingLog {
		out.AgingLog[i] = rec.clone()
	}
	out.TermLog = make([]TermSummary, len(c.TermLog))
	for i, summary := range c.TermLog {
		summary.SkillRolls = cloneGrants(summary.SkillRolls)
		summary.AgingEffects = slices.Clone(summary.AgingEffects)
		out.TermLog[i] = summary
	}
	out.AutomaticGrants = slices.Clone(c.AutomaticGrants)
	out.Revealed = slices.Clone(c.Revealed)
	if c.Enlistment != nil {
		enlistment := *c.Enlistment
		out.Enlistment = &enlistment
	}
	if c.Term != nil {
		out.Term = c.Term.clone()
	}
	if c.MusteringOutRolls != nil {
		rolls := *c.MusteringOutRolls
		out.MusteringOutRolls = &rolls
	}
	return out
}

func (r AgingRecord) clone() AgingRecord {
	r.Effects = slices.Clone(r.Effects)
	return r
}

func (t *TermState) clone() *TermState {
	out := *t
	if t.Survival != nil {
		v := *t.Survival
		out.Survival = &v
	}
	if t.Commission != nil {
		v := *t.Commission
		out.Commission = &v
	}
	if t.Promotion != nil {
		v := *t.Promotion
		out.Promotion = &v
	}
	out.SkillRolls = cloneGrants(t.SkillRolls)
	if t.Aging != nil {
		v := t.Aging.clone()
		out.Aging = &v
	}
	if t.Reenlistment != nil {
		v := *t.Reenlistment
		out.Reenlistment = &v
	}
	return &out
}

func cloneGrants(grants []SkillGrant) []SkillGrant {
	if grants == nil {
		return nil
	}
	out := make([]SkillGrant, len(grants))
	for i, g := range grants {
		if g.Roll != nil {
			roll := *g.Roll
			g.Roll = &roll
		}
		if g.Characteristic != nil {
			ch := *g.Characteristic
			g.Characteristic = &ch
		}
		out[i] = g
	}
	return out
}

// Validate checks the record invariants.
func (c Character) Validate() error {
	if c.Name == "" {
		return invalidCharacter("name is required")
	}
	if c.Age < StartingAge {
		return invalidCharacter("age %d below starting age %d", c.Age, StartingAge)
	}
	if c.TermsServed < 0 || c.TermsServed*2 != math.Trunc(c.TermsServed*2) {
		return invalidCharacter("terms served %v must be a non-negative multiple of 0.5", c.TermsServed)
	}
	if err := c.Characteristics.validate(); err != nil {
		return invalidCharacter("characteristics: %v", err)
	}
	if !c.Status.valid() {
		return invalidCharacter("unknown status %q", c.Status)
	}
	if c.Status == StatusCreated {
		if c.Career != "" {
			return invalidCharacter("career %q set before enlistment", c.Career)
		}
	} else if !c.Career.Valid() {
		return invalidCharacter("unknown career %q", c.Career)
	}
	if c.Rank < 0 || c.Promotions < 0 {
		return invalidCharacter("rank and promotions must be non-negative")
	}
	if c.Rank > 0 && !c.Commissioned {
		return invalidCharacter("rank %d without a commission", c.Rank)
	}
	if c.Career.Valid() && c.Promotions > c.Career.MaxPromotions() {
		return invalidCharacter("promotions %d above %s limit %d", c.Promotions, c.Career, c.Career.MaxPromotions())
	}
	if c.Status == StatusActive {
		if c.Term == nil || !c.Term.Phase.valid() {
			return invalidCharacter("active character without a valid term phase")
		}
	}
	for skill, level := range c.Skills {
		if level <= 0 {
			return invalidCharacter("skill %q has level %d", skill, level)
		}
	}
	if !slices.IsSorted(c.AutomaticGrants) {
		return invalidCharacter("automatic grants are not sorted")
	}
	seen := map[Characteristic]bool{}
	for _, ch := range c.Revealed {
		if !ch.Valid() || seen[ch] {
			return invalidCharacter("revealed characteristic %s is unknown or repeated", ch)
		}
		seen[ch] = true
	}
	return nil
}

// Reveal marks ch as shown and returns its current value. Revealing the
// same characteristic again does not record it twice.
func (c *Character) Reveal(ch Characteristic) (int, error) {
	if !ch.Valid() {
		return 0, unknownCharacteristic(ch.Key())
	}
	if !slices.Contains(c.Revealed, ch) {
		c.Revealed = append(c.Revealed, ch)
	}
	return c.Characteristics.Get(ch), nil
}

// Hidden returns the characteristics not yet revealed, in UPP order.
func (c Character) Hidden() []Characteristic {
	var hidden []Characteristic
	for _, ch := range AllCharacteristics() {
		if !slices.Contains(c.Revealed, ch) {
			hidden = append(hidden, ch)
		}
	}
	return hidden
}

// ApplyGain applies one skill level or characteristic point and appends the
// matching skill acquisition log entry, which it returns. For characteristic
// gains the logged delta is the change actually applied after clamping.
func (c *Character) ApplyGain(term int, event GrantEvent, gain Gain, origin *TableRoll) SkillGrant {
	grant := SkillGrant{Term: term, Event: event}
	if origin != nil {
		roll := origin.Roll
		grant.Table = origin.Table
		grant.Roll = &roll
	}

	var outcome string
	if gain.IsCharacteristic {
		ch := gain.Characteristic
		grant.Characteristic = &ch
		grant.LevelDelta = c.Characteristics.Add(ch, 1)
		outcome = fmt.Sprintf("%s (%s now %d)", gain, ch, c.Characteristics.Get(ch))
	} else {
		if c.Skills == nil {
			c.Skills = map[string]int{}
		}
		c.Skills[gain.Skill]++
		grant.Skill = gain.Skill
		grant.LevelDelta = 1
		outcome = fmt.Sprintf("%s (now level %d)", gain.Skill, c.Skills[gain.Skill])
	}

	switch {
	case origin != nil:
		grant.Description = fmt.Sprintf("%s roll: %d on %s %s table gives %s", event, origin.Roll, c.Career, origin.Table, outcome)
	default:
		grant.Description = fmt.Sprintf("%s grant: %s", event, outcome)
	}
	c.SkillAcquisitionLog = append(c.SkillAcquisitionLog, grant)
	return grant
}

// CompleteTerm advances age and service by one full term and records it in
// the career history. It returns the age before and after.
func (c *Character) CompleteTerm(term int) (from, to int) {
	from = c.Age
	c.Age += TermYears
	c.TermsServed++
	c.CareerHistory = append(c.CareerHistory, TermRecord{
		Term:     term,
		Career:   c.Career,
		AgeStart: from,
		AgeEnd:   c.Age,
	})
	return from, c.Age
}

// RecordPartialTerm accounts for a term cut short by injury: two years and
// half a term.
func (c *Character) RecordPartialTerm(term int) {
	from := c.Age
	c.Age += TermYears / 2
	c.TermsServed += 0.5
	c.CareerHistory = append(c.CareerHistory, TermRecord{
		Term:     term,
		Career:   c.Career,
		AgeStart: from,
		AgeEnd:   c.Age,
		Partial:  true,
	})
}

func (c *Character) markAutomaticGrant(id string) {
	i, found := slices.BinarySearch(c.AutomaticGrants, id)
	if found {
		return
	}
	c.AutomaticGrants = slices.Insert(c.AutomaticGrants, i, id)
}

// GrantsInTerm returns the log entries originating in term.
func (c Character) GrantsInTerm(term int) []SkillGrant {
	var out []SkillGrant
	for _, g := range c.SkillAcquisitionLog {
		if g.Term == term {
			out = append(out, g)
		}
	}
	return cloneGrants(out)
}

// Expect returns nil when the character is in service and its current term
// is waiting on phase. Otherwise it returns the precondition that fails.
func (c Character) Expect(phase Phase) error {
	if err := c.ExpectActive(); err != nil {
		return err
	}
	if c.Term.Phase != phase {
		return phaseMismatch(c.Term.Phase, phase)
	}
	return nil
}

// ExpectActive returns nil when the character is serving a term.
func (c Character) ExpectActive() error {
	switch c.Status {
	case StatusActive:
		if c.Term == nil {
			return invalidCharacter("active character without a term")
		}
		return nil
	case StatusCreated:
		return ErrNotEnlisted
	case StatusDead:
		return ErrDeceased
	default:
		return ErrCareerEnded
	}
}
