// Package engine drives one character through the Traveller term loop.
//
// A Run owns a Character and the dice.Roller that resolves it. Each phase
// operation checks that the character is in the matching state, resolves
// the phase with the domain package and applies the result before moving
// the term to its next phase:
//
//	survival -> commission -> promotion -> skills -> aging -> reenlistment
//
// Commission and promotion are skipped when the character is not eligible.
// Death or injury end the career at survival; a denied or retired
// reenlistment ends it after a completed term.
package engine

import (
	"github.com/louisbranch/servicerecord/internal/core/dice"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
)

// Options configures a new run.
type Options struct {
	// DeathRule makes a failed survival roll fatal instead of injuring.
	DeathRule bool
}

// Run is a single character's career in progress. It is not safe for
// concurrent use.
type Run struct {
	roller dice.Roller
	ch     domain.Character
}

// New rolls a fresh character and returns a run for it.
func New(roller dice.Roller, opts Options) *Run {
	return &Run{roller: roller, ch: domain.NewCharacter(roller, opts.DeathRule)}
}

// Resume continues the run of an existing character.
func Resume(roller dice.Roller, ch domain.Character) (*Run, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	return &Run{roller: roller, ch: ch.Clone()}, nil
}

// Character returns a copy of the current character record.
func (r *Run) Character() domain.Character {
	return r.ch.Clone()
}

// Phase returns the phase the current term waits on, or "" when the
// character is not serving.
func (r *Run) Phase() domain.Phase {
	if r.ch.Status != domain.StatusActive || r.ch.Term == nil {
		return ""
	}
	return r.ch.Term.Phase
}

func (r *Run) term() int {
	return r.ch.Term.Number
}

func (r *Run) setPhase(phase domain.Phase) {
	r.ch.Term.Phase = phase
}

// afterSurvival returns the phase following a survived term.
func (r *Run) afterSurvival() domain.Phase {
	if r.ch.CommissionEligible() {
		return domain.PhaseCommission
	}
	return r.afterCommission()
}

func (r *Run) afterCommission() domain.Phase {
	if r.ch.PromotionEligible() {
		return domain.PhasePromotion
	}
	return domain.PhaseSkills
}

// endCareer freezes the character in a terminal status. Survivors get their
// mustering-out rolls.
func (r *Run) endCareer(status domain.Status) {
	r.ch.Status = status
	if status == domain.StatusDead {
		return
	}
	rolls := domain.MusteringOutRolls(r.ch.TermsServed, r.ch.Rank)
	r.ch.MusteringOutRolls = &rolls
}
