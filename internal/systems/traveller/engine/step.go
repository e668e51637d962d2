package engine

import (
	"context"

	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
)

// StepResult reports the phase a Step resolved. Exactly the field for that
// phase is set.
type StepResult struct {
	Term         int
	Phase        domain.Phase
	Survival     *domain.SurvivalResult
	Advancement  *AdvancementOutcome
	SkillRolls   []domain.SkillGrant
	Summary      *domain.TermSummary
	Reenlistment *domain.ReenlistmentResult
}

// Step resolves whichever phase the current term waits on, choosing to
// stay in service at reenlistment.
func (r *Run) Step() (StepResult, error) {
	return r.step(true)
}

func (r *Run) step(stay bool) (StepResult, error) {
	if err := r.ch.ExpectActive(); err != nil {
		return StepResult{}, err
	}
	res := StepResult{Term: r.term(), Phase: r.ch.Term.Phase}
	switch res.Phase {
	case domain.PhaseSurvival:
		survival, err := r.CheckSurvival()
		if err != nil {
			return StepResult{}, err
		}
		res.Survival = &survival
	case domain.PhaseCommission:
		out, err := r.CheckCommission()
		if err != nil {
			return StepResult{}, err
		}
		res.Advancement = &out
	case domain.PhasePromotion:
		out, err := r.CheckPromotion()
		if err != nil {
			return StepResult{}, err
		}
		res.Advancement = &out
	case domain.PhaseSkills:
		grants, err := r.RollSkills()
		if err != nil {
			return StepResult{}, err
		}
		res.SkillRolls = grants
	case domain.PhaseAging:
		summary, err := r.ApplyAging()
		if err != nil {
			return StepResult{}, err
		}
		res.Summary = &summary
	case domain.PhaseReenlistment:
		result, err := r.AttemptReenlistment(stay)
		if err != nil {
			return StepResult{}, err
		}
		res.Reenlistment = &result
	}
	return res, nil
}

// RunOptions controls RunCareer.
type RunOptions struct {
	// RetireAfterTerms asks to leave service once this many full terms are
	// served. Zero means reenlist for as long as the rolls allow.
	RetireAfterTerms int
}

// RunCareer enlists a new character in career, if needed, and steps until
// the career ends. The context is checked between terms; a cancelled run
// stops at a term boundary with the character still active.
func (r *Run) RunCareer(ctx context.Context, career domain.Career, opts RunOptions) ([]StepResult, error) {
	if r.ch.Status == domain.StatusCreated {
		if _, err := r.Enlist(career); err != nil {
			return nil, err
		}
	} else if err := r.ch.ExpectActive(); err != nil {
		return nil, err
	}
	var steps []StepResult
	for r.ch.Status == domain.StatusActive {
		if r.ch.Term.Phase == domain.PhaseSurvival {
			if err := ctx.Err(); err != nil {
				return steps, err
			}
		}
		stay := opts.RetireAfterTerms <= 0 || r.ch.CompletedTerms() < opts.RetireAfterTerms
		res, err := r.step(stay)
		if err != nil {
			return steps, err
		}
		steps = append(steps, res)
	}
	return steps, nil
}
