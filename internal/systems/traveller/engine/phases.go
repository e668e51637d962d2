package engine

import (
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
)

// EnlistOutcome is the result of Enlist.
type EnlistOutcome struct {
	Result domain.EnlistmentResult
	// Grant is the service's one-time enlistment award, if it has one.
	Grant *domain.SkillGrant
}

// AdvancementOutcome is the result of a commission or promotion check.
// Grants lists the one-time award and bonus roll that a success earns.
type AdvancementOutcome struct {
	Commission *domain.CommissionResult
	Promotion  *domain.PromotionResult
	Grants     []domain.SkillGrant
}

// RevealOutcome is the result of Reveal.
type RevealOutcome struct {
	Characteristic domain.Characteristic
	Value          int
	// Hidden lists the characteristics still to be revealed.
	Hidden []domain.Characteristic
}

// Reveal shows one of the characteristics rolled at creation. It draws no
// dice and is only allowed before enlistment.
func (r *Run) Reveal(ch domain.Characteristic) (RevealOutcome, error) {
	if err := r.expectCreated(); err != nil {
		return RevealOutcome{}, err
	}
	value, err := r.ch.Reveal(ch)
	if err != nil {
		return RevealOutcome{}, err
	}
	return RevealOutcome{Characteristic: ch, Value: value, Hidden: r.ch.Hidden()}, nil
}

// Enlist attempts to join career and opens the first term.
func (r *Run) Enlist(career domain.Career) (EnlistOutcome, error) {
	if err := r.expectCreated(); err != nil {
		return EnlistOutcome{}, err
	}
	result, err := domain.Enlist(r.roller, r.ch.Characteristics, career)
	if err != nil {
		return EnlistOutcome{}, err
	}
	r.ch.ApplyEnlistment(result)
	grant, err := domain.GrantAutomatic(&r.ch, r.term(), domain.EnlistmentEvent())
	if err != nil {
		return EnlistOutcome{}, err
	}
	return EnlistOutcome{Result: result, Grant: grant}, nil
}

func (r *Run) expectCreated() error {
	switch r.ch.Status {
	case domain.StatusCreated:
		return nil
	case domain.StatusActive:
		return domain.ErrAlreadyEnlisted
	case domain.StatusDead:
		return domain.ErrDeceased
	default:
		return domain.ErrCareerEnded
	}
}

// CheckSurvival resolves the survival roll that opens every term.
func (r *Run) CheckSurvival() (domain.SurvivalResult, error) {
	if err := r.ch.Expect(domain.PhaseSurvival); err != nil {
		return domain.SurvivalResult{}, err
	}
	result, err := domain.CheckSurvival(r.roller, r.ch.Career, r.ch.Characteristics, r.ch.DeathRule)
	if err != nil {
		return domain.SurvivalResult{}, err
	}
	r.ch.Term.Survival = &result
	switch result.Outcome {
	case domain.Died:
		r.endCareer(domain.StatusDead)
	case domain.Injured:
		r.ch.RecordPartialTerm(r.term())
		r.endCareer(domain.StatusInjured)
	default:
		r.setPhase(r.afterSurvival())
	}
	return result, nil
}

// CheckCommission resolves the commission roll. Success grants rank 1, the
// service's one-time commission award and one bonus skill roll.
func (r *Run) CheckCommission() (AdvancementOutcome, error) {
	if err := r.ch.ExpectActive(); err != nil {
		return AdvancementOutcome{}, err
	}
	if !r.ch.CommissionEligible() {
		return AdvancementOutcome{}, domain.ErrCommissionUnavailable
	}
	if err := r.ch.Expect(domain.PhaseCommission); err != nil {
		return AdvancementOutcome{}, err
	}
	result, err := domain.CheckCommission(r.roller, r.ch)
	if err != nil {
		return AdvancementOutcome{}, err
	}
	r.ch.Term.Commission = &result
	out := AdvancementOutcome{Commission: &result}
	if result.Success {
		r.ch.ApplyCommission()
		out.Grants, err = r.advancementGrants(domain.CommissionEvent(), domain.CommissionEvent())
		if err != nil {
			return AdvancementOutcome{}, err
		}
	}
	r.setPhase(r.afterCommission())
	return out, nil
}

// CheckPromotion resolves the promotion roll for an officer. Success raises
// rank, earns one bonus skill roll and any one-time award for the new rank.
func (r *Run) CheckPromotion() (AdvancementOutcome, error) {
	if err := r.ch.ExpectActive(); err != nil {
		return AdvancementOutcome{}, err
	}
	if !r.ch.Commissioned {
		return AdvancementOutcome{}, domain.ErrNotCommissioned
	}
	if !r.ch.PromotionEligible() {
		return AdvancementOutcome{}, domain.ErrPromotionCapReached
	}
	if err := r.ch.Expect(domain.PhasePromotion); err != nil {
		return AdvancementOutcome{}, err
	}
	result, err := domain.CheckPromotion(r.roller, r.ch)
	if err != nil {
		return AdvancementOutcome{}, err
	}
	r.ch.Term.Promotion = &result
	out := AdvancementOutcome{Promotion: &result}
	if result.Success {
		r.ch.ApplyPromotion()
		out.Grants, err = r.advancementGrants(domain.RankEvent(r.ch.Rank), domain.PromotionEvent())
		if err != nil {
			return AdvancementOutcome{}, err
		}
	}
	r.setPhase(domain.PhaseSkills)
	return out, nil
}

// advancementGrants applies the one-time award for automatic, then one
// bonus table roll logged under bonus.
func (r *Run) advancementGrants(automatic, bonus domain.GrantEvent) ([]domain.SkillGrant, error) {
	var grants []domain.SkillGrant
	award, err := domain.GrantAutomatic(&r.ch, r.term(), automatic)
	if err != nil {
		return nil, err
	}
	if award != nil {
		grants = append(grants, *award)
	}
	rolled, err := domain.AcquireSkills(r.roller, &r.ch, r.term(), bonus, 1)
	if err != nil {
		return nil, err
	}
	return append(grants, rolled...), nil
}

// RollSkills makes the term's regular skill table rolls.
func (r *Run) RollSkills() ([]domain.SkillGrant, error) {
	if err := r.ch.Expect(domain.PhaseSkills); err != nil {
		return nil, err
	}
	n, err := domain.TermSkillRolls(r.ch.Career, r.term())
	if err != nil {
		return nil, err
	}
	grants, err := domain.AcquireSkills(r.roller, &r.ch, r.term(), domain.TermEvent(), n)
	if err != nil {
		return nil, err
	}
	r.ch.Term.SkillRolls = grants
	r.setPhase(domain.PhaseAging)
	return grants, nil
}

// ApplyAging completes the term: the character ages four years and every
// aging threshold crossed is resolved. The term summary is returned.
func (r *Run) ApplyAging() (domain.TermSummary, error) {
	if err := r.ch.Expect(domain.PhaseAging); err != nil {
		return domain.TermSummary{}, err
	}
	term := r.term()
	from, to := r.ch.CompleteTerm(term)
	effects, after := domain.ResolveAging(r.roller, r.ch.Characteristics, from, to)
	r.ch.Characteristics = after
	record := domain.AgingRecord{Term: term, Age: to, Effects: effects}
	if len(effects) > 0 {
		r.ch.AgingLog = append(r.ch.AgingLog, record)
	}
	r.ch.Term.Aging = &record
	summary := domain.TermSummary{
		Term:         term,
		Age:          to,
		SkillRolls:   r.ch.GrantsInTerm(term),
		AgingEffects: effects,
	}
	r.ch.TermLog = append(r.ch.TermLog, summary)
	r.setPhase(domain.PhaseReenlistment)
	return summary, nil
}

// AttemptReenlistment rolls to serve another term. When stay is false the
// character asks to retire, which only a roll of 12 overrides.
func (r *Run) AttemptReenlistment(stay bool) (domain.ReenlistmentResult, error) {
	if err := r.ch.Expect(domain.PhaseReenlistment); err != nil {
		return domain.ReenlistmentResult{}, err
	}
	result, err := domain.AttemptReenlistment(r.roller, r.ch.Career, r.ch.Age, stay)
	if err != nil {
		return domain.ReenlistmentResult{}, err
	}
	r.ch.Term.Reenlistment = &result
	switch result.Outcome {
	case domain.Approved, domain.Mandatory:
		r.ch.Drafted = false
		r.ch.Term = &domain.TermState{Number: r.term() + 1, Phase: domain.PhaseSurvival}
	case domain.Retired:
		r.endCareer(domain.StatusRetired)
	default:
		r.endCareer(domain.StatusDenied)
	}
	return result, nil
}

// MusterOut returns the benefit rolls of a character whose career is over.
func (r *Run) MusterOut() (int, error) {
	switch {
	case r.ch.Status == domain.StatusCreated:
		return 0, domain.ErrNotEnlisted
	case r.ch.Status == domain.StatusActive:
		return 0, domain.ErrCareerStillActive
	case r.ch.Status == domain.StatusDead:
		return 0, domain.ErrDeceased
	}
	if r.ch.MusteringOutRolls == nil {
		r.endCareer(r.ch.Status)
	}
	return *r.ch.MusteringOutRolls, nil
}
