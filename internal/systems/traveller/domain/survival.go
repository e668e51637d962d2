package domain

import (
	"github.com/louisbranch/servicerecord/internal/core/check"
	"github.com/louisbranch/servicerecord/internal/core/dice"
)

// SurvivalOutcome is how a term ended for the character.
type SurvivalOutcome string

const (
	Survived SurvivalOutcome = "survived"
	Injured  SurvivalOutcome = "injured"
	Died     SurvivalOutcome = "died"
)

// SurvivalResult records a survival check.
type SurvivalResult struct {
	Career       Career          `json:"career"`
	RequiredRoll int             `json:"requiredRoll"`
	Roll         int             `json:"roll"`
	Bonus        int             `json:"bonus"`
	Total        int             `json:"total"`
	Outcome      SurvivalOutcome `json:"outcome"`
}

// CheckSurvival rolls to survive a term. A failed roll kills the character
// when deathRule is set and injures them otherwise.
func CheckSurvival(r dice.Roller, career Career, c Characteristics, deathRule bool) (SurvivalResult, error) {
	rules, err := rulesFor(career)
	if err != nil {
		return SurvivalResult{}, err
	}
	bonus := rules.survivalBonus.bonus(c)
	res := check.Against(r.Roll2D6(), bonus, rules.survivalTarget)
	result := SurvivalResult{
		Career:       career,
		RequiredRoll: res.Target,
		Roll:         res.Roll,
		Bonus:        res.Modifier,
		Total:        res.Total,
		Outcome:      Survived,
	}
	if !res.Success {
		result.Outcome = Injured
		if deathRule {
			result.Outcome = Died
		}
	}
	return result, nil
}
