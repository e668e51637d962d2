package domain

import "github.com/louisbranch/servicerecord/internal/core/dice"

// EnlistmentStatus tells whether a character joined the requested service.
type EnlistmentStatus string

const (
	Enlisted EnlistmentStatus = "enlisted"
	Drafted  EnlistmentStatus = "drafted"
)

// EnlistmentResult records an enlistment attempt.
type EnlistmentResult struct {
	Requested    Career           `json:"requested"`
	Career       Career           `json:"career"`
	Status       EnlistmentStatus `json:"status"`
	RequiredRoll int              `json:"requiredRoll"`
	Roll         int              `json:"roll"`
	Modifier     int              `json:"modifier"`
}

// EnlistmentModifier sums the career's characteristic DMs for c.
func EnlistmentModifier(career Career, c Characteristics) (int, error) {
	rules, err := rulesFor(career)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range rules.enlistModifiers {
		total += m.bonus(c)
	}
	return total, nil
}

// Enlist rolls to join requested. On failure the character is drafted into
// a uniformly random service, which may be the one requested.
func Enlist(r dice.Roller, c Characteristics, requested Career) (EnlistmentResult, error) {
	rules, err := rulesFor(requested)
	if err != nil {
		return EnlistmentResult{}, err
	}
	modifier, err := EnlistmentModifier(requested, c)
	if err != nil {
		return EnlistmentResult{}, err
	}
	roll := r.Roll2D6()
	result := EnlistmentResult{
		Requested:    requested,
		Career:       requested,
		Status:       Enlisted,
		RequiredRoll: rules.enlistTarget,
		Roll:         roll,
		Modifier:     modifier,
	}
	if roll+modifier < rules.enlistTarget {
		careers := Careers()
		result.Career = careers[r.Pick(len(careers))]
		result.Status = Drafted
	}
	return result, nil
}

// ApplyEnlistment places the character in service and opens the first term.
func (c *Character) ApplyEnlistment(result EnlistmentResult) {
	c.Career = result.Career
	c.Drafted = result.Status == Drafted
	c.Enlistment = &result
	c.Status = StatusActive
	c.Term = &TermState{Number: 1, Phase: PhaseSurvival}
}
