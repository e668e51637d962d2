package domain

import "github.com/louisbranch/servicerecord/internal/core/dice"

// MaxReenlistmentAge is the age from which only a natural 12 continues service.
const MaxReenlistmentAge = 46

// mandatoryRoll forces another term regardless of age or wishes.
const mandatoryRoll = 12

// ReenlistmentOutcome is the result of the end-of-term reenlistment roll.
type ReenlistmentOutcome string

const (
	Approved  ReenlistmentOutcome = "approved"
	Mandatory ReenlistmentOutcome = "mandatory"
	Denied    ReenlistmentOutcome = "denied"
	Retired   ReenlistmentOutcome = "retired"
)

// Continues reports whether the career goes on for another term.
func (o ReenlistmentOutcome) Continues() bool {
	return o == Approved || o == Mandatory
}

// ReenlistmentResult records a reenlistment roll.
type ReenlistmentResult struct {
	Career       Career              `json:"career"`
	Age          int                 `json:"age"`
	RequiredRoll int                 `json:"requiredRoll"`
	Roll         int                 `json:"roll"`
	Requested    bool                `json:"requested"`
	Outcome      ReenlistmentOutcome `json:"outcome"`
}

// AttemptReenlistment rolls 2d6 at the end of a term. A 12 is always
// mandatory. Otherwise a character wishing to leave retires, characters aged
// MaxReenlistmentAge or more are denied, and the rest need the career target.
func AttemptReenlistment(r dice.Roller, career Career, age int, requested bool) (ReenlistmentResult, error) {
	rules, err := rulesFor(career)
	if err != nil {
		return ReenlistmentResult{}, err
	}
	roll := r.Roll2D6()
	result := ReenlistmentResult{
		Career:       career,
		Age:          age,
		RequiredRoll: rules.reenlistTarget,
		Roll:         roll,
		Requested:    requested,
	}
	switch {
	case roll == mandatoryRoll:
		result.Outcome = Mandatory
	case !requested:
		result.Outcome = Retired
	case age >= MaxReenlistmentAge:
		result.Outcome = Denied
	case roll < rules.reenlistTarget:
		result.Outcome = Denied
	default:
		result.Outcome = Approved
	}
	return result, nil
}
