package domain

import (
	"github.com/louisbranch/servicerecord/internal/core/check"
	"github.com/louisbranch/servicerecord/internal/core/dice"
)

// CommissionResult records a commission attempt.
type CommissionResult struct {
	Career       Career `json:"career"`
	RequiredRoll int    `json:"requiredRoll"`
	Roll         int    `json:"roll"`
	Modifier     int    `json:"modifier"`
	Total        int    `json:"total"`
	Success      bool   `json:"success"`
}

// CheckCommission rolls for an officer's commission. Only enlisted
// characters of a commissioning service who are not draftees may try.
func CheckCommission(r dice.Roller, c Character) (CommissionResult, error) {
	rules, err := rulesFor(c.Career)
	if err != nil {
		return CommissionResult{}, err
	}
	if rules.commission == nil || c.Commissioned || c.Drafted {
		return CommissionResult{}, ErrCommissionUnavailable
	}
	adv := rules.commission
	res := check.Against(r.Roll2D6(), adv.modifier.bonus(c.Characteristics), adv.target)
	return CommissionResult{
		Career:       c.Career,
		RequiredRoll: res.Target,
		Roll:         res.Roll,
		Modifier:     res.Modifier,
		Total:        res.Total,
		Success:      res.Success,
	}, nil
}

// ApplyCommission makes the character an officer of rank 1.
func (c *Character) ApplyCommission() {
	c.Commissioned = true
	c.Rank = 1
}
