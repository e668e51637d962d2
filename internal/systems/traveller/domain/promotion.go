package domain

import (
	"github.com/louisbranch/servicerecord/internal/core/check"
	"github.com/louisbranch/servicerecord/internal/core/dice"
)

// PromotionResult records a promotion attempt. Rank is the rank held after it.
type PromotionResult struct {
	Career       Career `json:"career"`
	RequiredRoll int    `json:"requiredRoll"`
	Roll         int    `json:"roll"`
	Modifier     int    `json:"modifier"`
	Total        int    `json:"total"`
	Success      bool   `json:"success"`
	Rank         int    `json:"rank"`
}

// CheckPromotion rolls for advancement of a commissioned character.
func CheckPromotion(r dice.Roller, c Character) (PromotionResult, error) {
	rules, err := rulesFor(c.Career)
	if err != nil {
		return PromotionResult{}, err
	}
	if !c.Commissioned {
		return PromotionResult{}, ErrNotCommissioned
	}
	if rules.promotion == nil || c.Promotions >= rules.maxPromotions {
		return PromotionResult{}, ErrPromotionCapReached
	}
	adv := rules.promotion
	res := check.Against(r.Roll2D6(), adv.modifier.bonus(c.Characteristics), adv.target)
	rank := c.Rank
	if res.Success {
		rank++
	}
	return PromotionResult{
		Career:       c.Career,
		RequiredRoll: res.Target,
		Roll:         res.Roll,
		Modifier:     res.Modifier,
		Total:        res.Total,
		Success:      res.Success,
		Rank:         rank,
	}, nil
}

// ApplyPromotion raises rank and the promotion count by one.
func (c *Character) ApplyPromotion() {
	c.Rank++
	c.Promotions++
}
