package domain

import "github.com/louisbranch/servicerecord/internal/core/dice"

// agingCheck is one characteristic loss avoided on 2d6 >= target.
type agingCheck struct {
	characteristic Characteristic
	target         int
	loss           int
}

var (
	earlyAging = []agingCheck{
		{Strength, 8, 1},
		{Dexterity, 7, 1},
		{Endurance, 8, 1},
	}
	middleAging = []agingCheck{
		{Strength, 9, 1},
		{Dexterity, 8, 1},
		{Endurance, 9, 1},
	}
	advancedAging = []agingCheck{
		{Strength, 9, 2},
		{Dexterity, 9, 2},
		{Endurance, 9, 2},
		{Intelligence, 9, 1},
	}
)

const (
	earlyAgingStart    = 34
	middleAgingStart   = 50
	advancedAgingStart = 66
	agingInterval      = 4
)

// AgingEffect records one aging check. Delta is the change applied, which is
// zero when the roll avoided the loss or the value was already at 0.
type AgingEffect struct {
	Threshold      int            `json:"threshold"`
	Characteristic Characteristic `json:"characteristic"`
	Roll           int            `json:"roll"`
	Target         int            `json:"target"`
	Avoided        bool           `json:"avoided"`
	Delta          int            `json:"delta"`
}

func agingChecksAt(age int) []agingCheck {
	switch {
	case age >= advancedAgingStart:
		if (age-advancedAgingStart)%agingInterval == 0 {
			return advancedAging
		}
	case age >= middleAgingStart:
		if (age-middleAgingStart)%agingInterval == 0 {
			return middleAging
		}
	case age >= earlyAgingStart:
		if (age-earlyAgingStart)%agingInterval == 0 {
			return earlyAging
		}
	}
	return nil
}

// AgingThresholds returns the ages in (from, to] at which aging checks apply.
func AgingThresholds(from, to int) []int {
	var out []int
	for age := from + 1; age <= to; age++ {
		if agingChecksAt(age) != nil {
			out = append(out, age)
		}
	}
	return out
}

// ResolveAging rolls every aging check crossed between from and to and
// returns the effects together with the resulting characteristics. Values
// never drop below MinCharacteristic.
func ResolveAging(r dice.Roller, c Characteristics, from, to int) ([]AgingEffect, Characteristics) {
	var effects []AgingEffect
	for _, age := range AgingThresholds(from, to) {
		for _, ac := range agingChecksAt(age) {
			roll := r.Roll2D6()
			effect := AgingEffect{
				Threshold:      age,
				Characteristic: ac.characteristic,
				Roll:           roll,
				Target:         ac.target,
				Avoided:        roll >= ac.target,
			}
			if !effect.Avoided {
				effect.Delta = c.Add(ac.characteristic, -ac.loss)
			}
			effects = append(effects, effect)
		}
	}
	return effects, c
}
