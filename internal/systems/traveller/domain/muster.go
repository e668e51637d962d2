package domain

import "math"

// RankBonusRolls returns the extra mustering-out rolls earned by rank.
func RankBonusRolls(rank int) int {
	switch {
	case rank >= 5:
		return 3
	case rank >= 3:
		return 2
	case rank >= 1:
		return 1
	default:
		return 0
	}
}

// MusteringOutRolls returns the benefit rolls earned: one per completed term
// plus the rank bonus. Partial terms count for nothing.
func MusteringOutRolls(termsServed float64, rank int) int {
	if termsServed < 0 {
		termsServed = 0
	}
	return int(math.Floor(termsServed)) + RankBonusRolls(rank)
}
