package domain

import (
	"strings"

	"github.com/louisbranch/servicerecord/internal/core/check"
)

// Career is one of the six services a character can join.
type Career string

const (
	Navy      Career = "Navy"
	Marines   Career = "Marines"
	Army      Career = "Army"
	Scouts    Career = "Scouts"
	Merchants Career = "Merchants"
	Others    Career = "Others"
)

// Careers returns the six services in table order.
func Careers() []Career {
	return []Career{Navy, Marines, Army, Scouts, Merchants, Others}
}

// ParseCareer resolves a career name, ignoring case.
func ParseCareer(name string) (Career, error) {
	normalized := strings.TrimSpace(name)
	for _, c := range Careers() {
		if strings.EqualFold(normalized, string(c)) {
			return c, nil
		}
	}
	return "", unknownCareer(name)
}

// Valid reports whether c is one of the six services.
func (c Career) Valid() bool {
	_, ok := careerTable[c]
	return ok
}

// modifier grants a bonus when one characteristic meets a minimum.
type modifier struct {
	characteristic Characteristic
	check.Threshold
}

func (m modifier) bonus(c Characteristics) int {
	if m.Threshold.Bonus == 0 || !m.Applies(c.Get(m.characteristic)) {
		return 0
	}
	return m.Threshold.Bonus
}

func dm(ch Characteristic, minimum, bonus int) modifier {
	return modifier{characteristic: ch, Threshold: check.Threshold{Minimum: minimum, Bonus: bonus}}
}

// advancement is a target roll with one conditional +1.
type advancement struct {
	target   int
	modifier modifier
}

type careerRules struct {
	enlistTarget    int
	enlistModifiers []modifier
	survivalTarget  int
	survivalBonus   modifier
	commission      *advancement
	promotion       *advancement
	maxPromotions   int
	reenlistTarget  int
	// skillRollsPerTerm is the number of table rolls every term grants.
	skillRollsPerTerm int
	enlistmentGain    *Gain
	commissionGain    *Gain
	rankGains         map[int]Gain
	rankTitles        []string
}

func gainPtr(g Gain) *Gain { return &g }

var careerTable = map[Career]careerRules{
	Navy: {
		enlistTarget:      8,
		enlistModifiers:   []modifier{dm(Intelligence, 8, 1), dm(Education, 9, 2)},
		survivalTarget:    5,
		survivalBonus:     dm(Intelligence, 7, 2),
		commission:        &advancement{target: 10, modifier: dm(Social, 9, 1)},
		promotion:         &advancement{target: 8, modifier: dm(Education, 8, 1)},
		maxPromotions:     5,
		reenlistTarget:    6,
		skillRollsPerTerm: 1,
		commissionGain:    gainPtr(CharacteristicGain(Social)),
		rankGains: map[int]Gain{
			5: CharacteristicGain(Social),
			6: CharacteristicGain(Social),
		},
		rankTitles: []string{"Ensign", "Lieutenant", "Lt Commander", "Commander", "Captain", "Admiral"},
	},
	Marines: {
		enlistTarget:      9,
		enlistModifiers:   []modifier{dm(Intelligence, 8, 1), dm(Strength, 8, 2)},
		survivalTarget:    6,
		survivalBonus:     dm(Endurance, 8, 2),
		commission:        &advancement{target: 9, modifier: dm(Education, 7, 1)},
		promotion:         &advancement{target: 9, modifier: dm(Social, 8, 1)},
		maxPromotions:     5,
		reenlistTarget:    6,
		skillRollsPerTerm: 1,
		enlistmentGain:    gainPtr(SkillGain("Cutlass")),
		commissionGain:    gainPtr(SkillGain("Revolver")),
		rankTitles:        []string{"Lieutenant", "Captain", "Force Commander", "Lt Colonel", "Colonel", "Brigadier"},
	},
	Army: {
		enlistTarget:      5,
		enlistModifiers:   []modifier{dm(Dexterity, 6, 1), dm(Endurance, 5, 2)},
		survivalTarget:    5,
		survivalBonus:     dm(Education, 6, 2),
		commission:        &advancement{target: 5, modifier: dm(Endurance, 7, 1)},
		promotion:         &advancement{target: 6, modifier: dm(Education, 7, 1)},
		maxPromotions:     5,
		reenlistTarget:    7,
		skillRollsPerTerm: 1,
		enlistmentGain:    gainPtr(SkillGain("Rifle")),
		commissionGain:    gainPtr(SkillGain("SMG")),
		rankTitles:        []string{"Lieutenant", "Captain", "Major", "Lt Colonel", "Colonel", "General"},
	},
	Scouts: {
		enlistTarget:      7,
		enlistModifiers:   []modifier{dm(Intelligence, 6, 1), dm(Strength, 8, 2)},
		survivalTarget:    7,
		survivalBonus:     dm(Endurance, 9, 2),
		reenlistTarget:    3,
		skillRollsPerTerm: 2,
		enlistmentGain:    gainPtr(SkillGain("Pilot")),
	},
	Merchants: {
		enlistTarget:      7,
		enlistModifiers:   []modifier{dm(Strength, 7, 1), dm(Intelligence, 6, 2)},
		survivalTarget:    5,
		survivalBonus:     dm(Intelligence, 7, 2),
		commission:        &advancement{target: 4, modifier: dm(Intelligence, 6, 1)},
		promotion:         &advancement{target: 10, modifier: dm(Intelligence, 9, 1)},
		maxPromotions:     4,
		reenlistTarget:    4,
		skillRollsPerTerm: 1,
		rankGains: map[int]Gain{
			4: SkillGain("Pilot"),
		},
		rankTitles: []string{"4th Officer", "3rd Officer", "2nd Officer", "1st Officer", "Captain"},
	},
	Others: {
		enlistTarget:      3,
		survivalTarget:    5,
		survivalBonus:     dm(Intelligence, 9, 2),
		reenlistTarget:    5,
		skillRollsPerTerm: 1,
	},
}

func rulesFor(c Career) (careerRules, error) {
	rules, ok := careerTable[c]
	if !ok {
		return careerRules{}, unknownCareer(string(c))
	}
	return rules, nil
}

// OffersCommission reports whether the career has officer ranks.
func (c Career) OffersCommission() bool {
	return careerTable[c].commission != nil
}

// MaxPromotions returns the number of promotions an officer can earn.
func (c Career) MaxPromotions() int {
	return careerTable[c].maxPromotions
}

// RankTitle returns the officer title for rank in career, or "" when the
// rank has no title (rank 0 or a career without commissions).
func RankTitle(career Career, rank int) string {
	titles := careerTable[career].rankTitles
	if rank < 1 || rank > len(titles) {
		return ""
	}
	return titles[rank-1]
}
