package domain

import "github.com/louisbranch/servicerecord/internal/core/dice"

// firstTermSkillRolls is the number of table rolls every recruit gets in term 1.
const firstTermSkillRolls = 2

// TableRoll is one roll on a skill table.
type TableRoll struct {
	Table Table
	Roll  int
	Gain  Gain
}

// TermSkillRolls returns how many table rolls a term grants: two in the
// first term, and the career's per-term count afterwards.
func TermSkillRolls(career Career, term int) (int, error) {
	rules, err := rulesFor(career)
	if err != nil {
		return 0, err
	}
	if term == 1 && rules.skillRollsPerTerm < firstTermSkillRolls {
		return firstTermSkillRolls, nil
	}
	return rules.skillRollsPerTerm, nil
}

// RollOnTables picks one of the tables open to c uniformly and rolls 1d6 on it.
func RollOnTables(r dice.Roller, career Career, c Characteristics) (TableRoll, error) {
	tables := AvailableTables(c)
	table := tables[r.Pick(len(tables))]
	entries, err := LookupTable(career, table)
	if err != nil {
		return TableRoll{}, err
	}
	roll := r.RollDie()
	gain, err := entries.Result(roll)
	if err != nil {
		return TableRoll{}, err
	}
	return TableRoll{Table: table, Roll: roll, Gain: gain}, nil
}

// AcquireSkills makes n table rolls for the character and applies them,
// returning the log entries appended.
func AcquireSkills(r dice.Roller, c *Character, term int, event GrantEvent, n int) ([]SkillGrant, error) {
	grants := make([]SkillGrant, 0, n)
	for range n {
		tr, err := RollOnTables(r, c.Career, c.Characteristics)
		if err != nil {
			return grants, err
		}
		grants = append(grants, c.ApplyGain(term, event, tr.Gain, &tr))
	}
	return grants, nil
}

// AutomaticGain returns the one-time award the career attaches to event, if any.
func AutomaticGain(career Career, event GrantEvent) (Gain, bool, error) {
	rules, err := rulesFor(career)
	if err != nil {
		return Gain{}, false, err
	}
	switch event.Kind {
	case GrantEnlistment:
		if rules.enlistmentGain != nil {
			return *rules.enlistmentGain, true, nil
		}
	case GrantCommission:
		if rules.commissionGain != nil {
			return *rules.commissionGain, true, nil
		}
	case GrantRank:
		gain, ok := rules.rankGains[event.Rank]
		return gain, ok, nil
	}
	return Gain{}, false, nil
}

// GrantAutomatic applies the career's one-time award for event unless it
// was already given. It returns the applied grant, or nil when nothing was
// awarded.
func GrantAutomatic(c *Character, term int, event GrantEvent) (*SkillGrant, error) {
	if !event.Automatic() {
		return nil, nil
	}
	gain, ok, err := AutomaticGain(c.Career, event)
	if err != nil || !ok {
		return nil, err
	}
	id := event.String()
	if c.HasAutomaticGrant(id) {
		return nil, nil
	}
	grant := c.ApplyGain(term, event, gain, nil)
	c.markAutomaticGrant(id)
	return &grant, nil
}
