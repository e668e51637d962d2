package domain

import (
	"fmt"
	"strings"
)

// Gain is what a table result or automatic grant awards: one level of a
// skill, or one point of a characteristic.
type Gain struct {
	Skill            string
	Characteristic   Characteristic
	IsCharacteristic bool
}

// SkillGain returns a Gain of one level in skill.
func SkillGain(skill string) Gain {
	return Gain{Skill: skill}
}

// CharacteristicGain returns a Gain of +1 to ch.
func CharacteristicGain(ch Characteristic) Gain {
	return Gain{Characteristic: ch, IsCharacteristic: true}
}

// String renders the gain the way the tables print it: "+1 STR" or "Gunnery".
func (g Gain) String() string {
	if g.IsCharacteristic {
		return fmt.Sprintf("+1 %s", g.Characteristic)
	}
	return g.Skill
}

// Table names one of the four skill tables of a career.
type Table string

const (
	PersonalDevelopment Table = "personal"
	ServiceSkills       Table = "service"
	AdvancedEducation   Table = "advanced"
	// HigherEducation is only open to characters with Education 8+.
	HigherEducation Table = "advanced_education"
)

// HigherEducationMinimum is the Education needed for the advanced_education table.
const HigherEducationMinimum = 8

// Tables returns the four tables in rulebook order.
func Tables() []Table {
	return []Table{PersonalDevelopment, ServiceSkills, AdvancedEducation, HigherEducation}
}

// ParseTable resolves a table name.
func ParseTable(name string) (Table, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, t := range Tables() {
		if normalized == string(t) {
			return t, nil
		}
	}
	return "", unknownSkillTable(name)
}

// UnmarshalText decodes a table name, rejecting names outside the four tables.
func (t *Table) UnmarshalText(text []byte) error {
	parsed, err := ParseTable(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AvailableTables returns the tables a character with c may roll on.
func AvailableTables(c Characteristics) []Table {
	tables := []Table{PersonalDevelopment, ServiceSkills, AdvancedEducation}
	if c.Education >= HigherEducationMinimum {
		tables = append(tables, HigherEducation)
	}
	return tables
}

// SkillTable maps a 1d6 roll to a Gain.
type SkillTable [6]Gain

// Result returns the entry for roll, which must be in [1,6].
func (t SkillTable) Result(roll int) (Gain, error) {
	if roll < 1 || roll > len(t) {
		return Gain{}, fmt.Errorf("skill table roll %d outside [1,6]", roll)
	}
	return t[roll-1], nil
}

// LookupTable returns a copy of the career's table.
func LookupTable(career Career, table Table) (SkillTable, error) {
	byTable, ok := skillTables[career]
	if !ok {
		return SkillTable{}, unknownCareer(string(career))
	}
	t, ok := byTable[table]
	if !ok {
		return SkillTable{}, unknownSkillTable(string(table))
	}
	return t, nil
}

func learn(name string) Gain { return SkillGain(name) }

func raise(ch Characteristic) Gain { return CharacteristicGain(ch) }

var skillTables = map[Career]map[Table]SkillTable{
	Navy: {
		PersonalDevelopment: {raise(Strength), raise(Dexterity), raise(Endurance), raise(Intelligence), raise(Education), raise(Social)},
		ServiceSkills:       {learn("Ship's Boat"), learn("Vacc Suit"), learn("Forward Observer"), learn("Gunnery"), learn("Blade Combat"), learn("Gun Combat")},
		AdvancedEducation:   {learn("Vacc Suit"), learn("Mechanical"), learn("Electronics"), learn("Engineering"), learn("Gunnery"), learn("Computer")},
		HigherEducation:     {learn("Medical"), learn("Navigation"), learn("Engineering"), learn("Computer"), learn("Pilot"), learn("Admin")},
	},
	Marines: {
		PersonalDevelopment: {raise(Strength), raise(Dexterity), raise(Endurance), learn("Gambling"), learn("Brawling"), learn("Blade Combat")},
		ServiceSkills:       {learn("Vehicle"), learn("Vacc Suit"), learn("Blade Combat"), learn("Gun Combat"), learn("Blade Combat"), learn("Gun Combat")},
		AdvancedEducation:   {learn("Vehicle"), learn("Mechanical"), learn("Electronics"), learn("Tactics"), learn("Blade Combat"), learn("Gun Combat")},
		HigherEducation:     {learn("Medical"), learn("Tactics"), learn("Tactics"), learn("Computer"), learn("Leader"), learn("Admin")},
	},
	Army: {
		PersonalDevelopment: {raise(Strength), raise(Dexterity), raise(Endurance), learn("Gambling"), raise(Education), learn("Brawling")},
		ServiceSkills:       {learn("Vehicle"), learn("Air/Raft"), learn("Gun Combat"), learn("Forward Observer"), learn("Blade Combat"), learn("Gun Combat")},
		AdvancedEducation:   {learn("Vehicle"), learn("Mechanical"), learn("Electronics"), learn("Tactics"), learn("Blade Combat"), learn("Gun Combat")},
		HigherEducation:     {learn("Medical"), learn("Tactics"), learn("Tactics"), learn("Computer"), learn("Leader"), learn("Admin")},
	},
	Scouts: {
		PersonalDevelopment: {raise(Strength), raise(Dexterity), raise(Endurance), raise(Intelligence), raise(Education), learn("Gun Combat")},
		ServiceSkills:       {learn("Vehicle"), learn("Vacc Suit"), learn("Mechanical"), learn("Navigation"), learn("Electronics"), learn("Jack-o-T")},
		AdvancedEducation:   {learn("Vehicle"), learn("Mechanical"), learn("Electronics"), learn("Jack-o-T"), learn("Gunnery"), learn("Medical")},
		HigherEducation:     {learn("Medical"), learn("Navigation"), learn("Engineering"), learn("Computer"), learn("Pilot"), learn("Jack-o-T")},
	},
	Merchants: {
		PersonalDevelopment: {raise(Strength), raise(Dexterity), raise(Endurance), learn("Blade Combat"), learn("Bribery"), raise(Intelligence)},
		ServiceSkills:       {learn("Vehicle"), learn("Vacc Suit"), learn("Jack-o-T"), learn("Steward"), learn("Electronics"), learn("Gun Combat")},
		AdvancedEducation:   {learn("Streetwise"), learn("Mechanical"), learn("Electronics"), learn("Navigation"), learn("Engineering"), learn("Computer")},
		HigherEducation:     {learn("Medical"), learn("Navigation"), learn("Engineering"), learn("Computer"), learn("Pilot"), learn("Admin")},
	},
	Others: {
		PersonalDevelopment: {raise(Strength), raise(Dexterity), raise(Endurance), learn("Blade Combat"), learn("Brawling"), raise(Social)},
		ServiceSkills:       {learn("Vehicle"), learn("Gambling"), learn("Brawling"), learn("Bribery"), learn("Blade Combat"), learn("Gun Combat")},
		AdvancedEducation:   {learn("Streetwise"), learn("Mechanical"), learn("Electronics"), learn("Gambling"), learn("Brawling"), learn("Forgery")},
		HigherEducation:     {learn("Medical"), learn("Forgery"), learn("Electronics"), learn("Computer"), learn("Streetwise"), learn("Jack-o-T")},
	},
}
