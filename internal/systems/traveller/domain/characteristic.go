package domain

import (
	"fmt"
	"strings"

	"github.com/louisbranch/servicerecord/internal/core/dice"
)

// Characteristic identifies one of the six character attributes.
type Characteristic int

const (
	Strength Characteristic = iota
	Dexterity
	Endurance
	Intelligence
	Education
	Social
)

const (
	// MinCharacteristic is the floor every characteristic is clamped to.
	MinCharacteristic = 0
	// MaxCharacteristic is the highest value a single UPP digit can show.
	MaxCharacteristic = 15
)

var characteristicKeys = [...]string{"str", "dex", "end", "int", "edu", "soc"}

var characteristicNames = [...]string{"Strength", "Dexterity", "Endurance", "Intelligence", "Education", "Social Standing"}

// AllCharacteristics returns the six characteristics in UPP order.
func AllCharacteristics() []Characteristic {
	return []Characteristic{Strength, Dexterity, Endurance, Intelligence, Education, Social}
}

// ParseCharacteristic resolves a short key ("str") or full name ("strength").
func ParseCharacteristic(value string) (Characteristic, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for i, key := range characteristicKeys {
		if normalized == key || normalized == strings.ToLower(characteristicNames[i]) {
			return Characteristic(i), nil
		}
	}
	if normalized == "social" {
		return Social, nil
	}
	return 0, unknownCharacteristic(value)
}

// Valid reports whether c is one of the six characteristics.
func (c Characteristic) Valid() bool {
	return c >= Strength && c <= Social
}

// Key returns the lowercase short key used in snapshots, e.g. "str".
func (c Characteristic) Key() string {
	if !c.Valid() {
		return fmt.Sprintf("characteristic(%d)", int(c))
	}
	return characteristicKeys[c]
}

// Name returns the full characteristic name.
func (c Characteristic) Name() string {
	if !c.Valid() {
		return c.Key()
	}
	return characteristicNames[c]
}

// String returns the uppercase short key, e.g. "STR".
func (c Characteristic) String() string {
	return strings.ToUpper(c.Key())
}

// MarshalText encodes the characteristic as its short key.
func (c Characteristic) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, unknownCharacteristic(c.Key())
	}
	return []byte(c.Key()), nil
}

// UnmarshalText decodes a short key or full name.
func (c *Characteristic) UnmarshalText(text []byte) error {
	parsed, err := ParseCharacteristic(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Characteristics holds the six attribute values.
type Characteristics struct {
	Strength     int `json:"str"`
	Dexterity    int `json:"dex"`
	Endurance    int `json:"end"`
	Intelligence int `json:"int"`
	Education    int `json:"edu"`
	Social       int `json:"soc"`
}

// RollCharacteristics rolls 2d6 for each characteristic in UPP order.
func RollCharacteristics(r dice.Roller) Characteristics {
	var c Characteristics
	for _, ch := range AllCharacteristics() {
		*c.field(ch) = r.Roll2D6()
	}
	return c
}

// Get returns the value of ch.
func (c Characteristics) Get(ch Characteristic) int {
	if p := c.field(ch); p != nil {
		return *p
	}
	return 0
}

// Add changes ch by delta, clamping to [MinCharacteristic, MaxCharacteristic].
// It returns the change actually applied.
func (c *Characteristics) Add(ch Characteristic, delta int) int {
	p := c.field(ch)
	if p == nil {
		return 0
	}
	before := *p
	*p = clamp(before + delta)
	return *p - before
}

// UPP renders the six values as hexadecimal digits in UPP order, e.g. "A8C9B7".
func (c Characteristics) UPP() string {
	var b strings.Builder
	for _, ch := range AllCharacteristics() {
		b.WriteString(strings.ToUpper(fmt.Sprintf("%x", clamp(c.Get(ch)))))
	}
	return b.String()
}

func (c Characteristics) validate() error {
	for _, ch := range AllCharacteristics() {
		if v := c.Get(ch); v < MinCharacteristic || v > MaxCharacteristic {
			return fmt.Errorf("%s %d outside [%d,%d]", ch, v, MinCharacteristic, MaxCharacteristic)
		}
	}
	return nil
}

func (c *Characteristics) field(ch Characteristic) *int {
	switch ch {
	case Strength:
		return &c.Strength
	case Dexterity:
		return &c.Dexterity
	case Endurance:
		return &c.Endurance
	case Intelligence:
		return &c.Intelligence
	case Education:
		return &c.Education
	case Social:
		return &c.Social
	default:
		return nil
	}
}

func clamp(v int) int {
	if v < MinCharacteristic {
		return MinCharacteristic
	}
	if v > MaxCharacteristic {
		return MaxCharacteristic
	}
	return v
}

var nobleTitles = map[int]string{
	11: "Knight",
	12: "Baron",
	13: "Marquis",
	14: "Count",
	15: "Duke",
}

// NobleTitle returns the title carried by a Social Standing of 11 or more,
// or "" for commoners.
func NobleTitle(social int) string {
	return nobleTitles[clamp(social)]
}
