package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// GrantKind is the closed set of reasons a skill or characteristic is granted.
type GrantKind int

const (
	// GrantEnlistment is the one-time skill a service gives recruits.
	GrantEnlistment GrantKind = iota + 1
	// GrantCommission covers the commission bonus roll and the one-time commission skill.
	GrantCommission
	// GrantPromotion is the bonus roll every promotion earns.
	GrantPromotion
	// GrantTerm is a regular per-term table roll.
	GrantTerm
	// GrantRank is a one-time award for reaching a specific rank.
	GrantRank
)

// GrantEvent tags a skill acquisition log entry. Rank is set only for GrantRank.
type GrantEvent struct {
	Kind GrantKind
	Rank int
}

// EnlistmentEvent returns the event for enlistment grants.
func EnlistmentEvent() GrantEvent { return GrantEvent{Kind: GrantEnlistment} }

// CommissionEvent returns the event for commission grants.
func CommissionEvent() GrantEvent { return GrantEvent{Kind: GrantCommission} }

// PromotionEvent returns the event for promotion bonus rolls.
func PromotionEvent() GrantEvent { return GrantEvent{Kind: GrantPromotion} }

// TermEvent returns the event for per-term table rolls.
func TermEvent() GrantEvent { return GrantEvent{Kind: GrantTerm} }

// RankEvent returns the event for the one-time award at rank.
func RankEvent(rank int) GrantEvent { return GrantEvent{Kind: GrantRank, Rank: rank} }

// String renders the event as it appears in logs: "enlistment", "rank_5", ...
func (e GrantEvent) String() string {
	switch e.Kind {
	case GrantEnlistment:
		return "enlistment"
	case GrantCommission:
		return "commission"
	case GrantPromotion:
		return "promotion"
	case GrantTerm:
		return "term"
	case GrantRank:
		return "rank_" + strconv.Itoa(e.Rank)
	default:
		return fmt.Sprintf("grant(%d)", int(e.Kind))
	}
}

// ParseGrantEvent parses the String form of an event.
func ParseGrantEvent(value string) (GrantEvent, error) {
	switch value {
	case "enlistment":
		return EnlistmentEvent(), nil
	case "commission":
		return CommissionEvent(), nil
	case "promotion":
		return PromotionEvent(), nil
	case "term":
		return TermEvent(), nil
	}
	if rest, ok := strings.CutPrefix(value, "rank_"); ok {
		rank, err := strconv.Atoi(rest)
		if err == nil && rank > 0 {
			return RankEvent(rank), nil
		}
	}
	return GrantEvent{}, fmt.Errorf("unknown grant event %q", value)
}

// MarshalText encodes the event as its String form.
func (e GrantEvent) MarshalText() ([]byte, error) {
	if e.Kind < GrantEnlistment || e.Kind > GrantRank {
		return nil, fmt.Errorf("unknown grant kind %d", int(e.Kind))
	}
	return []byte(e.String()), nil
}

// UnmarshalText decodes the String form of an event.
func (e *GrantEvent) UnmarshalText(text []byte) error {
	parsed, err := ParseGrantEvent(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Automatic reports whether grants under this event are one-time awards
// tracked in Character.AutomaticGrants.
func (e GrantEvent) Automatic() bool {
	return e.Kind == GrantEnlistment || e.Kind == GrantCommission || e.Kind == GrantRank
}
