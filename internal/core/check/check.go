// Package check resolves target-number checks: a roll plus modifiers
// compared against a target.
package check

// MeetsTarget returns true if total >= target.
func MeetsTarget(total, target int) bool {
	return total >= target
}

// Result is the full record of one target check.
type Result struct {
	Roll     int
	Modifier int
	Total    int
	Target   int
	Success  bool
	// Margin is positive on success by more than the target, negative on failure.
	Margin int
}

// Against checks roll+modifier against target.
func Against(roll, modifier, target int) Result {
	total := roll + modifier
	return Result{
		Roll:     roll,
		Modifier: modifier,
		Total:    total,
		Target:   target,
		Success:  MeetsTarget(total, target),
		Margin:   total - target,
	}
}

// Threshold grants Bonus when a value is at least Minimum.
type Threshold struct {
	Minimum int
	Bonus   int
}

// Applies reports whether value meets the threshold.
func (t Threshold) Applies(value int) bool {
	return value >= t.Minimum
}
