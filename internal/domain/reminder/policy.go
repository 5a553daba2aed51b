package reminder

import (
	"fmt"
	"strings"
)

// AutoPhasePolicy decides which resolved phases the scheduled path may dispatch by itself.
type AutoPhasePolicy string

const (
	// AutoFinalOnly keeps phases 1-3 manual-only; only the deadline-day phase is sent automatically.
	AutoFinalOnly AutoPhasePolicy = "final-only"
	// AutoAll dispatches every resolved phase automatically.
	AutoAll AutoPhasePolicy = "all"
)

func ParseAutoPhasePolicy(value string) (AutoPhasePolicy, error) {
	switch AutoPhasePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", AutoFinalOnly:
		return AutoFinalOnly, nil
	case AutoAll:
		return AutoAll, nil
	default:
		return "", fmt.Errorf("unknown auto phase policy %q (expected %q or %q)", value, AutoFinalOnly, AutoAll)
	}
}

// AllowsAuto reports whether the phase may be dispatched without a manual trigger.
func (p AutoPhasePolicy) AllowsAuto(phase Phase) bool {
	if p == AutoAll {
		return true
	}
	return phase.IsFinal()
}
