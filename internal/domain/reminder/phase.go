package reminder

import (
	"errors"
	"fmt"
	"sort"
)

// PhaseType decides which variables a phase message can use.
type PhaseType string

const (
	PhaseTypeAnonymous PhaseType = "anonymous" // plain reminder, no statistics
	PhaseTypeStats     PhaseType = "stats"     // submitted / unsubmitted counts
	PhaseTypeNamed     PhaseType = "named"     // counts plus the names of unsubmitted staff
	PhaseTypeOverdue   PhaseType = "overdue"   // deadline day
)

const (
	MinPhase   = 1
	MaxPhase   = 4
	FinalPhase = MaxPhase // matched on the deadline day, not by DaysBefore
)

var ErrInvalidPhase = errors.New("invalid phase number")

// Phase is one reminder tier of the catalog.
type Phase struct {
	Number     int
	DaysBefore int // phases 1-3 only
	Type       PhaseType
	Template   string
}

// IsFinal reports whether the phase is the deadline-day phase.
func (p Phase) IsFinal() bool {
	return p.Number == FinalPhase
}

// Catalog is the immutable, validated set of reminder phases.
type Catalog struct {
	phases []Phase
}

// NewCatalog validates the phases and returns a catalog ordered by phase number.
// Phase numbers must be unique and within 1..4; phases 1-3 need distinct positive DaysBefore
// values so that at most one of them can match a given day.
func NewCatalog(phases []Phase) (*Catalog, error) {
	seenNumbers := make(map[int]bool, len(phases))
	seenDays := make(map[int]int, len(phases))

	for _, p := range phases {
		if p.Number < MinPhase || p.Number > MaxPhase {
			return nil, fmt.Errorf("%w: %d", ErrInvalidPhase, p.Number)
		}
		if seenNumbers[p.Number] {
			return nil, fmt.Errorf("duplicate phase %d in catalog", p.Number)
		}
		seenNumbers[p.Number] = true

		switch p.Type {
		case PhaseTypeAnonymous, PhaseTypeStats, PhaseTypeNamed, PhaseTypeOverdue:
		default:
			return nil, fmt.Errorf("phase %d has unknown type %q", p.Number, p.Type)
		}

		if p.Template == "" {
			return nil, fmt.Errorf("phase %d has an empty message template", p.Number)
		}

		if p.IsFinal() {
			continue
		}
		if p.DaysBefore <= 0 {
			return nil, fmt.Errorf("phase %d must have a positive daysBefore, got %d", p.Number, p.DaysBefore)
		}
		if other, ok := seenDays[p.DaysBefore]; ok {
			return nil, fmt.Errorf("phases %d and %d share daysBefore %d", other, p.Number, p.DaysBefore)
		}
		seenDays[p.DaysBefore] = p.Number
	}

	sorted := make([]Phase, len(phases))
	copy(sorted, phases)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	return &Catalog{phases: sorted}, nil
}

// Phases returns a copy of the catalog entries.
func (c *Catalog) Phases() []Phase {
	out := make([]Phase, len(c.phases))
	copy(out, c.phases)
	return out
}

// Resolve picks the phase for the given number of days until the deadline.
// The final phase matches the deadline day (any day at or past it under CeilDeadlineTime);
// phases 1-3 match only on exact DaysBefore equality.
func (c *Catalog) Resolve(daysUntilDeadline int, rule Rounding) (Phase, bool) {
	if finalMatches(daysUntilDeadline, rule) {
		for _, p := range c.phases {
			if p.IsFinal() {
				return p, true
			}
		}
		return Phase{}, false
	}

	for _, p := range c.phases {
		if !p.IsFinal() && p.DaysBefore == daysUntilDeadline {
			return p, true
		}
	}
	return Phase{}, false
}

func finalMatches(days int, rule Rounding) bool {
	if rule == CeilDeadlineTime {
		return days <= 0
	}
	return days == 0
}

// ByNumber looks a phase up directly, bypassing day-based resolution.
func (c *Catalog) ByNumber(number int) (Phase, error) {
	if number < MinPhase || number > MaxPhase {
		return Phase{}, fmt.Errorf("%w: %d. Valid phases are %d-%d", ErrInvalidPhase, number, MinPhase, MaxPhase)
	}
	for _, p := range c.phases {
		if p.Number == number {
			return p, nil
		}
	}
	return Phase{}, fmt.Errorf("%w: %d is not configured", ErrInvalidPhase, number)
}
