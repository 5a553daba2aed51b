package reminder

import (
	"fmt"
	"strconv"
	"strings"
)

// NoUnsubmittedMarker replaces the name list when everybody has submitted.
const NoUnsubmittedMarker = "（なし）"

// Vars is a closed set of typed template variable records, one per phase type.
type Vars interface {
	substitutions() []substitution
}

type substitution struct {
	name  string
	value string
}

// AnonymousVars are available to every template.
type AnonymousVars struct {
	TargetMonth   int
	Deadline      string
	SubmissionURL string
}

func (v AnonymousVars) substitutions() []substitution {
	return []substitution{
		{name: "targetMonth", value: strconv.Itoa(v.TargetMonth)},
		{name: "deadline", value: v.Deadline},
		{name: "liffUrl", value: v.SubmissionURL},
	}
}

// StatsVars add submission counts, used by the stats and overdue phases.
type StatsVars struct {
	AnonymousVars
	Stats SubmissionStats
}

func (v StatsVars) substitutions() []substitution {
	return append(v.AnonymousVars.substitutions(),
		substitution{name: "totalCount", value: strconv.Itoa(v.Stats.TotalCount)},
		substitution{name: "submittedCount", value: strconv.Itoa(v.Stats.SubmittedCount)},
		substitution{name: "unsubmittedCount", value: strconv.Itoa(v.Stats.UnsubmittedCount)},
	)
}

// NamedVars add the numbered list of unsubmitted staff.
type NamedVars struct {
	StatsVars
	UnsubmittedNames []string
}

func (v NamedVars) substitutions() []substitution {
	return append(v.StatsVars.substitutions(),
		substitution{name: "unsubmittedNames", value: FormatUnsubmittedNames(v.UnsubmittedNames)},
	)
}

// VarsFor builds the variable record matching the phase type.
func VarsFor(phaseType PhaseType, base AnonymousVars, stats SubmissionStats, names []string) Vars {
	switch phaseType {
	case PhaseTypeAnonymous:
		return base
	case PhaseTypeNamed:
		return NamedVars{StatsVars: StatsVars{AnonymousVars: base, Stats: stats}, UnsubmittedNames: names}
	default:
		return StatsVars{AnonymousVars: base, Stats: stats}
	}
}

// Render replaces every {name} placeholder defined by vars in a single pass.
// Placeholders the record does not define are left verbatim.
//
// Rendering the output again is a no-op only if no substituted value itself contains {name} syntax.
func Render(template string, vars Vars) string {
	subs := vars.substitutions()
	pairs := make([]string, 0, len(subs)*2)
	for _, s := range subs {
		pairs = append(pairs, "{"+s.name+"}", s.value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatUnsubmittedNames renders a 1-indexed, newline separated list.
func FormatUnsubmittedNames(names []string) string {
	if len(names) == 0 {
		return NoUnsubmittedMarker
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%d. %s", i+1, name)
	}
	return strings.Join(lines, "\n")
}
