package planner

import (
	"fmt"

	"waveplan/internal/domain/inventory"
)

// Result reports the outcome of a best-effort mutation: per-occurrence
// referential-integrity messages plus a human-readable summary for the UI.
type Result struct {
	ErrorMessages []string `json:"error_messages,omitempty"`
	Summary       string   `json:"summary,omitempty"`
}

func (r *Result) addErrorf(format string, args ...any) {
	r.ErrorMessages = append(r.ErrorMessages, fmt.Sprintf(format, args...))
}

// summarize renders a pluralization-aware summary line, e.g.
// "(3) compute instances have been moved to (2) applications".
func summarize(n int, src inventory.EntityKind, verb string, m int, dst inventory.EntityKind) string {
	return fmt.Sprintf("(%d) %s %s been %s to (%d) %s",
		n, src.Label(n), hasHave(n), verb, m, dst.Label(m))
}

// summarizeFrom is the removal counterpart, e.g.
// "(3) compute instances have been removed from (2) applications".
func summarizeFrom(n int, src inventory.EntityKind, m int, dst inventory.EntityKind) string {
	return fmt.Sprintf("(%d) %s %s been removed from (%d) %s",
		n, src.Label(n), hasHave(n), m, dst.Label(m))
}

func hasHave(n int) string {
	if n == 1 {
		return "has"
	}
	return "have"
}
