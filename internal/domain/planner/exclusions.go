package planner

import (
	"fmt"

	"waveplan/internal/domain/inventory"
)

// Exclude records exclusion entries for the given ids. The disabled flags
// on the affected entities are re-derived from the exclusion list on
// resync, not written here.
func (e *Engine) Exclude(ids []string, kind inventory.EntityKind) *Result {
	res := &Result{}
	valid := e.validIDsForKind(ids, kind, res)
	present := make(map[string]bool, len(e.snap.Exclusions))
	for _, ex := range e.snap.Exclusions {
		if ex.Kind == kind {
			present[ex.ID] = true
		}
	}
	for _, id := range valid {
		if !present[id] {
			e.snap.Exclusions = append(e.snap.Exclusions, inventory.ExclusionEntry{ID: id, Kind: kind})
		}
	}
	e.commit()
	res.Summary = summarizeExclusion(len(valid), kind, "excluded from")
	return res
}

// Unexclude removes exclusion entries for the given ids only. Because the
// disabled flag is derived from the exclusion list, entities of the same
// kind that remain excluded stay disabled.
func (e *Engine) Unexclude(ids []string, kind inventory.EntityKind) *Result {
	res := &Result{}
	drop := idSet(ids)
	kept := e.snap.Exclusions[:0]
	removed := 0
	for _, ex := range e.snap.Exclusions {
		if ex.Kind == kind && drop[ex.ID] {
			removed++
			continue
		}
		kept = append(kept, ex)
	}
	e.snap.Exclusions = kept
	e.commit()
	res.Summary = summarizeExclusion(removed, kind, "included back into")
	return res
}

func (e *Engine) validIDsForKind(ids []string, kind inventory.EntityKind, res *Result) []string {
	switch kind {
	case inventory.KindNode:
		return e.validNodeIDs(ids, res)
	case inventory.KindApplication:
		return e.validAppIDs(ids, res)
	default:
		res.addErrorf("Exclusion not supported for %s", kind.Label(1))
		return nil
	}
}

func summarizeExclusion(n int, kind inventory.EntityKind, verb string) string {
	return fmt.Sprintf("(%d) %s %s been %s calculations", n, kind.Label(n), hasHave(n), verb)
}
