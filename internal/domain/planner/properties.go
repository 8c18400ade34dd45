package planner

import (
	"fmt"
	"strings"

	"waveplan/internal/domain/inventory"

	"github.com/google/uuid"
)

// PropertyScope selects which property collection an operation edits.
type PropertyScope string

const (
	ScopeNode PropertyScope = "node"
	ScopeApp  PropertyScope = "app"
)

// AddPropertyDefs appends new custom property definitions. Titles must be
// unique, trimmed and case-insensitive, across both the existing
// definitions and the batch itself; on any collision nothing is committed
// and ErrDuplicateTitle is returned. Blank ids are minted.
func (e *Engine) AddPropertyDefs(scope PropertyScope, defs []*inventory.PropertyDef) error {
	existing := e.propertyDefs(scope)

	seen := make(map[string]bool, len(*existing)+len(defs))
	for _, def := range *existing {
		seen[normalizeTitle(def.Title)] = true
	}
	for _, def := range defs {
		key := normalizeTitle(def.Title)
		if key == "" {
			return ErrInvalidInput
		}
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateTitle, def.Title)
		}
		seen[key] = true
	}

	for _, def := range defs {
		cp := *def
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		if cp.ValueType == "" {
			cp.ValueType = inventory.PropertyString
		}
		*existing = append(*existing, &cp)
	}
	e.commit()
	return nil
}

// DeletePropertyValues strips each value from every node where the property
// is currently assigned, and removes it from the definition's recorded
// observed values.
func (e *Engine) DeletePropertyValues(propName string, values []string) *Result {
	res := &Result{}
	drop := idSet(values)
	for _, n := range e.snap.Nodes {
		if current, ok := n.CustomProps[propName]; ok && drop[current] {
			delete(n.CustomProps, propName)
		}
	}
	if def := findPropertyDef(e.snap.NodeProps, propName); def != nil {
		def.StrValues = removeIDs(def.StrValues, values)
	} else {
		res.addErrorf("Property %s not found", propName)
	}
	e.commit()
	res.Summary = fmt.Sprintf("(%d) %s %s been deleted",
		len(values), inventory.KindPropertyValue.Label(len(values)), hasHave(len(values)))
	return res
}

// RemovePropertyDefs deletes the named definitions and clears the property
// from every node carrying it.
func (e *Engine) RemovePropertyDefs(scope PropertyScope, ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := idSet(ids)
	existing := e.propertyDefs(scope)
	kept := (*existing)[:0]
	var droppedTitles []string
	for _, def := range *existing {
		if drop[def.ID] {
			droppedTitles = append(droppedTitles, def.Title)
		} else {
			kept = append(kept, def)
		}
	}
	*existing = kept
	if scope == ScopeNode {
		for _, n := range e.snap.Nodes {
			for _, title := range droppedTitles {
				delete(n.CustomProps, title)
			}
		}
	} else {
		for _, app := range e.snap.Apps {
			for _, title := range droppedTitles {
				delete(app.CustomProps, title)
			}
		}
	}
	e.commit()
}

func (e *Engine) propertyDefs(scope PropertyScope) *[]*inventory.PropertyDef {
	if scope == ScopeApp {
		return &e.snap.AppProps
	}
	return &e.snap.NodeProps
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
