package planner

import "waveplan/internal/domain/inventory"

// RemoveMode selects which applications a bulk removal edits.
type RemoveMode string

const (
	// RemoveFromAll edits every application.
	RemoveFromAll RemoveMode = "all"
	// RemoveFromSelected edits only the currently selected applications.
	RemoveFromSelected RemoveMode = "selected"
	// RemoveFromAllExceptSelected edits every application except the
	// currently selected ones.
	RemoveFromAllExceptSelected RemoveMode = "all_except_selected"
)

// CopyNodesToApp set-unions the node ids into the target application's
// membership. Nodes missing from the snapshot are skipped and reported;
// other applications and move groups are untouched.
func (e *Engine) CopyNodesToApp(nodeIDs []string, appID string) *Result {
	res := &Result{}
	app, ok := e.idx.AppByID[appID]
	if !ok {
		res.addErrorf("Application %s not found", appID)
		return res
	}
	valid := e.validNodeIDs(nodeIDs, res)
	app.NodeIDs = unionIDs(app.NodeIDs, valid)
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindNode, "copied", 1, inventory.KindApplication)
	return res
}

// MoveNodesToApp removes the node ids from every application's membership,
// then copies them into the target.
func (e *Engine) MoveNodesToApp(nodeIDs []string, appID string) *Result {
	res := &Result{}
	app, ok := e.idx.AppByID[appID]
	if !ok {
		res.addErrorf("Application %s not found", appID)
		return res
	}
	valid := e.validNodeIDs(nodeIDs, res)
	for _, other := range e.snap.Apps {
		other.NodeIDs = removeIDs(other.NodeIDs, valid)
	}
	app.NodeIDs = unionIDs(app.NodeIDs, valid)
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindNode, "moved", 1, inventory.KindApplication)
	return res
}

// MoveNodesToMoveGroup reassigns the nodes to the target move group. Each
// node is first removed from every move group's direct membership, keeping
// the one-move-group-per-node invariant, then added to the target with its
// mgid back-reference set.
func (e *Engine) MoveNodesToMoveGroup(nodeIDs []string, mgID string) *Result {
	res := &Result{}
	target, ok := e.idx.MoveGroupByID[mgID]
	if !ok {
		res.addErrorf("Move group %s not found", mgID)
		return res
	}
	valid := e.validNodeIDs(nodeIDs, res)
	for _, mg := range e.snap.MoveGroups {
		mg.NodeIDs = removeIDs(mg.NodeIDs, valid)
	}
	target.NodeIDs = unionIDs(target.NodeIDs, valid)
	for _, id := range valid {
		e.idx.NodeByID[id].MoveGroupID = mgID
	}
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindNode, "moved", 1, inventory.KindMoveGroup)
	return res
}

// AssignPropertyValue sets custom_props[propName] = value on each node.
// The assignment is single-valued: a later write wins. The value is
// recorded in the matching node property definition's observed values.
func (e *Engine) AssignPropertyValue(nodeIDs []string, propName, value string) *Result {
	res := &Result{}
	valid := e.validNodeIDs(nodeIDs, res)
	for _, id := range valid {
		n := e.idx.NodeByID[id]
		if n.CustomProps == nil {
			n.CustomProps = make(map[string]string)
		}
		n.CustomProps[propName] = value
	}
	if def := findPropertyDef(e.snap.NodeProps, propName); def != nil {
		def.StrValues = unionIDs(def.StrValues, []string{value})
	} else {
		res.addErrorf("Property %s not found", propName)
	}
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindNode, "assigned", 1, inventory.KindPropertyValue)
	return res
}

// RemoveNodesFromApps removes the nodes from a mode-dependent subset of
// applications: all of them, only the selected ones, or all except the
// selected ones.
func (e *Engine) RemoveNodesFromApps(nodeIDs []string, mode RemoveMode, selectedAppIDs []string) *Result {
	res := &Result{}
	switch mode {
	case RemoveFromAll, RemoveFromSelected, RemoveFromAllExceptSelected:
	default:
		res.addErrorf("Remove mode %q not supported", mode)
		return res
	}
	valid := e.validNodeIDs(nodeIDs, res)
	selected := idSet(selectedAppIDs)

	edited := 0
	for _, app := range e.snap.Apps {
		switch mode {
		case RemoveFromSelected:
			if !selected[app.ID] {
				continue
			}
		case RemoveFromAllExceptSelected:
			if selected[app.ID] {
				continue
			}
		}
		app.NodeIDs = removeIDs(app.NodeIDs, valid)
		edited++
	}
	e.commit()
	res.Summary = summarizeFrom(len(valid), inventory.KindNode, edited, inventory.KindApplication)
	return res
}

// validNodeIDs filters ids down to nodes present in the snapshot, reporting
// each missing id. Stale selections are skipped, never fatal.
func (e *Engine) validNodeIDs(ids []string, res *Result) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.idx.NodeByID[id]; ok {
			valid = append(valid, id)
		} else {
			res.addErrorf("Compute instance %s not found", id)
		}
	}
	return valid
}

func findPropertyDef(defs []*inventory.PropertyDef, title string) *inventory.PropertyDef {
	for _, def := range defs {
		if def.Title == title {
			return def
		}
	}
	return nil
}
