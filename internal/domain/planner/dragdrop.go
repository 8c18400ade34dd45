package planner

import "waveplan/internal/domain/inventory"

// DropDescriptor names an already-resolved drag/drop gesture: the dragged
// entity kind and ids, the kind of grid dropped onto, the row dropped into,
// and the rows currently multi-selected in the target grid. The engine
// never sees raw UI events.
type DropDescriptor struct {
	SourceKind inventory.EntityKind `json:"source_kind"`
	SourceIDs  []string             `json:"source_ids"`
	TargetKind inventory.EntityKind `json:"target_kind"`
	// TargetID is the row the drop landed on. For property-value targets
	// it is the value string and PropertyName names the property.
	TargetID          string   `json:"target_id"`
	SelectedTargetIDs []string `json:"selected_target_ids,omitempty"`
	PropertyName      string   `json:"property_name,omitempty"`
	// Copy selects copy semantics; the default is move.
	Copy bool `json:"copy,omitempty"`
}

// targets resolves the fan-out: when the dropped-into row is itself part of
// the target grid's multi-selection the operation applies to every selected
// row, otherwise to the single dropped-into row.
func (d DropDescriptor) targets() []string {
	for _, id := range d.SelectedTargetIDs {
		if id == d.TargetID {
			return d.SelectedTargetIDs
		}
	}
	return []string{d.TargetID}
}

// ApplyDrop dispatches a drop descriptor to the matching move/copy
// operation. Unsupported (source, target) pairs are a no-op returning an
// empty result.
func (e *Engine) ApplyDrop(d DropDescriptor) *Result {
	targets := d.targets()

	switch {
	case d.SourceKind == inventory.KindNode && d.TargetKind == inventory.KindApplication:
		return e.dropNodesOnApps(d, targets)
	case d.SourceKind == inventory.KindNode && d.TargetKind == inventory.KindMoveGroup:
		return e.dropNodesOnMoveGroups(d, targets)
	case d.SourceKind == inventory.KindNode && d.TargetKind == inventory.KindPropertyValue:
		return e.dropNodesOnPropertyValues(d, targets)
	case d.SourceKind == inventory.KindApplication && d.TargetKind == inventory.KindMoveGroup:
		return e.dropAppsOnMoveGroups(d, targets)
	case d.SourceKind == inventory.KindApplication && d.TargetKind == inventory.KindNode:
		return e.dropAppsOnNodes(d, targets)
	case d.SourceKind == inventory.KindMoveGroup && d.TargetKind == inventory.KindNode:
		return e.dropMoveGroupsOnNodes(d, targets)
	case d.SourceKind == inventory.KindMoveGroup && d.TargetKind == inventory.KindApplication:
		return e.dropMoveGroupsOnApps(d, targets)
	default:
		return &Result{}
	}
}

// dropNodesOnApps copies or moves the dragged nodes into every target
// application. Move semantics perform one removal pass against all
// applications before the copies, so fanning out to several targets leaves
// the nodes in exactly the targeted set.
func (e *Engine) dropNodesOnApps(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	valid := e.validNodeIDs(d.SourceIDs, res)
	if !d.Copy {
		for _, app := range e.snap.Apps {
			app.NodeIDs = removeIDs(app.NodeIDs, valid)
		}
	}
	applied := 0
	for _, appID := range targets {
		app, ok := e.idx.AppByID[appID]
		if !ok {
			res.addErrorf("Application %s not found", appID)
			continue
		}
		app.NodeIDs = unionIDs(app.NodeIDs, valid)
		applied++
	}
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindNode, dropVerb(d.Copy), applied, inventory.KindApplication)
	return res
}

// dropNodesOnMoveGroups reassigns nodes target by target; with several
// targets the last one wins, keeping the one-move-group-per-node invariant.
// Sources are validated once up front so a stale id is reported once, not
// once per target.
func (e *Engine) dropNodesOnMoveGroups(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	valid := e.validNodeIDs(d.SourceIDs, res)
	applied := 0
	for _, mgID := range targets {
		sub := e.MoveNodesToMoveGroup(valid, mgID)
		res.ErrorMessages = append(res.ErrorMessages, sub.ErrorMessages...)
		if sub.Summary != "" {
			applied++
		}
	}
	res.Summary = summarize(len(valid), inventory.KindNode, "moved", applied, inventory.KindMoveGroup)
	return res
}

func (e *Engine) dropNodesOnPropertyValues(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	valid := e.validNodeIDs(d.SourceIDs, res)
	// Single-valued assignment: with several selected value rows the last
	// assignment wins, and only the last sub-result is reported.
	var sub *Result
	for _, value := range targets {
		sub = e.AssignPropertyValue(valid, d.PropertyName, value)
	}
	if sub != nil {
		res.ErrorMessages = append(res.ErrorMessages, sub.ErrorMessages...)
		res.Summary = sub.Summary
	}
	return res
}

func (e *Engine) dropAppsOnMoveGroups(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	valid := e.validAppIDs(d.SourceIDs, res)
	if !d.Copy {
		for _, mg := range e.snap.MoveGroups {
			mg.GroupIDs = removeIDs(mg.GroupIDs, valid)
		}
	}
	applied := 0
	for _, mgID := range targets {
		mg, ok := e.idx.MoveGroupByID[mgID]
		if !ok {
			res.addErrorf("Move group %s not found", mgID)
			continue
		}
		mg.GroupIDs = unionIDs(mg.GroupIDs, valid)
		applied++
	}
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindApplication, dropVerb(d.Copy), applied, inventory.KindMoveGroup)
	return res
}

// dropAppsOnNodes is the inverted gesture: dropping applications onto node
// rows adds those nodes to each dragged application.
func (e *Engine) dropAppsOnNodes(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	apps := e.validAppIDs(d.SourceIDs, res)
	nodes := e.validNodeIDs(targets, res)
	for _, appID := range apps {
		app := e.idx.AppByID[appID]
		app.NodeIDs = unionIDs(app.NodeIDs, nodes)
	}
	e.commit()
	res.Summary = summarize(len(nodes), inventory.KindNode, "added", len(apps), inventory.KindApplication)
	return res
}

// dropMoveGroupsOnNodes moves the targeted nodes into the dragged move
// group (last dragged group wins when several are dragged).
func (e *Engine) dropMoveGroupsOnNodes(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	groups := e.validMoveGroupIDs(d.SourceIDs, res)
	nodes := e.validNodeIDs(targets, res)
	for _, mgID := range groups {
		sub := e.MoveNodesToMoveGroup(nodes, mgID)
		res.ErrorMessages = append(res.ErrorMessages, sub.ErrorMessages...)
	}
	res.Summary = summarize(len(nodes), inventory.KindNode, "moved", len(groups), inventory.KindMoveGroup)
	return res
}

// dropMoveGroupsOnApps adds the targeted applications to each dragged move
// group.
func (e *Engine) dropMoveGroupsOnApps(d DropDescriptor, targets []string) *Result {
	res := &Result{}
	groups := e.validMoveGroupIDs(d.SourceIDs, res)
	apps := e.validAppIDs(targets, res)
	for _, mgID := range groups {
		mg := e.idx.MoveGroupByID[mgID]
		mg.GroupIDs = unionIDs(mg.GroupIDs, apps)
	}
	e.commit()
	res.Summary = summarize(len(apps), inventory.KindApplication, "added", len(groups), inventory.KindMoveGroup)
	return res
}

func dropVerb(copy bool) string {
	if copy {
		return "copied"
	}
	return "moved"
}
