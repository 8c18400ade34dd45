package planner

import "waveplan/internal/domain/inventory"

// AddAppsToMoveGroup set-unions the application ids into the target move
// group. Unlike nodes, an application may belong to several move groups at
// once, so no removal pass runs against the other move groups.
func (e *Engine) AddAppsToMoveGroup(appIDs []string, mgID string) *Result {
	res := &Result{}
	mg, ok := e.idx.MoveGroupByID[mgID]
	if !ok {
		res.addErrorf("Move group %s not found", mgID)
		return res
	}
	valid := e.validAppIDs(appIDs, res)
	mg.GroupIDs = unionIDs(mg.GroupIDs, valid)
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindApplication, "added", 1, inventory.KindMoveGroup)
	return res
}

// RemoveAppsFromMoveGroup set-differences the application ids out of the
// target move group.
func (e *Engine) RemoveAppsFromMoveGroup(appIDs []string, mgID string) *Result {
	res := &Result{}
	mg, ok := e.idx.MoveGroupByID[mgID]
	if !ok {
		res.addErrorf("Move group %s not found", mgID)
		return res
	}
	valid := e.validAppIDs(appIDs, res)
	mg.GroupIDs = removeIDs(mg.GroupIDs, valid)
	e.commit()
	res.Summary = summarizeFrom(len(valid), inventory.KindApplication, 1, inventory.KindMoveGroup)
	return res
}

// MoveAppsToMoveGroup removes the application ids from every move group,
// then adds them to the target.
func (e *Engine) MoveAppsToMoveGroup(appIDs []string, mgID string) *Result {
	res := &Result{}
	target, ok := e.idx.MoveGroupByID[mgID]
	if !ok {
		res.addErrorf("Move group %s not found", mgID)
		return res
	}
	valid := e.validAppIDs(appIDs, res)
	for _, mg := range e.snap.MoveGroups {
		mg.GroupIDs = removeIDs(mg.GroupIDs, valid)
	}
	target.GroupIDs = unionIDs(target.GroupIDs, valid)
	e.commit()
	res.Summary = summarize(len(valid), inventory.KindApplication, "moved", 1, inventory.KindMoveGroup)
	return res
}

func (e *Engine) validAppIDs(ids []string, res *Result) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.idx.AppByID[id]; ok {
			valid = append(valid, id)
		} else {
			res.addErrorf("Application %s not found", id)
		}
	}
	return valid
}

func (e *Engine) validMoveGroupIDs(ids []string, res *Result) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.idx.MoveGroupByID[id]; ok {
			valid = append(valid, id)
		} else {
			res.addErrorf("Move group %s not found", id)
		}
	}
	return valid
}
