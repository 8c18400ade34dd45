package inventory

// Indexes are the derived lookup maps used for O(1) membership queries.
// They are always exactly recomputable from the snapshot collections.
type Indexes struct {
	NodeByID      map[string]*Node
	AppByID       map[string]*Group
	MoveGroupByID map[string]*MoveGroup

	// NodeApps maps node id -> owning application ids.
	NodeApps map[string][]string
	// NodeMoveGroups maps node id -> move group ids the node is a direct
	// member of.
	NodeMoveGroups map[string][]string
	// AppMoveGroups maps application id -> move group ids.
	AppMoveGroups map[string][]string
	// PropValueNodes maps property name -> value -> node ids.
	PropValueNodes map[string]map[string][]string
}

// BuildIndexes derives the lookup maps from the snapshot collections in a
// single pass over each collection. As part of the pass it refreshes the
// derived fields cached on the entities themselves: Disabled flags from the
// exclusion list, and each node's AppIDs and InMoveGroup membership. It
// tolerates empty collections and duplicate ids (last write wins).
func BuildIndexes(s *Snapshot) *Indexes {
	idx := &Indexes{
		NodeByID:       make(map[string]*Node, len(s.Nodes)),
		AppByID:        make(map[string]*Group, len(s.Apps)),
		MoveGroupByID:  make(map[string]*MoveGroup, len(s.MoveGroups)),
		NodeApps:       make(map[string][]string),
		NodeMoveGroups: make(map[string][]string),
		AppMoveGroups:  make(map[string][]string),
		PropValueNodes: make(map[string]map[string][]string),
	}

	excludedNodes := make(map[string]bool)
	excludedApps := make(map[string]bool)
	for _, ex := range s.Exclusions {
		switch ex.Kind {
		case KindNode:
			excludedNodes[ex.ID] = true
		case KindApplication:
			excludedApps[ex.ID] = true
		}
	}

	for _, n := range s.Nodes {
		n.Disabled = excludedNodes[n.ID]
		n.AppIDs = nil
		n.InMoveGroup = false
		idx.NodeByID[n.ID] = n
	}

	for _, app := range s.Apps {
		app.Disabled = excludedApps[app.ID]
		idx.AppByID[app.ID] = app
	}
	for _, app := range s.Apps {
		for _, nodeID := range app.NodeIDs {
			idx.NodeApps[nodeID] = append(idx.NodeApps[nodeID], app.ID)
			if n, ok := idx.NodeByID[nodeID]; ok {
				n.AppIDs = append(n.AppIDs, app.ID)
			}
		}
	}

	for _, mg := range s.MoveGroups {
		idx.MoveGroupByID[mg.ID] = mg
	}
	for _, mg := range s.MoveGroups {
		for _, appID := range mg.GroupIDs {
			idx.AppMoveGroups[appID] = append(idx.AppMoveGroups[appID], mg.ID)
		}
		for _, nodeID := range mg.NodeIDs {
			idx.NodeMoveGroups[nodeID] = append(idx.NodeMoveGroups[nodeID], mg.ID)
			if n, ok := idx.NodeByID[nodeID]; ok {
				n.InMoveGroup = true
			}
		}
	}

	for _, n := range s.Nodes {
		for name, value := range n.CustomProps {
			byValue := idx.PropValueNodes[name]
			if byValue == nil {
				byValue = make(map[string][]string)
				idx.PropValueNodes[name] = byValue
			}
			byValue[value] = append(byValue[value], n.ID)
		}
	}

	return idx
}
