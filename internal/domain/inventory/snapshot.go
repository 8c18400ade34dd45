package inventory

import "time"

// Snapshot is the full in-memory representation of one project's inventory
// graph at a point in time. It round-trips losslessly through persistence;
// the engine only rewrites the collections and the *_count fields.
type Snapshot struct {
	Name     string `json:"name,omitempty"`
	Instance string `json:"instance,omitempty"`
	Size     int64  `json:"size,omitempty"`

	Nodes      []*Node          `json:"nodes"`
	Apps       []*Group         `json:"apps"`
	Groups     []*Group         `json:"groups,omitempty"`
	MoveGroups []*MoveGroup     `json:"move_groups"`
	Exclusions []ExclusionEntry `json:"exclude,omitempty"`
	// ExcludedNets is a flat list of excluded network strings, passed
	// through untouched.
	ExcludedNets []string       `json:"exclude_nets,omitempty"`
	NodeProps    []*PropertyDef `json:"custom_node_props,omitempty"`
	AppProps     []*PropertyDef `json:"custom_app_props,omitempty"`

	NodesCount      int `json:"nodes_count"`
	AppsCount       int `json:"apps_count"`
	MoveGroupsCount int `json:"move_groups_count"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Clone returns a deep copy sharing no slices or maps with the receiver.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s

	out.Nodes = make([]*Node, len(s.Nodes))
	for i, n := range s.Nodes {
		out.Nodes[i] = n.clone()
	}
	out.Apps = cloneGroups(s.Apps)
	out.Groups = cloneGroups(s.Groups)
	out.MoveGroups = make([]*MoveGroup, len(s.MoveGroups))
	for i, mg := range s.MoveGroups {
		cp := *mg
		cp.Group = *mg.Group.clone()
		cp.GroupIDs = cloneStrings(mg.GroupIDs)
		out.MoveGroups[i] = &cp
	}
	out.Exclusions = append([]ExclusionEntry(nil), s.Exclusions...)
	out.ExcludedNets = cloneStrings(s.ExcludedNets)
	out.NodeProps = cloneProps(s.NodeProps)
	out.AppProps = cloneProps(s.AppProps)
	return &out
}

// SyncCounts recomputes the denormalized collection counts.
func (s *Snapshot) SyncCounts() {
	s.NodesCount = len(s.Nodes)
	s.AppsCount = len(s.Apps)
	s.MoveGroupsCount = len(s.MoveGroups)
}

func (n *Node) clone() *Node {
	cp := *n
	cp.IPs = cloneStrings(n.IPs)
	cp.AppIDs = cloneStrings(n.AppIDs)
	cp.CustomProps = cloneStringMap(n.CustomProps)
	return &cp
}

func (g *Group) clone() *Group {
	cp := *g
	cp.NodeIDs = cloneStrings(g.NodeIDs)
	cp.CustomProps = cloneStringMap(g.CustomProps)
	return &cp
}

func cloneGroups(groups []*Group) []*Group {
	if groups == nil {
		return nil
	}
	out := make([]*Group, len(groups))
	for i, g := range groups {
		out[i] = g.clone()
	}
	return out
}

func cloneProps(props []*PropertyDef) []*PropertyDef {
	if props == nil {
		return nil
	}
	out := make([]*PropertyDef, len(props))
	for i, p := range props {
		cp := *p
		cp.StrValues = cloneStrings(p.StrValues)
		out[i] = &cp
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
