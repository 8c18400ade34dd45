package inventory_test

import (
	"testing"

	"waveplan/internal/domain/inventory"

	"github.com/stretchr/testify/require"
)

func TestSnapshotClone_SharesNothing(t *testing.T) {
	orig := &inventory.Snapshot{
		Name: "acme-dc-migration",
		Nodes: []*inventory.Node{
			{ID: "d1", IPs: []string{"10.0.0.1"}, CustomProps: map[string]string{"zone": "east"}},
		},
		Apps: []*inventory.Group{
			{ID: "app1", NodeIDs: []string{"d1"}},
		},
		MoveGroups: []*inventory.MoveGroup{
			{Group: inventory.Group{ID: "mg1", NodeIDs: []string{"d1"}}, GroupIDs: []string{"app1"}},
		},
		Exclusions:   []inventory.ExclusionEntry{{ID: "d1", Kind: inventory.KindNode}},
		ExcludedNets: []string{"10.9.0.0/16"},
		NodeProps:    []*inventory.PropertyDef{{ID: "p1", Title: "zone", StrValues: []string{"east"}}},
	}

	clone := orig.Clone()

	clone.Name = "renamed"
	clone.Nodes[0].IPs[0] = "changed"
	clone.Nodes[0].CustomProps["zone"] = "west"
	clone.Apps[0].NodeIDs[0] = "changed"
	clone.MoveGroups[0].GroupIDs[0] = "changed"
	clone.NodeProps[0].StrValues[0] = "changed"
	clone.ExcludedNets[0] = "changed"

	require.Equal(t, "acme-dc-migration", orig.Name)
	require.Equal(t, "10.0.0.1", orig.Nodes[0].IPs[0])
	require.Equal(t, "east", orig.Nodes[0].CustomProps["zone"])
	require.Equal(t, "d1", orig.Apps[0].NodeIDs[0])
	require.Equal(t, "app1", orig.MoveGroups[0].GroupIDs[0])
	require.Equal(t, "east", orig.NodeProps[0].StrValues[0])
	require.Equal(t, "10.9.0.0/16", orig.ExcludedNets[0])
}

func TestSnapshotSyncCounts(t *testing.T) {
	snap := &inventory.Snapshot{
		Nodes:      []*inventory.Node{{ID: "d1"}, {ID: "d2"}},
		Apps:       []*inventory.Group{{ID: "app1"}},
		MoveGroups: []*inventory.MoveGroup{},
	}

	snap.SyncCounts()

	require.Equal(t, 2, snap.NodesCount)
	require.Equal(t, 1, snap.AppsCount)
	require.Equal(t, 0, snap.MoveGroupsCount)
}
