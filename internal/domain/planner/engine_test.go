package planner_test

import (
	"testing"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/planner"

	"github.com/stretchr/testify/require"
)

// testSnapshot returns a small project: three nodes, two applications that
// both contain d1, and two move groups with d1 directly in the first.
func testSnapshot() *inventory.Snapshot {
	return &inventory.Snapshot{
		Name: "dc-exit",
		Nodes: []*inventory.Node{
			{ID: "d1", Name: "web-01", MoveGroupID: "mg1"},
			{ID: "d2", Name: "db-01"},
			{ID: "d3", Name: "cache-01"},
		},
		Apps: []*inventory.Group{
			{ID: "app1", Name: "billing", NodeIDs: []string{"d1"}},
			{ID: "app2", Name: "crm", NodeIDs: []string{"d1"}},
		},
		MoveGroups: []*inventory.MoveGroup{
			{Group: inventory.Group{ID: "mg1", Name: "wave-1", NodeIDs: []string{"d1"}}, GroupIDs: []string{"app1"}},
			{Group: inventory.Group{ID: "mg2", Name: "wave-2", NodeIDs: []string{}}, GroupIDs: []string{}},
		},
		NodeProps: []*inventory.PropertyDef{
			{ID: "p1", Title: "zone", ValueType: inventory.PropertyString, StrValues: []string{"east"}},
		},
	}
}

func TestEngine_ConstructionDoesNotAliasPayload(t *testing.T) {
	payload := testSnapshot()
	e := planner.NewEngine(payload)

	e.Snapshot().Nodes[0].Name = "changed"
	require.Equal(t, "web-01", payload.Nodes[0].Name)
}

func TestEngine_VersionAndChanged(t *testing.T) {
	e := planner.NewEngine(testSnapshot())
	require.EqualValues(t, 0, e.Version())
	require.False(t, e.Changed())

	e.Rename("dc-exit-2026")
	require.EqualValues(t, 1, e.Version())
	require.True(t, e.Changed())
	require.Equal(t, "dc-exit-2026", e.Snapshot().Name)

	e.ResetChanged()
	require.False(t, e.Changed())
	require.EqualValues(t, 1, e.Version())
}

func TestEngine_AddApplicationMintsID(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	app := e.AddApplication("", "ecommerce")
	require.NotEmpty(t, app.ID)
	require.Equal(t, inventory.GroupApplication, app.Kind)
	require.Contains(t, e.Indexes().AppByID, app.ID)
	require.Equal(t, 3, e.Snapshot().AppsCount)
}

func TestEngine_RemoveApplicationsStripsMoveGroupRefs(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	e.RemoveApplications([]string{"app1"})

	require.NotContains(t, e.Indexes().AppByID, "app1")
	require.Empty(t, e.Indexes().MoveGroupByID["mg1"].GroupIDs)
	// member nodes survive, their derived apps list is rebuilt
	require.Equal(t, []string{"app2"}, e.Indexes().NodeByID["d1"].AppIDs)
}

func TestEngine_RemoveApplicationsClearsExclusions(t *testing.T) {
	e := planner.NewEngine(testSnapshot())
	e.Exclude([]string{"app1"}, inventory.KindApplication)

	e.RemoveApplications([]string{"app1"})
	require.Empty(t, e.Snapshot().Exclusions)

	// an application re-created under the same id must not inherit the
	// removed application's excluded state
	app := e.AddApplication("app1", "billing-v2")
	require.False(t, app.Disabled)
}

func TestEngine_RemoveMoveGroupsClearsBackReferences(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	e.RemoveMoveGroups([]string{"mg1"})

	require.NotContains(t, e.Indexes().MoveGroupByID, "mg1")
	d1 := e.Indexes().NodeByID["d1"]
	require.Empty(t, d1.MoveGroupID)
	require.False(t, d1.InMoveGroup)
}

func TestEngine_DeleteNodesCascades(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	e.DeleteNodes([]string{"d1"})

	require.NotContains(t, e.Indexes().NodeByID, "d1")
	require.Empty(t, e.Indexes().AppByID["app1"].NodeIDs)
	require.Empty(t, e.Indexes().AppByID["app2"].NodeIDs)
	require.Empty(t, e.Indexes().MoveGroupByID["mg1"].NodeIDs)
	require.Equal(t, 2, e.Snapshot().NodesCount)
}

func TestEngine_IndexesRecomputableAfterOperationSequence(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	e.CopyNodesToApp([]string{"d2", "d3"}, "app1")
	e.MoveNodesToMoveGroup([]string{"d2"}, "mg2")
	e.AddAppsToMoveGroup([]string{"app2"}, "mg2")
	e.Exclude([]string{"d3"}, inventory.KindNode)
	e.RemoveApplications([]string{"app2"})

	fresh := inventory.BuildIndexes(e.Snapshot())
	require.Equal(t, fresh, e.Indexes())
}
