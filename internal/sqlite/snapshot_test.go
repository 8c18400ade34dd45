package sqlite

import (
	"context"
	"testing"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/repository"

	"github.com/stretchr/testify/require"
)

func snapshotFixture() *inventory.Snapshot {
	snap := &inventory.Snapshot{
		Name:     "dc-exit",
		Instance: "eu-1",
		Nodes: []*inventory.Node{
			{ID: "d1", Name: "web-01", IPs: []string{"10.0.0.1"}, MoveGroupID: "mg1"},
			{ID: "d2", Name: "db-01"},
		},
		Apps: []*inventory.Group{
			{ID: "app1", Name: "billing", NodeIDs: []string{"d1", "d2"}},
		},
		MoveGroups: []*inventory.MoveGroup{
			{Group: inventory.Group{ID: "mg1", Name: "wave-1", NodeIDs: []string{"d1"}}, GroupIDs: []string{"app1"}},
		},
		Exclusions: []inventory.ExclusionEntry{{ID: "d2", Kind: inventory.KindNode}},
		NodeProps: []*inventory.PropertyDef{
			{ID: "p1", Title: "zone", ValueType: inventory.PropertyString, StrValues: []string{"east"}},
		},
	}
	snap.SyncCounts()
	return snap
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, testProject("p1", "DC Exit")))
	require.NoError(t, repo.Save(ctx, "p1", 1, snapshotFixture()))

	got, revision, err := repo.Load(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(1), revision)
	require.Equal(t, "dc-exit", got.Name)
	require.Len(t, got.Nodes, 2)
	require.Equal(t, "mg1", got.Nodes[0].MoveGroupID)
	require.Equal(t, []string{"d1", "d2"}, got.Apps[0].NodeIDs)
	require.Equal(t, []string{"app1"}, got.MoveGroups[0].GroupIDs)
	require.Equal(t, inventory.KindNode, got.Exclusions[0].Kind)
	require.Equal(t, "zone", got.NodeProps[0].Title)
}

// Load returns the highest saved revision
func TestSnapshotRepository_LoadLatest(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, testProject("p1", "DC Exit")))

	first := snapshotFixture()
	require.NoError(t, repo.Save(ctx, "p1", 1, first))

	second := snapshotFixture()
	second.Name = "dc-exit-v2"
	require.NoError(t, repo.Save(ctx, "p1", 2, second))

	got, revision, err := repo.Load(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(2), revision)
	require.Equal(t, "dc-exit-v2", got.Name)
}

func TestSnapshotRepository_SaveConflict(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, testProject("p1", "DC Exit")))
	require.NoError(t, repo.Save(ctx, "p1", 1, snapshotFixture()))

	err := repo.Save(ctx, "p1", 1, snapshotFixture())
	require.ErrorIs(t, err, repository.ErrConflict)

	// the original body is untouched
	got, _, err := repo.Load(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "dc-exit", got.Name)
}

func TestSnapshotRepository_LoadNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)

	_, _, err := repo.Load(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
