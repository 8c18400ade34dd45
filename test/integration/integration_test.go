package integration_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/planner"
	"waveplan/internal/domain/workspace"
	"waveplan/internal/sqlite"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db           *sqlite.DB
	projectRepo  *sqlite.ProjectRepository
	snapshotRepo *sqlite.SnapshotRepository

	workspaceSvc *workspace.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	projectRepo := sqlite.NewProjectRepository(db)
	snapshotRepo := sqlite.NewSnapshotRepository(db)

	return &testEnv{
		db:           db,
		projectRepo:  projectRepo,
		snapshotRepo: snapshotRepo,
		workspaceSvc: workspace.NewService(projectRepo, snapshotRepo, slog.Default()),
	}
}

func inventoryFixture() *inventory.Snapshot {
	return &inventory.Snapshot{
		Name:     "dc-exit",
		Instance: "eu-1",
		Nodes: []*inventory.Node{
			{ID: "d1", Name: "web-01", IPs: []string{"10.0.0.1"}},
			{ID: "d2", Name: "db-01"},
			{ID: "d3", Name: "cache-01"},
		},
		Apps: []*inventory.Group{
			{ID: "app1", Name: "billing", NodeIDs: []string{"d1", "d2"}},
		},
		MoveGroups: []*inventory.MoveGroup{
			{Group: inventory.Group{ID: "mg1", Name: "wave-1"}},
		},
	}
}

func TestIntegration_ImportEditSaveReload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.workspaceSvc.Create(ctx, workspace.CreateRequest{Name: "DC Exit", Instance: "eu-1"})
	require.NoError(t, err)

	proj, err = env.workspaceSvc.Import(ctx, proj.ID, inventoryFixture())
	require.NoError(t, err)
	require.Equal(t, int64(1), proj.Revision)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		res := e.MoveNodesToMoveGroup([]string{"d1", "d2"}, "mg1")
		require.Empty(t, res.ErrorMessages)
		return nil
	})
	require.NoError(t, err)

	proj, err = env.workspaceSvc.Save(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), proj.Revision)

	// drop the open session and reload from storage
	env.workspaceSvc.Close(proj.ID)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		require.ElementsMatch(t, []string{"d1", "d2"}, e.Indexes().MoveGroupByID["mg1"].NodeIDs)
		require.Equal(t, "mg1", e.Indexes().NodeByID["d1"].MoveGroupID)
		return nil
	})
	require.NoError(t, err)
}

func TestIntegration_CloseDiscardsUnsavedEdits(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.workspaceSvc.Create(ctx, workspace.CreateRequest{Name: "DC Exit"})
	require.NoError(t, err)
	_, err = env.workspaceSvc.Import(ctx, proj.ID, inventoryFixture())
	require.NoError(t, err)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		e.DeleteNodes([]string{"d1", "d2", "d3"})
		require.Empty(t, e.Snapshot().Nodes)
		return nil
	})
	require.NoError(t, err)

	env.workspaceSvc.Close(proj.ID)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		require.Len(t, e.Snapshot().Nodes, 3)
		return nil
	})
	require.NoError(t, err)
}

func TestIntegration_ExclusionsSurviveReload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.workspaceSvc.Create(ctx, workspace.CreateRequest{Name: "DC Exit"})
	require.NoError(t, err)
	_, err = env.workspaceSvc.Import(ctx, proj.ID, inventoryFixture())
	require.NoError(t, err)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		e.Exclude([]string{"d3"}, inventory.KindNode)
		return nil
	})
	require.NoError(t, err)

	_, err = env.workspaceSvc.Save(ctx, proj.ID)
	require.NoError(t, err)
	env.workspaceSvc.Close(proj.ID)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		require.True(t, e.Indexes().NodeByID["d3"].Disabled)
		require.False(t, e.Indexes().NodeByID["d1"].Disabled)
		return nil
	})
	require.NoError(t, err)
}

func TestIntegration_PropertyDefinitionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.workspaceSvc.Create(ctx, workspace.CreateRequest{Name: "DC Exit"})
	require.NoError(t, err)
	_, err = env.workspaceSvc.Import(ctx, proj.ID, inventoryFixture())
	require.NoError(t, err)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		if err := e.AddPropertyDefs(planner.ScopeNode, []*inventory.PropertyDef{{Title: "zone"}}); err != nil {
			return err
		}
		e.AssignPropertyValue([]string{"d1"}, "zone", "east")
		return nil
	})
	require.NoError(t, err)

	_, err = env.workspaceSvc.Save(ctx, proj.ID)
	require.NoError(t, err)
	env.workspaceSvc.Close(proj.ID)

	err = env.workspaceSvc.With(ctx, proj.ID, func(e *planner.Engine) error {
		require.Len(t, e.Snapshot().NodeProps, 1)
		require.Equal(t, []string{"east"}, e.Snapshot().NodeProps[0].StrValues)
		require.Equal(t, []string{"d1"}, e.Indexes().PropValueNodes["zone"]["east"])
		return nil
	})
	require.NoError(t, err)
}

func TestIntegration_ProjectList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.workspaceSvc.Create(ctx, workspace.CreateRequest{Name: "DC Exit"})
	require.NoError(t, err)
	_, err = env.workspaceSvc.Create(ctx, workspace.CreateRequest{Name: "Cloud Merge"})
	require.NoError(t, err)

	list, err := env.workspaceSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
