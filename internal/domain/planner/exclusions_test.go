package planner_test

import (
	"testing"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/planner"

	"github.com/stretchr/testify/require"
)

func TestExclude_DisablesNodes(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	res := e.Exclude([]string{"d1", "d2"}, inventory.KindNode)

	require.Empty(t, res.ErrorMessages)
	require.Equal(t, "(2) compute instances have been excluded from calculations", res.Summary)
	require.True(t, e.Indexes().NodeByID["d1"].Disabled)
	require.True(t, e.Indexes().NodeByID["d2"].Disabled)
	require.False(t, e.Indexes().NodeByID["d3"].Disabled)
}

func TestExclude_Idempotent(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	e.Exclude([]string{"d1"}, inventory.KindNode)
	e.Exclude([]string{"d1"}, inventory.KindNode)

	require.Len(t, e.Snapshot().Exclusions, 1)
}

func TestExclude_Application(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	e.Exclude([]string{"app1"}, inventory.KindApplication)

	require.True(t, e.Indexes().AppByID["app1"].Disabled)
	require.False(t, e.Indexes().AppByID["app2"].Disabled)
}

// Including back removes only the named entries; other entities of the same
// kind stay excluded.
func TestUnexclude_OnlyNamedIDs(t *testing.T) {
	e := planner.NewEngine(testSnapshot())
	e.Exclude([]string{"d1", "d2"}, inventory.KindNode)

	res := e.Unexclude([]string{"d1"}, inventory.KindNode)

	require.Equal(t, "(1) compute instance has been included back into calculations", res.Summary)
	require.False(t, e.Indexes().NodeByID["d1"].Disabled)
	require.True(t, e.Indexes().NodeByID["d2"].Disabled)
	require.Len(t, e.Snapshot().Exclusions, 1)
}

func TestUnexclude_KindScoped(t *testing.T) {
	e := planner.NewEngine(testSnapshot())
	e.Exclude([]string{"d1"}, inventory.KindNode)
	e.Exclude([]string{"app1"}, inventory.KindApplication)

	// same id namespace for a different kind must not be touched
	e.Unexclude([]string{"app1"}, inventory.KindNode)

	require.True(t, e.Indexes().AppByID["app1"].Disabled)
	require.True(t, e.Indexes().NodeByID["d1"].Disabled)
}

func TestExclude_UnsupportedKind(t *testing.T) {
	e := planner.NewEngine(testSnapshot())

	res := e.Exclude([]string{"mg1"}, inventory.KindMoveGroup)

	require.Equal(t, []string{"Exclusion not supported for move group"}, res.ErrorMessages)
}
