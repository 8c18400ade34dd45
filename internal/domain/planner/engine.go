package planner

import (
	"time"

	"waveplan/internal/domain/inventory"

	"github.com/google/uuid"
)

// Engine owns the working copy of a project snapshot and applies structural
// edits to it. Every operation completes synchronously: it validates the
// referenced ids, edits the plain collections, and resynchronizes the
// derived indexes before returning, so callers never observe a partially
// updated snapshot.
//
// The engine assumes exclusive ownership of its snapshot and performs no
// internal locking; callers wanting concurrent access must serialize
// operations externally.
type Engine struct {
	snap    *inventory.Snapshot
	idx     *inventory.Indexes
	version int64
	changed bool
}

// NewEngine deep-copies the supplied payload so the caller's data is never
// aliased, and builds the initial indexes.
func NewEngine(payload *inventory.Snapshot) *Engine {
	if payload == nil {
		payload = &inventory.Snapshot{}
	}
	e := &Engine{snap: payload.Clone()}
	e.resync()
	return e
}

// Snapshot returns the engine's working snapshot. The engine remains the
// owner; callers must not mutate it.
func (e *Engine) Snapshot() *inventory.Snapshot { return e.snap }

// Indexes returns the derived lookup maps, current as of the last mutation.
func (e *Engine) Indexes() *inventory.Indexes { return e.idx }

// Version is a monotonic counter incremented on every successful mutation.
// Callers use it to detect changes without deep comparison.
func (e *Engine) Version() int64 { return e.version }

// Changed reports whether any mutation has been applied since construction
// or the last ResetChanged.
func (e *Engine) Changed() bool { return e.changed }

// ResetChanged clears the dirty flag, typically after a successful save.
func (e *Engine) ResetChanged() { e.changed = false }

func (e *Engine) resync() {
	e.idx = inventory.BuildIndexes(e.snap)
	e.snap.SyncCounts()
}

// commit resynchronizes the indexes and records that the snapshot changed.
// It runs after every edit regardless of whether sub-edits were skipped, so
// a partially-applied operation still leaves the snapshot self-consistent.
func (e *Engine) commit() {
	e.resync()
	e.snap.UpdatedAt = time.Now()
	e.version++
	e.changed = true
}

// Rename replaces the project name.
func (e *Engine) Rename(name string) {
	e.snap.Name = name
	e.commit()
}

// UpdateMetadata replaces the scalar metadata fields.
func (e *Engine) UpdateMetadata(instance string, size int64) {
	e.snap.Instance = instance
	e.snap.Size = size
	e.commit()
}

// AddApplication appends a new empty application. A blank id mints a fresh
// one; id uniqueness is otherwise the caller's responsibility.
func (e *Engine) AddApplication(id, name string) *inventory.Group {
	if id == "" {
		id = uuid.NewString()
	}
	app := &inventory.Group{
		ID:      id,
		Kind:    inventory.GroupApplication,
		Name:    name,
		NodeIDs: []string{},
	}
	e.snap.Apps = append(e.snap.Apps, app)
	e.commit()
	return app
}

// AddMoveGroup appends a new empty move group.
func (e *Engine) AddMoveGroup(id, name string) *inventory.MoveGroup {
	if id == "" {
		id = uuid.NewString()
	}
	mg := &inventory.MoveGroup{
		Group: inventory.Group{
			ID:      id,
			Kind:    inventory.GroupMoveGroup,
			Name:    name,
			NodeIDs: []string{},
		},
		GroupIDs: []string{},
	}
	e.snap.MoveGroups = append(e.snap.MoveGroups, mg)
	e.commit()
	return mg
}

// RemoveApplications deletes the named applications and strips their ids
// from every move group and from the exclusion list. Member nodes are not
// deleted; their derived apps lists are rebuilt on resync.
func (e *Engine) RemoveApplications(ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := idSet(ids)
	kept := e.snap.Apps[:0]
	for _, app := range e.snap.Apps {
		if !drop[app.ID] {
			kept = append(kept, app)
		}
	}
	e.snap.Apps = kept
	for _, mg := range e.snap.MoveGroups {
		mg.GroupIDs = removeIDs(mg.GroupIDs, ids)
	}
	keptEx := e.snap.Exclusions[:0]
	for _, ex := range e.snap.Exclusions {
		if !(ex.Kind == inventory.KindApplication && drop[ex.ID]) {
			keptEx = append(keptEx, ex)
		}
	}
	e.snap.Exclusions = keptEx
	e.commit()
}

// RemoveMoveGroups deletes the named move groups and clears the mgid
// back-reference on every node that pointed at one of them. Orphaned nodes
// become un-grouped, not deleted.
func (e *Engine) RemoveMoveGroups(ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := idSet(ids)
	kept := e.snap.MoveGroups[:0]
	for _, mg := range e.snap.MoveGroups {
		if !drop[mg.ID] {
			kept = append(kept, mg)
		}
	}
	e.snap.MoveGroups = kept
	for _, n := range e.snap.Nodes {
		if drop[n.MoveGroupID] {
			n.MoveGroupID = ""
		}
	}
	e.commit()
}

// DeleteNodes removes the named nodes and strips their ids from every
// application, generic group, move group, and exclusion entry.
func (e *Engine) DeleteNodes(ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := idSet(ids)
	kept := e.snap.Nodes[:0]
	for _, n := range e.snap.Nodes {
		if !drop[n.ID] {
			kept = append(kept, n)
		}
	}
	e.snap.Nodes = kept
	for _, app := range e.snap.Apps {
		app.NodeIDs = removeIDs(app.NodeIDs, ids)
	}
	for _, g := range e.snap.Groups {
		g.NodeIDs = removeIDs(g.NodeIDs, ids)
	}
	for _, mg := range e.snap.MoveGroups {
		mg.NodeIDs = removeIDs(mg.NodeIDs, ids)
	}
	keptEx := e.snap.Exclusions[:0]
	for _, ex := range e.snap.Exclusions {
		if !(ex.Kind == inventory.KindNode && drop[ex.ID]) {
			keptEx = append(keptEx, ex)
		}
	}
	e.snap.Exclusions = keptEx
	e.commit()
}

// unionIDs appends the ids from add that are not already present,
// preserving order. Idempotent.
func unionIDs(dst, add []string) []string {
	have := idSet(dst)
	for _, id := range add {
		if !have[id] {
			dst = append(dst, id)
			have[id] = true
		}
	}
	return dst
}

// removeIDs returns dst without any of the given ids, preserving order.
func removeIDs(dst, remove []string) []string {
	drop := idSet(remove)
	kept := dst[:0]
	for _, id := range dst {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
