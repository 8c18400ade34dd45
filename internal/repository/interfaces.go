package repository

import (
	"context"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/project"
)

// ProjectRepository manages project metadata persistence
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id string) error
}

// SnapshotRepository manages inventory snapshot persistence. Each save
// stores a full snapshot under a revision; Load returns the latest.
type SnapshotRepository interface {
	Save(ctx context.Context, projectID string, revision int64, snap *inventory.Snapshot) error
	Load(ctx context.Context, projectID string) (*inventory.Snapshot, int64, error)
}
