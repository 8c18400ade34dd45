package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/planner"
	"waveplan/internal/domain/project"
	"waveplan/internal/repository"

	"github.com/google/uuid"
)

// Service manages the open editing sessions: one mutation engine per
// project, with a per-project lock around each operation. The engine itself
// assumes exclusive ownership of its snapshot, so all access goes through
// With.
type Service struct {
	projects  repository.ProjectRepository
	snapshots repository.SnapshotRepository
	logger    *slog.Logger

	mu   sync.Mutex
	open map[string]*editSession
}

type editSession struct {
	mu       sync.Mutex
	engine   *planner.Engine
	revision int64
}

// NewService creates a new workspace service.
func NewService(projects repository.ProjectRepository, snapshots repository.SnapshotRepository, logger *slog.Logger) *Service {
	return &Service{
		projects:  projects,
		snapshots: snapshots,
		logger:    logger,
		open:      make(map[string]*editSession),
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID       string
	Name     string
	Instance string
}

// Create creates a new project with an empty inventory snapshot.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*project.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, project.ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	proj := &project.Project{
		ID:        id,
		Name:      req.Name,
		Instance:  req.Instance,
		Revision:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	empty := &inventory.Snapshot{Name: req.Name, Instance: req.Instance, CreatedAt: now}
	empty.SyncCounts()
	if err := s.snapshots.Save(ctx, id, 0, empty); err != nil {
		return nil, fmt.Errorf("saving initial snapshot: %w", err)
	}

	return proj, nil
}

// Get fetches project metadata by ID.
func (s *Service) Get(ctx context.Context, id string) (*project.Project, error) {
	proj, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]project.Project, error) {
	return s.projects.List(ctx)
}

// Import replaces a project's open snapshot wholesale with an externally
// supplied payload and persists it. The payload is deep-copied by the
// engine, never aliased.
func (s *Service) Import(ctx context.Context, projectID string, payload *inventory.Snapshot) (*project.Project, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	sess.engine = planner.NewEngine(payload)
	sess.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("inventory imported", "project_id", projectID,
			"nodes", len(payload.Nodes), "apps", len(payload.Apps), "move_groups", len(payload.MoveGroups))
	}
	return s.Save(ctx, projectID)
}

// With runs fn against the project's mutation engine under the per-project
// lock, loading the latest persisted snapshot on first access.
func (s *Service) With(ctx context.Context, projectID string, fn func(*planner.Engine) error) error {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.engine)
}

// Save persists the working snapshot under the next revision and clears the
// engine's dirty flag. Rollback on failed saves is the caller's concern;
// the in-memory snapshot is left as-is.
func (s *Service) Save(ctx context.Context, projectID string) (*project.Project, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	proj, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	revision := proj.Revision + 1
	if err := s.snapshots.Save(ctx, projectID, revision, sess.engine.Snapshot()); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	proj.Revision = revision
	if name := sess.engine.Snapshot().Name; name != "" {
		proj.Name = name
	}
	proj.UpdatedAt = time.Now()
	if err := s.projects.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	sess.revision = revision
	sess.engine.ResetChanged()
	return proj, nil
}

// Delete removes a project and its saved snapshots, discarding any open
// session.
func (s *Service) Delete(ctx context.Context, projectID string) error {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.Close(projectID)
	return nil
}

// Close discards a project's open session; unsaved edits are lost.
func (s *Service) Close(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, projectID)
}

func (s *Service) session(ctx context.Context, projectID string) (*editSession, error) {
	s.mu.Lock()
	if sess, ok := s.open[projectID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	snap, revision, err := s.snapshots.Load(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.open[projectID]; ok {
		return sess, nil
	}
	sess := &editSession{engine: planner.NewEngine(snap), revision: revision}
	s.open[projectID] = sess
	return sess, nil
}
