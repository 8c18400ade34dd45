package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite.
// Snapshots are stored as full JSON bodies, one row per saved revision, so
// the persisted shape round-trips losslessly.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores a snapshot under the given revision. Saving an existing
// (project, revision) pair fails with ErrConflict.
func (r *SnapshotRepository) Save(ctx context.Context, projectID string, revision int64, snap *inventory.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (project_id, revision, body)
		VALUES (?, ?, ?)
		ON CONFLICT (project_id, revision) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, projectID, revision, string(body))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrConflict
	}

	return nil
}

// Load returns the latest saved snapshot and its revision
func (r *SnapshotRepository) Load(ctx context.Context, projectID string) (*inventory.Snapshot, int64, error) {
	query := `
		SELECT body, revision
		FROM snapshots
		WHERE project_id = ?
		ORDER BY revision DESC
		LIMIT 1
	`

	var body string
	var revision int64
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(&body, &revision)
	if err == sql.ErrNoRows {
		return nil, 0, repository.ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap inventory.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, 0, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snap, revision, nil
}
