package reconcile

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Drift is a project whose stored member count disagrees with its roster.
type Drift struct {
	ProjectID uuid.UUID
	Recorded  int
	Expected  int
}

// Repository finds and repairs member count drift.
type Repository interface {
	ListDrifted(ctx context.Context, limit int) ([]Drift, error)
	RepairProject(ctx context.Context, projectID uuid.UUID, expected int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reconcile repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListDrifted compares each project's counter against 1 (the creator) plus
// its accepted non-creator memberships.
func (r *repository) ListDrifted(ctx context.Context, limit int) ([]Drift, error) {
	var drifts []Drift
	err := r.db.WithContext(ctx).
		Table("projects p").
		Select(`p.id AS project_id, p.current_members AS recorded, 1 + COUNT(m.id) AS expected`).
		Joins(`LEFT JOIN project_memberships m
ON m.project_id = p.id AND m.status = 'accepted' AND m.role = 'member'`).
		Group("p.id, p.current_members").
		Having("p.current_members <> 1 + COUNT(m.id)").
		Limit(limit).
		Scan(&drifts).Error
	if err != nil {
		return nil, err
	}
	return drifts, nil
}

// RepairProject writes the recomputed count. The guard keeps the write a
// no-op when a concurrent accept already corrected the row.
func (r *repository) RepairProject(ctx context.Context, projectID uuid.UUID, expected int) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE projects
SET current_members = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND current_members <> ?`,
		expected, projectID, expected,
	)
	return result.RowsAffected, result.Error
}
