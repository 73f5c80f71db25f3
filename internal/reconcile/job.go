package reconcile

import (
	"context"
	"fmt"

	"github.com/synapsehq/synapse-backend/pkg/logger"
	"github.com/synapsehq/synapse-backend/pkg/metrics"
)

const (
	memberCountJobName = "member_count_reconcile"
	defaultBatchLimit  = 500
)

// Job represents a unit of scheduled work run by the reconcile worker.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// MemberCountJobParams configures the counter repair job.
type MemberCountJobParams struct {
	Logger  *logger.Logger
	Repo    Repository
	Metrics *metrics.JobMetrics
	Limit   int
}

type memberCountJob struct {
	logg    *logger.Logger
	repo    Repository
	metrics *metrics.JobMetrics
	limit   int
}

// NewMemberCountJob builds the job that recomputes project member counters.
func NewMemberCountJob(params MemberCountJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("reconcile repository required")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultBatchLimit
	}
	return &memberCountJob{
		logg:    params.Logger,
		repo:    params.Repo,
		metrics: params.Metrics,
		limit:   limit,
	}, nil
}

func (j *memberCountJob) Name() string {
	return memberCountJobName
}

// Run finds drifted projects and writes back the recomputed count. Partial
// progress is kept; the first repair error aborts the batch.
func (j *memberCountJob) Run(ctx context.Context) error {
	drifts, err := j.repo.ListDrifted(ctx, j.limit)
	if err != nil {
		return fmt.Errorf("list drifted projects: %w", err)
	}
	if len(drifts) == 0 {
		j.logg.Info(ctx, "member counts consistent")
		return nil
	}

	repaired := 0
	for _, drift := range drifts {
		rows, err := j.repo.RepairProject(ctx, drift.ProjectID, drift.Expected)
		if err != nil {
			j.recordCorrected(repaired)
			return fmt.Errorf("repair project %s: %w", drift.ProjectID, err)
		}
		if rows > 0 {
			repaired++
			fields := map[string]any{
				"project_id": drift.ProjectID.String(),
				"recorded":   drift.Recorded,
				"expected":   drift.Expected,
			}
			j.logg.Warn(j.logg.WithFields(ctx, fields), "repaired drifted member count")
		}
	}
	j.recordCorrected(repaired)
	return nil
}

func (j *memberCountJob) recordCorrected(count int) {
	if j.metrics == nil || count == 0 {
		return
	}
	j.metrics.AddCorrected(memberCountJobName, count)
}
