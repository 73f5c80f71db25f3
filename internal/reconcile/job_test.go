package reconcile

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type stubReconcileRepo struct {
	drifts    []Drift
	repaired  map[uuid.UUID]int
	repairErr error
}

func newStubReconcileRepo(drifts ...Drift) *stubReconcileRepo {
	return &stubReconcileRepo{drifts: drifts, repaired: map[uuid.UUID]int{}}
}

func (s *stubReconcileRepo) ListDrifted(_ context.Context, _ int) ([]Drift, error) {
	return s.drifts, nil
}

func (s *stubReconcileRepo) RepairProject(_ context.Context, projectID uuid.UUID, expected int) (int64, error) {
	if s.repairErr != nil {
		return 0, s.repairErr
	}
	s.repaired[projectID] = expected
	return 1, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestMemberCountJobRepairsDrift(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	repo := newStubReconcileRepo(
		Drift{ProjectID: first, Recorded: 4, Expected: 2},
		Drift{ProjectID: second, Recorded: 1, Expected: 3},
	)

	job, err := NewMemberCountJob(MemberCountJobParams{Logger: testLogger(), Repo: repo})
	require.NoError(t, err)
	require.Equal(t, "member_count_reconcile", job.Name())

	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 2, repo.repaired[first])
	require.Equal(t, 3, repo.repaired[second])
}

func TestMemberCountJobNoDrift(t *testing.T) {
	job, err := NewMemberCountJob(MemberCountJobParams{Logger: testLogger(), Repo: newStubReconcileRepo()})
	require.NoError(t, err)

	require.NoError(t, job.Run(context.Background()))
}

func TestMemberCountJobSurfacesRepairError(t *testing.T) {
	repo := newStubReconcileRepo(Drift{ProjectID: uuid.New(), Recorded: 2, Expected: 1})
	repo.repairErr = errors.New("connection reset")

	job, err := NewMemberCountJob(MemberCountJobParams{Logger: testLogger(), Repo: repo})
	require.NoError(t, err)

	require.Error(t, job.Run(context.Background()))
}
