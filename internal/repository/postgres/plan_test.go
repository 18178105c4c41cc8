//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepository_SaveAndGetByRep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	seedRoster(t, testDB)
	repo := NewPlanRepository(testDB, logger)
	ctx := context.Background()

	p := &domain.WeeklyPlan{RepID: "rep-1", Status: domain.PlanDraft}
	p.Days[0] = &domain.DayPlanEntry{RegionID: "region-1", DoctorIDs: []string{"doc-1"}}
	p.Days[3] = &domain.DayPlanEntry{RegionID: "region-2", DoctorIDs: []string{"doc-2"}}

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tx, p))
	require.NoError(t, tx.Commit())

	fetched, err := repo.GetByRep(ctx, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanDraft, fetched.Status)
	require.NotNil(t, fetched.Days[0])
	assert.Equal(t, "region-1", fetched.Days[0].RegionID)
	assert.Equal(t, []string{"doc-1"}, fetched.Days[0].DoctorIDs)
	assert.Nil(t, fetched.Days[1])
	require.NotNil(t, fetched.Days[3])
	assert.Equal(t, "region-2", fetched.Days[3].RegionID)

	// a second save replaces the entries wholesale
	p.Days[3] = nil
	p.Days[5] = &domain.DayPlanEntry{RegionID: "region-1", DoctorIDs: []string{}}

	tx, err = testDB.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tx, p))
	require.NoError(t, tx.Commit())

	fetched, err = repo.GetByRep(ctx, "rep-1")
	require.NoError(t, err)
	assert.Nil(t, fetched.Days[3])
	require.NotNil(t, fetched.Days[5])
	assert.Empty(t, fetched.Days[5].DoctorIDs)
}

func TestPlanRepository_GetByRep_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	seedRoster(t, testDB)
	repo := NewPlanRepository(testDB, logger)

	_, err := repo.GetByRep(context.Background(), "rep-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPlanRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	seedRoster(t, testDB)
	repo := NewPlanRepository(testDB, logger)
	ctx := context.Background()

	p := &domain.WeeklyPlan{RepID: "rep-1", Status: domain.PlanPending}

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tx, p))
	require.NoError(t, tx.Commit())

	tx, err = testDB.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, tx, "rep-1", domain.PlanApproved))
	require.NoError(t, tx.Commit())

	fetched, err := repo.GetByRep(ctx, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanApproved, fetched.Status)

	tx, err = testDB.Beginx()
	require.NoError(t, err)
	err = repo.UpdateStatus(ctx, tx, "rep-2", domain.PlanApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	require.NoError(t, tx.Rollback())
}
