package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	start := testutil.Date(2024, time.January, 1)
	due := testutil.Date(2024, time.June, 30)
	proj := testutil.NewTestProject("Support Portal", testutil.WithCase("SP-2024"), testutil.WithProjectDates(start, due))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Support Portal", fetched.Name)
	assert.Equal(t, "SP-2024", fetched.Case)
	assert.Equal(t, domain.StatusBacklog, fetched.Status)
	assert.True(t, start.Equal(fetched.StartDate))
	assert.True(t, due.Equal(fetched.DueDate))
}

func TestProjectRepo_GetByCase_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Billing", testutil.WithCase("BIL-2025"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByCase(ctx, "bil-2025")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_ListRecent_ByStartDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	for i, name := range []string{"old", "newest", "middle"} {
		start := testutil.Date(2024, time.January, 1).AddDate(0, []int{0, 6, 3}[i], 0)
		require.NoError(t, repo.Create(ctx, testutil.NewTestProject(name, testutil.WithProjectDates(start, start.AddDate(0, 1, 0)))))
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "newest", recent[0].Name)
	assert.Equal(t, "middle", recent[1].Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProjectRepo_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Status")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.UpdateStatus(ctx, proj.ID, domain.StatusDone))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, fetched.Status)

	err = repo.UpdateStatus(ctx, "missing", domain.StatusDone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Gone")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))
	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), domain.ErrNotFound)
}
