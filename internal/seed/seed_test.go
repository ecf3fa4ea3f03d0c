package seed

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SeedsOnceRelativeToToday(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	uow := testutil.NewTestUoW(database)
	projects := repository.NewSQLiteProjectRepo(database)
	planTasks := repository.NewSQLitePlanTaskRepo(database)
	plan := service.NewPlanService(planTasks, uow)
	now := testutil.Date(2024, time.May, 15).Add(14 * time.Hour)

	wrote, err := Run(ctx, uow, projects, plan, now)
	require.NoError(t, err)
	assert.True(t, wrote)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)

	tasks, err := repository.NewSQLiteTaskRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 7)

	roots, err := plan.Tree(ctx, DemoProjectID)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, "gantt-2", roots[1].ID)
	require.Len(t, roots[1].SubTasks, 2)
	assert.Equal(t, "2.2", roots[1].SubTasks[1].WBS)
	assert.True(t, testutil.Date(2024, time.May, 5).Equal(roots[0].StartDate))

	wrote, err = Run(ctx, uow, projects, plan, now)
	require.NoError(t, err)
	assert.False(t, wrote)
	all, err := planTasks.ListByProject(ctx, DemoProjectID)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestDemoData_IsValid(t *testing.T) {
	today := testutil.Date(2024, time.May, 15)
	for _, p := range Projects(today) {
		assert.NoError(t, p.Validate(), p.Case)
	}
	for _, r := range Plan(today) {
		assert.NoError(t, r.Validate(), r.ID)
		for _, c := range r.SubTasks {
			assert.NoError(t, c.Validate(), c.ID)
		}
	}
}
