package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        *sql.DB
	projects  *repository.SQLiteProjectRepo
	tasks     *repository.SQLiteTaskRepo
	planTasks *repository.SQLitePlanTaskRepo
	plan      *planService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &fixture{
		db:        database,
		projects:  repository.NewSQLiteProjectRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		planTasks: repository.NewSQLitePlanTaskRepo(database),
	}
	f.plan = NewPlanService(f.planTasks, testutil.NewTestUoW(database)).(*planService)
	return f
}

// fixedClock pins the plan service clock so generated ids are predictable.
func (f *fixture) fixedClock(at time.Time) {
	f.plan.now = func() time.Time { return at }
}

// seedPlan imports:
//
//	1 a
//	  1.1 a1
//	2 p
//	  2.1 p1
func (f *fixture) seedPlan(t *testing.T) {
	t.Helper()
	roots := []*domain.PlanTask{
		testutil.NewTestPlanTask("a", "1", testutil.WithChildren(testutil.NewTestPlanTask("a1", "1"))),
		testutil.NewTestPlanTask("p", "1", testutil.WithChildren(testutil.NewTestPlanTask("p1", "1"))),
	}
	require.NoError(t, f.plan.Import(context.Background(), "1", roots))
}

func newDraft(name string) *domain.PlanTask {
	return &domain.PlanTask{
		Name:        name,
		Description: "A new task description.",
		Assignees:   []string{"Unassigned"},
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusBacklog,
		StartDate:   testutil.Date(2024, time.January, 10),
		EndDate:     testutil.Date(2024, time.January, 11),
		EstHours:    8,
	}
}
