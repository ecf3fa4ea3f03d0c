package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AcceptsDateAndTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-01-10"`, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(tt.in), &d), tt.in)
		assert.True(t, tt.want.Equal(d.Time), "%s -> %v", tt.in, d.Time)
	}
}

// withLocal swaps time.Local for the duration of the test.
func withLocal(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("time zone %s unavailable: %v", name, err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
	return loc
}

func TestParseDate_TimestampUsesLocalCalendarDay(t *testing.T) {
	tests := []struct {
		zone string
		in   string
		want string
	}{
		// Local midnight of 10 Jan serialised by a client east of UTC.
		{"Asia/Bangkok", "2024-01-09T17:00:00.000Z", "2024-01-10"},
		{"Asia/Bangkok", "2024-01-10T23:30:00+02:00", "2024-01-11"},
		// And west of UTC.
		{"America/New_York", "2024-01-10T05:00:00Z", "2024-01-10"},
		{"America/New_York", "2024-01-10T03:00:00Z", "2024-01-09"},
		{"UTC", "2024-01-10T15:04:05Z", "2024-01-10"},
	}
	for _, tt := range tests {
		t.Run(tt.zone+" "+tt.in, func(t *testing.T) {
			loc := withLocal(t, tt.zone)
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
			assert.Equal(t, loc, got.Location())
			assert.Zero(t, got.Hour())
		})
	}
}

func TestParseDate_PlainDateIgnoresZone(t *testing.T) {
	withLocal(t, "Asia/Bangkok")
	got, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", got.Format(DateLayout))
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"10/01/2024"`), &d)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDate_MarshalsCalendarDate(t *testing.T) {
	b, err := json.Marshal(NewDate(time.Date(2024, 1, 10, 18, 0, 0, 0, time.Local)))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-10"`, string(b))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestPlanTaskPatch_OnlySentFields(t *testing.T) {
	var p PlanTaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-01-12","endDate":"2024-01-14","id":"ignored","subTasks":[]}`), &p))

	dp, err := p.ToDomain()
	require.NoError(t, err)
	require.NotNil(t, dp.StartDate)
	require.NotNil(t, dp.EndDate)
	assert.Nil(t, dp.Name)
	assert.Nil(t, dp.Status)
	assert.Equal(t, 12, dp.StartDate.Day())
}

func TestPlanTaskPatch_InvalidEnum(t *testing.T) {
	bad := "Blocked"
	_, err := PlanTaskPatch{Status: &bad}.ToDomain()
	assert.ErrorIs(t, err, domain.ErrValidation)

	state := "approved"
	_, err = PlanTaskPatch{TimesheetState: &state}.ToDomain()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanTaskPatch_DomainRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 12, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 2)
	in := domain.DatePatch(start, end)

	out, err := PlanTaskPatchFromDomain(in).ToDomain()
	require.NoError(t, err)
	assert.True(t, start.Equal(*out.StartDate))
	assert.True(t, end.Equal(*out.EndDate))
}

func TestPlanTask_JSONShape(t *testing.T) {
	parent := "gantt-1"
	task := &domain.PlanTask{
		ID:          "gantt-2",
		ParentID:    &parent,
		WBS:         "1.1",
		ProjectCase: "SP-2024",
		Name:        "Design",
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusInProgress,
		StartDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local),
		EndDate:     time.Date(2024, 1, 12, 0, 0, 0, 0, time.Local),
		EstHours:    8,
	}
	b, err := json.Marshal(PlanTaskFromDomain(task))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2024-01-10", raw["startDate"])
	assert.Equal(t, "In Progress", raw["status"])
	assert.Equal(t, []any{}, raw["assignees"])
	assert.NotContains(t, raw, "subTasks")
}

func TestPlanTask_ToDomainNested(t *testing.T) {
	body := `{"name":"Root","priority":"high","status":"in_progress","startDate":"2024-01-10","endDate":"2024-01-11",
		"assignees":["A"," A ","B"],"subTasks":[{"name":"Child","priority":"Low","status":"Done","startDate":"2024-01-10","endDate":"2024-01-10"}]}`
	var dto PlanTask
	require.NoError(t, json.Unmarshal([]byte(body), &dto))

	task, err := dto.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, []string{"A", "B"}, task.Assignees)
	assert.Empty(t, task.TimesheetState)
	require.Len(t, task.SubTasks, 1)
	assert.Equal(t, domain.StatusDone, task.SubTasks[0].Status)
}

func TestCreateRequests_Defaults(t *testing.T) {
	p, err := CreateProjectRequest{Name: "X", Case: "XX-2024"}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBacklog, p.Status)
	assert.Zero(t, p.Progress)

	task, err := CreateTaskRequest{Name: "T"}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, task.Priority)

	_, err = CreateTaskRequest{Name: "T", Priority: "urgent"}.ToDomain()
	assert.ErrorIs(t, err, domain.ErrValidation)
}
