package cli

import (
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formTask() *domain.PlanTask {
	t := testutil.NewTestPlanTask("t1", "1", testutil.WithHours(16, 4))
	t.Name = "Wire inverters"
	t.Description = "Connect strings to the inverter."
	t.Assignees = []string{"Bob", "Eve"}
	t.Status = domain.StatusBacklog
	t.Priority = domain.PriorityMedium
	return t
}

func TestTaskFormValues_UnchangedIsEmpty(t *testing.T) {
	task := formTask()
	v := newTaskFormValues(task)
	assert.Equal(t, "16", v.EstHours)
	assert.Equal(t, "Bob, Eve", v.Assignees)

	p, err := v.patch(task)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestTaskFormValues_OnlyChangedFields(t *testing.T) {
	task := formTask()
	v := newTaskFormValues(task)
	v.Name = "  Wire inverters (east) "
	v.Status = domain.StatusInProgress
	v.EstHours = "20.5"
	v.Assignees = "Bob,  Eve ,"

	p, err := v.patch(task)
	require.NoError(t, err)
	require.NotNil(t, p.Name)
	assert.Equal(t, "Wire inverters (east)", *p.Name)
	require.NotNil(t, p.Status)
	assert.Equal(t, domain.StatusInProgress, *p.Status)
	require.NotNil(t, p.EstHours)
	assert.InDelta(t, 20.5, *p.EstHours, 0.001)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Priority)
	assert.Nil(t, p.Assignees, "same names after normalising")
}

func TestTaskFormValues_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*taskFormValues)
		field string
	}{
		{"blank name", func(v *taskFormValues) { v.Name = "   " }, "name"},
		{"blank description", func(v *taskFormValues) { v.Description = "" }, "description"},
		{"no assignees", func(v *taskFormValues) { v.Assignees = " , " }, "assignees"},
		{"negative hours", func(v *taskFormValues) { v.EstHours = "-1" }, "estHours"},
		{"hours not a number", func(v *taskFormValues) { v.EstHours = "lots" }, "estHours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTaskFormValues(formTask())
			tt.edit(v)
			_, err := v.patch(formTask())
			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestFormValidators(t *testing.T) {
	assert.EqualError(t, validateRequired("name")(""), "name is required")
	assert.NoError(t, validateRequired("name")("x"))
	assert.EqualError(t, validateAssignees(""), "at least one assignee is required")
	assert.NoError(t, validateAssignees("Alice"))
	assert.EqualError(t, validateEstHours("-0.5"), "estimated hours must be positive")
	assert.NoError(t, validateEstHours("0"))
	assert.NoError(t, validateEstHours(" 12 "))
}

func TestTaskForm_Builds(t *testing.T) {
	v := newTaskFormValues(formTask())
	f := taskForm(v)
	require.NotNil(t, f)
	assert.Equal(t, "Wire inverters", v.Name, "building the form keeps the bound values")
}
