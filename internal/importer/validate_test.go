package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalFile() *PlanFile {
	return &PlanFile{
		ProjectCase: "SP-2024",
		Tasks: []TaskImport{
			{Ref: "gantt-1", Name: "Planning", StartDate: "2024-01-10", EndDate: "2024-01-12"},
		},
	}
}

func TestValidatePlanFile_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidatePlanFile(validMinimalFile()))
}

func TestValidatePlanFile_ValidNested(t *testing.T) {
	pf := &PlanFile{
		ProjectCase: "SP-2024",
		Tasks: []TaskImport{
			{Ref: "a", Name: "Design", StartDate: "2024-01-10", EndDate: "2024-01-20", Status: "in_progress", Priority: "high"},
			{Ref: "a1", ParentRef: ptrStr("a"), Name: "Wireframes", StartDate: "2024-01-10", EndDate: "2024-01-10", EstHours: ptrFloat(4), TimesheetState: "submitted"},
		},
	}
	assert.Empty(t, ValidatePlanFile(pf))
}

func TestValidatePlanFile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanFile)
		want   string
	}{
		{"no tasks", func(pf *PlanFile) { pf.Tasks = nil }, "at least one task"},
		{"missing ref", func(pf *PlanFile) { pf.Tasks[0].Ref = "" }, "ref is required"},
		{"missing name", func(pf *PlanFile) { pf.Tasks[0].Name = "" }, "name is required"},
		{"bad start", func(pf *PlanFile) { pf.Tasks[0].StartDate = "10/01/2024" }, "start_date: invalid date"},
		{"end before start", func(pf *PlanFile) { pf.Tasks[0].EndDate = "2024-01-09" }, "is before start_date"},
		{"bad status", func(pf *PlanFile) { pf.Tasks[0].Status = "blocked" }, "status: invalid value"},
		{"bad priority", func(pf *PlanFile) { pf.Tasks[0].Priority = "urgent" }, "priority: invalid value"},
		{"bad timesheet", func(pf *PlanFile) { pf.Tasks[0].TimesheetState = "approved" }, "timesheet_state: invalid value"},
		{"negative est", func(pf *PlanFile) { pf.Tasks[0].EstHours = ptrFloat(-1) }, "est_hours must be >= 0"},
		{"negative used", func(pf *PlanFile) { pf.Tasks[0].UsedHours = ptrFloat(-2) }, "used_hours must be >= 0"},
		{"self parent", func(pf *PlanFile) { pf.Tasks[0].ParentRef = ptrStr("gantt-1") }, "points at itself"},
		{"forward parent", func(pf *PlanFile) { pf.Tasks[0].ParentRef = ptrStr("later") }, "must name an earlier task"},
		{"duplicate ref", func(pf *PlanFile) { pf.Tasks = append(pf.Tasks, pf.Tasks[0]) }, "is duplicated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := validMinimalFile()
			tt.mutate(pf)
			errs := ValidatePlanFile(pf)
			require.NotEmpty(t, errs)
			var msgs []string
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			assert.Contains(t, strings.Join(msgs, "\n"), tt.want)
		})
	}
}

func TestValidatePlanFile_CollectsAllErrors(t *testing.T) {
	pf := &PlanFile{Tasks: []TaskImport{{Ref: "x", StartDate: "bad", EndDate: "bad"}}}
	assert.Len(t, ValidatePlanFile(pf), 3)
}
