// Package importer reads and writes plan files: a project's WBS as a flat
// JSON list of tasks linked by parent refs.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PlanFile is the top-level JSON structure of a plan import.
type PlanFile struct {
	ProjectCase string       `json:"project_case"`
	Tasks       []TaskImport `json:"tasks"`
}

// TaskImport is one plan task. Ref becomes the task id; ParentRef must name
// a task listed earlier in the file.
type TaskImport struct {
	Ref            string   `json:"ref"`
	ParentRef      *string  `json:"parent_ref,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Assignees      []string `json:"assignees,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Status         string   `json:"status,omitempty"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	EstHours       *float64 `json:"est_hours,omitempty"`
	UsedHours      *float64 `json:"used_hours,omitempty"`
	TimesheetState string   `json:"timesheet_state,omitempty"`
}

// LoadPlanFile reads and parses a plan file from disk.
func LoadPlanFile(path string) (*PlanFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePlanFile(f)
}

func ParsePlanFile(r io.Reader) (*PlanFile, error) {
	var pf PlanFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &pf, nil
}

// Write encodes pf as indented JSON.
func (pf *PlanFile) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pf)
}
