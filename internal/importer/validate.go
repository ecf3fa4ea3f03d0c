package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidatePlanFile checks the file before conversion and returns every
// problem found, not just the first.
func ValidatePlanFile(pf *PlanFile) []error {
	var errs []error
	if len(pf.Tasks) == 0 {
		errs = append(errs, fmt.Errorf("tasks: at least one task is required"))
	}

	seen := make(map[string]bool, len(pf.Tasks))
	for i, t := range pf.Tasks {
		at := fmt.Sprintf("tasks[%d]", i)
		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", at))
		} else if seen[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref %q is duplicated", at, t.Ref))
		}
		if t.ParentRef != nil {
			switch {
			case *t.ParentRef == t.Ref:
				errs = append(errs, fmt.Errorf("%s.parent_ref %q points at itself", at, *t.ParentRef))
			case !seen[*t.ParentRef]:
				errs = append(errs, fmt.Errorf("%s.parent_ref %q must name an earlier task", at, *t.ParentRef))
			}
		}
		if t.Ref != "" {
			seen[t.Ref] = true
		}
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", at))
		}
		errs = append(errs, validateDates(at, t.StartDate, t.EndDate)...)
		if t.Status != "" {
			if _, err := domain.ParseStatus(t.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", at, t.Status))
			}
		}
		if t.Priority != "" {
			if _, err := domain.ParsePriority(t.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", at, t.Priority))
			}
		}
		if t.TimesheetState != "" {
			if _, err := domain.ParseTimesheetState(t.TimesheetState); err != nil {
				errs = append(errs, fmt.Errorf("%s.timesheet_state: invalid value %q", at, t.TimesheetState))
			}
		}
		if t.EstHours != nil && *t.EstHours < 0 {
			errs = append(errs, fmt.Errorf("%s.est_hours must be >= 0", at))
		}
		if t.UsedHours != nil && *t.UsedHours < 0 {
			errs = append(errs, fmt.Errorf("%s.used_hours must be >= 0", at))
		}
	}
	return errs
}

func validateDates(at, start, end string) []error {
	var errs []error
	s, sErr := time.Parse(dateLayout, start)
	if sErr != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: invalid date %q (expected YYYY-MM-DD)", at, start))
	}
	e, eErr := time.Parse(dateLayout, end)
	if eErr != nil {
		errs = append(errs, fmt.Errorf("%s.end_date: invalid date %q (expected YYYY-MM-DD)", at, end))
	}
	if sErr == nil && eErr == nil && e.Before(s) {
		errs = append(errs, fmt.Errorf("%s.end_date %q is before start_date %q", at, end, start))
	}
	return errs
}
