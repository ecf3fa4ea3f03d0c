package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/board"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/drag"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/importer"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show and edit the project plan",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanTUICmd(app),
		newPlanAddCmd(app),
		newPlanRemoveCmd(app),
		newPlanMoveCmd(app),
		newPlanResizeCmd(app),
		newPlanEditCmd(app),
		newPlanImportCmd(app),
		newPlanExportCmd(app),
	)

	return cmd
}

// resolveProject maps --project (id or case code) to a project id. Remote
// stores get the flag value as is.
func (a *App) resolveProject(ctx context.Context) (string, error) {
	input := strings.TrimSpace(a.Config.ProjectID)
	if input == "" {
		return "", fmt.Errorf("project is required (--project)")
	}
	if a.Config.Remote() {
		return input, nil
	}
	p, err := a.Projects.GetByID(ctx, input)
	if err != nil {
		return "", fmt.Errorf("project %q: %w", input, err)
	}
	return p.ID, nil
}

// loadBoard resolves the project and loads its plan into a terminal board.
func (a *App) loadBoard(ctx context.Context, mode timeline.Mode) (*board.Board, error) {
	pid, err := a.resolveProject(ctx)
	if err != nil {
		return nil, err
	}
	geom := timeline.TerminalGeometry
	geom.DayWidth = a.Config.TerminalDayW
	b := board.New(a.Gateway, pid,
		board.WithGeometry(geom),
		board.WithClock(a.Now),
		board.WithMode(mode),
	)
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func newPlanShowCmd(app *App) *cobra.Command {
	var tree, gantt bool
	var modeStr string
	var collapse []string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the plan as a table, tree or gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := timeline.ParseMode(modeStr)
			if err != nil {
				return err
			}
			b, err := app.loadBoard(cmd.Context(), mode)
			if err != nil {
				return err
			}
			for _, id := range collapse {
				if !b.IsCollapsed(id) {
					b.ToggleCollapse(id)
				}
			}

			switch {
			case tree:
				app.printf("%s", formatter.FormatPlanTree(b.Rows()))
			case gantt:
				app.printf("%s", formatter.RenderGantt(b, 32))
			default:
				app.printf("%s", formatter.FormatPlan(b.Rows(), b.IsCollapsed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Render as an indented tree")
	cmd.Flags().BoolVar(&gantt, "gantt", false, "Render as a text gantt chart")
	cmd.Flags().StringVar(&modeStr, "mode", string(timeline.ModeMonthly), "Timeline window: weekly, monthly or all")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "Task ids to show collapsed")
	cmd.MarkFlagsMutuallyExclusive("tree", "gantt")

	return cmd
}

// taskFlags are the editable plan task fields shared by add and edit.
type taskFlags struct {
	name, description, assignees string
	priority, status             string
	start, end                   string
	est, used                    float64
}

var taskFlagNames = []string{"name", "description", "assignees", "priority", "status", "start", "end", "est", "used"}

func (f *taskFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Task name")
	fs.StringVar(&f.description, "description", "", "Task description")
	fs.StringVar(&f.assignees, "assignees", "", "Comma-separated assignees")
	fs.StringVar(&f.priority, "priority", "", "Low, Medium or High")
	fs.StringVar(&f.status, "status", "", "Backlog, In Progress or Done")
	fs.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	fs.Float64Var(&f.est, "est", 0, "Estimated hours")
	fs.Float64Var(&f.used, "used", 0, "Used hours")
}

func (f *taskFlags) anySet(fs *pflag.FlagSet) bool {
	for _, name := range taskFlagNames {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// patch builds a patch from the flags the user actually set.
func (f *taskFlags) patch(fs *pflag.FlagSet) (domain.PlanTaskPatch, error) {
	var p domain.PlanTaskPatch
	changed := fs.Changed

	if changed("name") {
		p.Name = &f.name
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("assignees") {
		a := domain.SplitAssignees(f.assignees)
		p.Assignees = &a
	}
	if changed("priority") {
		pr, err := domain.ParsePriority(f.priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if changed("status") {
		st, err := domain.ParseStatus(f.status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	if changed("start") {
		d, err := time.Parse(dateLayout, f.start)
		if err != nil {
			return p, fmt.Errorf("invalid start date %q: %w", f.start, err)
		}
		p.StartDate = &d
	}
	if changed("end") {
		d, err := time.Parse(dateLayout, f.end)
		if err != nil {
			return p, fmt.Errorf("invalid end date %q: %w", f.end, err)
		}
		p.EndDate = &d
	}
	if changed("est") {
		p.EstHours = &f.est
	}
	if changed("used") {
		p.UsedHours = &f.used
	}
	return p, nil
}

func newPlanAddCmd(app *App) *cobra.Command {
	var parent string
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task, under --parent or at the root",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := app.loadBoard(ctx, timeline.ModeMonthly)
			if err != nil {
				return err
			}
			patch, err := flags.patch(cmd.Flags())
			if err != nil {
				return err
			}
			draft := b.Draft(parent)
			draft.Apply(patch)

			req := gateway.CreateRequest{ProjectID: b.ProjectID(), Task: draft}
			if parent != "" {
				req.ParentID = &parent
			}
			created, err := app.Gateway.Create(ctx, req)
			if err != nil {
				return err
			}
			app.printf("Task created successfully: %s %s\n", formatter.Bold(created.ID), created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id")
	flags.register(cmd.Flags())

	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task and its subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Gateway.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printf("Task %s deleted successfully\n", args[0])
			return nil
		},
	}
}

func newPlanMoveCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Shift a task by --days, keeping its duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.nudge(cmd.Context(), args[0], drag.KindMove, days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to shift (negative moves earlier)")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newPlanResizeCmd(app *App) *cobra.Command {
	var days int
	var edge string

	cmd := &cobra.Command{
		Use:   "resize <task-id>",
		Short: "Move the start or end edge of a task by --days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind drag.Kind
			switch edge {
			case "start", "left":
				kind = drag.KindResizeLeft
			case "end", "right":
				kind = drag.KindResizeRight
			default:
				return fmt.Errorf("invalid edge %q (expected start or end)", edge)
			}
			return app.nudge(cmd.Context(), args[0], kind, days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move the edge (negative moves earlier)")
	cmd.Flags().StringVar(&edge, "edge", "end", "Edge to move: start or end")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func (a *App) nudge(ctx context.Context, id string, kind drag.Kind, days int) error {
	b, err := a.loadBoard(ctx, timeline.ModeAll)
	if err != nil {
		return err
	}
	if err := b.Nudge(ctx, id, kind, days); err != nil {
		return err
	}
	t, ok := b.Task(id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	a.printf("%s %s → %s\n", t.Name, t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout))
	return nil
}

func newPlanEditCmd(app *App) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit task details (interactive form when no field flags are given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			b, err := app.loadBoard(ctx, timeline.ModeMonthly)
			if err != nil {
				return err
			}
			t, ok := b.Task(id)
			if !ok {
				return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
			}

			var patch domain.PlanTaskPatch
			if !flags.anySet(cmd.Flags()) {
				if !app.IsInteractive() {
					return fmt.Errorf("no changes given; pass field flags or run in a terminal for the form")
				}
				values := newTaskFormValues(t)
				if err := taskForm(values).Run(); err != nil {
					return err
				}
				if patch, err = values.patch(t); err != nil {
					return err
				}
			} else if patch, err = flags.patch(cmd.Flags()); err != nil {
				return err
			}

			if patch.IsEmpty() {
				app.printf("No changes.\n")
				return nil
			}
			updated, err := b.SaveTask(ctx, id, patch)
			if err != nil {
				return err
			}
			app.printf("%s", formatter.FormatTaskDetail(updated))
			app.printf("\n")
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a plan file into the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Remote() {
				return fmt.Errorf("import writes to the local store; drop --api")
			}
			ctx := cmd.Context()
			pid, err := app.resolveProject(ctx)
			if err != nil {
				return err
			}
			pf, err := importer.LoadPlanFile(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidatePlanFile(pf); len(errs) > 0 {
				return fmt.Errorf("invalid plan file:\n%w", errors.Join(errs...))
			}
			roots, err := importer.Convert(pf)
			if err != nil {
				return err
			}
			if err := app.Plan.Import(ctx, pid, roots); err != nil {
				return err
			}
			app.printf("Imported %d tasks into project %s\n", len(pf.Tasks), pid)
			return nil
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the plan as a JSON plan file to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pid, err := app.resolveProject(ctx)
			if err != nil {
				return err
			}
			roots, err := app.Gateway.Tree(ctx, pid)
			if err != nil {
				return err
			}
			return importer.Export(roots).Write(app.Out)
		},
	}
}
