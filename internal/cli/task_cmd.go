package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the flat task list",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskStatusCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks across projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context())
			if err != nil {
				return err
			}
			app.printf("%s", formatter.FormatTaskList(tasks, app.Now()))
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var name, project, assigned, due, priority string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dueDate, err := time.Parse(dateLayout, due)
			if err != nil {
				return fmt.Errorf("invalid due date %q: %w", due, err)
			}
			p, err := app.Projects.GetByID(ctx, project)
			if err != nil {
				return fmt.Errorf("project %q: %w", project, err)
			}
			t := &domain.Task{
				Name:       name,
				ProjectID:  p.ID,
				AssignedTo: assigned,
				DueDate:    dueDate,
			}
			if priority != "" {
				if t.Priority, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			app.printf("Task created successfully: %s %s\n", formatter.Bold(t.ID), t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&project, "project-id", "", "Project id or case code")
	cmd.Flags().StringVar(&assigned, "assigned", "", "Assignee")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "Low, Medium or High")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Set a task's status (Backlog, In Progress, Done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			t, err := app.Tasks.UpdateStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			app.printf("Task %s is now %s\n", t.Name, formatter.StatusPill(t.Status))
			return nil
		},
	}
}
