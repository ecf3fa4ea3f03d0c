package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectStatusCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			app.printf("%s", formatter.FormatProjectList(projects, app.Now()))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var caseCode, name, owner, start, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Case:  strings.ToUpper(strings.TrimSpace(caseCode)),
				Name:  name,
				Owner: owner,
			}
			if start != "" {
				d, err := time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.StartDate = d
			}
			if due != "" {
				d, err := time.Parse(dateLayout, due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				p.DueDate = d
			}

			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			app.printf("Created project %s [%s]\n", p.Name, p.Case)
			return nil
		},
	}

	cmd.Flags().StringVar(&caseCode, "case", "", "Case code (2-6 uppercase letters, dash, 4 digits, e.g. SP-2024)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&owner, "owner", "", "Project owner")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("case")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project-id|case> <status>",
		Short: "Set a project's status (Backlog, In Progress, Done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := app.Projects.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			p, err = app.Projects.UpdateStatus(ctx, p.ID, status)
			if err != nil {
				return err
			}
			app.printf("Project %s is now %s\n", p.DisplayID(), formatter.StatusPill(p.Status))
			return nil
		},
	}
}
