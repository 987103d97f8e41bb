package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goalpost-app/goalpost/internal/cli/formatter"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/week"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage weekly tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskStartCmd(app),
		newTaskDoneCmd(app),
		newTaskStatusCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var goalID, title, desc, weekStart string
	var effort, priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			resolved, err := resolveGoalID(ctx, app, goalID)
			if err != nil {
				return err
			}

			start := time.Now().UTC()
			if weekStart != "" {
				parsed, err := time.Parse("2006-01-02", weekStart)
				if err != nil {
					return fmt.Errorf("invalid week date %q: %w", weekStart, err)
				}
				start = parsed
			}

			t := &domain.Task{
				ID:          uuid.NewString(),
				GoalID:      resolved,
				UserID:      app.User,
				Title:       title,
				Description: desc,
				WeekStart:   start,
				TargetCount: effort,
				Priority:    priority,
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Added task %s to week %s\n", t.Title, t.YearWeek)
			return nil
		},
	}

	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID or prefix")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&desc, "desc", "", "Task description")
	cmd.Flags().StringVar(&weekStart, "week", "", "Any day of the target week (YYYY-MM-DD, default: this week)")
	cmd.Flags().IntVar(&effort, "effort", 0, "Effort in hours")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1 (urgent) to 5 (optional)")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start ID",
		Short: "Mark a task in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Tasks.UpdateStatus(ctx, app.User, t.ID, domain.TaskInProgress)
			if err != nil {
				return err
			}
			fmt.Printf("Started: %s\n", updated.Title)
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task done and book its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Tasks.UpdateStatus(ctx, app.User, t.ID, domain.TaskDone)
			if err != nil {
				return err
			}
			fmt.Printf("Done: %s\n", updated.Title)
			return nil
		},
	}
}

func newTaskStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set a task's status",
		Long:  "Valid statuses: NEW, IN_PROGRESS, DONE, BLOCKED, ROLLED_OVER, CANCELLED.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Tasks.UpdateStatus(ctx, app.User, t.ID, domain.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", updated.Title, updated.Status)
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID DATE",
		Short: "Move a task to the week containing DATE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[1], err)
			}

			monday := week.StartOf(day)
			t.WeekStart = monday
			t.WeekEnd = week.EndOf(monday)
			t.YearWeek = week.Label(monday)
			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Moved %s to week %s\n", t.Title, t.YearWeek)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, app.User, t.ID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", t.Title)
			return nil
		},
	}
}

// newWeekCmd shows the task list for one week, defaulting to the current one.
func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week [DATE]",
		Short: "Show the tasks of a week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if len(args) == 1 {
				parsed, err := time.Parse("2006-01-02", args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", args[0], err)
				}
				day = parsed
			}

			tasks, err := app.Tasks.ListByWeek(context.Background(), app.User, day)
			if err != nil {
				return err
			}

			monday := week.StartOf(day)
			fmt.Printf("%s\n\n", formatter.FormatWeekSummary(week.Label(monday), tasks))
			if len(tasks) == 0 {
				fmt.Println("Nothing scheduled this week.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	return cmd
}
