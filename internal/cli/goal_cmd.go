package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goalpost-app/goalpost/internal/cli/formatter"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/service"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalListCmd(app),
		newGoalInspectCmd(app),
		newGoalPlanCmd(app),
		newGoalDoneCmd(app),
		newGoalArchiveCmd(app),
		newGoalRemoveCmd(app),
	)

	return cmd
}

// goalFlags are the shared flags of `goal add` and `goal plan`.
type goalFlags struct {
	title    string
	desc     string
	target   int
	start    string
	end      string
	priority int
	tags     []string
	hours    int
	level    string
}

func (f *goalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Goal title")
	cmd.Flags().StringVar(&f.desc, "desc", "", "Goal description")
	cmd.Flags().IntVar(&f.target, "target", 0, "Target count (default: one unit per week)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&f.end, "end", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.priority, "priority", 0, "Priority 1 (urgent) to 5 (optional)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tags (repeatable)")
	cmd.Flags().IntVar(&f.hours, "hours", 0, "Weekly hours budget for AI planning")
	cmd.Flags().StringVar(&f.level, "level", "", "Experience level (beginner|intermediate|advanced)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("end")
}

func (f *goalFlags) toRequest() (service.CreateGoalRequest, error) {
	start := time.Now().UTC()
	if f.start != "" {
		parsed, err := time.Parse("2006-01-02", f.start)
		if err != nil {
			return service.CreateGoalRequest{}, fmt.Errorf("invalid start date %q: %w", f.start, err)
		}
		start = parsed
	}
	end, err := time.Parse("2006-01-02", f.end)
	if err != nil {
		return service.CreateGoalRequest{}, fmt.Errorf("invalid end date %q: %w", f.end, err)
	}

	return service.CreateGoalRequest{
		Title:           f.title,
		Description:     f.desc,
		TargetCount:     f.target,
		StartDate:       start,
		EndDate:         end,
		Priority:        f.priority,
		Tags:            f.tags,
		WeeklyHours:     f.hours,
		ExperienceLevel: f.level,
	}, nil
}

func newGoalAddCmd(app *App) *cobra.Command {
	var flags goalFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal and carve it into weekly tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest()
			if err != nil {
				return err
			}

			result, err := app.Goals.Create(context.Background(), app.User, req)
			if err != nil {
				return err
			}

			planner := "evenly split"
			if result.AIPlanned {
				planner = "AI planned"
			}
			fmt.Printf("Created goal %s with %d weekly tasks (%s)\n",
				result.Goal.Title, len(result.Tasks), planner)
			fmt.Printf("%s\n", formatter.FormatTaskList(result.Tasks))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGoalPlanCmd(app *App) *cobra.Command {
	var flags goalFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview an AI task plan without creating anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest()
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner("Planning tasks...")
			plan, err := app.Goals.PreviewPlan(context.Background(), app.User, req)
			stop()
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatPlanPreview(plan))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.Goals.List(context.Background(), app.User, all)
			if err != nil {
				return err
			}

			if len(goals) == 0 {
				fmt.Println("No goals found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatGoalList(goals))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived goals")

	return cmd
}

func newGoalInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a goal with its full task schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			g, err := app.Goals.GetByID(ctx, app.User, goalID)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByGoal(ctx, app.User, goalID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatGoalInspect(g, tasks))
			return nil
		},
	}
}

func newGoalDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a goal completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			g, err := app.Goals.GetByID(ctx, app.User, goalID)
			if err != nil {
				return err
			}
			g.Status = domain.GoalCompleted
			if err := app.Goals.Update(ctx, g); err != nil {
				return err
			}
			fmt.Printf("Completed goal %s\n", g.Title)
			return nil
		},
	}
}

func newGoalArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Goals.Archive(ctx, app.User, goalID); err != nil {
				return err
			}
			fmt.Printf("Archived goal %s\n", goalID)
			return nil
		},
	}
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a goal and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Goals.Delete(ctx, app.User, goalID); err != nil {
				return err
			}
			fmt.Printf("Removed goal %s\n", goalID)
			return nil
		},
	}
}
