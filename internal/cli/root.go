package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Goals     service.GoalService
	Tasks     service.TaskService
	Rebalance service.RebalanceService

	// User owns every row the CLI touches. Single-user installs use a
	// fixed identity; GOALPOST_USER overrides it.
	User string

	// IsInteractive gates confirmation prompts; nil means non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "goalpost" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "goalpost",
		Short: "Weekly goal planner and workload rebalancer",
	}

	root.AddCommand(
		newGoalCmd(app),
		newTaskCmd(app),
		newWeekCmd(app),
		newRebalanceCmd(app),
		newServeCmd(app),
	)

	return root
}

func resolveGoalID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("goal ID is required")
	}

	goals, err := app.Goals.List(ctx, app.User, true)
	if err != nil {
		return "", err
	}

	// Exact match first, then unique prefix.
	for _, g := range goals {
		if g.ID == input {
			return g.ID, nil
		}
	}

	var matches []string
	for _, g := range goals {
		if strings.HasPrefix(g.ID, input) {
			matches = append(matches, g.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("goal not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("goal ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTask finds a task by exact ID or unique ID prefix across all of
// the user's goals.
func resolveTask(ctx context.Context, app *App, input string) (*domain.Task, error) {
	if input == "" {
		return nil, fmt.Errorf("task ID is required")
	}

	if t, err := app.Tasks.GetByID(ctx, app.User, input); err == nil {
		return t, nil
	}

	goals, err := app.Goals.List(ctx, app.User, true)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Task
	for _, g := range goals {
		tasks, err := app.Tasks.ListByGoal(ctx, app.User, g.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, input) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
