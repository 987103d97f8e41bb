package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/goalpost-app/goalpost/internal/cli/formatter"
	"github.com/goalpost-app/goalpost/internal/rebalance"
)

func newRebalanceCmd(app *App) *cobra.Command {
	var current, future float64
	var apply, yes bool

	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Redistribute pending tasks across weeks",
		Long: "Computes a rebalance plan: overdue and overloaded work is pushed\n" +
			"forward, high-priority future work is pulled into spare capacity.\n" +
			"Nothing moves unless --apply is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := app.Rebalance.Calculate(ctx, app.User, current, future)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatRebalancePlan(plan))

			if len(plan.Changes) == 0 {
				return nil
			}
			if !apply {
				fmt.Println(formatter.Dim("Re-run with --apply to commit these moves."))
				return nil
			}

			changes := plan.Changes
			if !yes && app.interactive() {
				changes, err = selectChanges(plan.Changes)
				if err != nil {
					return err
				}
			}
			if len(changes) == 0 {
				fmt.Println("Nothing selected, no tasks moved.")
				return nil
			}

			result, err := app.Rebalance.Apply(ctx, app.User, changes)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatApplyResult(result))
			return nil
		},
	}

	cmd.Flags().Float64Var(&current, "current", 10, "Hour budget for the current week")
	cmd.Flags().Float64Var(&future, "future", 10, "Hour budget for future weeks")
	cmd.Flags().BoolVar(&apply, "apply", false, "Commit the proposed moves")
	cmd.Flags().BoolVar(&yes, "yes", false, "Apply without the selection prompt")

	return cmd
}

// selectChanges lets the user deselect individual moves before applying.
// All moves start selected.
func selectChanges(changes []rebalance.Change) ([]rebalance.Change, error) {
	options := make([]huh.Option[int], len(changes))
	picked := make([]int, len(changes))
	for i, c := range changes {
		label := fmt.Sprintf("%s: %s → %s", c.TaskTitle, c.FromWeek, c.ToWeek)
		options[i] = huh.NewOption(label, i).Selected(true)
		picked[i] = i
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Apply which moves?").
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	selected := make([]rebalance.Change, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, changes[i])
	}
	return selected, nil
}
