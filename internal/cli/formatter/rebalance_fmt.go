package formatter

import (
	"fmt"
	"strings"

	"github.com/goalpost-app/goalpost/internal/rebalance"
)

// FormatRebalancePlan formats a rebalance proposal: the message, the
// proposed moves, remaining overloaded weeks, and recommendations.
func FormatRebalancePlan(plan *rebalance.Plan) string {
	var b strings.Builder

	b.WriteString(Bold(plan.Message) + "\n")
	b.WriteString(Dim(fmt.Sprintf("%d tasks analyzed, %d moves proposed",
		plan.Summary.TotalTasksAnalyzed, plan.Summary.TasksToMove)) + "\n")

	if len(plan.Changes) > 0 {
		b.WriteString("\n")
		headers := []string{"", "TASK", "FROM", "TO", "REASON"}
		rows := make([][]string, 0, len(plan.Changes))
		for _, c := range plan.Changes {
			from := c.FromWeek
			if c.IsOverdue {
				from = StyleRed.Render(from + " (overdue)")
			} else {
				from = StyleFg.Render(from)
			}
			rows = append(rows, []string{
				DirectionArrow(c.Direction),
				StyleFg.Render(c.TaskTitle),
				from,
				StyleFg.Render(c.ToWeek),
				Dim(c.Reason),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(plan.Summary.OverloadedWeeks) > 0 {
		b.WriteString("\n" + StyleYellow.Render("Still overloaded:") + "\n")
		for _, w := range plan.Summary.OverloadedWeeks {
			b.WriteString(fmt.Sprintf("  %s  %s over capacity (%.0fh of %.0fh, %d tasks)\n",
				Bold(w.Week),
				StyleYellow.Render(fmt.Sprintf("%.0fh", w.Excess)),
				w.Hours, w.Capacity, w.TaskCount))
		}
	}

	if len(plan.Recommendations) > 0 {
		b.WriteString("\n")
		for _, r := range plan.Recommendations {
			b.WriteString(Dim("  • "+r) + "\n")
		}
	}

	return b.String()
}

// FormatApplyResult formats the outcome of committing a change list.
func FormatApplyResult(result *rebalance.ApplyResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("Moved %d tasks.", result.TotalApplied)) + "\n")
	} else {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Moved %d tasks, %d failed.",
			result.TotalApplied, result.TotalErrors)) + "\n")
	}

	for _, a := range result.Applied {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			DirectionArrow(a.Direction),
			StyleFg.Render(a.TaskTitle),
			Dim(fmt.Sprintf("%s → %s", a.FromWeek, a.ToWeek))))
	}
	for _, e := range result.Errors {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  ✖ %s: %s", e.TaskID, e.Error)) + "\n")
	}

	return b.String()
}
