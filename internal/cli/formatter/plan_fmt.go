package formatter

import (
	"fmt"
	"strings"

	"github.com/goalpost-app/goalpost/internal/dissect"
)

// FormatPlanPreview formats a dissection plan without persisting anything:
// the weekly schedule plus the feasibility summary.
func FormatPlanPreview(plan *dissect.Plan) string {
	var b strings.Builder

	b.WriteString(Header("Proposed plan") + "\n")

	headers := []string{"WEEK", "TASK", "EFFORT"}
	rows := make([][]string, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		rows = append(rows, []string{
			Dim(t.YearWeek),
			StyleFg.Render(t.Title),
			FormatHours(t.TargetCount),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	b.WriteString("\n")
	verdict := StyleGreen.Render("Achievable")
	if !plan.Achievable {
		verdict = StyleYellow.Render("Tight")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", verdict,
		Dim(fmt.Sprintf("%dh estimated over %d weeks, %dh available",
			plan.TotalHoursEstimated, plan.TotalWeeks, plan.TotalHoursAvailable))))

	for _, w := range plan.Warnings {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}

	return b.String()
}
