package formatter

import (
	"fmt"
	"strings"

	"github.com/goalpost-app/goalpost/internal/domain"
)

const goalProgressBarWidth = 10

// FormatGoalList formats goals as a table with progress bars.
func FormatGoalList(goals []*domain.Goal) string {
	headers := []string{"ID", "GOAL", "PROGRESS", "PRIORITY", "STATUS", "DEADLINE"}
	rows := make([][]string, 0, len(goals))

	for _, g := range goals {
		pct := 0.0
		if g.TargetCount > 0 {
			pct = float64(g.CurrentCount) / float64(g.TargetCount)
		}
		progress := fmt.Sprintf("%s %s",
			RenderProgress(pct, goalProgressBarWidth),
			Dim(fmt.Sprintf("%d/%d", g.CurrentCount, g.TargetCount)))

		rows = append(rows, []string{
			TruncID(g.ID),
			Bold(g.Title),
			progress,
			PriorityBadge(g.Priority),
			GoalStatusPill(g.Status),
			RelativeDateStyled(g.EndDate),
		})
	}

	return RenderTable(headers, rows)
}

// FormatGoalInspect formats one goal with its full task schedule.
func FormatGoalInspect(g *domain.Goal, tasks []*domain.Task) string {
	var b strings.Builder

	b.WriteString(Header(g.Title) + "\n")
	if g.Description != "" {
		b.WriteString(StyleFg.Render(g.Description) + "\n")
	}
	b.WriteString("\n")

	pct := 0.0
	if g.TargetCount > 0 {
		pct = float64(g.CurrentCount) / float64(g.TargetCount)
	}
	b.WriteString(fmt.Sprintf("%s  %s %d/%d\n",
		GoalStatusPill(g.Status),
		RenderProgress(pct, goalProgressBarWidth),
		g.CurrentCount, g.TargetCount))
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		Dim("Priority:"), PriorityBadge(g.Priority),
		Dim("Window:"), fmt.Sprintf("%s to %s", g.StartDate.Format("2006-01-02"), g.EndDate.Format("2006-01-02")),
		Dim("Deadline:"), RelativeDateStyled(g.EndDate)))
	if len(g.Tags) > 0 {
		b.WriteString(Dim("Tags: ") + StylePurple.Render(strings.Join(g.Tags, ", ")) + "\n")
	}

	if len(tasks) > 0 {
		b.WriteString("\n" + FormatTaskList(tasks))
	}

	return b.String()
}
