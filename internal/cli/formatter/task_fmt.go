package formatter

import (
	"fmt"

	"github.com/goalpost-app/goalpost/internal/domain"
)

// FormatTaskList formats tasks as a table, one row per task.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "TASK", "WEEK", "EFFORT", "PRIORITY", "STATUS"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			StyleFg.Render(t.Title),
			Dim(t.YearWeek) + " " + WeekRange(t.WeekStart),
			FormatHours(t.TargetCount),
			PriorityBadge(t.Priority),
			TaskStatusPill(t.Status),
		})
	}

	return RenderTable(headers, rows)
}

// FormatWeekSummary renders the header line for a week view.
func FormatWeekSummary(yearWeek string, tasks []*domain.Task) string {
	total, done := 0, 0
	for _, t := range tasks {
		total++
		if t.Status == domain.TaskDone {
			done++
		}
	}
	return fmt.Sprintf("%s  %s",
		Header("Week "+yearWeek),
		Dim(fmt.Sprintf("%d of %d tasks done", done, total)))
}
