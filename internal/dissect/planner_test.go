package dissect

import (
	"testing"
	"time"

	"github.com/goalpost-app/goalpost/internal/week"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanEvenly_MoreUnitsThanWeeks(t *testing.T) {
	// 10 units over 3 weeks: remainder lands on the earliest week.
	start := date(2025, 3, 10) // Monday
	end := date(2025, 3, 28)

	tasks := PlanEvenly("Write blog posts", 10, start, end)

	require.Len(t, tasks, 3)
	assert.Equal(t, []int{4, 3, 3}, []int{tasks[0].TargetCount, tasks[1].TargetCount, tasks[2].TargetCount})
	assert.Equal(t, "Write blog posts (Task 1)", tasks[0].Title)
	assert.Equal(t, "Write blog posts (Task 3)", tasks[2].Title)

	for i, task := range tasks {
		assert.Equal(t, start.AddDate(0, 0, i*7), task.WeekStart)
		assert.Equal(t, task.WeekStart.AddDate(0, 0, 6), task.WeekEnd)
		assert.Equal(t, week.Label(task.WeekStart), task.YearWeek)
		assert.Equal(t, i, task.SortOrder)
	}
}

func TestPlanEvenly_FewerUnitsThanWeeks_SpacesOut(t *testing.T) {
	// 2 units over 6 weeks: one task every 3 weeks, not two in a row.
	start := date(2025, 3, 10)
	end := date(2025, 4, 18)

	tasks := PlanEvenly("Visit a museum", 2, start, end)

	require.Len(t, tasks, 2)
	assert.Equal(t, start, tasks[0].WeekStart)
	assert.Equal(t, start.AddDate(0, 0, 3*7), tasks[1].WeekStart)
	assert.Equal(t, 1, tasks[0].TargetCount)
	assert.Equal(t, 1, tasks[1].TargetCount)
}

func TestPlanEvenly_SnapsToMonday(t *testing.T) {
	// A Wednesday start plans from that week's Monday.
	tasks := PlanEvenly("Practice piano", 1, date(2025, 3, 12), date(2025, 3, 12))

	require.Len(t, tasks, 1)
	assert.Equal(t, date(2025, 3, 10), tasks[0].WeekStart)
}

func TestPlanEvenly_DegenerateInputs(t *testing.T) {
	assert.Nil(t, PlanEvenly("x", 0, date(2025, 3, 10), date(2025, 4, 10)))
	assert.Nil(t, PlanEvenly("x", 5, date(2025, 4, 10), date(2025, 3, 10)))
}

func TestPlanEvenly_OneUnitPerWeekAcrossYear(t *testing.T) {
	start := date(2025, 1, 6)
	end := date(2026, 1, 4)

	tasks := PlanEvenly("Weekly review", 52, start, end)

	require.Len(t, tasks, 52)
	for _, task := range tasks {
		assert.Equal(t, 1, task.TargetCount)
	}
	assert.Equal(t, date(2025, 12, 29), tasks[51].WeekStart)
}
