package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goalpost-app/goalpost/internal/rebalance"
)

func TestFormatRebalancePlan(t *testing.T) {
	plan := &rebalance.Plan{
		Success: true,
		Message: "Found 1 tasks to redistribute",
		Changes: []rebalance.Change{
			{
				Action:    rebalance.ActionMove,
				TaskTitle: "Finish chapter",
				FromWeek:  "2025-09",
				ToWeek:    "2025-10",
				Reason:    "Overdue task moved to this week",
				IsOverdue: true,
				Direction: rebalance.Push,
			},
		},
		Recommendations: []string{"Review your weekly hour budget"},
		Summary: rebalance.Summary{
			TotalTasksAnalyzed: 4,
			TasksToMove:        1,
			OverloadedWeeks: []rebalance.OverloadedWeek{
				{Week: "2025-11", Hours: 12, Capacity: 10, Excess: 2, TaskCount: 3},
			},
		},
	}

	out := FormatRebalancePlan(plan)
	assert.Contains(t, out, "Found 1 tasks to redistribute")
	assert.Contains(t, out, "4 tasks analyzed, 1 moves proposed")
	assert.Contains(t, out, "Finish chapter")
	assert.Contains(t, out, "overdue")
	assert.Contains(t, out, "2025-10")
	assert.Contains(t, out, "2025-11")
	assert.Contains(t, out, "Review your weekly hour budget")
}

func TestFormatRebalancePlan_NoChanges(t *testing.T) {
	plan := &rebalance.Plan{
		Success: true,
		Message: "Your workload is already balanced!",
	}

	out := FormatRebalancePlan(plan)
	assert.Contains(t, out, "already balanced")
	assert.NotContains(t, out, "TASK")
}

func TestFormatApplyResult(t *testing.T) {
	result := &rebalance.ApplyResult{
		Success:      false,
		TotalApplied: 2,
		TotalErrors:  1,
		Applied: []rebalance.AppliedChange{
			{TaskTitle: "Finish chapter", FromWeek: "2025-09", ToWeek: "2025-10", Direction: rebalance.Push},
			{TaskTitle: "Draft outline", FromWeek: "2025-12", ToWeek: "2025-10", Direction: rebalance.Pull},
		},
		Errors: []rebalance.ApplyError{
			{TaskID: "missing-task", Error: "Task not found"},
		},
	}

	out := FormatApplyResult(result)
	assert.Contains(t, out, "Moved 2 tasks, 1 failed.")
	assert.Contains(t, out, "Finish chapter")
	assert.Contains(t, out, "pull")
	assert.Contains(t, out, "Task not found")
}
