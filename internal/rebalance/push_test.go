package rebalance

import (
	"testing"

	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush_LowestPriorityMovesFirst(t *testing.T) {
	// Week +1 holds 6h against a 4h budget; only the optional task should
	// move, and the urgent ones stay.
	tasks := []Task{
		tk("urgent", 1, 1, 2),
		tk("medium", 1, 3, 2),
		tk("optional", 1, 5, 2),
	}

	plan := calc(tasks, 0, 4)

	require.Len(t, plan.Changes, 1)
	assert.Equal(t, "optional", plan.Changes[0].TaskID)
	assert.Equal(t, "Priority 5 - pushed forward", plan.Changes[0].Reason)
	assert.False(t, plan.Changes[0].IsOverdue)
}

func TestPush_InProgressNeverMoves(t *testing.T) {
	tasks := []Task{
		tk("wip", -1, 5, 4, withStatus(domain.TaskInProgress)),
		tk("fresh", -1, 1, 4),
	}

	plan := calc(tasks, 8, 8)

	require.Len(t, plan.Changes, 1)
	assert.Equal(t, "fresh", plan.Changes[0].TaskID)
}

func TestPush_OverdueWeekDrainsCompletely(t *testing.T) {
	// 3h + 2h + 1h all fit the current week's 8h, excess or not.
	tasks := []Task{
		tk("a", -2, 1, 3),
		tk("b", -2, 3, 2),
		tk("c", -2, 5, 1),
	}

	plan := calc(tasks, 8, 8)

	require.Len(t, plan.Changes, 3)
	for _, c := range plan.Changes {
		assert.True(t, c.IsOverdue)
		assert.Equal(t, Push, c.Direction)
		assert.Equal(t, "2025-10", c.ToWeek)
	}
	// Lowest priority leaves first.
	assert.Equal(t, "c", plan.Changes[0].TaskID)
	assert.Equal(t, "b", plan.Changes[1].TaskID)
	assert.Equal(t, "a", plan.Changes[2].TaskID)
}

func TestPush_FirstFitSkipsFullWeeks(t *testing.T) {
	// Current week overflows; week +1 is full, week +2 has room.
	tasks := []Task{
		tk("keep", 0, 1, 5),
		tk("move", 0, 4, 5),
		tk("w1", 1, 3, 6),
		tk("w2", 2, 3, 2),
	}

	plan := calc(tasks, 8, 8)

	require.Len(t, plan.Changes, 1)
	assert.Equal(t, "move", plan.Changes[0].TaskID)
	assert.Equal(t, "2025-12", plan.Changes[0].ToWeek)
}

func TestPush_CreatesNewWeekWhenNothingFits(t *testing.T) {
	tasks := []Task{
		tk("keep", 0, 1, 5),
		tk("move", 0, 4, 5),
		tk("w1", 1, 3, 6),
	}

	plan := calc(tasks, 8, 8)

	require.Len(t, plan.Changes, 1)
	c := plan.Changes[0]
	assert.Equal(t, "move", c.TaskID)
	// One week past the latest known week (+1), so +2.
	assert.Equal(t, "2025-12", c.ToWeek)
	assert.Equal(t, "2025-03-24", c.TargetWeekStart)
}

func TestPush_NewWeekRespectsGoalDeadline(t *testing.T) {
	// Deadline caps the schedule at week +1, which is full; the overload
	// must be reported, not silently resolved.
	tasks := []Task{
		tk("keep", 0, 1, 5, withStatus(domain.TaskInProgress)),
		tk("move", 0, 4, 5, withDeadline(wk(1))),
		tk("w1", 1, 3, 6),
	}

	plan := calc(tasks, 8, 8)

	assert.Empty(t, plan.Changes)
	require.Len(t, plan.Summary.OverloadedWeeks, 1)
	ow := plan.Summary.OverloadedWeeks[0]
	assert.Equal(t, "2025-10", ow.Week)
	assert.Equal(t, 10.0, ow.Hours)
	assert.Equal(t, 8.0, ow.Capacity)
	assert.Equal(t, 2.0, ow.Excess)
	assert.Equal(t, 2, ow.TaskCount)
	assert.Contains(t, plan.Recommendations, "Some high-priority tasks can't be moved")
}

func TestPush_ZeroCapacityCurrentWeekEmpties(t *testing.T) {
	// current_week_hours = 0 pushes everything out of this week too, but
	// as a plain priority push, not as overdue work.
	tasks := []Task{tk("a", 0, 3, 2)}

	plan := calc(tasks, 0, 8)

	require.Len(t, plan.Changes, 1)
	c := plan.Changes[0]
	assert.Equal(t, "2025-11", c.ToWeek)
	assert.False(t, c.IsOverdue)
	assert.Equal(t, "Priority 3 - pushed forward", c.Reason)
	assert.Equal(t, 0, plan.Summary.OverdueTasksMoved)
}

func TestPush_OverdueTargetsEarliestOpenWeek(t *testing.T) {
	// The current week is full, so overdue work lands in the nearest
	// future week with room.
	tasks := []Task{
		tk("late", -1, 3, 3),
		tk("cur", 0, 2, 8),
		tk("w1", 1, 3, 2),
	}

	plan := calc(tasks, 8, 8)

	require.Len(t, plan.Changes, 1)
	assert.Equal(t, "late", plan.Changes[0].TaskID)
	assert.Equal(t, "2025-11", plan.Changes[0].ToWeek)
}
