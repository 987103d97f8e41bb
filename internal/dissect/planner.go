// Package dissect turns a goal into a concrete set of weekly tasks.
//
// Two planners exist: PlanEvenly is a pure count-splitting fallback that
// always succeeds, and Agent asks a language model for specific,
// actionable tasks and distributes them across the goal's weeks. Both
// emit Monday-anchored weeks ready for insertion.
package dissect

import (
	"fmt"
	"time"

	"github.com/goalpost-app/goalpost/internal/week"
)

// PlannedTask is one week-bound task produced by a planner. The caller
// owns identity, priority, and persistence.
type PlannedTask struct {
	Title       string
	Description string
	WeekStart   time.Time
	WeekEnd     time.Time
	YearWeek    string
	TargetCount int
	SortOrder   int
}

// PlanEvenly splits a countable goal into weekly tasks between start and
// end. With at least as many units as weeks, every week gets a task and
// the remainder lands on the earliest weeks. With fewer units than weeks,
// single-unit tasks are spaced out evenly instead of bunching at the
// front: 10 units over 52 weeks yields one task roughly every 5 weeks.
func PlanEvenly(title string, targetCount int, start, end time.Time) []PlannedTask {
	spans := week.Between(start, end)
	if len(spans) == 0 || targetCount <= 0 {
		return nil
	}

	numWeeks := len(spans)
	var counts []int
	var selected []int

	if targetCount >= numWeeks {
		counts = week.DistributeEvenly(targetCount, numWeeks)
		selected = make([]int, numWeeks)
		for i := range selected {
			selected[i] = i
		}
	} else {
		counts = make([]int, targetCount)
		selected = make([]int, targetCount)
		step := float64(numWeeks) / float64(targetCount)
		for i := range selected {
			counts[i] = 1
			selected[i] = int(float64(i) * step)
		}
	}

	var tasks []PlannedTask
	for i, idx := range selected {
		if counts[i] <= 0 {
			continue
		}
		span := spans[idx]
		tasks = append(tasks, PlannedTask{
			Title:       fmt.Sprintf("%s (Task %d)", title, len(tasks)+1),
			WeekStart:   span.Start,
			WeekEnd:     span.End,
			YearWeek:    week.Label(span.Start),
			TargetCount: counts[i],
			SortOrder:   len(tasks),
		})
	}
	return tasks
}
