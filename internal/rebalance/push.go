package rebalance

import (
	"fmt"
	"sort"

	"github.com/goalpost-app/goalpost/internal/domain"
)

// pushPhase walks weeks in ascending date order and moves excess work
// forward. Overdue weeks are drained completely; current and future weeks
// only until their load fits capacity. Returns the push changes, the
// number of overdue tasks moved, and the number of tasks that needed to
// move but were pinned by their goal's deadline.
func pushPhase(l *ledger) ([]Change, int, int) {
	var changes []Change
	overdueCount := 0
	blockedCount := 0

	// New weeks created mid-phase land at the end of l.order and are
	// visited by this same loop; they never exceed capacity, so the
	// visit is a no-op, but the bound must be re-read each iteration.
	for i := 0; i < len(l.order); i++ {
		label := l.order[i]
		ws := l.weeks[label]
		capacity := l.capacity(label)

		if float64(ws.load) <= capacity {
			continue
		}
		excess := float64(ws.load) - capacity

		// Lowest urgency moves first: priority 5 before 1, ties keep the
		// snapshot's original order. IN_PROGRESS work never moves.
		var movable []Task
		for _, t := range l.tasksByWeek[label] {
			if t.Status != domain.TaskInProgress {
				movable = append(movable, t)
			}
		}
		sort.SliceStable(movable, func(a, b int) bool {
			return movable[a].Priority > movable[b].Priority
		})

		for _, task := range movable {
			// Overdue weeks ignore excess: everything must go.
			if ws.class != WeekOverdue && excess <= 0 {
				break
			}

			target := findDestination(l, i, ws.class, task)
			if target == nil {
				blockedCount++
				continue
			}

			reason := fmt.Sprintf("Priority %d - pushed forward", task.Priority)
			if ws.class == WeekOverdue {
				reason = "Overdue task"
				overdueCount++
			}

			changes = append(changes, Change{
				Action:          ActionMove,
				TaskID:          task.ID,
				TaskTitle:       truncate(task.Title, 60),
				FromWeek:        label,
				ToWeek:          target.label,
				TargetWeekStart: target.start.Format("2006-01-02"),
				Reason:          reason,
				IsOverdue:       ws.class == WeekOverdue,
				Direction:       Push,
			})

			hours := task.Hours()
			excess -= float64(hours)
			l.moveLoad(label, target.label, hours)
		}
	}

	return changes, overdueCount, blockedCount
}

// findDestination locates the first week that can absorb the task
// (first-fit in date order). Overdue sources may target any current or
// future week; other sources only weeks strictly later than themselves.
// When nothing fits, a new week is synthesized unless that would push the
// task past its goal's deadline, in which case nil is returned and the
// task stays put.
func findDestination(l *ledger, sourceIdx int, sourceClass WeekClass, task Task) *weekState {
	hours := task.Hours()

	var search []string
	if sourceClass == WeekOverdue {
		for _, w := range l.order {
			if c := l.weeks[w].class; c == WeekCurrent || c == WeekFuture {
				search = append(search, w)
			}
		}
	} else {
		search = l.order[sourceIdx+1:]
	}

	for _, candidate := range search {
		if float64(l.load(candidate)+hours) <= l.capacity(candidate) {
			return l.weeks[candidate]
		}
	}

	// Nothing has room; extend the schedule unless the deadline forbids it.
	newStart := l.currentStart
	if len(l.order) > 0 {
		last := l.weeks[l.order[len(l.order)-1]]
		newStart = last.start.AddDate(0, 0, 7)
	}
	if task.GoalDeadline != nil && newStart.After(*task.GoalDeadline) {
		return nil
	}
	return l.extend()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
