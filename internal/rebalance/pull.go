package rebalance

import (
	"fmt"
	"sort"

	"github.com/goalpost-app/goalpost/internal/domain"
)

// pullPhase runs after all pushes and fills the current week's spare
// capacity with the highest-priority NEW tasks from future weeks, nearest
// week first. Tasks already moved by the push phase are skipped so no task
// appears twice in one plan. Pull never creates weeks.
func pullPhase(l *ledger, pushed []Change) []Change {
	spare := l.currentHours - float64(l.load(l.currentLabel))
	if spare <= 0 {
		return nil
	}

	moved := make(map[string]bool, len(pushed))
	for _, c := range pushed {
		moved[c.TaskID] = true
	}

	current := l.weeks[l.currentLabel]
	var changes []Change

	for _, label := range l.order {
		if spare <= 0 {
			break
		}
		if l.weeks[label].class != WeekFuture {
			continue
		}

		// Only untouched NEW tasks are pullable; highest urgency first,
		// ties keep snapshot order.
		var pullable []Task
		for _, t := range l.tasksByWeek[label] {
			if t.Status == domain.TaskNew {
				pullable = append(pullable, t)
			}
		}
		sort.SliceStable(pullable, func(a, b int) bool {
			return pullable[a].Priority < pullable[b].Priority
		})

		for _, task := range pullable {
			if spare <= 0 {
				break
			}
			if moved[task.ID] {
				continue
			}

			hours := task.Hours()
			if float64(hours) > spare {
				continue
			}

			changes = append(changes, Change{
				Action:          ActionMove,
				TaskID:          task.ID,
				TaskTitle:       truncate(task.Title, 60),
				FromWeek:        label,
				ToWeek:          current.label,
				TargetWeekStart: current.start.Format("2006-01-02"),
				Reason:          fmt.Sprintf("Priority %d - pulled to current week", task.Priority),
				IsOverdue:       false,
				Direction:       Pull,
			})
			moved[task.ID] = true

			spare -= float64(hours)
			l.moveLoad(label, current.label, hours)
		}
	}

	return changes
}
