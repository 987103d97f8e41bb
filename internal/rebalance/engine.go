package rebalance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Calculate produces a rebalance plan for the given snapshot. It never
// fails for ordinary data conditions: an empty snapshot, a balanced
// schedule, and unmovable tasks all come back as a successful Plan whose
// message and recommendations describe the situation.
func Calculate(in Input) Plan {
	if len(in.Tasks) == 0 {
		return Plan{
			Success:         true,
			Message:         "No pending tasks to rebalance",
			Recommendations: []string{},
			Changes:         []Change{},
			Summary: Summary{
				HoursPerWeek:     in.FutureWeekHours,
				CurrentWeekHours: in.CurrentWeekHours,
				OverloadedWeeks:  []OverloadedWeek{},
			},
		}
	}

	l := newLedger(in)

	changes, overdueCount, blockedCount := pushPhase(l)
	pulled := pullPhase(l, changes)
	changes = append(changes, pulled...)

	overloaded := overloadedWeeks(l)
	message, recommendations := describe(l, changes, overdueCount, len(pulled), blockedCount, overloaded)

	return Plan{
		Success:         true,
		Message:         message,
		Recommendations: recommendations,
		Changes:         changes,
		Summary: Summary{
			TotalTasksAnalyzed: len(in.Tasks),
			TasksToMove:        len(changes),
			HoursPerWeek:       in.FutureWeekHours,
			CurrentWeekHours:   in.CurrentWeekHours,
			OverloadedWeeks:    overloaded,
			OverdueTasksMoved:  overdueCount,
			PulledForward:      len(pulled),
		},
	}
}

// overloadedWeeks scans every non-overdue week still carrying more load
// than capacity. Overdue weeks are excluded: either they drained fully or
// their leftovers are deadline-blocked, which recommendations cover.
func overloadedWeeks(l *ledger) []OverloadedWeek {
	out := []OverloadedWeek{}
	for _, label := range l.order {
		ws := l.weeks[label]
		if ws.class == WeekOverdue {
			continue
		}
		capacity := l.capacity(label)
		if float64(ws.load) > capacity {
			out = append(out, OverloadedWeek{
				Week:      label,
				Hours:     round1(float64(ws.load)),
				Capacity:  capacity,
				Excess:    round1(float64(ws.load) - capacity),
				TaskCount: len(l.tasksByWeek[label]),
			})
		}
	}
	return out
}

// describe assembles the human-readable message and recommendations from
// the run's facts, in fixed clause order. Deadline-pinned tasks count as
// unresolved even when no week shows up as overloaded: an overdue week
// holding a task that cannot legally move is excluded from the overloaded
// report, yet the user still needs to hear that the schedule isn't clean.
func describe(l *ledger, changes []Change, overdueCount, pulledCount, blockedCount int, overloaded []OverloadedWeek) (string, []string) {
	pushedCount := 0
	for _, c := range changes {
		if c.Direction == Push && !c.IsOverdue {
			pushedCount++
		}
	}

	var parts []string
	if overdueCount > 0 {
		parts = append(parts, fmt.Sprintf("%d overdue tasks pushed forward", overdueCount))
	}
	if pushedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d tasks pushed to later weeks", pushedCount))
	}
	if pulledCount > 0 {
		parts = append(parts, fmt.Sprintf("%d tasks pulled to this week", pulledCount))
	}
	if len(overloaded) > 0 {
		parts = append(parts, fmt.Sprintf("%d weeks still overloaded", len(overloaded)))
	}

	joined := strings.Join(parts, " | ")

	switch {
	case len(changes) == 0 && len(overloaded) == 0 && blockedCount == 0:
		return "Your workload is already balanced!",
			[]string{"Great job managing your time!"}
	case len(changes) > 0 && len(overloaded) == 0 && blockedCount == 0:
		if joined == "" {
			joined = fmt.Sprintf("Moving %d tasks", len(changes))
		}
		return joined, []string{"Apply changes to optimize your schedule"}
	default:
		if joined == "" {
			joined = "Rebalance calculated"
		}
		return joined, []string{
			"Some high-priority tasks can't be moved",
			fmt.Sprintf("Consider increasing weekly hours above %sh",
				strconv.FormatFloat(l.futureHours, 'f', -1, 64)),
		}
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
