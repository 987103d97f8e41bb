package rebalance

import (
	"sort"
	"time"

	"github.com/goalpost-app/goalpost/internal/week"
)

// WeekClass is a week's position relative to today.
type WeekClass string

const (
	WeekOverdue WeekClass = "overdue"
	WeekCurrent WeekClass = "current"
	WeekFuture  WeekClass = "future"
)

// weekState is the engine's mutable view of one week. Load is updated by
// both phases as tasks move, so every capacity check reflects decisions
// already made earlier in the same run.
type weekState struct {
	label string
	start time.Time
	end   time.Time
	class WeekClass
	load  int
}

// ledger owns all per-run scheduling state. It lives for the duration of
// one Calculate call and is never shared.
type ledger struct {
	currentStart time.Time
	currentLabel string

	currentHours float64
	futureHours  float64

	weeks map[string]*weekState
	// order holds week labels ascending by start date. Labels are never
	// sorted lexically: "YYYY-WW" only compares correctly within a year.
	order []string

	// tasksByWeek keeps each task under its original week for the whole
	// run; membership in the change list marks a task as moved.
	tasksByWeek map[string][]Task
}

func newLedger(in Input) *ledger {
	l := &ledger{
		currentStart: week.StartOf(in.Today),
		currentHours: in.CurrentWeekHours,
		futureHours:  in.FutureWeekHours,
		weeks:        make(map[string]*weekState),
		tasksByWeek:  make(map[string][]Task),
	}
	l.currentLabel = week.Label(l.currentStart)

	for _, t := range in.Tasks {
		label := t.YearWeek
		l.tasksByWeek[label] = append(l.tasksByWeek[label], t)

		ws, ok := l.weeks[label]
		if !ok {
			ws = &weekState{
				label: label,
				start: week.StartOf(t.WeekStart),
				end:   t.WeekEnd,
				class: l.classify(week.StartOf(t.WeekStart), label),
			}
			l.weeks[label] = ws
			l.order = append(l.order, label)
		}
		ws.load += t.Hours()
	}

	sort.SliceStable(l.order, func(i, j int) bool {
		return l.weeks[l.order[i]].start.Before(l.weeks[l.order[j]].start)
	})

	// The current week participates even when it holds no tasks: it is a
	// push destination for overdue work and the pull phase's only target.
	if _, ok := l.weeks[l.currentLabel]; !ok {
		l.insert(&weekState{
			label: l.currentLabel,
			start: l.currentStart,
			end:   week.EndOf(l.currentStart),
			class: WeekCurrent,
		})
	}

	return l
}

// classify places a week relative to today: strictly before the current
// week's Monday is overdue, the current label is current, all else future.
func (l *ledger) classify(start time.Time, label string) WeekClass {
	if start.Before(l.currentStart) {
		return WeekOverdue
	}
	if label == l.currentLabel {
		return WeekCurrent
	}
	return WeekFuture
}

// capacity maps a week's classification to its hour budget. Overdue weeks
// get zero so that every task in them is forced forward.
func (l *ledger) capacity(label string) float64 {
	ws, ok := l.weeks[label]
	if !ok {
		return l.futureHours
	}
	switch ws.class {
	case WeekOverdue:
		return 0
	case WeekCurrent:
		return l.currentHours
	default:
		return l.futureHours
	}
}

// insert adds a week keeping order sorted by start date.
func (l *ledger) insert(ws *weekState) {
	l.weeks[ws.label] = ws
	pos := sort.Search(len(l.order), func(i int) bool {
		return l.weeks[l.order[i]].start.After(ws.start)
	})
	l.order = append(l.order, "")
	copy(l.order[pos+1:], l.order[pos:])
	l.order[pos] = ws.label
}

// extend appends a brand-new future week one week after the latest known
// week (or at the current week when the ledger is empty) and returns it.
func (l *ledger) extend() *weekState {
	start := l.currentStart
	if len(l.order) > 0 {
		last := l.weeks[l.order[len(l.order)-1]]
		start = last.start.AddDate(0, 0, 7)
	}
	ws := &weekState{
		label: week.Label(start),
		start: start,
		end:   week.EndOf(start),
		class: WeekFuture,
	}
	l.insert(ws)
	return ws
}

func (l *ledger) load(label string) int {
	if ws, ok := l.weeks[label]; ok {
		return ws.load
	}
	return 0
}

func (l *ledger) moveLoad(from, to string, hours int) {
	if ws, ok := l.weeks[from]; ok {
		ws.load -= hours
	}
	if ws, ok := l.weeks[to]; ok {
		ws.load += hours
	}
}
