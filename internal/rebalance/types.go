// Package rebalance redistributes a user's pending tasks across weeks.
//
// The computation is pure and deterministic: it operates on an in-memory
// snapshot of tasks, performs no I/O, and does all bookkeeping in state
// owned by a single Calculate call. Two phases run in order: a push phase
// moves work out of overdue and overloaded weeks (lowest priority first),
// then a pull phase draws high-priority future work back into spare
// current-week capacity (highest priority first).
package rebalance

import (
	"time"

	"github.com/goalpost-app/goalpost/internal/domain"
)

// Task is the scheduling snapshot of one pending task, joined with the
// goal fields the engine needs. Rows with terminal status (DONE/CANCELLED)
// must be filtered out before they reach the engine.
type Task struct {
	ID        string
	GoalID    string
	Title     string
	WeekStart time.Time // Monday
	WeekEnd   time.Time
	YearWeek  string

	// TargetCount is the stored effort value; 0 means unset.
	TargetCount int

	Status   domain.TaskStatus
	Priority int

	GoalTitle    string
	GoalDeadline *time.Time // nil means no deadline limits pushing
	GoalPriority int
}

// Input is everything one Calculate call consumes.
type Input struct {
	Tasks []Task

	// Today anchors week classification; injectable for tests.
	Today time.Time

	// CurrentWeekHours may be zero (push everything out of this week).
	// FutureWeekHours must be positive; the boundary validates it.
	CurrentWeekHours float64
	FutureWeekHours  float64
}

// Direction distinguishes the two kinds of moves.
type Direction string

const (
	Push Direction = "push"
	Pull Direction = "pull"
)

// ActionMove is the only change action the engine emits; Apply ignores
// anything else so callers can filter or annotate change lists.
const ActionMove = "move"

// Change is one proposed task move. Nothing is mutated until a change
// list is applied.
type Change struct {
	Action          string    `json:"action"`
	TaskID          string    `json:"task_id"`
	TaskTitle       string    `json:"task_title"`
	FromWeek        string    `json:"from_week"`
	ToWeek          string    `json:"to_week"`
	TargetWeekStart string    `json:"target_week_start"` // ISO date, the Monday
	Reason          string    `json:"reason"`
	IsOverdue       bool      `json:"is_overdue"`
	Direction       Direction `json:"direction"`
}

// OverloadedWeek reports a non-overdue week whose load still exceeds its
// capacity after both phases.
type OverloadedWeek struct {
	Week      string  `json:"week"`
	Hours     float64 `json:"hours"`
	Capacity  float64 `json:"capacity"`
	Excess    float64 `json:"excess"`
	TaskCount int     `json:"task_count"`
}

// Summary totals the plan's bookkeeping.
type Summary struct {
	TotalTasksAnalyzed int              `json:"total_tasks_analyzed"`
	TasksToMove        int              `json:"tasks_to_move"`
	HoursPerWeek       float64          `json:"hours_per_week"`
	CurrentWeekHours   float64          `json:"current_week_hours"`
	OverloadedWeeks    []OverloadedWeek `json:"overloaded_weeks"`
	OverdueTasksMoved  int              `json:"overdue_tasks_moved"`
	PulledForward      int              `json:"pulled_forward"`
}

// Plan is the externally visible result of one rebalance computation.
type Plan struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations"`
	Changes         []Change `json:"changes"`
	Summary         Summary  `json:"summary"`
}

// AppliedChange records one successfully committed move.
type AppliedChange struct {
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	FromWeek  string    `json:"from_week"`
	ToWeek    string    `json:"to_week"`
	Direction Direction `json:"direction"`
}

// ApplyError records one change that could not be committed. Errors are
// isolated per task and never abort the batch.
type ApplyError struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

// ApplyResult is the outcome of committing a change list.
type ApplyResult struct {
	Success      bool            `json:"success"`
	Applied      []AppliedChange `json:"applied"`
	Errors       []ApplyError    `json:"errors"`
	TotalApplied int             `json:"total_applied"`
	TotalErrors  int             `json:"total_errors"`
}

// Hours converts a task's stored target count into schedulable hours.
// Unset, non-positive, and outlier (>20) values normalize to 1; everything
// else caps at 8. The clamp matters for determinism: every capacity check
// in both phases sees the same value for the same task.
func (t Task) Hours() int {
	tc := t.TargetCount
	if tc <= 0 || tc > 20 {
		return 1
	}
	return min(tc, 8)
}
