package domain

type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalPaused    GoalStatus = "PAUSED"
	GoalArchived  GoalStatus = "ARCHIVED"
)

type TaskStatus string

const (
	TaskNew        TaskStatus = "NEW"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
	TaskBlocked    TaskStatus = "BLOCKED"
	TaskRolledOver TaskStatus = "ROLLED_OVER"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// Terminal reports whether a task in this status is finished work.
// Terminal tasks are invisible to scheduling.
func (s TaskStatus) Terminal() bool {
	return s == TaskDone || s == TaskCancelled
}

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"NEW": true, "IN_PROGRESS": true, "DONE": true,
	"BLOCKED": true, "ROLLED_OVER": true, "CANCELLED": true,
}

// Priority runs 1 (urgent) through 5 (optional); lower is more urgent.
const (
	PriorityUrgent   = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
	PriorityOptional = 5
)

// PriorityLabel returns the display name for a priority value.
func PriorityLabel(p int) string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityOptional:
		return "Optional"
	default:
		return "Medium"
	}
}
