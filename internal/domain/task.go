package domain

import "time"

// Task is one schedulable unit of work belonging to a goal, assigned to a
// specific Monday-to-Sunday week.
type Task struct {
	ID          string
	GoalID      string
	UserID      string
	Title       string
	Description string

	// Scheduling. WeekStart is always a Monday, WeekEnd the following
	// Sunday, and YearWeek the derived "YYYY-WW" label.
	WeekStart time.Time
	WeekEnd   time.Time
	YearWeek  string

	// TargetCount is the task's effort in whatever unit the goal tracks
	// (hours, pages, reps). Scheduling clamps it into [1, 8] hours.
	TargetCount int
	ActualCount int

	Status   TaskStatus
	Priority int // 1 (urgent) .. 5 (optional)

	SortOrder int

	CreatedAt time.Time
	UpdatedAt time.Time
}
