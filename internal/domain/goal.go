package domain

import "time"

// Goal is a user-defined outcome with a deadline and a measurable target.
// Tasks are carved out of it one week at a time.
type Goal struct {
	ID          string
	UserID      string
	Title       string
	Description string

	// Progress
	TargetCount  int
	CurrentCount int

	// Schedule window; EndDate is the deadline the rebalancer must not
	// push tasks past.
	StartDate time.Time
	EndDate   time.Time

	Priority int // 1 (urgent) .. 5 (optional)
	Status   GoalStatus

	Color string
	Tags  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
