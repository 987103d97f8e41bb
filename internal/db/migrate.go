package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies all schema statements. Statements are idempotent; ALTER
// TABLE additions tolerate re-runs by ignoring duplicate-column errors.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS goals (
		goal_id       TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		target_count  INTEGER NOT NULL DEFAULT 0,
		current_count INTEGER NOT NULL DEFAULT 0,
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		priority      INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 5),
		status        TEXT NOT NULL DEFAULT 'ACTIVE'
		              CHECK(status IN ('ACTIVE','COMPLETED','PAUSED','ARCHIVED')),
		color         TEXT NOT NULL DEFAULT '#3B82F6',
		tags          TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_user_status ON goals(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		task_id      TEXT PRIMARY KEY,
		goal_id      TEXT NOT NULL REFERENCES goals(goal_id) ON DELETE CASCADE,
		user_id      TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		week_start   TEXT NOT NULL,
		week_end     TEXT NOT NULL,
		year_week    TEXT NOT NULL,
		target_count INTEGER NOT NULL DEFAULT 1,
		actual_count INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'NEW'
		             CHECK(status IN ('NEW','IN_PROGRESS','DONE','BLOCKED','ROLLED_OVER','CANCELLED')),
		priority     INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 5),
		sort_order   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_goal ON tasks(goal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_week ON tasks(user_id, week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks(user_id, status)`,
}
