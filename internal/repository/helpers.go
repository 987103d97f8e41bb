package repository

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses a stored date column, tolerating an empty value.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseTimestamp parses a stored RFC3339 timestamp column.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// joinTags flattens a tag list for single-column storage.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// splitTags restores a tag list; an empty column means no tags.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
