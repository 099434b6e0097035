package domain

import (
	"errors"
	"strings"
	"time"
)

// Task is a single to-do item. ID is assigned by the store and is opaque to callers.
type Task struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DueDate     time.Time `db:"due_date" json:"dueDate"`
	DateCreated time.Time `db:"date_created" json:"dateCreated"`
	Completed   bool      `db:"completed" json:"completed"`
}

// TaskFields are the user-editable fields of a task.
type TaskFields struct {
	Title       string
	Description string
	DueDate     time.Time
}

// SortKey selects the ordering of a task listing.
type SortKey string

const (
	SortNone        SortKey = ""
	SortDueDate     SortKey = "dueDate"
	SortDateCreated SortKey = "dateCreated"
)

// ParseSortKey maps a query value to a SortKey. Unknown values fall back to SortNone.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDueDate:
		return SortDueDate
	case SortDateCreated:
		return SortDateCreated
	default:
		return SortNone
	}
}

var ErrInvalidDueDate = errors.New("invalid due date")

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDueDate accepts RFC 3339 timestamps and bare dates. Bare dates are midnight UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDueDate
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Normalize(t), nil
		}
	}
	return time.Time{}, ErrInvalidDueDate
}

// Normalize converts t to UTC at millisecond precision, the resolution every store keeps.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
