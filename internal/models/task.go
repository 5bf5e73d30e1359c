package models

import "time"

type Task struct {
	// ID is assigned when the task enters the store and is
	// not persisted: the record format has no field for it,
	// so it is stable within a single session only.
	ID           uint64
	Username     string
	Title        string
	Description  string
	DueDate      time.Time
	AssignedDate time.Time
	Completed    bool
}

// Overdue reports whether the task's due date falls strictly before
// today, comparing calendar dates only. A completed task is never
// overdue, and neither is a task due today.
func (t Task) Overdue(today time.Time) bool {
	if t.Completed {
		return false
	}
	return DateOnly(t.DueDate).Before(DateOnly(today))
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
