package services

import (
	"errors"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

var (
	ErrUnknownUser = errors.New("user is not registered")
	ErrInvalidDate = errors.New("invalid date")
	ErrOutOfRange  = errors.New("task position out of range")
	ErrTaskLocked  = errors.New("task is completed and cannot be edited")
)

type TaskService interface {
	// AddTask appends a task owned by params.Owner with today as the
	// assigned date and persists the task store.
	//
	// It returns ErrUnknownUser if the owner is not a registered
	// account, or ErrInvalidDate if the due date is not a well-formed
	// YYYY-MM-DD calendar date. A due date in the past is accepted.
	AddTask(params AddTaskParams) (*models.Task, error)

	// ListAll returns every task in insertion order.
	ListAll() []models.Task

	// ListForOwner returns the owner's tasks, preserving relative
	// insertion order. The 1-based positions of the returned slice
	// are the only identifiers the edit operations accept, and are
	// valid only until the next mutation: take a fresh listing after
	// every edit.
	ListForOwner(username string) []models.Task

	// CompleteTask marks the task at the owner's 1-based position as
	// completed. Completion is terminal: no field of the task may
	// change afterwards.
	//
	// It returns ErrOutOfRange if the position is outside the owner's
	// listing or ErrTaskLocked if the task is already completed.
	CompleteTask(owner string, position int) (*models.Task, error)

	// RescheduleTask replaces the due date of the task at the owner's
	// 1-based position.
	//
	// It returns ErrOutOfRange or ErrTaskLocked as CompleteTask does,
	// or ErrInvalidDate on a malformed date; the task is unchanged on
	// every failure, so the caller may retry.
	RescheduleTask(owner string, position int, dueDate string) (*models.Task, error)

	// ReassignTask moves the task at the owner's 1-based position to
	// a new owner.
	//
	// It returns ErrOutOfRange or ErrTaskLocked as CompleteTask does,
	// or ErrUnknownUser if the new owner is not registered; the task
	// is unchanged on every failure.
	ReassignTask(owner string, position int, newOwner string) (*models.Task, error)

	// Flush persists the task store if any edit has left it dirty.
	// Edits are lost if the session ends without flushing.
	Flush() error
}

type AddTaskParams struct {
	Owner       string
	Title       string
	Description string
	DueDate     string
}

type ReportService interface {
	// Generate derives both overviews from the current store
	// snapshots and writes both report documents.
	Generate() (*TaskOverview, *UserOverview, error)

	// ReadCached returns the raw text of both report documents,
	// generating them first only if either is missing. Existing
	// documents are returned as-is: reports reflect new tasks only
	// after an explicit Generate.
	ReadCached() (taskDoc, userDoc string, err error)
}

type TaskOverview struct {
	Total              int
	Completed          int
	Uncompleted        int
	Overdue            int
	PercentUncompleted float64
	PercentOverdue     float64
}

type UserOverview struct {
	TotalUsers int
	TotalTasks int
	Users      []UserTaskStats
}

type UserTaskStats struct {
	Username string
	Assigned int
	// PercentOfTotal is the user's share of the global task total,
	// not a ratio within the user's own subset.
	PercentOfTotal     float64
	Completed          int
	PercentCompleted   float64
	Uncompleted        int
	PercentUncompleted float64
	Overdue            int
	PercentOverdue     float64
}
