package storage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

const taskFieldCount = 6

const (
	completedToken   = "Yes"
	uncompletedToken = "No"
)

// TaskStore holds the ordered task sequence, backed by a record file
// of six-field lines: username;title;description;due_date;
// assigned_date;completed. The order on disk is the insertion order.
type TaskStore struct {
	logger zerolog.Logger
	path   string
	tasks  []models.Task
	nextID uint64
	dirty  bool
}

func NewTaskStore(logger zerolog.Logger, path string) *TaskStore {
	return &TaskStore{
		logger: logger,
		path:   path,
	}
}

// Load reads the record file, replacing the in-memory sequence. Any
// malformed line aborts the whole load with ErrMalformedRecord naming
// the line: a dropped task record would silently shift every later
// position in per-owner listings.
func (s *TaskStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to read task records")
		return err
	}

	var tasks []models.Task
	var nextID uint64
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}

		task, err := parseTaskRecord(line)
		if err != nil {
			s.logger.Error().
				Err(err).
				Int("line", i+1).
				Msg("malformed task record")
			return fmt.Errorf("task record line %d: %w", i+1, err)
		}

		nextID++
		task.ID = nextID
		tasks = append(tasks, task)
	}

	s.tasks = tasks
	s.nextID = nextID
	s.dirty = false
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("loaded task records")
	return nil
}

// Save serializes the full sequence, overwriting the record file, and
// clears the dirty flag.
func (s *TaskStore) Save() error {
	lines := make([]string, len(s.tasks))
	for i, task := range s.tasks {
		lines[i] = formatTaskRecord(task)
	}

	err := os.WriteFile(s.path, []byte(strings.Join(lines, "\n")), 0o644)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to write task records")
		return err
	}

	s.dirty = false
	s.logger.Debug().
		Int("count", len(lines)).
		Msg("saved task records")
	return nil
}

// Append adds the task to the in-memory sequence, assigning its ID.
// It does not persist; callers save explicitly.
func (s *TaskStore) Append(task models.Task) *models.Task {
	s.nextID++
	task.ID = s.nextID
	s.tasks = append(s.tasks, task)
	return &s.tasks[len(s.tasks)-1]
}

// All returns a copy of the whole sequence in insertion order.
func (s *TaskStore) All() []models.Task {
	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// ForOwner returns a copy of the owner's tasks, preserving relative
// insertion order. The 1-based positions of the returned slice are the
// identifiers ForOwnerAt resolves, and stay valid only until the
// sequence next changes.
func (s *TaskStore) ForOwner(username string) []models.Task {
	var tasks []models.Task
	for _, task := range s.tasks {
		if task.Username == username {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// ForOwnerAt resolves a 1-based position within the owner's current
// listing to the stored task. The returned pointer aliases the store;
// callers that mutate through it must MarkDirty.
func (s *TaskStore) ForOwnerAt(username string, position int) (*models.Task, bool) {
	n := 0
	for i := range s.tasks {
		if s.tasks[i].Username != username {
			continue
		}
		n++
		if n == position {
			return &s.tasks[i], true
		}
	}
	return nil, false
}

// MarkDirty records that the in-memory sequence has diverged from the
// record file.
func (s *TaskStore) MarkDirty() {
	s.dirty = true
}

func (s *TaskStore) Dirty() bool {
	return s.dirty
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

func parseTaskRecord(line string) (models.Task, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != taskFieldCount {
		return models.Task{}, fmt.Errorf("%w: expected %d fields, got %d",
			ErrMalformedRecord, taskFieldCount, len(fields))
	}

	dueDate, err := time.Parse(time.DateOnly, fields[3])
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: due date %q", ErrMalformedRecord, fields[3])
	}
	assignedDate, err := time.Parse(time.DateOnly, fields[4])
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: assigned date %q", ErrMalformedRecord, fields[4])
	}

	var completed bool
	switch fields[5] {
	case completedToken:
		completed = true
	case uncompletedToken:
		completed = false
	default:
		return models.Task{}, fmt.Errorf("%w: completion token %q", ErrMalformedRecord, fields[5])
	}

	return models.Task{
		Username:     fields[0],
		Title:        fields[1],
		Description:  fields[2],
		DueDate:      dueDate,
		AssignedDate: assignedDate,
		Completed:    completed,
	}, nil
}

func formatTaskRecord(task models.Task) string {
	completed := uncompletedToken
	if task.Completed {
		completed = completedToken
	}
	return strings.Join([]string{
		task.Username,
		task.Title,
		task.Description,
		task.DueDate.Format(time.DateOnly),
		task.AssignedDate.Format(time.DateOnly),
		completed,
	}, fieldSeparator)
}
