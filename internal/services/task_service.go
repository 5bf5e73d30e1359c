package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type taskServiceImpl struct {
	logger   zerolog.Logger
	accounts *storage.AccountStore
	tasks    *storage.TaskStore
}

func NewTaskService(
	logger zerolog.Logger,
	accounts *storage.AccountStore,
	tasks *storage.TaskStore,
) TaskService {
	return &taskServiceImpl{
		logger:   logger,
		accounts: accounts,
		tasks:    tasks,
	}
}

func (s *taskServiceImpl) AddTask(params AddTaskParams) (*models.Task, error) {
	if !s.accounts.Exists(params.Owner) {
		s.logger.Warn().
			Str("owner", params.Owner).
			Msg("task owner is not registered")
		return nil, ErrUnknownUser
	}

	dueDate, err := parseDate(params.DueDate)
	if err != nil {
		s.logger.Warn().
			Str("due_date", params.DueDate).
			Msg("invalid due date")
		return nil, err
	}

	task := s.tasks.Append(models.Task{
		Username:     params.Owner,
		Title:        params.Title,
		Description:  params.Description,
		DueDate:      dueDate,
		AssignedDate: models.DateOnly(time.Now()),
		Completed:    false,
	})

	err = s.tasks.Save()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to save task records")
		return nil, err
	}
	s.logger.Debug().
		Uint64("task_id", task.ID).
		Msg("saved task records")

	s.logger.Info().
		Uint64("task_id", task.ID).
		Str("owner", task.Username).
		Msg("added task")

	added := *task
	return &added, nil
}

func (s *taskServiceImpl) ListAll() []models.Task {
	return s.tasks.All()
}

func (s *taskServiceImpl) ListForOwner(username string) []models.Task {
	return s.tasks.ForOwner(username)
}

func (s *taskServiceImpl) CompleteTask(owner string, position int) (*models.Task, error) {
	task, err := s.selectEditable(owner, position)
	if err != nil {
		return nil, err
	}

	task.Completed = true
	s.tasks.MarkDirty()

	s.logger.Info().
		Uint64("task_id", task.ID).
		Str("owner", owner).
		Msg("completed task")

	updated := *task
	return &updated, nil
}

func (s *taskServiceImpl) RescheduleTask(owner string, position int, dueDate string) (*models.Task, error) {
	task, err := s.selectEditable(owner, position)
	if err != nil {
		return nil, err
	}

	parsed, err := parseDate(dueDate)
	if err != nil {
		s.logger.Warn().
			Uint64("task_id", task.ID).
			Str("due_date", dueDate).
			Msg("invalid due date")
		return nil, err
	}

	task.DueDate = parsed
	s.tasks.MarkDirty()

	s.logger.Info().
		Uint64("task_id", task.ID).
		Str("due_date", dueDate).
		Msg("rescheduled task")

	updated := *task
	return &updated, nil
}

func (s *taskServiceImpl) ReassignTask(owner string, position int, newOwner string) (*models.Task, error) {
	task, err := s.selectEditable(owner, position)
	if err != nil {
		return nil, err
	}

	if !s.accounts.Exists(newOwner) {
		s.logger.Warn().
			Uint64("task_id", task.ID).
			Str("new_owner", newOwner).
			Msg("new task owner is not registered")
		return nil, ErrUnknownUser
	}

	task.Username = newOwner
	s.tasks.MarkDirty()

	s.logger.Info().
		Uint64("task_id", task.ID).
		Str("owner", owner).
		Str("new_owner", newOwner).
		Msg("reassigned task")

	updated := *task
	return &updated, nil
}

func (s *taskServiceImpl) Flush() error {
	if !s.tasks.Dirty() {
		return nil
	}

	err := s.tasks.Save()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to save task records")
		return err
	}

	s.logger.Info().Msg("flushed task edits")
	return nil
}

// selectEditable resolves a 1-based position within the owner's
// current listing and refuses completed tasks.
func (s *taskServiceImpl) selectEditable(owner string, position int) (*models.Task, error) {
	task, ok := s.tasks.ForOwnerAt(owner, position)
	if !ok {
		s.logger.Warn().
			Str("owner", owner).
			Int("position", position).
			Msg("task position out of range")
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, position)
	}

	if task.Completed {
		s.logger.Warn().
			Uint64("task_id", task.ID).
			Msg("task is completed and locked")
		return nil, ErrTaskLocked
	}
	return task, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return date, nil
}
