package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type serviceFixture struct {
	accounts  *storage.AccountStore
	tasks     *storage.TaskStore
	service   TaskService
	tasksPath string
}

func newServiceFixture(t *testing.T, accountRecords, taskRecords string) *serviceFixture {
	t.Helper()

	dir := t.TempDir()
	accountsPath := filepath.Join(dir, "user.txt")
	tasksPath := filepath.Join(dir, "tasks.txt")
	require.NoError(t, os.WriteFile(accountsPath, []byte(accountRecords), 0o644))
	require.NoError(t, os.WriteFile(tasksPath, []byte(taskRecords), 0o644))

	accounts := storage.NewAccountStore(zerolog.Nop(), accountsPath)
	require.NoError(t, accounts.Load())
	tasks := storage.NewTaskStore(zerolog.Nop(), tasksPath)
	require.NoError(t, tasks.Load())

	return &serviceFixture{
		accounts:  accounts,
		tasks:     tasks,
		service:   NewTaskService(zerolog.Nop(), accounts, tasks),
		tasksPath: tasksPath,
	}
}

func (f *serviceFixture) reload(t *testing.T) []models.Task {
	t.Helper()

	store := storage.NewTaskStore(zerolog.Nop(), f.tasksPath)
	require.NoError(t, store.Load())
	return store.All()
}

func TestAddTask(t *testing.T) {
	f := newServiceFixture(t, "admin;password\nbob;secret", "")

	task, err := f.service.AddTask(AddTaskParams{
		Owner:       "bob",
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     "2030-05-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", task.Username)
	assert.False(t, task.Completed)
	assert.Equal(t, models.DateOnly(time.Now()), task.AssignedDate)

	// AddTask persists immediately.
	persisted := f.reload(t)
	require.Len(t, persisted, 1)
	assert.Equal(t, "Write report", persisted[0].Title)
}

func TestAddTaskUnknownOwner(t *testing.T) {
	f := newServiceFixture(t, "admin;password", "")

	_, err := f.service.AddTask(AddTaskParams{
		Owner:   "nobody",
		Title:   "Orphan",
		DueDate: "2030-05-01",
	})
	require.ErrorIs(t, err, ErrUnknownUser)
	assert.Empty(t, f.reload(t))
}

func TestAddTaskInvalidDate(t *testing.T) {
	f := newServiceFixture(t, "bob;secret", "")

	for _, dueDate := range []string{"", "next tuesday", "01-05-2030", "2030-13-40"} {
		_, err := f.service.AddTask(AddTaskParams{
			Owner:   "bob",
			Title:   "Bad date",
			DueDate: dueDate,
		})
		assert.ErrorIs(t, err, ErrInvalidDate, "due date %q", dueDate)
	}
	assert.Empty(t, f.reload(t))
}

func TestAddTaskPastDueDateIsOverdue(t *testing.T) {
	f := newServiceFixture(t, "bob;secret", "")

	yesterday := time.Now().AddDate(0, 0, -1).Format(time.DateOnly)
	task, err := f.service.AddTask(AddTaskParams{
		Owner:   "bob",
		Title:   "Late already",
		DueDate: yesterday,
	})
	require.NoError(t, err)
	assert.True(t, task.Overdue(time.Now()))
}

func TestListForOwnerKeepsInsertionOrder(t *testing.T) {
	f := newServiceFixture(t, "bob;secret\ncarol;pw",
		"bob;one;d;2030-01-01;2026-09-01;No\n"+
			"carol;two;d;2030-01-01;2026-09-01;No\n"+
			"bob;three;d;2030-01-01;2026-09-01;No")

	all := f.service.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Title)

	mine := f.service.ListForOwner("bob")
	require.Len(t, mine, 2)
	assert.Equal(t, "one", mine[0].Title)
	assert.Equal(t, "three", mine[1].Title)
}

func TestEditOutOfRange(t *testing.T) {
	f := newServiceFixture(t, "bob;secret",
		"bob;one;d;2030-01-01;2026-09-01;No")

	for _, position := range []int{0, -1, 2} {
		_, err := f.service.CompleteTask("bob", position)
		assert.ErrorIs(t, err, ErrOutOfRange, "position %d", position)
	}

	// Nothing changed, nothing to flush.
	require.NoError(t, f.service.Flush())
	mine := f.service.ListForOwner("bob")
	require.Len(t, mine, 1)
	assert.False(t, mine[0].Completed)
}

func TestCompleteTaskIsTerminal(t *testing.T) {
	f := newServiceFixture(t, "bob;secret\ncarol;pw",
		"bob;one;d;2030-01-01;2026-09-01;No")

	task, err := f.service.CompleteTask("bob", 1)
	require.NoError(t, err)
	assert.True(t, task.Completed)

	// Every further edit is refused and the task stays unchanged.
	_, err = f.service.CompleteTask("bob", 1)
	assert.ErrorIs(t, err, ErrTaskLocked)
	_, err = f.service.RescheduleTask("bob", 1, "2031-01-01")
	assert.ErrorIs(t, err, ErrTaskLocked)
	_, err = f.service.ReassignTask("bob", 1, "carol")
	assert.ErrorIs(t, err, ErrTaskLocked)

	mine := f.service.ListForOwner("bob")
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Completed)
	assert.Equal(t, "2030-01-01", mine[0].DueDate.Format(time.DateOnly))
}

func TestRescheduleTask(t *testing.T) {
	f := newServiceFixture(t, "bob;secret",
		"bob;one;d;2030-01-01;2026-09-01;No")

	_, err := f.service.RescheduleTask("bob", 1, "not a date")
	require.ErrorIs(t, err, ErrInvalidDate)

	// The failed attempt left the task unchanged; retry succeeds.
	task, err := f.service.RescheduleTask("bob", 1, "2031-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2031-06-15", task.DueDate.Format(time.DateOnly))
}

func TestReassignTask(t *testing.T) {
	f := newServiceFixture(t, "bob;secret\ncarol;pw",
		"bob;one;d;2030-01-01;2026-09-01;No")

	_, err := f.service.ReassignTask("bob", 1, "nobody")
	require.ErrorIs(t, err, ErrUnknownUser)
	require.Len(t, f.service.ListForOwner("bob"), 1)

	task, err := f.service.ReassignTask("bob", 1, "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol", task.Username)

	assert.Empty(t, f.service.ListForOwner("bob"))
	require.Len(t, f.service.ListForOwner("carol"), 1)
}

func TestFlushPersistsEdits(t *testing.T) {
	f := newServiceFixture(t, "bob;secret",
		"bob;one;d;2030-01-01;2026-09-01;No")

	_, err := f.service.CompleteTask("bob", 1)
	require.NoError(t, err)

	// Edits stay in memory until flushed.
	assert.False(t, f.reload(t)[0].Completed)

	require.NoError(t, f.service.Flush())
	assert.True(t, f.reload(t)[0].Completed)
}
