package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

func newTaskFixture(t *testing.T, contents string) *TaskStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return NewTaskStore(zerolog.Nop(), path)
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)
	return parsed
}

func TestTaskSaveLoadRoundTrip(t *testing.T) {
	store := newTaskFixture(t, "")
	require.NoError(t, store.Load())

	store.Append(models.Task{
		Username:     "bob",
		Title:        "Write report",
		Description:  "Quarterly numbers",
		DueDate:      date(t, "2026-10-01"),
		AssignedDate: date(t, "2026-09-01"),
	})
	store.Append(models.Task{
		Username:     "carol",
		Title:        "Review report",
		Description:  "After bob is done",
		DueDate:      date(t, "2026-10-05"),
		AssignedDate: date(t, "2026-09-02"),
		Completed:    true,
	})
	require.NoError(t, store.Save())

	reloaded := NewTaskStore(zerolog.Nop(), store.path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, store.All(), reloaded.All())
}

func TestTaskLoadParsesRecords(t *testing.T) {
	store := newTaskFixture(t,
		"bob;Write report;Quarterly numbers;2026-10-01;2026-09-01;No\n"+
			"carol;Review report;After bob is done;2026-10-05;2026-09-02;Yes")
	require.NoError(t, store.Load())

	tasks := store.All()
	require.Len(t, tasks, 2)

	assert.Equal(t, models.Task{
		ID:           1,
		Username:     "bob",
		Title:        "Write report",
		Description:  "Quarterly numbers",
		DueDate:      date(t, "2026-10-01"),
		AssignedDate: date(t, "2026-09-01"),
		Completed:    false,
	}, tasks[0])
	assert.True(t, tasks[1].Completed)
	assert.Equal(t, uint64(2), tasks[1].ID)
}

func TestTaskLoadRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "too few fields",
			contents: "bob;Write report;2026-10-01;2026-09-01;No",
		},
		{
			name:     "too many fields",
			contents: "bob;Write report;extra;field;2026-10-01;2026-09-01;No",
		},
		{
			name:     "bad due date",
			contents: "bob;Write report;desc;next tuesday;2026-09-01;No",
		},
		{
			name:     "bad assigned date",
			contents: "bob;Write report;desc;2026-10-01;01-09-2026;No",
		},
		{
			name:     "bad completion token",
			contents: "bob;Write report;desc;2026-10-01;2026-09-01;Maybe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTaskFixture(t, "ok;first;fine;2026-01-01;2026-01-01;No\n"+tt.contents)

			err := store.Load()
			require.ErrorIs(t, err, ErrMalformedRecord)
			assert.ErrorContains(t, err, "line 2")
			// A malformed line aborts the whole load.
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestTaskAppendDoesNotPersist(t *testing.T) {
	store := newTaskFixture(t, "")
	require.NoError(t, store.Load())

	store.Append(models.Task{
		Username:     "bob",
		Title:        "Ephemeral",
		DueDate:      date(t, "2026-10-01"),
		AssignedDate: date(t, "2026-09-01"),
	})

	reloaded := NewTaskStore(zerolog.Nop(), store.path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 0, reloaded.Len())
}

func TestTaskForOwnerPositions(t *testing.T) {
	store := newTaskFixture(t,
		"bob;one;d;2026-10-01;2026-09-01;No\n"+
			"carol;two;d;2026-10-01;2026-09-01;No\n"+
			"bob;three;d;2026-10-01;2026-09-01;No")
	require.NoError(t, store.Load())

	mine := store.ForOwner("bob")
	require.Len(t, mine, 2)
	assert.Equal(t, "one", mine[0].Title)
	assert.Equal(t, "three", mine[1].Title)

	task, ok := store.ForOwnerAt("bob", 2)
	require.True(t, ok)
	assert.Equal(t, "three", task.Title)

	for _, position := range []int{-1, 0, 3} {
		_, ok := store.ForOwnerAt("bob", position)
		assert.False(t, ok, "position %d", position)
	}
}

func TestTaskSaveClearsDirty(t *testing.T) {
	store := newTaskFixture(t, "bob;one;d;2026-10-01;2026-09-01;No")
	require.NoError(t, store.Load())
	assert.False(t, store.Dirty())

	store.MarkDirty()
	assert.True(t, store.Dirty())

	require.NoError(t, store.Save())
	assert.False(t, store.Dirty())
}
