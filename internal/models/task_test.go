package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskOverdue(t *testing.T) {
	today := time.Date(2026, time.March, 10, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{
			name: "due yesterday and incomplete",
			task: Task{DueDate: today.AddDate(0, 0, -1)},
			want: true,
		},
		{
			name: "due today",
			task: Task{DueDate: today},
			want: false,
		},
		{
			name: "due today at an earlier hour",
			task: Task{DueDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "due tomorrow",
			task: Task{DueDate: today.AddDate(0, 0, 1)},
			want: false,
		},
		{
			name: "due yesterday but completed",
			task: Task{DueDate: today.AddDate(0, 0, -1), Completed: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Overdue(today))
		})
	}
}
