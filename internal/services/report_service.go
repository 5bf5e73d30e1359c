package services

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type reportServiceImpl struct {
	logger           zerolog.Logger
	accounts         *storage.AccountStore
	tasks            *storage.TaskStore
	taskOverviewPath string
	userOverviewPath string
}

func NewReportService(
	logger zerolog.Logger,
	accounts *storage.AccountStore,
	tasks *storage.TaskStore,
	taskOverviewPath string,
	userOverviewPath string,
) ReportService {
	return &reportServiceImpl{
		logger:           logger,
		accounts:         accounts,
		tasks:            tasks,
		taskOverviewPath: taskOverviewPath,
		userOverviewPath: userOverviewPath,
	}
}

func (s *reportServiceImpl) Generate() (*TaskOverview, *UserOverview, error) {
	tasks := s.tasks.All()
	today := time.Now()

	taskOverview := buildTaskOverview(tasks, today)
	userOverview := buildUserOverview(s.accounts.Usernames(), tasks, today)

	err := os.WriteFile(s.taskOverviewPath,
		[]byte(renderTaskOverview(taskOverview)), 0o644)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.taskOverviewPath).
			Msg("failed to write task overview")
		return nil, nil, err
	}

	err = os.WriteFile(s.userOverviewPath,
		[]byte(renderUserOverview(userOverview)), 0o644)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.userOverviewPath).
			Msg("failed to write user overview")
		return nil, nil, err
	}

	s.logger.Info().
		Int("tasks", taskOverview.Total).
		Int("users", userOverview.TotalUsers).
		Msg("generated reports")
	return taskOverview, userOverview, nil
}

func (s *reportServiceImpl) ReadCached() (string, string, error) {
	if !fileExists(s.taskOverviewPath) || !fileExists(s.userOverviewPath) {
		_, _, err := s.Generate()
		if err != nil {
			return "", "", err
		}
	}

	taskDoc, err := os.ReadFile(s.taskOverviewPath)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.taskOverviewPath).
			Msg("failed to read task overview")
		return "", "", err
	}

	userDoc, err := os.ReadFile(s.userOverviewPath)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.userOverviewPath).
			Msg("failed to read user overview")
		return "", "", err
	}

	s.logger.Debug().Msg("read cached reports")
	return string(taskDoc), string(userDoc), nil
}

func buildTaskOverview(tasks []models.Task, today time.Time) *TaskOverview {
	overview := &TaskOverview{Total: len(tasks)}
	if overview.Total == 0 {
		return overview
	}

	for _, task := range tasks {
		if task.Completed {
			overview.Completed++
		} else {
			overview.Uncompleted++
		}
		if task.Overdue(today) {
			overview.Overdue++
		}
	}

	overview.PercentUncompleted = percent(overview.Uncompleted, overview.Total)
	overview.PercentOverdue = percent(overview.Overdue, overview.Total)
	return overview
}

func buildUserOverview(usernames []string, tasks []models.Task, today time.Time) *UserOverview {
	overview := &UserOverview{
		TotalUsers: len(usernames),
		TotalTasks: len(tasks),
		Users:      make([]UserTaskStats, 0, len(usernames)),
	}

	for _, username := range usernames {
		stats := UserTaskStats{Username: username}
		for _, task := range tasks {
			if task.Username != username {
				continue
			}
			stats.Assigned++
			if task.Completed {
				stats.Completed++
			} else {
				stats.Uncompleted++
			}
			if task.Overdue(today) {
				stats.Overdue++
			}
		}

		if stats.Assigned > 0 {
			stats.PercentOfTotal = percent(stats.Assigned, overview.TotalTasks)
			stats.PercentCompleted = percent(stats.Completed, stats.Assigned)
			stats.PercentUncompleted = percent(stats.Uncompleted, stats.Assigned)
			stats.PercentOverdue = percent(stats.Overdue, stats.Assigned)
		}
		overview.Users = append(overview.Users, stats)
	}
	return overview
}

func renderTaskOverview(overview *TaskOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total tasks: %d\n", overview.Total)
	fmt.Fprintf(&b, "Completed tasks: %d\n", overview.Completed)
	fmt.Fprintf(&b, "Uncompleted tasks: %d\n", overview.Uncompleted)
	fmt.Fprintf(&b, "Overdue tasks: %d\n", overview.Overdue)
	fmt.Fprintf(&b, "Percentage of tasks that are incomplete: %.2f%%\n",
		overview.PercentUncompleted)
	fmt.Fprintf(&b, "Percentage of tasks that are overdue: %.2f%%\n",
		overview.PercentOverdue)
	return b.String()
}

func renderUserOverview(overview *UserOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total users: %d\n", overview.TotalUsers)
	fmt.Fprintf(&b, "Total tasks: %d\n", overview.TotalTasks)

	for _, stats := range overview.Users {
		fmt.Fprintf(&b, "\nUser: %s\n", stats.Username)
		fmt.Fprintf(&b, "Total tasks assigned to user: %d\n", stats.Assigned)
		fmt.Fprintf(&b, "Percentage of total tasks assigned to user: %.2f%%\n",
			stats.PercentOfTotal)
		fmt.Fprintf(&b, "Percentage of tasks assigned to user that have been completed: %.2f%%\n",
			stats.PercentCompleted)
		fmt.Fprintf(&b, "Percentage of tasks assigned to user that must still be completed: %.2f%%\n",
			stats.PercentUncompleted)
		fmt.Fprintf(&b, "Percentage of tasks assigned to user that are overdue: %.2f%%\n",
			stats.PercentOverdue)
	}
	return b.String()
}

// percent rounds half away from zero to two decimal places. The same
// policy applies to both overview documents.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
