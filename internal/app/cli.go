package app

import (
	"os"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/delivery/cli"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

func MustRunCLI() {
	cfg := config.Global()

	taskService := services.NewTaskService(
		globalLogger,
		globalAccountStore,
		globalTaskStore,
	)
	reportService := services.NewReportService(
		globalLogger,
		globalAccountStore,
		globalTaskStore,
		cfg.Files.TaskOverview,
		cfg.Files.UserOverview,
	)

	handler := cli.New(
		globalLogger,
		os.Stdin,
		os.Stdout,
		globalAccountStore,
		taskService,
		reportService,
		cfg.AdminUsername,
	)

	globalLogger.Info().Msg("starting menu session")
	err := handler.Run()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("menu session failed")
		panic(err)
	}
	globalLogger.Info().Msg("menu session ended")
}
