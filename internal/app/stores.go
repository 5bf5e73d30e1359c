package app

import (
	"errors"
	"os"

	"github.com/adanyl0v/go-task-tracker/internal/config"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

// defaultAccountRecords seeds a fresh accounts file so there is always
// one account to log in with.
const defaultAccountRecords = "admin;password"

var (
	globalAccountStore *storage.AccountStore
	globalTaskStore    *storage.TaskStore
)

// MustOpenStores creates missing record files, then loads both stores.
// Malformed account lines are skipped with a warning; anything else is
// fatal.
func MustOpenStores() {
	cfg := config.Global().Files

	mustSeedFile(cfg.Accounts, defaultAccountRecords)
	mustSeedFile(cfg.Tasks, "")

	globalAccountStore = storage.NewAccountStore(globalLogger, cfg.Accounts)
	err := globalAccountStore.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrMalformedRecord) {
			globalLogger.Error().
				Err(err).
				Msg("failed to load account records")
			panic(err)
		}
		globalLogger.Warn().
			Err(err).
			Msg("skipped malformed account records")
	}

	globalTaskStore = storage.NewTaskStore(globalLogger, cfg.Tasks)
	err = globalTaskStore.Load()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to load task records")
		panic(err)
	}

	globalLogger.Info().
		Int("accounts", globalAccountStore.Len()).
		Int("tasks", globalTaskStore.Len()).
		Msg("opened record stores")
}

func mustSeedFile(path, contents string) {
	_, err := os.Stat(path)
	if err == nil {
		return
	}
	if !os.IsNotExist(err) {
		globalLogger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to stat record file")
		panic(err)
	}

	err = os.WriteFile(path, []byte(contents), 0o644)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to create record file")
		panic(err)
	}
	globalLogger.Info().
		Str("path", path).
		Msg("created default record file")
}
