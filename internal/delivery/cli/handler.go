// Package cli is the interactive menu shell. It owns prompting, input
// retries and console rendering; every service error is caught here
// and turned into a message or a re-prompt, never a process exit.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/services"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type Handler interface {
	// Run drives one session: a login loop followed by the menu loop.
	// It returns nil on a user-initiated exit or end of input.
	Run() error
}

type handlerImpl struct {
	logger   zerolog.Logger
	in       *bufio.Reader
	out      io.Writer
	accounts *storage.AccountStore
	tasks    services.TaskService
	reports  services.ReportService

	adminUsername string
	currentUser   string
}

func New(
	logger zerolog.Logger,
	in io.Reader,
	out io.Writer,
	accounts *storage.AccountStore,
	taskService services.TaskService,
	reportService services.ReportService,
	adminUsername string,
) Handler {
	return &handlerImpl{
		logger:        logger,
		in:            bufio.NewReader(in),
		out:           out,
		accounts:      accounts,
		tasks:         taskService,
		reports:       reportService,
		adminUsername: adminUsername,
	}
}

// prompt prints the label and reads one line, with the trailing line
// break stripped. It returns io.EOF once input is exhausted.
func (h *handlerImpl) prompt(label string) (string, error) {
	fmt.Fprint(h.out, label)

	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (h *handlerImpl) println(message string) {
	fmt.Fprintln(h.out, message)
}
