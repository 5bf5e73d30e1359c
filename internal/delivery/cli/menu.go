package cli

import (
	"errors"
	"io"
	"strings"
)

const menuText = `Select one of the following Options below:
r - Registering a user
a - Adding a task
va - View all tasks
vm - View my task
gr - Generate reports
e - Exit
: `

const adminMenuText = `Select one of the following Options below:
r - Registering a user
a - Adding a task
va - View all tasks
vm - View my task
gr - Generate reports
ds - Display statistics
e - Exit
: `

func (h *handlerImpl) Run() error {
	err := h.login()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	for {
		h.println("")

		menuLabel := menuText
		if h.currentUser == h.adminUsername {
			menuLabel = adminMenuText
		}

		choice, err := h.prompt(menuLabel)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.ToLower(choice) {
		case "r":
			err = h.registerUser()
		case "a":
			err = h.addTask()
		case "va":
			err = h.viewAll()
		case "vm":
			err = h.viewMine()
		case "gr":
			err = h.generateReports()
		case "ds":
			if h.currentUser != h.adminUsername {
				h.println("You have made a wrong choice, Please Try again")
				continue
			}
			err = h.displayStatistics()
		case "e":
			h.println("Goodbye!!!")
			h.logger.Info().Msg("session ended")
			return nil
		default:
			h.println("You have made a wrong choice, Please Try again")
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
