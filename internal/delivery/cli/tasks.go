package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

// addTask collects the owner, title, description and due date,
// re-prompting on an unregistered owner or a malformed date.
func (h *handlerImpl) addTask() error {
	var owner string
	for {
		value, err := h.prompt("Name of person assigned to task: ")
		if err != nil {
			return err
		}
		if !h.accounts.Exists(value) {
			h.println("User does not exist. Please enter a valid username")
			continue
		}
		owner = value
		break
	}

	title, err := h.prompt("Title of Task: ")
	if err != nil {
		return err
	}
	description, err := h.prompt("Description of Task: ")
	if err != nil {
		return err
	}

	for {
		dueDate, err := h.prompt("Due date of task (YYYY-MM-DD): ")
		if err != nil {
			return err
		}

		_, err = h.tasks.AddTask(services.AddTaskParams{
			Owner:       owner,
			Title:       title,
			Description: description,
			DueDate:     dueDate,
		})
		if err != nil {
			if errors.Is(err, services.ErrInvalidDate) {
				h.println("Invalid datetime format. Please use the format specified")
				continue
			}

			h.logger.Error().
				Err(err).
				Msg("failed to add task")
			h.println("Failed to add task. Please try again.")
			return nil
		}

		h.println("Task successfully added.")
		return nil
	}
}

func (h *handlerImpl) viewAll() error {
	for _, task := range h.tasks.ListAll() {
		h.renderTask(0, task)
	}
	return nil
}

// viewMine lists the current user's tasks with 1-based positions and
// runs the edit loop. Positions are recomputed after every successful
// edit, so the listing is re-rendered before the next selection.
func (h *handlerImpl) viewMine() error {
	h.renderMine()

	for {
		h.println("Select a task number to edit, or '-1' to return to the main menu.")
		value, err := h.prompt("")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return h.flushTasks()
			}
			return err
		}

		position, err := strconv.Atoi(value)
		if err != nil {
			h.println("Invalid task number. Please try again.")
			continue
		}
		if position == -1 {
			return h.flushTasks()
		}

		edited, err := h.editTask(position)
		if err != nil {
			return err
		}
		if edited {
			err = h.flushTasks()
			if err != nil {
				return err
			}
			h.renderMine()
		}
	}
}

// editTask runs the per-task sub-menu for one selected position. It
// reports whether the task changed.
func (h *handlerImpl) editTask(position int) (bool, error) {
	mine := h.tasks.ListForOwner(h.currentUser)
	if position < 1 || position > len(mine) {
		h.println("Invalid task number. Please try again.")
		return false, nil
	}

	selected := mine[position-1]
	h.println("Selected Task: " + selected.Title)
	if selected.Completed {
		h.println("This task is already completed and cannot be edited.")
		return false, nil
	}

	h.println("1. Mark task as complete")
	h.println("2. Edit task due date")
	h.println("3. Edit task assigned user")
	choice, err := h.prompt("Enter your choice: ")
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		_, err = h.tasks.CompleteTask(h.currentUser, position)
		if err != nil {
			return false, h.reportEditError(err)
		}
		h.println("Task marked as complete.")
		return true, nil

	case "2":
		for {
			dueDate, err := h.prompt("Enter new due date (YYYY-MM-DD): ")
			if err != nil {
				return false, err
			}

			_, err = h.tasks.RescheduleTask(h.currentUser, position, dueDate)
			if err != nil {
				if errors.Is(err, services.ErrInvalidDate) {
					h.println("Invalid date format or date does not exist. Please try again.")
					continue
				}
				return false, h.reportEditError(err)
			}

			h.println("Task due date updated.")
			return true, nil
		}

	case "3":
		newOwner, err := h.prompt("Enter new assigned user: ")
		if err != nil {
			return false, err
		}

		_, err = h.tasks.ReassignTask(h.currentUser, position, newOwner)
		if err != nil {
			if errors.Is(err, services.ErrUnknownUser) {
				h.println("User does not exist. Please enter a valid username")
				return false, nil
			}
			return false, h.reportEditError(err)
		}

		h.println("Task assigned user updated.")
		return true, nil

	default:
		h.println("Invalid choice. Please try again.")
		return false, nil
	}
}

// reportEditError maps the remaining service errors to messages. The
// out-of-range and locked cases are normally caught before the edit
// sub-menu; they can still surface if the listing went stale.
func (h *handlerImpl) reportEditError(err error) error {
	switch {
	case errors.Is(err, services.ErrOutOfRange):
		h.println("Invalid task number. Please try again.")
	case errors.Is(err, services.ErrTaskLocked):
		h.println("This task is already completed and cannot be edited.")
	default:
		h.logger.Error().
			Err(err).
			Msg("failed to edit task")
		h.println("Failed to edit task. Please try again.")
	}
	return nil
}

func (h *handlerImpl) flushTasks() error {
	err := h.tasks.Flush()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to flush task edits")
		h.println("Failed to save task edits.")
	}
	return nil
}

func (h *handlerImpl) renderMine() {
	for i, task := range h.tasks.ListForOwner(h.currentUser) {
		h.renderTask(i+1, task)
	}
}

// renderTask prints the original labeled block layout; position 0
// renders the unnumbered form used by the view-all listing.
func (h *handlerImpl) renderTask(position int, task models.Task) {
	if position > 0 {
		fmt.Fprintf(h.out, "Task %d: \t %s\n", position, task.Title)
	} else {
		fmt.Fprintf(h.out, "Task: \t\t %s\n", task.Title)
	}
	fmt.Fprintf(h.out, "Assigned to: \t %s\n", task.Username)
	fmt.Fprintf(h.out, "Date Assigned: \t %s\n", task.AssignedDate.Format(time.DateOnly))
	fmt.Fprintf(h.out, "Due Date: \t %s\n", task.DueDate.Format(time.DateOnly))
	fmt.Fprintf(h.out, "Task Description: \n %s\n\n", task.Description)
}
