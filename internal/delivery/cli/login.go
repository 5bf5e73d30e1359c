package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

// login prompts for credentials until a registered account
// authenticates, distinguishing an unknown user from a wrong password.
func (h *handlerImpl) login() error {
	for {
		h.println("LOGIN")

		username, err := h.prompt("Username: ")
		if err != nil {
			return err
		}
		password, err := h.prompt("Password: ")
		if err != nil {
			return err
		}

		if !h.accounts.Exists(username) {
			h.println("User does not exist")
			continue
		}
		if !h.accounts.Authenticate(username, password) {
			h.println("Wrong password")
			continue
		}

		h.println("Login Successful!")
		h.currentUser = username

		sessionUUID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate session uuid: %w", err)
		}
		h.logger = h.logger.With().
			Str("session_id", sessionUUID.String()).
			Str("username", username).
			Logger()

		h.logger.Info().Msg("logged in")
		return nil
	}
}

// registerUser prompts for a new username and a confirmed password,
// re-prompting on a taken username or a confirmation mismatch.
func (h *handlerImpl) registerUser() error {
	for {
		username, err := h.prompt("New Username: ")
		if err != nil {
			return err
		}
		if h.accounts.Exists(username) {
			h.println("Username already exists. Please try a different username.")
			continue
		}

		for {
			password, err := h.prompt("New Password: ")
			if err != nil {
				return err
			}
			confirm, err := h.prompt("Confirm Password: ")
			if err != nil {
				return err
			}

			if password != confirm {
				h.println("Passwords do not match. Please try again.")
				continue
			}

			err = h.accounts.Register(username, password)
			if err != nil {
				if errors.Is(err, storage.ErrDuplicateUsername) {
					h.println("Username already exists. Please try a different username.")
					break
				}

				h.logger.Error().
					Err(err).
					Msg("failed to register account")
				h.println("Failed to register user. Please try again.")
				return nil
			}

			h.println("New user added")
			return nil
		}
	}
}
