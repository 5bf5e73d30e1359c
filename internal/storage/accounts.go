package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// AccountStore maps usernames to plaintext passwords, backed by a
// record file of "username;password" lines. Usernames are unique and
// matched case-sensitively. Insertion order is preserved so a save
// rewrites the file in the same order it was read.
type AccountStore struct {
	logger    zerolog.Logger
	path      string
	passwords map[string]string
	order     []string
}

func NewAccountStore(logger zerolog.Logger, path string) *AccountStore {
	return &AccountStore{
		logger:    logger,
		path:      path,
		passwords: make(map[string]string),
	}
}

// Load reads the record file, replacing the in-memory mapping. A line
// without the field separator is skipped, but every such line is
// surfaced: the returned error joins one ErrMalformedRecord per bad
// line, while the rest of the file is still loaded. An I/O failure is
// returned as-is.
func (s *AccountStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to read account records")
		return err
	}

	s.passwords = make(map[string]string)
	s.order = s.order[:0]

	var malformed []error
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}

		username, password, ok := strings.Cut(line, fieldSeparator)
		if !ok {
			s.logger.Warn().
				Int("line", i+1).
				Str("record", line).
				Msg("skipped account record without separator")
			malformed = append(malformed,
				fmt.Errorf("account record line %d: %w", i+1, ErrMalformedRecord))
			continue
		}

		if _, exists := s.passwords[username]; !exists {
			s.order = append(s.order, username)
		}
		s.passwords[username] = password
	}
	s.logger.Debug().
		Int("count", len(s.order)).
		Msg("loaded account records")

	return errors.Join(malformed...)
}

// Save rewrites the whole record file in insertion order.
func (s *AccountStore) Save() error {
	lines := make([]string, 0, len(s.order))
	for _, username := range s.order {
		lines = append(lines, username+fieldSeparator+s.passwords[username])
	}

	err := os.WriteFile(s.path, []byte(strings.Join(lines, "\n")), 0o644)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to write account records")
		return err
	}
	s.logger.Debug().
		Int("count", len(lines)).
		Msg("saved account records")
	return nil
}

// Register inserts a new account and rewrites the record file. It
// returns ErrDuplicateUsername if the username is already taken; the
// store is left untouched on any failure.
func (s *AccountStore) Register(username, password string) error {
	if _, exists := s.passwords[username]; exists {
		s.logger.Warn().
			Str("username", username).
			Msg("rejected duplicate registration")
		return ErrDuplicateUsername
	}

	s.passwords[username] = password
	s.order = append(s.order, username)

	err := s.Save()
	if err != nil {
		delete(s.passwords, username)
		s.order = s.order[:len(s.order)-1]
		return err
	}

	s.logger.Info().
		Str("username", username).
		Msg("registered account")
	return nil
}

// Exists reports whether the username is registered.
func (s *AccountStore) Exists(username string) bool {
	_, exists := s.passwords[username]
	return exists
}

// Authenticate reports whether both fields match a stored account
// exactly.
func (s *AccountStore) Authenticate(username, password string) bool {
	stored, exists := s.passwords[username]
	return exists && stored == password
}

// Usernames returns every registered username in insertion order.
func (s *AccountStore) Usernames() []string {
	usernames := make([]string, len(s.order))
	copy(usernames, s.order)
	return usernames
}

func (s *AccountStore) Len() int {
	return len(s.order)
}
