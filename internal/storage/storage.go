// Package storage owns the two persisted record sets: accounts and
// tasks. Both are plain text files of semicolon-delimited records and
// both are rewritten in full on every save. There is exactly one
// writer per process, so no locking is involved.
package storage

import "errors"

// fieldSeparator is fixed by the on-disk format: accounts are
// "username;password" lines, tasks carry six fields per line.
const fieldSeparator = ";"

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrDuplicateUsername = errors.New("username already exists")
)
