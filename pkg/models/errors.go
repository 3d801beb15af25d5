package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientPlayers is returned when a roster has fewer than two entries
	ErrInsufficientPlayers = errors.New("at least two players are required")
	// ErrInvalidEntry is matched by every *InvalidEntryError
	ErrInvalidEntry = errors.New("invalid roster entry")
)

// InvalidEntryError describes a roster row that cannot be used
type InvalidEntryError struct {
	Row      int
	Username string
	Reason   string
}

func (e *InvalidEntryError) Error() string {
	if e.Username != "" {
		return fmt.Sprintf("invalid roster entry %d (%s): %s", e.Row+1, e.Username, e.Reason)
	}
	return fmt.Sprintf("invalid roster entry %d: %s", e.Row+1, e.Reason)
}

func (e *InvalidEntryError) Is(target error) bool {
	return target == ErrInvalidEntry
}
