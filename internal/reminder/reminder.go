// Package reminder holds the reminder entity and its per-user persistence.
package reminder

import (
	"context"
	"time"
)

// Reminder is one pending notification. Entries are consumed by the due
// sweep, never mutated in place.
type Reminder struct {
	DueAt time.Time
	Task  string
}

// Store keeps each user's reminders ordered by due time. A user's list comes
// into existence on first insert and disappears once its last entry is
// removed; callers never manage the lists themselves.
type Store interface {
	// Insert adds a reminder to the user's list. Identical task texts are
	// kept as separate entries and each fires on its own.
	Insert(ctx context.Context, userID string, r Reminder) error

	// UsersWithPending lists every user that currently has at least one
	// reminder stored.
	UsersWithPending(ctx context.Context) ([]string, error)

	// DueBefore returns the user's reminders due at or before cutoff, in
	// due-time order.
	DueBefore(ctx context.Context, userID string, cutoff time.Time) ([]Reminder, error)

	// RemoveDueBefore deletes the user's reminders due at or before cutoff.
	// Called with the same cutoff as a preceding DueBefore it removes
	// exactly the set that was read. Removing nothing is a no-op.
	RemoveDueBefore(ctx context.Context, userID string, cutoff time.Time) error
}
