package bot

import (
	"context"
	"sort"
	"time"

	"github.com/rick850103/dobby-reminder-bot/internal/reminder"
)

// memStore is an in-memory reminder.Store used to isolate intake and sweep
// tests from Redis.
type memStore struct {
	reminders map[string][]reminder.Reminder

	insertErr error
	fetchErr  error
	removeErr error
}

func newMemStore() *memStore {
	return &memStore{reminders: make(map[string][]reminder.Reminder)}
}

func (s *memStore) Insert(_ context.Context, userID string, r reminder.Reminder) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.reminders[userID] = append(s.reminders[userID], r)
	return nil
}

func (s *memStore) UsersWithPending(context.Context) ([]string, error) {
	users := make([]string, 0, len(s.reminders))
	for u := range s.reminders {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

func (s *memStore) DueBefore(_ context.Context, userID string, cutoff time.Time) ([]reminder.Reminder, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var due []reminder.Reminder
	for _, r := range s.reminders[userID] {
		if !r.DueAt.After(cutoff) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].DueAt.Before(due[j].DueAt) })
	return due, nil
}

func (s *memStore) RemoveDueBefore(_ context.Context, userID string, cutoff time.Time) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	var kept []reminder.Reminder
	for _, r := range s.reminders[userID] {
		if r.DueAt.After(cutoff) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		delete(s.reminders, userID)
		return nil
	}
	s.reminders[userID] = kept
	return nil
}

type sentPush struct {
	userID string
	text   string
}

// recordingMessenger captures replies and pushes; pushErrFor makes the push
// of one task text fail.
type recordingMessenger struct {
	replies    []string
	pushes     []sentPush
	replyErr   error
	pushErrFor string
	pushErr    error
}

func (m *recordingMessenger) Reply(_ context.Context, _, text string) error {
	if m.replyErr != nil {
		return m.replyErr
	}
	m.replies = append(m.replies, text)
	return nil
}

func (m *recordingMessenger) Push(_ context.Context, userID, text string) error {
	if m.pushErrFor != "" && text == "⏰ Reminder: "+m.pushErrFor {
		return m.pushErr
	}
	m.pushes = append(m.pushes, sentPush{userID: userID, text: text})
	return nil
}
