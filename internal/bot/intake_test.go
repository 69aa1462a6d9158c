package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intakeNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func newTestIntake(store *memStore, msgr *recordingMessenger) *Intake {
	h := NewIntake(store, msgr)
	h.now = func() time.Time { return intakeNow }
	return h
}

func TestIntakeStoresParsedReminder(t *testing.T) {
	store := newMemStore()
	msgr := &recordingMessenger{}
	h := newTestIntake(store, msgr)

	err := h.Handle(context.Background(), TextMessage{
		UserID:     "alice",
		Text:       "remind me tomorrow at 8pm to take medicine",
		ReplyToken: "tok-1",
	})
	require.NoError(t, err)

	stored := store.reminders["alice"]
	require.Len(t, stored, 1)
	assert.Equal(t, time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC), stored[0].DueAt)
	assert.Equal(t, "take medicine", stored[0].Task)

	require.Len(t, msgr.replies, 1)
	assert.Contains(t, msgr.replies[0], "2024-01-02 20:00")
	assert.Contains(t, msgr.replies[0], "take medicine")
}

func TestIntakeUnparseableGetsUsageGuidance(t *testing.T) {
	store := newMemStore()
	msgr := &recordingMessenger{}
	h := newTestIntake(store, msgr)

	err := h.Handle(context.Background(), TextMessage{
		UserID:     "alice",
		Text:       "hello",
		ReplyToken: "tok-1",
	})
	require.NoError(t, err, "unparseable input is not a failure")

	assert.Empty(t, store.reminders, "nothing may be persisted")
	require.Len(t, msgr.replies, 1)
	assert.Equal(t, usageText, msgr.replies[0])
}

func TestIntakeStoreFailureApologizesAndFails(t *testing.T) {
	store := newMemStore()
	store.insertErr = errors.New("redis is down")
	msgr := &recordingMessenger{}
	h := newTestIntake(store, msgr)

	err := h.Handle(context.Background(), TextMessage{
		UserID:     "alice",
		Text:       "remind me in 5 minutes to retry",
		ReplyToken: "tok-1",
	})
	require.Error(t, err, "the invocation must fail so the platform redelivers")

	require.Len(t, msgr.replies, 1)
	assert.Equal(t, apologyText, msgr.replies[0], "the user gets an apology, not internal detail")
}

func TestIntakeIgnoresOtherEvents(t *testing.T) {
	store := newMemStore()
	msgr := &recordingMessenger{}
	h := newTestIntake(store, msgr)

	err := h.Handle(context.Background(), OtherEvent{})
	require.NoError(t, err)
	assert.Empty(t, store.reminders)
	assert.Empty(t, msgr.replies)
}
