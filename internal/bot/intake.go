package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rick850103/dobby-reminder-bot/internal/reminder"
	"github.com/rick850103/dobby-reminder-bot/internal/timeparse"
)

const confirmTimeFormat = "2006-01-02 15:04"

const (
	confirmFormat = "Got it! Around %s I'll remind you: %s"
	usageText     = "I couldn't find a time in that message.\n" +
		"Try something like: \"remind me tomorrow at 8pm to take medicine\""
	apologyText = "Something went wrong on my side, please try again in a moment."
)

// Intake handles one inbound message at a time: parse, persist, confirm.
// Each message is independent; no state is carried between messages.
type Intake struct {
	store reminder.Store
	msgr  Messenger
	now   func() time.Time
}

func NewIntake(store reminder.Store, msgr Messenger) *Intake {
	return &Intake{store: store, msgr: msgr, now: time.Now}
}

// Handle processes a single webhook event. Unparseable text is answered with
// usage guidance and is not an error; only dependency failures make the
// invocation fail, so the platform redelivers it.
func (h *Intake) Handle(ctx context.Context, ev Incoming) error {
	switch ev := ev.(type) {
	case TextMessage:
		return h.handleText(ctx, ev)
	case OtherEvent:
		return nil
	default:
		return nil
	}
}

func (h *Intake) handleText(ctx context.Context, ev TextMessage) error {
	res, ok := timeparse.Extract(ev.Text, h.now())
	if !ok {
		remindersUnparsed.Inc()
		log.WithField("user", ev.UserID).Debug("no time expression found, replying with usage hint")
		return h.msgr.Reply(ctx, ev.ReplyToken, usageText)
	}

	r := reminder.Reminder{DueAt: res.DueAt, Task: res.Task}
	if err := h.store.Insert(ctx, ev.UserID, r); err != nil {
		log.WithError(err).WithField("user", ev.UserID).Error("could not persist reminder")
		if rerr := h.msgr.Reply(ctx, ev.ReplyToken, apologyText); rerr != nil {
			log.WithError(rerr).WithField("user", ev.UserID).Error("could not deliver apology reply")
		}
		return fmt.Errorf("persist reminder: %w", err)
	}
	remindersStored.Inc()

	log.WithFields(log.Fields{
		"user": ev.UserID,
		"due":  r.DueAt.Format(confirmTimeFormat),
		"task": r.Task,
	}).Info("reminder stored")

	confirm := fmt.Sprintf(confirmFormat, r.DueAt.Format(confirmTimeFormat), r.Task)
	return h.msgr.Reply(ctx, ev.ReplyToken, confirm)
}
