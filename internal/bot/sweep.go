package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rick850103/dobby-reminder-bot/internal/reminder"
)

const pushFormat = "⏰ Reminder: %s"

// Sweeper finds reminders whose due time has passed and pushes them out.
// It holds no state between ticks; every Sweep call stands on its own, so
// overlapping or repeated ticks stay safe.
type Sweeper struct {
	store reminder.Store
	msgr  Messenger
	now   func() time.Time
}

func NewSweeper(store reminder.Store, msgr Messenger) *Sweeper {
	return &Sweeper{store: store, msgr: msgr, now: time.Now}
}

// Sweep dispatches every reminder due at or before the moment the sweep
// started. One user's failure never stops the others; all failures are joined
// into the returned error so the trigger retries on its next tick.
func (s *Sweeper) Sweep(ctx context.Context) error {
	cutoff := s.now()

	users, err := s.store.UsersWithPending(ctx)
	if err != nil {
		return fmt.Errorf("list users with pending reminders: %w", err)
	}

	var errs []error
	for _, user := range users {
		if err := s.sweepUser(ctx, user, cutoff); err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", user, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Sweeper) sweepUser(ctx context.Context, user string, cutoff time.Time) error {
	due, err := s.store.DueBefore(ctx, user, cutoff)
	if err != nil {
		return fmt.Errorf("fetch due reminders: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	lost := 0
	for _, r := range due {
		if err := s.msgr.Push(ctx, user, fmt.Sprintf(pushFormat, r.Task)); err != nil {
			lost++
			pushFailures.Inc()
			// the range delete below still covers this entry, so a
			// failed push means a lost reminder, not a duplicate
			log.WithError(err).WithFields(log.Fields{
				"user": user,
				"task": r.Task,
			}).Error("push failed, reminder will be dropped with the dispatched batch")
			continue
		}
		remindersDispatched.Inc()
	}

	// same cutoff as the read above: the delete covers exactly the set
	// that was fetched, nothing inserted since
	if err := s.store.RemoveDueBefore(ctx, user, cutoff); err != nil {
		removeFailures.Inc()
		log.WithError(err).WithField("user", user).Error("could not clear dispatched reminders, duplicates possible on next sweep")
		return fmt.Errorf("clear dispatched reminders: %w", err)
	}

	log.WithFields(log.Fields{"user": user, "dispatched": len(due) - lost}).Info("due reminders dispatched")
	if lost > 0 {
		return fmt.Errorf("%d of %d pushes failed", lost, len(due))
	}
	return nil
}
