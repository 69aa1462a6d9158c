package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remindersStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dobby_reminders_stored_total",
		Help: "Reminders accepted and persisted by intake.",
	})
	remindersUnparsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dobby_messages_unparsed_total",
		Help: "Messages with no recognizable time expression.",
	})
	remindersDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dobby_reminders_dispatched_total",
		Help: "Due reminders pushed to users by the sweep.",
	})
	pushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dobby_push_failures_total",
		Help: "Due reminders whose push failed; these are dropped with the dispatched batch.",
	})
	removeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dobby_remove_failures_total",
		Help: "Failed range deletes after dispatch; duplicates possible on the next sweep.",
	})
)
