// Package timeparse turns a free-text utterance into a due time and a task
// description. Parsing is rule-driven: an ordered table of regexps, each with
// a resolver that anchors the matched expression against a reference "now".
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is a successfully parsed utterance.
type Result struct {
	DueAt time.Time
	Task  string
}

// PlaceholderTask is used when nothing is left of the utterance once the time
// expression and the filler words are gone.
const PlaceholderTask = "your reminder"

// Default clock times for expressions that name a day but no hour.
const (
	defaultHour   = 9
	tonightHour   = 20
	morningHour   = 9
	afternoonHour = 15
	eveningHour   = 19
	nightHour     = 21
)

type rule struct {
	re      *regexp.Regexp
	resolve func(g []string, now time.Time) (time.Time, bool)
}

// Rules are tried in order; the first one that matches and resolves wins.
// A sentence with two time-like phrases therefore gets the higher-confidence
// interpretation, not necessarily the leftmost one.
var rules = []rule{
	{regexp.MustCompile(`(?i)\b(?:in|after)\s+(?:(\d+)|an?)?\s*(minutes?|mins?|hours?|hrs?|days?)\b`), resolveRelative},
	{regexp.MustCompile(`(?i)\btomorrow(?:\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?\b`), resolveTomorrow},
	{regexp.MustCompile(`(?i)\b(today|tonight)(?:\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?\b`), resolveToday},
	{regexp.MustCompile(`(?i)\bnext\s+week\b`), resolveNextWeek},
	{regexp.MustCompile(`(?i)\b(?:on\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:\s+(morning|afternoon|evening|night))?(?:\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?\b`), resolveWeekday},
	{regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})(?:\s+(\d{1,2}):(\d{2}))?\b`), resolveDate},
	{regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`), resolveClock},
	{regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\b`), resolveBareClock},
	{regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`), resolveMeridiemClock},
}

// fillerVocabulary lists the directive phrases stripped from the remainder of
// an utterance once the time expression is removed. Extending the vocabulary
// (or swapping in another language's) means editing this table only.
var fillerVocabulary = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bremind\s+me\s+to\b`),
	regexp.MustCompile(`(?i)\bremind\s+me\b`),
	regexp.MustCompile(`(?i)\bremind\b`),
	regexp.MustCompile(`(?i)\bremember\s+to\b`),
	regexp.MustCompile(`(?i)\bremember\b`),
	regexp.MustCompile(`(?i)\bhelp\s+me\b`),
	regexp.MustCompile(`(?i)\bplease\b`),
	regexp.MustCompile(`(?i)^\s*to\b`),
}

var spaceRun = regexp.MustCompile(`\s+`)

// Extract finds the single most confident time expression in utterance,
// resolved against now, and derives the task text from what is left over.
// The second return value is false when no time expression is present; that
// is an expected outcome, not an error.
func Extract(utterance string, now time.Time) (Result, bool) {
	for _, r := range rules {
		loc := r.re.FindStringSubmatchIndex(utterance)
		if loc == nil {
			continue
		}
		due, ok := r.resolve(submatches(utterance, loc), now)
		if !ok {
			continue
		}
		task := deriveTask(utterance[:loc[0]] + " " + utterance[loc[1]:])
		if task == "" {
			task = PlaceholderTask
		}
		return Result{DueAt: due, Task: task}, true
	}
	return Result{}, false
}

func submatches(s string, loc []int) []string {
	g := make([]string, len(loc)/2)
	for i := range g {
		if loc[2*i] >= 0 {
			g[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return g
}

func deriveTask(remainder string) string {
	for _, re := range fillerVocabulary {
		remainder = re.ReplaceAllString(remainder, " ")
	}
	remainder = spaceRun.ReplaceAllString(remainder, " ")
	return strings.Trim(remainder, " \t.,!?-")
}

func resolveRelative(g []string, now time.Time) (time.Time, bool) {
	q := 1
	if g[1] != "" {
		q, _ = strconv.Atoi(g[1])
	}
	if q < 1 {
		q = 1
	}
	var period time.Duration
	switch unit := strings.ToLower(g[2]); {
	case strings.HasPrefix(unit, "min"):
		period = time.Minute
	case strings.HasPrefix(unit, "h"):
		period = time.Hour
	case strings.HasPrefix(unit, "d"):
		period = 24 * time.Hour
	default:
		return time.Time{}, false
	}
	return now.Add(time.Duration(q) * period), true
}

func resolveTomorrow(g []string, now time.Time) (time.Time, bool) {
	h, m := defaultHour, 0
	if g[1] != "" {
		var ok bool
		if h, m, ok = clockFrom(g[1], g[2], g[3]); !ok {
			return time.Time{}, false
		}
	}
	return dayAt(now.AddDate(0, 0, 1), h, m), true
}

func resolveToday(g []string, now time.Time) (time.Time, bool) {
	tonight := strings.EqualFold(g[1], "tonight")
	h, m := tonightHour, 0
	switch {
	case g[2] != "":
		var ok bool
		if h, m, ok = clockFrom(g[2], g[3], g[4]); !ok {
			return time.Time{}, false
		}
	case !tonight:
		// bare "today" carries no usable clock; let a later rule try
		return time.Time{}, false
	}
	return nextOccurrence(dayAt(now, h, m), now), true
}

func resolveNextWeek(_ []string, now time.Time) (time.Time, bool) {
	return dayAt(now.AddDate(0, 0, 7), defaultHour, 0), true
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var dayparts = map[string]int{
	"morning":   morningHour,
	"afternoon": afternoonHour,
	"evening":   eveningHour,
	"night":     nightHour,
}

func resolveWeekday(g []string, now time.Time) (time.Time, bool) {
	target, ok := weekdays[strings.ToLower(g[1])]
	if !ok {
		return time.Time{}, false
	}
	h, m := defaultHour, 0
	if part, ok := dayparts[strings.ToLower(g[2])]; ok {
		h = part
	}
	if g[3] != "" {
		if h, m, ok = clockFrom(g[3], g[4], g[5]); !ok {
			return time.Time{}, false
		}
	}
	delta := (int(target) - int(now.Weekday()) + 7) % 7
	t := dayAt(now.AddDate(0, 0, delta), h, m)
	if !t.After(now) {
		t = t.AddDate(0, 0, 7)
	}
	return t, true
}

func resolveDate(g []string, now time.Time) (time.Time, bool) {
	year, _ := strconv.Atoi(g[1])
	month, _ := strconv.Atoi(g[2])
	day, _ := strconv.Atoi(g[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	h, m := defaultHour, 0
	if g[4] != "" {
		var ok bool
		if h, m, ok = clockFrom(g[4], g[5], ""); !ok {
			return time.Time{}, false
		}
	}
	// explicit absolute dates are taken as given, even if already past
	return time.Date(year, time.Month(month), day, h, m, 0, 0, now.Location()), true
}

func resolveClock(g []string, now time.Time) (time.Time, bool) {
	h, m, ok := clockFrom(g[1], g[2], g[3])
	if !ok {
		return time.Time{}, false
	}
	// "at 8" without am/pm means the nearest future 8 o'clock
	if g[3] == "" && h < 12 {
		if t := dayAt(now, h, m); t.After(now) {
			return t, true
		}
		if t := dayAt(now, h+12, m); t.After(now) {
			return t, true
		}
	}
	return nextOccurrence(dayAt(now, h, m), now), true
}

func resolveBareClock(g []string, now time.Time) (time.Time, bool) {
	return resolveClock([]string{g[0], g[1], g[2], ""}, now)
}

func resolveMeridiemClock(g []string, now time.Time) (time.Time, bool) {
	return resolveClock([]string{g[0], g[1], "", g[2]}, now)
}

func clockFrom(hs, ms, meridiem string) (hour, min int, ok bool) {
	hour, _ = strconv.Atoi(hs)
	if ms != "" {
		min, _ = strconv.Atoi(ms)
	}
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, 0, false
		}
	}
	if min > 59 {
		return 0, 0, false
	}
	return hour, min, true
}

func dayAt(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

// nextOccurrence pushes a clock-only resolution forward by whole days until it
// is strictly in the future; elliptical expressions never land in the past.
func nextOccurrence(t, now time.Time) time.Time {
	for !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
