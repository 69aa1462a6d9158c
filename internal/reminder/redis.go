package reminder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Sorted-set key per user: reminders:<userID>, score = due time in epoch
// millis. Each member carries a random prefix so that identical task texts
// stay separate entries instead of collapsing into one.
const (
	keyPrefix       = "reminders:"
	memberSeparator = "|"
)

// RedisStore persists reminders in one Redis sorted set per user.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Insert(ctx context.Context, userID string, r Reminder) error {
	member := uuid.NewString() + memberSeparator + r.Task
	z := &redis.Z{Score: float64(r.DueAt.UnixMilli()), Member: member}
	if err := s.rdb.ZAdd(ctx, userKey(userID), z).Err(); err != nil {
		return fmt.Errorf("store reminder for user %s: %w", userID, err)
	}
	return nil
}

func (s *RedisStore) UsersWithPending(ctx context.Context) ([]string, error) {
	var users []string
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 64).Iterator()
	for iter.Next(ctx) {
		users = append(users, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan reminder keys: %w", err)
	}
	return users, nil
}

func (s *RedisStore) DueBefore(ctx context.Context, userID string, cutoff time.Time) ([]Reminder, error) {
	entries, err := s.rdb.ZRangeByScoreWithScores(ctx, userKey(userID), &redis.ZRangeBy{
		Min: "-inf",
		Max: scoreOf(cutoff),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch due reminders for user %s: %w", userID, err)
	}
	due := make([]Reminder, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		due = append(due, Reminder{
			DueAt: time.UnixMilli(int64(z.Score)),
			Task:  taskOf(member),
		})
	}
	return due, nil
}

func (s *RedisStore) RemoveDueBefore(ctx context.Context, userID string, cutoff time.Time) error {
	if err := s.rdb.ZRemRangeByScore(ctx, userKey(userID), "-inf", scoreOf(cutoff)).Err(); err != nil {
		return fmt.Errorf("remove due reminders for user %s: %w", userID, err)
	}
	return nil
}

func userKey(userID string) string {
	return keyPrefix + userID
}

// scoreOf renders the same bound for range reads and range deletes, so the
// delete after a dispatch covers exactly what was read.
func scoreOf(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func taskOf(member string) string {
	if _, task, found := strings.Cut(member, memberSeparator); found {
		return task
	}
	return member
}
