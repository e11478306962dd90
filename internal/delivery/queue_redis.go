package delivery

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// claimScript moves the oldest due task from the scheduled set to the
// processing set, scored by its visibility deadline.
var claimScript = redis.NewScript(`
local items = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, 1)
if #items == 0 then
	return false
end
redis.call('ZREM', KEYS[1], items[1])
redis.call('ZADD', KEYS[2], ARGV[2], items[1])
return items[1]
`)

// requeueScript returns tasks whose visibility deadline passed to the
// scheduled set.
var requeueScript = redis.NewScript(`
local items = redis.call('ZRANGEBYSCORE', KEYS[2], '-inf', ARGV[1])
for _, item in ipairs(items) do
	redis.call('ZREM', KEYS[2], item)
	redis.call('ZADD', KEYS[1], ARGV[1], item)
end
return #items
`)

// RedisQueue is a durable Queue on two sorted sets. A task not acked within
// the visibility timeout is delivered again, so delivery is at-least-once.
type RedisQueue struct {
	rdb           redis.UniversalClient
	scheduledKey  string
	processingKey string
	visibility    time.Duration
	pollInterval  time.Duration
	now           func() time.Time
}

func NewRedisQueue(rdb redis.UniversalClient, prefix string, visibility, pollInterval time.Duration) *RedisQueue {
	return &RedisQueue{
		rdb:           rdb,
		scheduledKey:  prefix + ":scheduled",
		processingKey: prefix + ":processing",
		visibility:    visibility,
		pollInterval:  pollInterval,
		now:           time.Now,
	}
}

func score(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func (q *RedisQueue) Enqueue(ctx context.Context, task Task, delay time.Duration) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "redisQueue.Enqueue.Marshal")
	}
	at := q.now().Add(delay)
	err = q.rdb.ZAdd(ctx, q.scheduledKey, redis.Z{Score: float64(at.UnixMilli()), Member: string(raw)}).Err()
	if err != nil {
		return errors.Wrap(err, "redisQueue.Enqueue.ZAdd")
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*Task, error) {
	for {
		task, err := q.claim(ctx)
		if err != nil {
			return nil, err
		}
		if task != nil {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(q.pollInterval):
		}
	}
}

func (q *RedisQueue) claim(ctx context.Context) (*Task, error) {
	now := q.now()
	keys := []string{q.scheduledKey, q.processingKey}

	if err := requeueScript.Run(ctx, q.rdb, keys, score(now)).Err(); err != nil {
		return nil, errors.Wrap(err, "redisQueue.claim.requeue")
	}

	raw, err := claimScript.Run(ctx, q.rdb, keys, score(now), score(now.Add(q.visibility))).Text()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redisQueue.claim.claim")
	}

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		// undecodable entries would be claimed forever
		q.rdb.ZRem(ctx, q.processingKey, raw)
		return nil, errors.Wrap(err, "redisQueue.claim.Unmarshal")
	}
	task.raw = raw
	return &task, nil
}

func (q *RedisQueue) Ack(ctx context.Context, task *Task) error {
	if task.raw == "" {
		return nil
	}
	if err := q.rdb.ZRem(ctx, q.processingKey, task.raw).Err(); err != nil {
		return errors.Wrap(err, "redisQueue.Ack.ZRem")
	}
	return nil
}

// Pending reports tasks scheduled and in flight.
func (q *RedisQueue) Pending(ctx context.Context) (scheduled, processing int64, err error) {
	scheduled, err = q.rdb.ZCard(ctx, q.scheduledKey).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "redisQueue.Pending.scheduled")
	}
	processing, err = q.rdb.ZCard(ctx, q.processingKey).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "redisQueue.Pending.processing")
	}
	return scheduled, processing, nil
}
