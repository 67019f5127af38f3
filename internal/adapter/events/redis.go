package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

var _ event.Publisher = (*RedisPublisher)(nil)

// RedisPublisher appends events to redis streams, one JSON entry per event.
type RedisPublisher struct {
	client *redis.Client
	maxLen int64
	now    func() time.Time
}

// NewRedisPublisher caps each stream at roughly maxLen entries; 0 keeps all.
func NewRedisPublisher(client *redis.Client, maxLen int64) *RedisPublisher {
	return &RedisPublisher{client: client, maxLen: maxLen, now: time.Now}
}

func (p *RedisPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	payload, err := json.Marshal(event.Event{
		Type:      eventType,
		Timestamp: p.now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"type": eventType, "event": payload},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
