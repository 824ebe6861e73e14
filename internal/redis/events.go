package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is one change notification fanned out to live subscribers. UserID
// names the record's owner so subscribers can filter events for records
// that no longer exist, such as deletes.
type Event struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id,omitempty"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Bus fans collection change events out over Redis pub/sub so that
// live-subscription views on any instance observe every write.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe delivers events for one collection until ctx is done.
	// The returned channel is closed on teardown, never leaked.
	Subscribe(ctx context.Context, collection string) (<-chan Event, error)
}

type redisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) Bus {
	return &redisBus{client: client}
}

func channelFor(collection string) string {
	return "events:" + collection
}

func (b *redisBus) Publish(ctx context.Context, ev Event) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, channelFor(ev.Collection), data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

func (b *redisBus) Subscribe(ctx context.Context, collection string) (<-chan Event, error) {
	sub := b.client.Subscribe(ctx, channelFor(collection))

	// confirm the subscription before handing the channel out
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("drop malformed event on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
