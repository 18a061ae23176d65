package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/caisse/internal/domain"
)

// DefaultChannel is the pub/sub channel outbox events are published on.
const DefaultChannel = "caisse.events"

// Publisher publishes outbox events on a Redis pub/sub channel.
type Publisher struct {
	client  redis.UniversalClient
	channel string
}

// NewPublisher creates a new Publisher. An empty channel uses DefaultChannel.
func NewPublisher(client redis.UniversalClient, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

type eventMessage struct {
	CreatedAt     time.Time      `json:"created_at"`
	Payload       map[string]any `json:"payload"`
	ID            string         `json:"id"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
	EventType     string         `json:"event_type"`
}

// Publish sends the event as JSON.
func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	msg, err := json.Marshal(eventMessage{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, msg).Err()
}
