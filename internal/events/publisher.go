package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher is what write-side services emit events through.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// StreamPublisher appends events to Redis Streams.
type StreamPublisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

func (p *StreamPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	event, err := newEvent(eventType, data)
	if err != nil {
		return err
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher drops every event. Used when Redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	zap.L().Debug("Event dropped, no publisher configured", zap.String("type", eventType))
	return nil
}

func newEvent(eventType string, data any) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}, nil
}
