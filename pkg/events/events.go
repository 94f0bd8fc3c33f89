// Package events emits marketplace domain events. Publishing is best effort:
// a failed publish is logged and never fails the user's action.
package events

import (
	"context"
	"sync"
	"time"

	"pgstay/pkg/kafka"
	"pgstay/pkg/logger"
)

const (
	TypeReservationCreated  = "reservation.created"
	TypeWishlistEntryAdded  = "wishlist.entry_added"
	TypeWishlistEntryRemove = "wishlist.entry_removed"

	SchemaVersion = "1"
)

type Event struct {
	Type          string
	UserID        string
	CorrelationID string
	OccurredAt    time.Time
	Payload       any
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher keys events by user so each user's events stay ordered.
type KafkaPublisher struct {
	producer messagePublisher
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	msg, err := kafka.NewMessage().
		WithKey(event.UserID).
		WithEventType(event.Type).
		WithCorrelationID(event.CorrelationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithTimestamp(event.OccurredAt).
		WithValue(event.Payload).
		Build()
	if err != nil {
		p.log.Error("Failed to build event", "event_type", event.Type, "user_id", event.UserID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Event not published", "event_type", event.Type, "user_id", event.UserID, "error", err)
	}
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

// Recorder keeps published events in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
