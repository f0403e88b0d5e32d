package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists audit events. Append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Sink forwards audit events to an external system (Kafka).
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher fans events into the store and, when present, the sink. The sink
// is optional so single-process deployments run without a broker.
type Publisher struct {
	store Store
	sink  Sink
}

// NewPublisher constructs a Publisher. sink may be nil.
func NewPublisher(store Store, sink Sink) *Publisher {
	return &Publisher{store: store, sink: sink}
}

// Emit records an event. Store append errors are returned so callers can log
// them; the sink is best-effort on top of that.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	err := p.store.Append(ctx, event)
	if p.sink != nil {
		if sinkErr := p.sink.Publish(ctx, event); sinkErr != nil && err == nil {
			err = sinkErr
		}
	}
	return err
}
