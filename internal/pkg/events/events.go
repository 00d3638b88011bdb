// Package events publishes domain events after successful writes. Delivery
// is best effort: a failed publish is logged and never fails the request.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EnrollmentCreated = "enrollment.created"
	SubmissionCreated = "submission.created"
	SubmissionGraded  = "submission.graded"
)

// Event is the envelope written to the topic.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// New builds an event keyed by the id of the entity it describes.
func New(eventType string, key uuid.UUID, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Key:        key.String(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher sends events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
