package events

import (
	"context"
	"time"
)

// Event defines the contract for all review events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ARTIFACT_DECIDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is anything that can put an event on the bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

const (
	ArtifactRecorded  = "ARTIFACT_RECORDED"
	ArtifactDecided   = "ARTIFACT_DECIDED"
	InterestConfirmed = "INTEREST_CONFIRMED"
	InterestCreated   = "INTEREST_CREATED"
	InterestUpdated   = "INTEREST_UPDATED"
	InterestArchived  = "INTEREST_ARCHIVED"
	ProfileUpdated    = "PROFILE_UPDATED"
	ProposalApplied   = "PROPOSAL_APPLIED"
	NudgeFinalized    = "NUDGE_FINALIZED"
)

// Payload keys every review event carries.
const (
	KeyType       = "type"
	KeyCustomerId = "customer_id"
	KeyOccurredAt = "occurred_at"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewReviewEvent builds an event scoped to one customer. The type, customer
// and time are copied into the payload so subscribers can route without
// parsing the subject.
func NewReviewEvent(eventType, customerId string, data map[string]interface{}) BaseEvent {
	now := time.Now()
	payload := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		payload[k] = v
	}
	payload[KeyType] = eventType
	payload[KeyCustomerId] = customerId
	payload[KeyOccurredAt] = now.Format(time.RFC3339Nano)
	return BaseEvent{Type: eventType, Data: payload, OccurredAt: now}
}

// FromPayload rebuilds an event received off the wire.
func FromPayload(fallbackType string, payload map[string]interface{}) BaseEvent {
	evt := BaseEvent{Type: fallbackType, Data: payload, OccurredAt: time.Now()}
	if t, ok := payload[KeyType].(string); ok && t != "" {
		evt.Type = t
	}
	if ts, ok := payload[KeyOccurredAt].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			evt.OccurredAt = parsed
		}
	}
	return evt
}

// CustomerId returns the customer an event is scoped to, or "".
func CustomerId(e Event) string {
	id, _ := e.Payload()[KeyCustomerId].(string)
	return id
}
