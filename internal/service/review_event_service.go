package service

import (
	"context"
	"encoding/json"

	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/pkg/events"

	"github.com/google/uuid"
)

// FeedDelivery pushes an event straight to live reviewers of a customer.
type FeedDelivery interface {
	SendToCustomer(customerId uuid.UUID, event map[string]interface{})
}

// IReviewEventService announces review outcomes. Delivery is best effort: a
// failed publish is logged and never fails the request that caused it.
type IReviewEventService interface {
	Emit(ctx context.Context, eventType string, customerId uuid.UUID, data map[string]interface{})
}

type reviewEventService struct {
	bus    events.Publisher
	audit  IPublisherService
	feed   FeedDelivery
	logger logger.ILogger
}

// NewReviewEventService wires the event sinks. Any of bus, audit and feed may
// be nil. Without a bus, events go to the local feed directly.
func NewReviewEventService(bus events.Publisher, audit IPublisherService, feed FeedDelivery, log logger.ILogger) IReviewEventService {
	return &reviewEventService{bus: bus, audit: audit, feed: feed, logger: log}
}

func (s *reviewEventService) Emit(ctx context.Context, eventType string, customerId uuid.UUID, data map[string]interface{}) {
	evt := events.NewReviewEvent(eventType, customerId.String(), data)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, evt); err != nil {
			s.logger.Warn("REVIEW_EVENTS", "Failed to publish event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	} else if s.feed != nil {
		s.feed.SendToCustomer(customerId, evt.Payload())
	}

	if s.audit != nil {
		payload, err := json.Marshal(evt.Payload())
		if err != nil {
			s.logger.Warn("REVIEW_EVENTS", "Failed to encode audit record", map[string]interface{}{"error": err.Error()})
			return
		}
		if err := s.audit.Publish(ctx, payload); err != nil {
			s.logger.Warn("REVIEW_EVENTS", "Failed to publish audit record", map[string]interface{}{"error": err.Error()})
		}
	}
}
