package service

import (
	"context"

	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/pkg/events"
	pktNats "customer-insight-be/pkg/nats"

	"github.com/google/uuid"
)

const reviewFeedDurable = "review-feed"

// EventSubscriber is the bus side of the review feed.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// ReviewFeedService relays review events from the bus to live reviewers.
type ReviewFeedService struct {
	subscriber EventSubscriber
	feed       FeedDelivery
	logger     logger.ILogger
}

func NewReviewFeedService(subscriber EventSubscriber, feed FeedDelivery, log logger.ILogger) *ReviewFeedService {
	return &ReviewFeedService{
		subscriber: subscriber,
		feed:       feed,
		logger:     log,
	}
}

func (s *ReviewFeedService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Warn("REVIEW_FEED", "No event bus configured, feed runs on local delivery only", nil)
		return nil
	}
	return s.subscriber.Subscribe(ctx, pktNats.Subject(">"), reviewFeedDurable, s.HandleEvent)
}

// HandleEvent routes one event to the watchers of its customer. Events
// without a valid customer are dropped, not retried.
func (s *ReviewFeedService) HandleEvent(ctx context.Context, event events.Event) error {
	customerId, err := uuid.Parse(events.CustomerId(event))
	if err != nil {
		s.logger.Warn("REVIEW_FEED", "Dropping event without customer", map[string]interface{}{"type": event.EventType()})
		return nil
	}
	s.feed.SendToCustomer(customerId, event.Payload())
	s.logger.Info("REVIEW_FEED", "Event relayed", map[string]interface{}{
		"type":        event.EventType(),
		"customer_id": customerId,
	})
	return nil
}
