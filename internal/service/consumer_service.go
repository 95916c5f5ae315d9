package service

import (
	"context"
	"encoding/json"

	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService drains the in-process audit topic into the review audit log.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	auditLogger logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, auditLogger logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		auditLogger: auditLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.auditLogger.Error("AUDIT", "Malformed audit record", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	evt := events.FromPayload("UNKNOWN", payload)
	cs.auditLogger.Info("AUDIT", evt.EventType(), map[string]interface{}{
		"message_id":  msg.UUID,
		"customer_id": events.CustomerId(evt),
		"occurred_at": evt.Timestamp(),
		"payload":     payload,
	})
	msg.Ack()
}
