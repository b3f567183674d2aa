package service

import (
	"context"

	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const eventsModule = "EVENTS"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventMirror receives a copy of every event; *nats.Publisher implements it.
type EventMirror interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	publisher message.Publisher
	topicName string
	mirror    EventMirror
	logger    logger.ILogger
}

// NewPublisherService publishes on the in-process topic. mirror may be nil.
func NewPublisherService(publisher message.Publisher, topicName string, mirror EventMirror, log logger.ILogger) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topicName: topicName,
		mirror:    mirror,
		logger:    log,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		return err
	}

	if ps.mirror != nil {
		if err := ps.mirror.Publish(ctx, event); err != nil {
			ps.logger.Warn(eventsModule, "Failed to mirror event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
	return nil
}
