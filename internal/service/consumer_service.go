package service

import (
	"context"
	"sync"

	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	Stats() map[string]int
}

// EventHandler is called for every consumed event, after it is logged.
type EventHandler func(ctx context.Context, event events.Event)

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	handlers   []EventHandler
	logger     logger.ILogger

	mu     sync.Mutex
	counts map[string]int
}

func NewConsumerService(subscriber message.Subscriber, topicName string, log logger.ILogger, handlers ...EventHandler) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		handlers:   handlers,
		logger:     log,
		counts:     make(map[string]int),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// Stats returns how many events of each type were consumed.
func (cs *consumerService) Stats() map[string]int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make(map[string]int, len(cs.counts))
	for k, v := range cs.counts {
		out[k] = v
	}
	return out
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error(eventsModule, "Failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // ack invalid messages to prevent infinite redelivery
		return
	}

	cs.mu.Lock()
	cs.counts[event.EventType()]++
	cs.mu.Unlock()

	cs.logger.Info(eventsModule, "Event consumed", map[string]interface{}{
		"type":    event.EventType(),
		"payload": event.Payload(),
	})

	for _, handle := range cs.handlers {
		handle(ctx, event)
	}
	msg.Ack()
}
