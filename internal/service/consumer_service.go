package service

import (
	"context"
	"encoding/json"
	"time"

	"asknova-be/internal/dto"
	"asknova-be/internal/entity"
	"asknova-be/internal/pkg/logger"
	"asknova-be/internal/repository/contract"
	"asknova-be/pkg/events"
	pktNats "asknova-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService records per-turn usage rows from completed-turn events on
// the in-process bus, keeping accounting off the turn's critical path.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	usageRepo contract.TurnUsageRepository
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	usageRepo contract.TurnUsageRepository,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		usageRepo: usageRepo,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal turn event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	usage := &entity.TurnUsage{
		Id:            uuid.New(),
		UserId:        payload.UserId,
		SessionId:     payload.SessionId,
		PromptChars:   payload.PromptChars,
		ResponseChars: payload.ResponseChars,
		DatasetCount:  payload.DatasetCount,
		CreatedAt:     time.Now(),
	}

	if err := cs.usageRepo.Create(ctx, usage); err != nil {
		cs.logger.Error("Consumer", "Failed to record turn usage", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	// Relay the event to external consumers once it is durably recorded.
	if cs.natsPub != nil {
		evt := events.BaseEvent{
			Type: "TURN_COMPLETED",
			Data: map[string]interface{}{
				"user_id":        payload.UserId,
				"session_id":     payload.SessionId,
				"prompt_chars":   payload.PromptChars,
				"response_chars": payload.ResponseChars,
				"dataset_count":  payload.DatasetCount,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.natsPub.Publish(ctx, evt); err != nil {
			cs.logger.Warn("Consumer", "Failed to relay turn event to NATS", map[string]interface{}{
				"user_id": payload.UserId,
				"error":   err.Error(),
			})
		}
	}

	msg.Ack()
}
