// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"github.com/Adsharma18/AiCareerCoachClean/internal/constant"
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/entity"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const consumerModule = "ChatHistoryConsumer"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	historyRepo contract.ChatHistoryRepository
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	historyRepo contract.ChatHistoryRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		historyRepo: historyRepo,
		logger:      log,
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishChatExchangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal chat exchange", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // malformed payloads never succeed, drop them
		return
	}

	if payload.SessionId == "" {
		msg.Ack()
		return
	}

	records := []*entity.ChatHistory{
		{
			Id:        uuid.New(),
			SessionId: payload.SessionId,
			Role:      constant.ChatMessageRoleUser,
			Content:   payload.UserMessage,
			Timestamp: payload.Timestamp,
		},
		{
			Id:        uuid.New(),
			SessionId: payload.SessionId,
			Role:      constant.ChatMessageRoleAssistant,
			Content:   payload.AssistantMessage,
			Timestamp: payload.Timestamp,
		},
	}

	if err := cs.historyRepo.CreateBulk(ctx, records); err != nil {
		cs.logger.Error(consumerModule, "Failed to persist chat exchange", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Debug(consumerModule, "Chat exchange persisted", map[string]interface{}{
		"session_id": payload.SessionId,
		"exchange":   payload.Id.String(),
	})
	msg.Ack()
}
