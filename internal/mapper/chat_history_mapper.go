package mapper

import (
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/entity"
	"github.com/Adsharma18/AiCareerCoachClean/internal/model"
)

type ChatHistoryMapper struct{}

func NewChatHistoryMapper() *ChatHistoryMapper {
	return &ChatHistoryMapper{}
}

func (m *ChatHistoryMapper) ToEntity(h *model.ChatHistory) *entity.ChatHistory {
	if h == nil {
		return nil
	}
	return &entity.ChatHistory{
		Id:        h.Id,
		SessionId: h.SessionId,
		Role:      h.Role,
		Content:   h.Content,
		Timestamp: h.Timestamp,
	}
}

func (m *ChatHistoryMapper) ToModel(h *entity.ChatHistory, sequence int) *model.ChatHistory {
	if h == nil {
		return nil
	}
	return &model.ChatHistory{
		Id:        h.Id,
		SessionId: h.SessionId,
		Role:      h.Role,
		Content:   h.Content,
		Timestamp: h.Timestamp,
		Sequence:  sequence,
	}
}

func (m *ChatHistoryMapper) ToResponse(h *entity.ChatHistory) dto.ChatHistoryResponse {
	return dto.ChatHistoryResponse{
		Id:        h.Id,
		Role:      h.Role,
		Content:   h.Content,
		Timestamp: h.Timestamp,
	}
}
