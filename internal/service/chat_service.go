// FILE: internal/service/chat_service.go
// PURPOSE: Answers /api/chat. Picks the prompt language, windows the history,
// calls the LLM and records the exchange for the session.
package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/Adsharma18/AiCareerCoachClean/internal/constant"
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/mapper"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/contract"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm"

	"github.com/google/uuid"
)

const chatModule = "ChatService"

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionId string) ([]dto.ChatHistoryResponse, error)
	ClearHistory(ctx context.Context, sessionId string) error
}

type chatService struct {
	llmProvider llm.LLMProvider
	historyRepo contract.ChatHistoryRepository
	publisher   IPublisherService
	mapper      *mapper.ChatHistoryMapper
	logger      logger.ILogger
	now         func() time.Time
}

func NewChatService(
	llmProvider llm.LLMProvider,
	historyRepo contract.ChatHistoryRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		llmProvider: llmProvider,
		historyRepo: historyRepo,
		publisher:   publisher,
		mapper:      mapper.NewChatHistoryMapper(),
		logger:      log,
		now:         time.Now,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	isHindi := IsHindi(req.Message)

	history := s.resolveHistory(ctx, req)

	systemPrompt := constant.CoachSystemPromptEN
	if isHindi {
		systemPrompt = constant.CoachSystemPromptHI
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	reply, err := s.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(constant.ChatTemperature),
		llm.WithMaxTokens(constant.ChatMaxTokens),
	)
	if err != nil {
		s.logger.Error(chatModule, "LLM call failed", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		reply = constant.ChatFallbackReply
	}
	reply = strings.TrimSpace(reply)

	s.logger.Info(chatModule, "Chat answered", map[string]interface{}{
		"session_id":    req.SessionId,
		"hindi":         isHindi,
		"history_turns": len(history),
	})

	if req.SessionId != "" {
		s.recordExchange(ctx, req.SessionId, req.Message, reply)
	}

	return &dto.ChatResponse{Reply: reply}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionId string) ([]dto.ChatHistoryResponse, error) {
	records, err := s.historyRepo.FindRecentBySessionId(ctx, sessionId, 0)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChatHistoryResponse, 0, len(records))
	for _, rec := range records {
		res = append(res, s.mapper.ToResponse(rec))
	}
	return res, nil
}

func (s *chatService) ClearHistory(ctx context.Context, sessionId string) error {
	return s.historyRepo.DeleteBySessionId(ctx, sessionId)
}

// resolveHistory prefers the history the caller sent and falls back to the
// stored session. System entries are dropped before windowing.
func (s *chatService) resolveHistory(ctx context.Context, req *dto.ChatRequest) []llm.Message {
	var history []llm.Message

	if len(req.History) > 0 {
		for _, h := range req.History {
			history = append(history, llm.Message{Role: h.Role, Content: h.Content})
		}
	} else if req.SessionId != "" {
		records, err := s.historyRepo.FindRecentBySessionId(ctx, req.SessionId, constant.ChatHistoryWindow)
		if err != nil {
			s.logger.Warn(chatModule, "Failed to load session history", map[string]interface{}{
				"session_id": req.SessionId,
				"error":      err.Error(),
			})
		}
		for _, rec := range records {
			history = append(history, llm.Message{Role: rec.Role, Content: rec.Content})
		}
	}

	return windowHistory(history, constant.ChatHistoryWindow)
}

func (s *chatService) recordExchange(ctx context.Context, sessionId, userMessage, reply string) {
	err := s.publisher.PublishChatExchange(ctx, &dto.PublishChatExchangeMessage{
		Id:               uuid.New(),
		SessionId:        sessionId,
		UserMessage:      userMessage,
		AssistantMessage: reply,
		Timestamp:        s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn(chatModule, "Failed to publish chat exchange", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func windowHistory(history []llm.Message, size int) []llm.Message {
	filtered := make([]llm.Message, 0, len(history))
	for _, m := range history {
		if m.Role == llm.RoleSystem {
			continue
		}
		filtered = append(filtered, m)
	}
	if len(filtered) > size {
		filtered = filtered[len(filtered)-size:]
	}
	return filtered
}

// IsHindi reports whether most letters in text are Devanagari
func IsHindi(text string) bool {
	var devanagari, letters int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			devanagari++
			letters++
		case unicode.IsLetter(r):
			letters++
		}
	}
	return letters > 0 && devanagari*2 > letters
}
