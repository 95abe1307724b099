package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatHistoryMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

type ChatRequest struct {
	History   []ChatHistoryMessage `json:"history" validate:"omitempty,dive"`
	Message   string               `json:"message" validate:"notblank,max=4000"`
	SessionId string               `json:"session_id,omitempty" validate:"omitempty,max=100"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ExportPDFRequest struct {
	Content  string `json:"content" validate:"notblank"`
	Title    string `json:"title,omitempty" validate:"omitempty,max=200"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=255"`
	Goal     string `json:"goal,omitempty" validate:"omitempty,max=500"`
}

// PublishChatExchangeMessage is the payload recorded after each answered chat
type PublishChatExchangeMessage struct {
	Id               uuid.UUID `json:"id"`
	SessionId        string    `json:"session_id"`
	UserMessage      string    `json:"user_message"`
	AssistantMessage string    `json:"assistant_message"`
	Timestamp        time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
