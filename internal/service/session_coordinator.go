// FILE: internal/service/session_coordinator.go
// PURPOSE: Turns user intent (send, retry, export) into conversation mutations
//          and remote calls, with at most one chat request in flight.

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/chat"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/coachapi"
)

const coordinatorModule = "SessionCoordinator"

var (
	// ErrRequestInFlight is returned when an action arrives while a chat request is outstanding
	ErrRequestInFlight = errors.New("a request is already in progress")
	// ErrNothingToRetry is returned when the conversation holds no user turn
	ErrNothingToRetry = errors.New("nothing to retry")
)

const (
	emptyMessageError   = "Message cannot be empty"
	noRoadmapError      = "No roadmap available to export"
	genericFailureError = "Something went wrong. Please try again."
)

type SessionState string

const (
	StateIdle    SessionState = "IDLE"
	StateSending SessionState = "SENDING"
)

// ChatGateway is the remote inference boundary
type ChatGateway interface {
	SendChat(ctx context.Context, history []chat.Turn, message string) (string, error)
}

// ExportGateway is the remote PDF rendering boundary
type ExportGateway interface {
	ExportPDF(ctx context.Context, content string, opts coachapi.ExportOptions) ([]byte, error)
}

type ISessionCoordinator interface {
	Send(ctx context.Context, text string) error
	Retry(ctx context.Context) error
	ExportEligible() bool
	ExportRoadmap(ctx context.Context, opts coachapi.ExportOptions) ([]byte, error)
	SetGoal(goal string)
	Reset() error
	State() SessionState
	LastError() string
	Conversation() *chat.Conversation
}

type sessionCoordinator struct {
	conversation *chat.Conversation
	chat         ChatGateway
	exporter     ExportGateway
	logger       logger.ILogger

	mu        sync.Mutex
	sending   bool
	lastError string
}

func NewSessionCoordinator(
	conversation *chat.Conversation,
	chatGateway ChatGateway,
	exporter ExportGateway,
	log logger.ILogger,
) ISessionCoordinator {
	if conversation == nil {
		conversation = chat.NewConversation()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &sessionCoordinator{
		conversation: conversation,
		chat:         chatGateway,
		exporter:     exporter,
		logger:       log,
	}
}

// Send appends the user's message and resolves it into exactly one assistant
// turn. Gateway failures become an error turn and are not returned; only a
// blank message (*coachapi.ValidationError) or a concurrent request
// (ErrRequestInFlight) is reported to the caller.
func (s *sessionCoordinator) Send(ctx context.Context, text string) error {
	message := strings.TrimSpace(text)
	if message == "" {
		return coachapi.NewValidationError(emptyMessageError)
	}

	if !s.begin() {
		s.logger.Debug(coordinatorModule, "Send ignored while request in flight", nil)
		return ErrRequestInFlight
	}
	defer s.end()

	s.dispatch(ctx, message)
	return nil
}

// Retry drops trailing error turns and re-sends the most recent user message.
// The user turn is appended again rather than reused.
func (s *sessionCoordinator) Retry(ctx context.Context) error {
	if !s.begin() {
		s.logger.Debug(coordinatorModule, "Retry ignored while request in flight", nil)
		return ErrRequestInFlight
	}
	defer s.end()

	if s.conversation.Len() == 0 {
		return ErrNothingToRetry
	}
	lastUser, ok := s.conversation.LastUserTurn()
	if !ok {
		return ErrNothingToRetry
	}

	message := strings.TrimSpace(lastUser.Content)
	if message == "" {
		return coachapi.NewValidationError(emptyMessageError)
	}

	removed := s.conversation.TruncateTrailingErrors()
	s.logger.Info(coordinatorModule, "Retrying last user message", map[string]interface{}{
		"removed_error_turns": removed,
	})

	s.dispatch(ctx, message)
	return nil
}

// dispatch runs one Sending cycle. Caller must hold the in-flight flag.
func (s *sessionCoordinator) dispatch(ctx context.Context, message string) {
	history := s.conversation.Turns()
	s.conversation.Append(chat.UserTurn(message))
	s.setLastError("")

	start := time.Now()
	reply, err := s.chat.SendChat(ctx, history, message)
	if err != nil {
		errMsg := failureMessage(err)
		s.setLastError(errMsg)
		s.conversation.Append(chat.ErrorTurn(errMsg))

		s.logger.Error(coordinatorModule, "Chat request failed", map[string]interface{}{
			"error":       err.Error(),
			"history_len": len(history),
			"elapsed_ms":  time.Since(start).Milliseconds(),
		})
		return
	}

	s.conversation.Append(chat.AssistantTurn(reply))
	s.setLastError("")

	s.logger.Info(coordinatorModule, "Chat turn completed", map[string]interface{}{
		"turns":      s.conversation.Len(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}

// ExportEligible is recomputed from the conversation on every call
func (s *sessionCoordinator) ExportEligible() bool {
	return chat.ExportEligible(s.conversation.Turns())
}

// ExportRoadmap renders the last assistant reply as a PDF. The conversation
// is never modified; failures are returned for a one-shot notification.
func (s *sessionCoordinator) ExportRoadmap(ctx context.Context, opts coachapi.ExportOptions) ([]byte, error) {
	turns := s.conversation.Turns()
	if !chat.ExportEligible(turns) {
		return nil, coachapi.NewValidationError(noRoadmapError)
	}

	if opts.Goal == "" {
		opts.Goal = s.conversation.Goal()
	}

	data, err := s.exporter.ExportPDF(ctx, turns[len(turns)-1].Content, opts)
	if err != nil {
		s.logger.Error(coordinatorModule, "Roadmap export failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info(coordinatorModule, "Roadmap exported", map[string]interface{}{
		"bytes": len(data),
	})
	return data, nil
}

func (s *sessionCoordinator) SetGoal(goal string) {
	s.conversation.SetGoal(strings.TrimSpace(goal))
}

// Reset clears the conversation. It is refused while a request is in flight
// so the pending reply cannot land in a fresh session.
func (s *sessionCoordinator) Reset() error {
	if !s.begin() {
		return ErrRequestInFlight
	}
	defer s.end()

	s.conversation.Reset()
	s.setLastError("")
	s.logger.Info(coordinatorModule, "Session reset", nil)
	return nil
}

func (s *sessionCoordinator) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return StateSending
	}
	return StateIdle
}

func (s *sessionCoordinator) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *sessionCoordinator) Conversation() *chat.Conversation {
	return s.conversation
}

// begin claims the single in-flight slot
func (s *sessionCoordinator) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return false
	}
	s.sending = true
	return true
}

func (s *sessionCoordinator) end() {
	s.mu.Lock()
	s.sending = false
	s.mu.Unlock()
}

func (s *sessionCoordinator) setLastError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func failureMessage(err error) string {
	var gwErr *coachapi.GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericFailureError
}
