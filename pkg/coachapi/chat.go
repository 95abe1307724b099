package coachapi

import (
	"context"
	"encoding/json"

	"github.com/Adsharma18/AiCareerCoachClean/pkg/chat"
)

// FallbackReply is used when the backend answers without a reply
const FallbackReply = "No response from coach."

type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	History []historyMessage `json:"history"`
	Message string           `json:"message"`
}

type chatResponse struct {
	Reply *string `json:"reply"`
}

// SendChat posts the prior history plus the new message to /api/chat and
// returns the coach's reply. The message is sent as given; callers validate it.
// Any failure is returned as *GatewayError.
func (c *Client) SendChat(ctx context.Context, history []chat.Turn, message string) (string, error) {
	payload := chatRequest{
		History: make([]historyMessage, len(history)),
		Message: message,
	}
	for i, turn := range history {
		payload.History[i] = historyMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		}
	}

	body, f := c.post(ctx, chatEndpoint, payload)
	if f != nil {
		return "", f.gatewayError()
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &GatewayError{Message: "Invalid response from server", Err: err}
	}

	if resp.Reply == nil || *resp.Reply == "" {
		return FallbackReply, nil
	}
	return *resp.Reply, nil
}
