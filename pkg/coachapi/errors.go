package coachapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError is a local precondition failure. It never reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// GatewayError is returned when the chat endpoint could not produce a reply:
// non-2xx status, malformed body, network failure or timeout.
type GatewayError struct {
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
	timedOut   bool
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was abandoned because it ran too long
func (e *GatewayError) Timeout() bool {
	return e.timedOut
}

// ExportError is the PDF endpoint's counterpart of GatewayError
type ExportError struct {
	StatusCode int
	Message    string
	Err        error
	timedOut   bool
}

func (e *ExportError) Error() string {
	return e.Message
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func (e *ExportError) Timeout() bool {
	return e.timedOut
}

// failure is the transport-level outcome shared by both gateways before it is
// converted into the endpoint specific error type.
type failure struct {
	status   int
	message  string
	err      error
	timedOut bool
}

func (f *failure) gatewayError() *GatewayError {
	return &GatewayError{StatusCode: f.status, Message: f.message, Err: f.err, timedOut: f.timedOut}
}

func (f *failure) exportError() *ExportError {
	return &ExportError{StatusCode: f.status, Message: f.message, Err: f.err, timedOut: f.timedOut}
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

// extractErrorMessage picks the human readable message for a non-2xx response.
// Priority: detail, message, "Server error {status}"; a body that is not a JSON
// object yields "Request failed with status {status}".
func extractErrorMessage(status int, body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Sprintf("Request failed with status %d", status)
	}

	if msg := rawText(parsed.Detail); msg != "" {
		return msg
	}
	if msg := rawText(parsed.Message); msg != "" {
		return msg
	}
	return fmt.Sprintf("Server error %d", status)
}

// rawText flattens a structured error field. Besides plain strings it accepts
// the list form used by request-validation errors: [{"msg": "..."}, ...].
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			var entry struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal(item, &entry); err == nil && entry.Msg != "" {
				parts = append(parts, entry.Msg)
				continue
			}
			if text := rawText(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "; ")
	}

	return ""
}
