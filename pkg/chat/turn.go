package chat

// Role identifies who authored a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrorPrefix is prepended to the message of synthesized error turns
const ErrorPrefix = "❌ Error: "

// Turn is one message in the conversation. Turns are values; the store never
// hands out a pointer into its own slice, so a Turn cannot change after Append.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	IsError bool   `json:"isError,omitempty"`
}

func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// ErrorTurn builds the assistant turn shown when a request failed
func ErrorTurn(message string) Turn {
	return Turn{Role: RoleAssistant, Content: ErrorPrefix + message, IsError: true}
}

func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}

func (t Turn) IsAssistant() bool {
	return t.Role == RoleAssistant
}
