package domain

import "errors"

// ChatRole identifies who produced a tutor conversation message.
type ChatRole string

// Chat roles. The generation backend only understands these two.
const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// Chat validation errors
var (
	ErrChatRoleInvalid  = errors.New("chat message role must be user or model")
	ErrChatContentEmpty = errors.New("chat message content cannot be empty")
	ErrChatHistoryEmpty = errors.New("chat history cannot be empty")
)

// ChatMessage is one turn in a tutor conversation. The ordered message
// sequence forms the conversation history and is append-only; the
// generation client itself holds no session state between calls.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.Role != ChatRoleUser && m.Role != ChatRoleModel {
		return ErrChatRoleInvalid
	}

	if m.Content == "" {
		return ErrChatContentEmpty
	}

	return nil
}

// ValidateChatHistory validates an ordered conversation history.
func ValidateChatHistory(history []ChatMessage) error {
	if len(history) == 0 {
		return ErrChatHistoryEmpty
	}

	for i := range history {
		if err := history[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
