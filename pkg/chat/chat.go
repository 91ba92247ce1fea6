package chat

import (
	"strings"
)

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // Guide NPC
	ChatRoleSystem = "system"    // Tour instructions
)

// PlayerPrefix is shown before the player's chosen option while the guide is thinking.
const PlayerPrefix = "You: "

// ChatMessage represents a single chat message in the conversation.
// The shape matches the OpenAI-compatible chat completion API.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the text returned by a chat completion backend.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}

// FormatPlayerChoice renders a selected option the way the dialogue panel shows it.
func FormatPlayerChoice(option string) string {
	return PlayerPrefix + strings.TrimSpace(option)
}

// Transcript renders the non-system turns of a conversation as plain text,
// one "Speaker: text" block per turn.
func Transcript(messages []ChatMessage, guideName string) string {
	if guideName == "" {
		guideName = "Guide"
	}

	var sb strings.Builder
	for _, msg := range messages {
		var speaker string
		switch msg.Role {
		case ChatRoleUser:
			speaker = "You"
		case ChatRoleAgent:
			speaker = guideName
		default:
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(msg.Content))
	}
	return sb.String()
}
