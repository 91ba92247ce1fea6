package conversation

import (
	"errors"

	"github.com/jwebster45206/tour-guide/pkg/chat"
)

var (
	// ErrNotInitialized is returned when a turn is appended before the system prompt exists.
	ErrNotInitialized = errors.New("conversation has no system prompt")
	// ErrAlreadyInitialized is returned by Init on a store that already holds messages.
	ErrAlreadyInitialized = errors.New("conversation already initialized")
)

// Store is the ordered message log sent to the language model. The first
// message is always the system prompt; everything after it is append-only
// until Reset. A Store is not safe for concurrent use; callers serialize access.
type Store struct {
	messages []chat.ChatMessage
}

// NewStore returns an empty, uninitialized store.
func NewStore() *Store {
	return &Store{
		messages: make([]chat.ChatMessage, 0),
	}
}

// Init seeds the store with its system prompt.
func (s *Store) Init(systemPrompt string) error {
	if len(s.messages) > 0 {
		return ErrAlreadyInitialized
	}
	s.messages = append(s.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: systemPrompt,
	})
	return nil
}

// Initialized reports whether the system prompt is present.
func (s *Store) Initialized() bool {
	return len(s.messages) > 0 && s.messages[0].Role == chat.ChatRoleSystem
}

// AppendUser appends a player turn.
func (s *Store) AppendUser(text string) error {
	return s.append(chat.ChatRoleUser, text)
}

// AppendAssistant appends a guide turn.
func (s *Store) AppendAssistant(text string) error {
	return s.append(chat.ChatRoleAgent, text)
}

func (s *Store) append(role, text string) error {
	if !s.Initialized() {
		return ErrNotInitialized
	}
	s.messages = append(s.messages, chat.ChatMessage{Role: role, Content: text})
	return nil
}

// RewriteSystemPrompt replaces the system prompt in place. It does nothing
// when the store has not been initialized.
func (s *Store) RewriteSystemPrompt(text string) {
	if !s.Initialized() {
		return
	}
	s.messages[0].Content = text
}

// SystemPrompt returns the current system prompt, or "" when uninitialized.
func (s *Store) SystemPrompt() string {
	if !s.Initialized() {
		return ""
	}
	return s.messages[0].Content
}

// Snapshot returns a copy of the full ordered history.
func (s *Store) Snapshot() []chat.ChatMessage {
	out := make([]chat.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastAssistant returns the most recent guide turn. Player turns after it,
// such as one whose request failed, are skipped.
func (s *Store) LastAssistant() (string, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == chat.ChatRoleAgent {
			return s.messages[i].Content, true
		}
	}
	return "", false
}

// Len returns the number of messages, system prompt included.
func (s *Store) Len() int {
	return len(s.messages)
}

// Reset empties the store. Init must be called again before appending.
func (s *Store) Reset() {
	s.messages = make([]chat.ChatMessage, 0)
}
