package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/scene"
)

// MockLLMAPI is a mock implementation of LLMService for testing and offline play
type MockLLMAPI struct {
	GetChatResponseFunc func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Responses are returned in order before falling back to the canned replies
	Responses []string

	// Track calls for testing
	GetChatResponseCalls []GetChatResponseCall

	mu     sync.Mutex // protects all fields above
	canned int
}

type GetChatResponseCall struct {
	Messages []chat.ChatMessage
}

var _ LLMService = (*MockLLMAPI)(nil)

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI(responses ...string) *MockLLMAPI {
	return &MockLLMAPI{
		Responses:            responses,
		GetChatResponseCalls: make([]GetChatResponseCall, 0),
	}
}

var offlineReplies = []string{
	"Notice how the builders followed the land instead of flattening it. What draws your eye first?\n\nA) The curved rooflines\nB) The timber joinery\nC) The calm it brings\nD) The play of light",
	"Asian builders treat empty space as part of the design. Emptiness lets the eye rest. How does this space feel to you?\n\nA) Open and restful\nB) Carefully balanced\nC) A little mysterious\nD) Close to nature",
	"Materials here are left honest: wood looks like wood, stone like stone. Why might that matter?\n\nA) Respect for nature\nB) Ageing gracefully\nC) Feels more sincere\nD) Simpler upkeep",
}

const offlineSummary = "What a thoughtful journey we have shared, from the wooden bridge to the mountain villa. Each stop showed harmony between building and landscape. Would you like to walk the garden again?\n\nA) Yes, start again\nB) No, thank you"

// GetChatResponse mocks response generation
func (m *MockLLMAPI) GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.GetChatResponseCalls = append(m.GetChatResponseCalls, GetChatResponseCall{
		Messages: append([]chat.ChatMessage(nil), messages...),
	})
	fn := m.GetChatResponseFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Responses) > 0 {
		next := m.Responses[0]
		m.Responses = m.Responses[1:]
		return &chat.ChatResponse{Message: next}, nil
	}

	if n := len(messages); n > 0 && messages[n-1].Content == scene.JourneyCompleteDirective {
		return &chat.ChatResponse{Message: offlineSummary}, nil
	}

	reply := offlineReplies[m.canned%len(offlineReplies)]
	m.canned++
	return &chat.ChatResponse{Message: reply}, nil
}

// CallCount returns the number of GetChatResponse calls
func (m *MockLLMAPI) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetChatResponseCalls)
}

// LastCall returns the messages of the most recent call
func (m *MockLLMAPI) LastCall() ([]chat.ChatMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.GetChatResponseCalls) == 0 {
		return nil, false
	}
	return m.GetChatResponseCalls[len(m.GetChatResponseCalls)-1].Messages, true
}

// Reset clears recorded calls and queued responses
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetChatResponseCalls = make([]GetChatResponseCall, 0)
	m.Responses = nil
	m.canned = 0
}
