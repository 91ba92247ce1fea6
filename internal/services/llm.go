package services

import (
	"context"
	"errors"

	"github.com/jwebster45206/tour-guide/pkg/chat"
)

var (
	// ErrTransport covers network failures and non-2xx replies.
	ErrTransport = errors.New("chat completion transport failure")
	// ErrMalformedResponse is a 2xx reply without usable choices.
	ErrMalformedResponse = errors.New("malformed chat completion response")
)

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// GetChatResponse sends the whole conversation and returns the first choice
	GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
