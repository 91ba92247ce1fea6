package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/tour-guide/internal/storage"
	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/scene"
)

// archiver keeps the transcript of the running journey. A nil store turns
// every call into a no-op.
type archiver struct {
	store  storage.TranscriptStore
	tour   string
	guide  string
	logger *slog.Logger

	mu      sync.Mutex
	current *storage.Transcript
}

func newArchiver(store storage.TranscriptStore, tour, guide string, logger *slog.Logger) *archiver {
	return &archiver{
		store:   store,
		tour:    tour,
		guide:   guide,
		logger:  logger,
		current: storage.NewTranscript(tour, guide),
	}
}

// Save writes the conversation under the current transcript ID. Sessions
// without a player turn are not archived.
func (a *archiver) Save(ctx context.Context, messages []chat.ChatMessage, progress scene.Progress) (bool, error) {
	if a == nil || a.store == nil || !hasPlayerTurn(messages) {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.current.Messages = messages
	a.current.Progress = progress
	a.current.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.store.SaveTranscript(ctx, a.current); err != nil {
		return false, fmt.Errorf("failed to archive transcript: %w", err)
	}

	a.logger.Info("transcript archived",
		"transcript_id", a.current.ID.String(),
		"messages", len(messages),
		"scene", progress.SceneName)
	return true, nil
}

// Rotate starts a fresh transcript for the next journey.
func (a *archiver) Rotate() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = storage.NewTranscript(a.tour, a.guide)
}

// ID returns the current transcript ID as a string.
func (a *archiver) ID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current.ID.String()
}

func hasPlayerTurn(messages []chat.ChatMessage) bool {
	for _, m := range messages {
		if m.Role == chat.ChatRoleUser {
			return true
		}
	}
	return false
}
