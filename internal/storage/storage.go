package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/scene"
)

// Transcript is an archived tour conversation. It is write-only history and
// never restores a session.
type Transcript struct {
	ID        uuid.UUID          `json:"id"`
	Tour      string             `json:"tour"`
	Guide     string             `json:"guide"`
	Progress  scene.Progress     `json:"progress"`
	Messages  []chat.ChatMessage `json:"messages"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewTranscript starts a transcript with a fresh ID.
func NewTranscript(tour, guide string) *Transcript {
	now := time.Now()
	return &Transcript{
		ID:        uuid.New(),
		Tour:      tour,
		Guide:     guide,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Text renders the player and guide turns as plain text.
func (t *Transcript) Text() string {
	return chat.Transcript(t.Messages, t.Guide)
}

// TranscriptSummary is a listing entry.
type TranscriptSummary struct {
	ID        uuid.UUID `json:"id"`
	Tour      string    `json:"tour"`
	Scene     string    `json:"scene"`
	Turns     int       `json:"turns"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TranscriptStore archives finished or abandoned sessions.
type TranscriptStore interface {
	Ping(ctx context.Context) error
	Close() error

	// SaveTranscript stores t under its ID, replacing any earlier copy
	SaveTranscript(ctx context.Context, t *Transcript) error

	// LoadTranscript retrieves a transcript by ID
	// Returns nil if the transcript doesn't exist
	LoadTranscript(ctx context.Context, id uuid.UUID) (*Transcript, error)

	// ListTranscripts returns all stored transcripts, newest first
	ListTranscripts(ctx context.Context) ([]TranscriptSummary, error)

	// DeleteTranscript removes a transcript by ID
	DeleteTranscript(ctx context.Context, id uuid.UUID) error
}

func summarize(t *Transcript) TranscriptSummary {
	turns := 0
	for _, m := range t.Messages {
		if m.Role != chat.ChatRoleSystem {
			turns++
		}
	}
	return TranscriptSummary{
		ID:        t.ID,
		Tour:      t.Tour,
		Scene:     t.Progress.SceneName,
		Turns:     turns,
		UpdatedAt: t.UpdatedAt,
	}
}
