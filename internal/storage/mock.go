package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTranscriptStore is a mock implementation of TranscriptStore for testing
type MockTranscriptStore struct {
	mu          sync.RWMutex
	transcripts map[uuid.UUID][]byte
	pingError   error
	saveError   error
	closed      bool
}

// Ensure MockTranscriptStore implements TranscriptStore interface
var _ TranscriptStore = (*MockTranscriptStore)(nil)

// NewMockTranscriptStore creates a new mock store
func NewMockTranscriptStore() *MockTranscriptStore {
	return &MockTranscriptStore{
		transcripts: make(map[uuid.UUID][]byte),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockTranscriptStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on save with the given error
func (m *MockTranscriptStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockTranscriptStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockTranscriptStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called
func (m *MockTranscriptStore) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *MockTranscriptStore) SaveTranscript(ctx context.Context, t *Transcript) error {
	if t == nil {
		return errors.New("transcript is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}

	t.UpdatedAt = time.Now()
	// Stored encoded so callers cannot mutate saved copies
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	m.transcripts[t.ID] = data
	return nil
}

func (m *MockTranscriptStore) LoadTranscript(ctx context.Context, id uuid.UUID) (*Transcript, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.transcripts[id]
	if !ok {
		return nil, nil
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (m *MockTranscriptStore) ListTranscripts(ctx context.Context) ([]TranscriptSummary, error) {
	m.mu.RLock()
	ids := make([]uuid.UUID, 0, len(m.transcripts))
	for id := range m.transcripts {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	summaries := make([]TranscriptSummary, 0, len(ids))
	for _, id := range ids {
		t, err := m.LoadTranscript(ctx, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			summaries = append(summaries, summarize(t))
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (m *MockTranscriptStore) DeleteTranscript(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transcripts, id)
	return nil
}
