package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	transcriptKeyPrefix  = "transcript:"
	DefaultTranscriptTTL = 7 * 24 * time.Hour
	DefaultPingTimeout   = 5 * time.Second
)

// RedisTranscriptStore implements TranscriptStore using Redis
type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure RedisTranscriptStore implements TranscriptStore interface
var _ TranscriptStore = (*RedisTranscriptStore)(nil)

// NewRedisTranscriptStore connects to redisURL, which may be a redis:// URL
// or a bare host:port.
func NewRedisTranscriptStore(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisTranscriptStore, error) {
	var opt *redis.Options
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}
	return NewRedisTranscriptStoreWithClient(redis.NewClient(opt), ttl, logger), nil
}

// OpenRedisTranscriptStore connects and pings, so a bad URL fails at startup
// instead of on the first save.
func OpenRedisTranscriptStore(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisTranscriptStore, error) {
	store, err := NewRedisTranscriptStore(redisURL, ttl, logger)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.client.Close()
		return nil, err
	}
	store.logger.Info("Transcript archive connection established successfully")
	return store, nil
}

// NewRedisTranscriptStoreWithClient wraps an existing client.
func NewRedisTranscriptStoreWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisTranscriptStore {
	if ttl <= 0 {
		ttl = DefaultTranscriptTTL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RedisTranscriptStore{client: client, ttl: ttl, logger: logger}
}

func transcriptKey(id uuid.UUID) string {
	return transcriptKeyPrefix + id.String()
}

// Health and lifecycle methods

func (r *RedisTranscriptStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisTranscriptStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Transcript operations

func (r *RedisTranscriptStore) SaveTranscript(ctx context.Context, t *Transcript) error {
	if t == nil {
		return errors.New("transcript is nil")
	}
	t.UpdatedAt = time.Now()

	data, err := json.Marshal(t)
	if err != nil {
		r.logger.Error("Failed to marshal transcript", "uuid", t.ID, "error", err)
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	if err := r.client.Set(ctx, transcriptKey(t.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save transcript", "uuid", t.ID, "error", err)
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	r.logger.Debug("Transcript saved", "uuid", t.ID, "messages", len(t.Messages))
	return nil
}

func (r *RedisTranscriptStore) LoadTranscript(ctx context.Context, id uuid.UUID) (*Transcript, error) {
	data, err := r.client.Get(ctx, transcriptKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Transcript not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load transcript", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		r.logger.Error("Failed to unmarshal transcript", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return &t, nil
}

func (r *RedisTranscriptStore) ListTranscripts(ctx context.Context) ([]TranscriptSummary, error) {
	var summaries []TranscriptSummary

	iter := r.client.Scan(ctx, 0, transcriptKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		id, err := uuid.Parse(strings.TrimPrefix(iter.Val(), transcriptKeyPrefix))
		if err != nil {
			r.logger.Warn("Skipping malformed transcript key", "key", iter.Val())
			continue
		}
		t, err := r.LoadTranscript(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			// Expired between SCAN and GET
			continue
		}
		summaries = append(summaries, summarize(t))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (r *RedisTranscriptStore) DeleteTranscript(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, transcriptKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete transcript", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}
