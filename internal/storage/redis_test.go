package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/scene"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisTranscriptStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store := NewRedisTranscriptStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour, nil)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func sampleTranscript() *Transcript {
	tr := NewTranscript("Garden of Asian Architecture", "Scholar Wei")
	tr.Progress = scene.Progress{SceneIndex: 1, SceneName: "Stone Pagoda", Questions: 2, Target: 3}
	tr.Messages = []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "system"},
		{Role: chat.ChatRoleUser, Content: "A) Tier symbolism meaning"},
		{Role: chat.ChatRoleAgent, Content: "Each tier marks a stage."},
	}
	return tr
}

func TestRedisTranscriptStore_RoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	tr := sampleTranscript()
	require.NoError(t, store.SaveTranscript(ctx, tr))

	key := "transcript:" + tr.ID.String()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	loaded, err := store.LoadTranscript(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, tr.ID, loaded.ID)
	assert.Equal(t, tr.Messages, loaded.Messages)
	assert.Equal(t, tr.Progress, loaded.Progress)
	assert.Equal(t, "You: A) Tier symbolism meaning\n\nScholar Wei: Each tier marks a stage.", loaded.Text())
}

func TestRedisTranscriptStore_LoadMissing(t *testing.T) {
	store, _ := setupTestRedis(t)

	loaded, err := store.LoadTranscript(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisTranscriptStore_Expiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	tr := sampleTranscript()
	require.NoError(t, store.SaveTranscript(ctx, tr))
	mr.FastForward(2 * time.Hour)

	loaded, err := store.LoadTranscript(ctx, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisTranscriptStore_ListAndDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	older := sampleTranscript()
	require.NoError(t, store.SaveTranscript(ctx, older))
	time.Sleep(2 * time.Millisecond)
	newer := sampleTranscript()
	newer.Tour = "Courtyard"
	require.NoError(t, store.SaveTranscript(ctx, newer))
	require.NoError(t, mr.Set("transcript:not-a-uuid", "{}"))

	list, err := store.ListTranscripts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "Courtyard", list[0].Tour)
	assert.Equal(t, "Stone Pagoda", list[0].Scene)
	assert.Equal(t, 2, list[0].Turns)

	require.NoError(t, store.DeleteTranscript(ctx, older.ID))
	list, err = store.ListTranscripts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)
}

func TestRedisTranscriptStore_ConnectionFailure(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	err := store.SaveTranscript(context.Background(), sampleTranscript())
	assert.ErrorContains(t, err, "failed to save transcript")
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewRedisTranscriptStore_Addresses(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, addr := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		store, err := NewRedisTranscriptStore(addr, 0, nil)
		require.NoError(t, err)
		assert.NoError(t, store.Ping(context.Background()), addr)
		assert.Equal(t, DefaultTranscriptTTL, store.ttl)
		require.NoError(t, store.Close())
	}

	_, err := NewRedisTranscriptStore("redis://localhost:notaport", 0, nil)
	assert.Error(t, err)
}

func TestOpenRedisTranscriptStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := OpenRedisTranscriptStore(context.Background(), "redis://"+mr.Addr()+"/0", time.Hour, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenRedisTranscriptStore_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	store, err := OpenRedisTranscriptStore(context.Background(), addr, time.Hour, nil)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestOpenRedisTranscriptStore_BadURL(t *testing.T) {
	_, err := OpenRedisTranscriptStore(context.Background(), "redis://localhost:notaport", time.Hour, nil)
	require.Error(t, err)
}
