package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMockTranscriptStore_SaveAndLoad(t *testing.T) {
	store := NewMockTranscriptStore()
	ctx := context.Background()

	tr := sampleTranscript()
	if err := store.SaveTranscript(ctx, tr); err != nil {
		t.Fatalf("Failed to save transcript: %v", err)
	}

	// Mutating the original must not change the stored copy
	tr.Messages[1].Content = "changed"

	loaded, err := store.LoadTranscript(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Failed to load transcript: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil transcript")
	}
	if loaded.Messages[1].Content != "A) Tier symbolism meaning" {
		t.Errorf("Expected stored message to be unchanged, got %q", loaded.Messages[1].Content)
	}
}

func TestMockTranscriptStore_LoadMissing(t *testing.T) {
	store := NewMockTranscriptStore()

	loaded, err := store.LoadTranscript(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for missing transcript, got: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil transcript, got %v", loaded)
	}
}

func TestMockTranscriptStore_Errors(t *testing.T) {
	store := NewMockTranscriptStore()
	ctx := context.Background()

	store.SetPingError(errors.New("down"))
	if err := store.Ping(ctx); err == nil {
		t.Error("Expected ping error")
	}

	store.SetSaveError(errors.New("full"))
	if err := store.SaveTranscript(ctx, sampleTranscript()); err == nil {
		t.Error("Expected save error")
	}
	if err := store.SaveTranscript(ctx, nil); err == nil {
		t.Error("Expected error for nil transcript")
	}
}

func TestMockTranscriptStore_ListAndDelete(t *testing.T) {
	store := NewMockTranscriptStore()
	ctx := context.Background()

	tr := sampleTranscript()
	_ = store.SaveTranscript(ctx, tr)
	_ = store.SaveTranscript(ctx, sampleTranscript())

	list, err := store.ListTranscripts(ctx)
	if err != nil {
		t.Fatalf("Failed to list transcripts: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 transcripts, got %d", len(list))
	}

	if err := store.DeleteTranscript(ctx, tr.ID); err != nil {
		t.Fatalf("Failed to delete transcript: %v", err)
	}
	list, _ = store.ListTranscripts(ctx)
	if len(list) != 1 {
		t.Errorf("Expected 1 transcript after delete, got %d", len(list))
	}

	_ = store.Close()
	if !store.Closed() {
		t.Error("Expected store to be closed")
	}
}
