package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jwebster45206/tour-guide/internal/config"
	"github.com/jwebster45206/tour-guide/internal/logger"
	"github.com/jwebster45206/tour-guide/internal/storage"
)

const usage = `Usage: %s <command> [args]

Commands:
  list [tour]    list archived transcripts, newest first
  show <id>      print a transcript
  delete <id>    remove a transcript
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.RedisURL == "" {
		fmt.Fprintln(os.Stderr, "REDIS_URL is not set")
		os.Exit(1)
	}

	log := logger.Setup(cfg, os.Stderr)
	store, err := storage.OpenRedisTranscriptStore(context.Background(), cfg.RedisURL, cfg.TranscriptTTL, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to transcript archive: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	if err := run(context.Background(), store, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, usage, os.Args[0])
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid arguments")

func run(ctx context.Context, store storage.TranscriptStore, args []string, w io.Writer) error {
	switch args[0] {
	case "list":
		tour := ""
		if len(args) > 1 {
			tour = args[1]
		}
		return listTranscripts(ctx, store, tour, w)
	case "show", "delete":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s needs a transcript id", errUsage, args[0])
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid transcript id %q: %w", args[1], err)
		}
		if args[0] == "show" {
			return showTranscript(ctx, store, id, w)
		}
		return deleteTranscript(ctx, store, id, w)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func listTranscripts(ctx context.Context, store storage.TranscriptStore, tour string, w io.Writer) error {
	summaries, err := store.ListTranscripts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list transcripts: %w", err)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TOUR", "SCENE", "TURNS", "UPDATED")
	shown := 0
	for _, s := range summaries {
		if tour != "" && s.Tour != tour {
			continue
		}
		tbl.Row(s.ID.String(), s.Tour, s.Scene, strconv.Itoa(s.Turns), s.UpdatedAt.Format(time.DateTime))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "No transcripts found.")
		return nil
	}
	fmt.Fprintln(w, tbl.Render())
	return nil
}

func showTranscript(ctx context.Context, store storage.TranscriptStore, id uuid.UUID, w io.Writer) error {
	t, err := store.LoadTranscript(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}
	if t == nil {
		return fmt.Errorf("transcript %s not found", id)
	}

	fmt.Fprintf(w, "%s with %s\n", t.Tour, t.Guide)
	fmt.Fprintf(w, "Reached %s (scene %d), %d questions\n\n", t.Progress.SceneName, t.Progress.SceneIndex+1, t.Progress.Questions)
	fmt.Fprintln(w, t.Text())
	return nil
}

func deleteTranscript(ctx context.Context, store storage.TranscriptStore, id uuid.UUID, w io.Writer) error {
	t, err := store.LoadTranscript(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}
	if t == nil {
		return fmt.Errorf("transcript %s not found", id)
	}
	if err := store.DeleteTranscript(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	fmt.Fprintf(w, "Deleted transcript %s\n", id)
	return nil
}
