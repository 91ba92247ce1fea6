package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jwebster45206/tour-guide/internal/config"
	"github.com/jwebster45206/tour-guide/internal/logger"
	"github.com/jwebster45206/tour-guide/internal/services"
	"github.com/jwebster45206/tour-guide/internal/storage"
	"github.com/jwebster45206/tour-guide/pkg/conversation"
	"github.com/jwebster45206/tour-guide/pkg/dialogue"
	"github.com/jwebster45206/tour-guide/pkg/feedback"
	"github.com/jwebster45206/tour-guide/pkg/scene"
	"github.com/jwebster45206/tour-guide/pkg/textfilter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	log := logger.WithSession(logger.Setup(cfg, logFile), uuid.NewString())

	tour, err := loadTour(cfg.TourFile)
	if err != nil {
		return err
	}

	guideName := cfg.NPCName
	if guideName == "" {
		guideName = tour.Guide
	}

	store := conversation.NewStore()
	engine, err := scene.NewEngine(*tour, store, scene.Options{
		TransitionDistance: cfg.TransitionDistance,
		MaxQuestionWords:   cfg.MaxQuestionWords,
		MaxOptionWords:     cfg.MaxOptionWords,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create scene engine: %w", err)
	}

	var client dialogue.ChatClient
	if cfg.Offline() {
		log.Warn("LLM_API_KEY not set, using canned replies")
		client = services.NewMockLLMAPI()
	} else {
		client = services.NewChatCompletionService(services.ChatCompletionConfig{
			APIKey:      cfg.LLMAPIKey,
			BaseURL:     cfg.LLMBaseURL,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout,
		}, log)
	}

	transcripts, err := openTranscripts(cfg, log)
	if err != nil {
		return err
	}
	if transcripts != nil {
		defer func() {
			_ = transcripts.Close() // Ignore error in defer
		}()
	}

	start := scene.Vec2{}
	if len(tour.Locations) > 0 {
		start = tour.Locations[0].Coordinates
	}
	walker := newPlayer(start)
	presenter := newPresenter(func(tea.Msg) {})

	var script *scene.OpeningScript
	if cfg.UseFixedFirstResponse {
		script = tour.Opening
	}

	classifier := feedback.DefaultClassifier()
	if tour.Feedback != nil {
		classifier = *tour.Feedback
	}

	coord, err := dialogue.New(dialogue.Deps{
		Store:     store,
		Engine:    engine,
		Client:    client,
		Presenter: presenter,
		Sensor:    walker,
		Script:    script,
		Logger:    log,
	}, dialogue.Options{
		NPCName:         guideName,
		TransitionDelay: cfg.TransitionDelay,
		ScriptDelay:     cfg.ScriptDelay,
		RevealInterval:  cfg.TypingSpeed,
		Classifier:      &classifier,
		Scrubber:        textfilter.NewLeakScrubber(tour.LeakPhrases...),
		Scheduler:       dialogue.TimerScheduler{},
	})
	if err != nil {
		return fmt.Errorf("failed to create dialogue coordinator: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var archive *archiver
	if transcripts != nil {
		archive = newArchiver(transcripts, tour.Name, guideName, log)
	}

	ui := NewConsoleUI(ctx, coord, walker, archive, log, consoleOptions{
		TourName:         tour.Name,
		GuideName:        guideName,
		Locations:        engine.Locations(),
		Threshold:        engine.TransitionDistance(),
		FeedbackDuration: cfg.FeedbackDuration,
		Progress:         coord.Progress(),
		Copy:             clipboard.WriteAll,
	})

	p := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithMouseCellMotion())
	presenter.send = p.Send

	log.Info("tour started",
		"tour", tour.Name,
		"locations", len(tour.Locations),
		"offline", cfg.Offline(),
		"archive", transcripts != nil)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	// Stop any in-flight request before the process exits.
	if err := coord.ResetSession(ctx, true); err != nil {
		log.Warn("failed to reset session on exit", "error", err)
	}
	log.Info("tour ended")
	return nil
}

func loadTour(path string) (*scene.Tour, error) {
	if path == "" {
		t := scene.DefaultTour()
		return &t, nil
	}
	t, err := scene.LoadTour(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tour: %w", err)
	}
	return t, nil
}

// openTranscripts connects the archive when REDIS_URL is set.
func openTranscripts(cfg *config.Config, log *slog.Logger) (storage.TranscriptStore, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	store, err := storage.OpenRedisTranscriptStore(context.Background(), cfg.RedisURL, cfg.TranscriptTTL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to transcript archive: %w", err)
	}
	return store, nil
}
