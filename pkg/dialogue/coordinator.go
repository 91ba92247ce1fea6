package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/conversation"
	"github.com/jwebster45206/tour-guide/pkg/feedback"
	"github.com/jwebster45206/tour-guide/pkg/scene"
	"github.com/jwebster45206/tour-guide/pkg/textfilter"
)

const (
	DefaultTransitionDelay = 2 * time.Second
	DefaultScriptDelay     = 2 * time.Second
	DefaultRevealInterval  = 50 * time.Millisecond

	// DefaultContinuePrompt asks for the next live question after the opening script.
	DefaultContinuePrompt = "Please ask the next question about this location's architectural significance."

	// ApologyText replaces a reply that could not be obtained.
	ApologyText = "My apologies, I seem to have lost my train of thought. Shall we continue?"
)

// ErrEmptyReply is reported when the chat client succeeds with no text.
var ErrEmptyReply = errors.New("empty reply from chat client")

// Deps are the collaborators a Coordinator drives.
type Deps struct {
	Store     *conversation.Store
	Engine    *scene.Engine
	Client    ChatClient
	Presenter Presenter
	Sensor    PositionSensor       // nil when there is no player
	Script    *scene.OpeningScript // nil disables the scripted first exchange
	Logger    *slog.Logger
}

// Options tune presentation timing and text handling.
type Options struct {
	NPCName  string
	Portrait string

	TransitionDelay time.Duration
	ScriptDelay     time.Duration
	RevealInterval  time.Duration // zero shows text at once

	ContinuePrompt string
	Classifier     *feedback.Classifier
	Scrubber       *textfilter.LeakScrubber

	// Scheduler runs the delayed steps. It must not call f synchronously.
	Scheduler Scheduler
}

// DefaultOptions returns the stock timings.
func DefaultOptions() Options {
	return Options{
		NPCName:         scene.DefaultGuideName,
		TransitionDelay: DefaultTransitionDelay,
		ScriptDelay:     DefaultScriptDelay,
		RevealInterval:  DefaultRevealInterval,
		ContinuePrompt:  DefaultContinuePrompt,
	}
}

// Coordinator runs one dialogue session: it decides what the guide says when
// the player talks, sends live turns to the model, and moves the tour along.
// Every state change happens under mu, which is never held across a model call.
type Coordinator struct {
	store      *conversation.Store
	engine     *scene.Engine
	client     ChatClient
	presenter  Presenter
	sensor     PositionSensor
	script     *scene.OpeningScript
	logger     *slog.Logger
	opts       Options
	classifier feedback.Classifier
	scrubber   *textfilter.LeakScrubber
	scheduler  Scheduler
	typer      *Typewriter

	mu       sync.Mutex
	first    bool
	awaiting bool
	epoch    uint64
	cancel   context.CancelFunc
	pending  func() bool
	options  [4]string
}

// New wires a coordinator. The conversation is seeded if it is not already.
func New(deps Deps, opts Options) (*Coordinator, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("conversation store is required")
	case deps.Engine == nil:
		return nil, errors.New("scene engine is required")
	case deps.Client == nil:
		return nil, errors.New("chat client is required")
	case deps.Presenter == nil:
		return nil, errors.New("presenter is required")
	}

	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.NPCName == "" {
		opts.NPCName = scene.DefaultGuideName
	}
	if opts.ContinuePrompt == "" {
		opts.ContinuePrompt = DefaultContinuePrompt
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	classifier := feedback.DefaultClassifier()
	if opts.Classifier != nil {
		classifier = *opts.Classifier
	}
	scrubber := opts.Scrubber
	if scrubber == nil {
		scrubber = textfilter.NewLeakScrubber()
	}

	if !deps.Store.Initialized() {
		if err := deps.Engine.Start(); err != nil {
			return nil, err
		}
	}

	return &Coordinator{
		store:      deps.Store,
		engine:     deps.Engine,
		client:     deps.Client,
		presenter:  deps.Presenter,
		sensor:     deps.Sensor,
		script:     deps.Script,
		logger:     deps.Logger,
		opts:       opts,
		classifier: classifier,
		scrubber:   scrubber,
		scheduler:  opts.Scheduler,
		typer:      NewTypewriter(deps.Presenter, opts.Scheduler, opts.RevealInterval),
		first:      true,
	}, nil
}

// BeginOrResumeDialogue is called when the player talks to the guide. It is a
// no-op while a reply or a delayed step is pending.
func (c *Coordinator) BeginOrResumeDialogue(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.awaiting || c.pending != nil {
		c.logger.Debug("dialogue busy", "awaiting", c.awaiting, "pending", c.pending != nil)
		return
	}

	c.presenter.ShowPanel()
	c.presenter.ShowSpeaker(c.opts.NPCName, c.opts.Portrait)

	if c.scriptedLocked() {
		c.typer.Start(c.script.Question)
		c.setOptionsLocked(c.script.Options())
		return
	}
	if c.engine.JourneyComplete() {
		c.resumeLocked()
		return
	}

	pos, known := c.position()
	switch {
	case known && c.engine.ShouldAdvance(pos):
		c.transitionLocked(pos)
	case c.engine.Questions() == 0:
		c.introLocked()
	case c.engine.QuestionsQuotaMet():
		c.guidanceLocked(ctx, pos, known)
	default:
		c.resumeLocked()
	}
}

// SelectOption answers with the option shown in slot index. It is ignored
// while a reply is pending, while text is being revealed, and for blank slots.
func (c *Coordinator) SelectOption(ctx context.Context, index int) {
	c.mu.Lock()
	run := c.selectLocked(ctx, index)
	c.mu.Unlock()
	if run != nil {
		run()
	}
}

func (c *Coordinator) selectLocked(ctx context.Context, index int) func() {
	if index < 0 || index >= len(c.options) {
		return nil
	}
	if c.awaiting || c.typer.Active() {
		c.logger.Debug("option ignored", "index", index, "awaiting", c.awaiting)
		return nil
	}
	option := c.options[index]
	if strings.TrimSpace(option) == "" {
		c.logger.Debug("no option in slot", "index", index)
		return nil
	}

	if c.scriptedLocked() {
		c.scriptedAnswerLocked(ctx, index)
		return nil
	}

	c.presenter.SetBodyText(chat.FormatPlayerChoice(option))
	c.hideOptionsLocked()
	return c.askLocked(ctx, option)
}

func (c *Coordinator) scriptedAnswerLocked(ctx context.Context, index int) {
	if index >= len(c.script.Responses) {
		return
	}
	r := c.script.Responses[index]

	if err := c.store.AppendUser(r.Option); err != nil {
		c.logger.Error("failed to record scripted choice", "error", err)
		return
	}
	if err := c.store.AppendAssistant(r.Response); err != nil {
		c.logger.Error("failed to record scripted reply", "error", err)
		return
	}
	c.engine.RecordQuestionAsked()
	c.first = false

	c.typer.Start(r.Response)
	c.presenter.SetFeedbackTint(r.Feedback)
	c.hideOptionsLocked()
	c.notifyLocked()

	c.scheduleLocked(c.opts.ScriptDelay, func() func() {
		return c.continueAfterScriptLocked(ctx)
	})
}

func (c *Coordinator) continueAfterScriptLocked(ctx context.Context) func() {
	pos, known := c.position()
	switch {
	case known && c.engine.ShouldAdvance(pos):
		c.transitionLocked(pos)
		return nil
	case c.engine.QuestionsQuotaMet():
		c.guidanceLocked(ctx, pos, known)
		return nil
	}
	return c.askLocked(ctx, c.opts.ContinuePrompt)
}

func (c *Coordinator) transitionLocked(pos scene.Vec3) {
	c.hideOptionsLocked()
	// The guide line names the next scene, so render it before the index moves.
	c.typer.Start(c.engine.Guide(pos, true))

	c.scheduleLocked(c.opts.TransitionDelay, func() func() {
		if _, err := c.engine.Advance(); err != nil {
			c.logger.Error("failed to advance scene", "error", err)
			return nil
		}
		c.notifyLocked()
		c.introLocked()
		return nil
	})
}

func (c *Coordinator) guidanceLocked(ctx context.Context, pos scene.Vec3, known bool) {
	c.hideOptionsLocked()
	c.typer.Start(c.engine.Guide(pos, known))

	if !c.engine.IsLastScene() {
		return
	}
	c.scheduleLocked(c.opts.TransitionDelay, func() func() {
		res, err := c.engine.Advance()
		if err != nil {
			c.logger.Error("failed to complete journey", "error", err)
			return nil
		}
		if res != scene.JourneyCompleted {
			return nil
		}
		c.notifyLocked()
		return c.requestLocked(ctx)
	})
}

func (c *Coordinator) introLocked() {
	turn := ParseTurn(c.engine.Current().Introduction)
	c.typer.Start(turn.Body)
	c.setOptionsLocked(turn.Options)
}

func (c *Coordinator) resumeLocked() {
	last, ok := c.store.LastAssistant()
	if !ok {
		c.introLocked()
		return
	}
	turn := ParseTurn(last)
	c.typer.Stop()
	c.presenter.SetBodyText(turn.Body)
	c.setOptionsLocked(turn.Options)
}

// askLocked records text as the player's turn and starts a model request.
// Long input is cut at twice the option cap.
func (c *Coordinator) askLocked(ctx context.Context, text string) func() {
	if limit := 2 * c.engine.Options().MaxOptionWords; limit > 0 && textfilter.CountWords(text) > limit {
		text = textfilter.TruncateWords(text, limit)
	}
	if err := c.store.AppendUser(text); err != nil {
		c.logger.Error("failed to record player turn", "error", err)
		return nil
	}
	return c.requestLocked(ctx)
}

// requestLocked marks a reply as awaited and returns the call to run once mu
// is released.
func (c *Coordinator) requestLocked(ctx context.Context) func() {
	reqCtx, cancel := context.WithCancel(ctx)
	c.awaiting = true
	c.cancel = cancel
	epoch := c.epoch
	messages := c.store.Snapshot()

	return func() {
		defer cancel()
		start := time.Now()
		resp, err := c.client.GetChatResponse(reqCtx, messages)
		c.finishRequest(epoch, resp, err, time.Since(start))
	}
}

func (c *Coordinator) finishRequest(epoch uint64, resp *chat.ChatResponse, err error, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		c.logger.Debug("dropping reply from a previous session", "elapsed", elapsed)
		return
	}
	c.awaiting = false
	c.cancel = nil

	if err == nil && (resp == nil || strings.TrimSpace(resp.Message) == "") {
		err = ErrEmptyReply
	}
	if err != nil {
		c.logger.Warn("chat request failed", "error", err, "elapsed", elapsed)
		c.hideOptionsLocked()
		c.typer.Start(ApologyText)
		return
	}

	limits := c.engine.Options()
	text := textfilter.EnforceWordLimits(resp.Message, limits.MaxQuestionWords, limits.MaxOptionWords)
	text = c.scrubber.Scrub(text)

	if err := c.store.AppendAssistant(text); err != nil {
		c.logger.Error("failed to record guide turn", "error", err)
		return
	}
	c.engine.RecordQuestionAsked()
	c.logger.Debug("guide replied", "elapsed", elapsed, "scene", c.engine.Current().Name, "questions", c.engine.Questions())

	turn := ParseTurn(text)
	c.typer.Start(turn.Body)
	c.setOptionsLocked(turn.Options)
	c.presenter.SetFeedbackTint(c.classifier.Classify(text))
	c.notifyLocked()
}

// scheduleLocked runs f under mu after d unless the session is reset first.
func (c *Coordinator) scheduleLocked(d time.Duration, f func() func()) {
	epoch := c.epoch
	c.pending = c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		if epoch != c.epoch {
			c.mu.Unlock()
			return
		}
		c.pending = nil
		run := f()
		c.mu.Unlock()
		if run != nil {
			run()
		}
	})
}

// SkipReveal shows the whole body text at once.
func (c *Coordinator) SkipReveal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typer.Skip()
}

// HideDialogue closes the panel. Pending steps still run.
func (c *Coordinator) HideDialogue() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typer.Skip()
	c.presenter.HidePanel()
}

// ResetSession abandons any pending reply or delayed step, clears the
// conversation and progress, and seeds a fresh system prompt. The scripted
// opening plays again only when resetFirstInteraction is set.
func (c *Coordinator) ResetSession(ctx context.Context, resetFirstInteraction bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.awaiting = false
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
	c.typer.Stop()

	c.store.Reset()
	c.engine.Reset()
	if resetFirstInteraction {
		c.first = true
	}

	c.hideOptionsLocked()
	c.presenter.SetBodyText("")
	c.presenter.SetFeedbackTint(feedback.Neutral)

	if err := c.engine.Start(); err != nil {
		return fmt.Errorf("failed to reseed conversation: %w", err)
	}
	c.logger.InfoContext(ctx, "session reset", "reset_first_interaction", resetFirstInteraction)
	c.notifyLocked()
	return nil
}

// RestartJourney resets everything, including the scripted opening, and talks again.
func (c *Coordinator) RestartJourney(ctx context.Context) error {
	if err := c.ResetSession(ctx, true); err != nil {
		return err
	}
	c.BeginOrResumeDialogue(ctx)
	return nil
}

// SetFirstInteraction overrides whether the next talk plays the scripted opening.
func (c *Coordinator) SetFirstInteraction(first bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.first = first
}

// FirstInteraction reports whether the scripted opening is still to come.
func (c *Coordinator) FirstInteraction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.first
}

// Awaiting reports whether a model reply is outstanding.
func (c *Coordinator) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Revealing reports whether body text is still being typed out.
func (c *Coordinator) Revealing() bool {
	return c.typer.Active()
}

// Snapshot returns a copy of the conversation.
func (c *Coordinator) Snapshot() []chat.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Snapshot()
}

// Progress returns the tour progress.
func (c *Coordinator) Progress() scene.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Progress()
}

// Status describes the gate state for pos and logs it.
func (c *Coordinator) Status(pos scene.Vec3) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.engine.Progress()
	quota := c.engine.QuestionsQuotaMet()
	advance := c.engine.ShouldAdvance(pos)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Scene %d/%d: %s\n", p.SceneIndex+1, len(c.engine.Locations()), p.SceneName)
	fmt.Fprintf(&sb, "Questions: %d/%d (quota met: %t)\n", p.Questions, p.Target, quota)
	if next, ok := c.engine.Next(); ok {
		dist, _ := c.engine.DistanceToNextScene(pos)
		fmt.Fprintf(&sb, "Next: %s, %.1f units away (within %g: %t)\n",
			next.Name, dist, c.engine.TransitionDistance(), c.engine.PlayerNearNextScene(pos))
	} else {
		sb.WriteString("Next: none, final scene\n")
	}
	fmt.Fprintf(&sb, "Should advance: %t", advance)

	c.logger.Info("scene status",
		"scene", p.SceneName,
		"index", p.SceneIndex,
		"questions", p.Questions,
		"target", p.Target,
		"quota_met", quota,
		"should_advance", advance,
		"journey_complete", p.Complete)
	return sb.String()
}

func (c *Coordinator) scriptedLocked() bool {
	return c.first && c.script != nil
}

func (c *Coordinator) position() (scene.Vec3, bool) {
	if c.sensor == nil {
		return scene.Vec3{}, false
	}
	return c.sensor.Position(), true
}

func (c *Coordinator) setOptionsLocked(options [4]string) {
	c.options = options
	if (Turn{Options: options}).HasOptions() {
		c.presenter.SetOptions(options)
		return
	}
	c.presenter.HideOptions()
}

func (c *Coordinator) hideOptionsLocked() {
	c.options = [4]string{}
	c.presenter.HideOptions()
}

func (c *Coordinator) notifyLocked() {
	if obs, ok := c.presenter.(ProgressObserver); ok {
		obs.ProgressChanged(c.engine.Progress())
	}
}
