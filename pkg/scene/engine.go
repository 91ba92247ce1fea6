package scene

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/jwebster45206/tour-guide/pkg/conversation"
)

const (
	DefaultTransitionDistance = 8.0
	DefaultMaxQuestionWords   = 90
	DefaultMaxOptionWords     = 10
)

// Options tune the progression gate and the prompt word caps.
type Options struct {
	TransitionDistance float64
	MaxQuestionWords   int
	MaxOptionWords     int
}

// DefaultOptions returns the stock gate settings.
func DefaultOptions() Options {
	return Options{
		TransitionDistance: DefaultTransitionDistance,
		MaxQuestionWords:   DefaultMaxQuestionWords,
		MaxOptionWords:     DefaultMaxOptionWords,
	}
}

// Transition says what Advance did.
type Transition int

const (
	// Advanced moved to the next scene.
	Advanced Transition = iota
	// JourneyCompleted finished the last scene and appended the closing directive.
	JourneyCompleted
	// AlreadyComplete means the journey had ended before this call.
	AlreadyComplete
)

func (r Transition) String() string {
	switch r {
	case Advanced:
		return "advanced"
	case JourneyCompleted:
		return "journey_completed"
	default:
		return "already_complete"
	}
}

// Progress is a read-only view of the progression state.
type Progress struct {
	SceneIndex int    `json:"scene_index"`
	SceneName  string `json:"scene_name"`
	Questions  int    `json:"questions"`
	Target     int    `json:"target"`
	Complete   bool   `json:"complete"`
}

// Engine walks the tour one scene at a time. A scene is left only when both
// its question quota is met and the player stands near the next scene.
type Engine struct {
	tour      Tour
	store     *conversation.Store
	opts      Options
	logger    *slog.Logger
	current   int
	questions int
	complete  bool
}

// NewEngine validates the tour and binds it to the conversation store whose
// system prompt it maintains. The tour is copied.
func NewEngine(t Tour, store *conversation.Store, opts Options, logger *slog.Logger) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("conversation store is required")
	}
	if opts.TransitionDistance <= 0 {
		opts.TransitionDistance = DefaultTransitionDistance
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		tour:   t.Clone(),
		store:  store,
		opts:   opts,
		logger: logger,
	}
	for i := range e.tour.Locations {
		e.tour.Locations[i].Completed = false
	}
	return e, nil
}

// Start seeds the conversation with the initial system prompt.
func (e *Engine) Start() error {
	if err := e.store.Init(BuildInitialPrompt(&e.tour, e.current, e.questions, e.promptSettings())); err != nil {
		return fmt.Errorf("failed to seed system prompt: %w", err)
	}
	return nil
}

func (e *Engine) promptSettings() PromptSettings {
	return PromptSettings{
		MaxQuestionWords:   e.opts.MaxQuestionWords,
		MaxOptionWords:     e.opts.MaxOptionWords,
		TransitionDistance: e.opts.TransitionDistance,
	}
}

// RecordQuestionAsked counts one guide question in the current scene.
// The count is not capped; the quota is a minimum.
func (e *Engine) RecordQuestionAsked() {
	e.questions++
	e.logger.Debug("question recorded",
		"scene", e.tour.Locations[e.current].Name,
		"questions", e.questions,
		"target", e.tour.Locations[e.current].TargetQuestions)
}

// QuestionsQuotaMet reports whether the current scene has had enough questions.
func (e *Engine) QuestionsQuotaMet() bool {
	return e.questions >= e.tour.Locations[e.current].TargetQuestions
}

// DistanceToNextScene is the ground distance from pos to the next scene.
// It reports false on the last scene.
func (e *Engine) DistanceToNextScene(pos Vec3) (float64, bool) {
	next, ok := e.Next()
	if !ok {
		return math.MaxFloat64, false
	}
	return pos.Horizontal().Distance(next.Coordinates), true
}

// PlayerNearNextScene reports whether pos is within the transition distance of
// the next scene. It is always false on the last scene.
func (e *Engine) PlayerNearNextScene(pos Vec3) bool {
	dist, ok := e.DistanceToNextScene(pos)
	return ok && dist <= e.opts.TransitionDistance
}

// ShouldAdvance is the dual gate: quota met and player near the next scene.
func (e *Engine) ShouldAdvance(pos Vec3) bool {
	return e.QuestionsQuotaMet() && e.PlayerNearNextScene(pos)
}

// Advance leaves the current scene. On the last scene it ends the journey
// instead, appending the closing directive once.
func (e *Engine) Advance() (Transition, error) {
	if e.complete {
		return AlreadyComplete, nil
	}

	if e.IsLastScene() {
		if err := e.store.AppendUser(JourneyCompleteDirective); err != nil {
			return AlreadyComplete, fmt.Errorf("failed to append closing directive: %w", err)
		}
		e.tour.Locations[e.current].Completed = true
		e.complete = true
		e.logger.Info("journey complete", "scene", e.tour.Locations[e.current].Name)
		return JourneyCompleted, nil
	}

	from := e.tour.Locations[e.current].Name
	e.tour.Locations[e.current].Completed = true
	e.current++
	e.questions = 0
	e.store.RewriteSystemPrompt(BuildSceneUpdatePrompt(&e.tour, e.current, e.promptSettings()))

	e.logger.Info("moved to next scene", "from", from, "to", e.tour.Locations[e.current].Name, "index", e.current)
	return Advanced, nil
}

// Reset returns to the first scene with no questions asked and nothing completed.
// The conversation store is left alone.
func (e *Engine) Reset() {
	e.current = 0
	e.questions = 0
	e.complete = false
	for i := range e.tour.Locations {
		e.tour.Locations[i].Completed = false
	}
}

// Current returns the scene the player is in.
func (e *Engine) Current() Location {
	return e.tour.Locations[e.current]
}

// Next returns the scene after the current one, if any.
func (e *Engine) Next() (Location, bool) {
	if e.IsLastScene() {
		return Location{}, false
	}
	return e.tour.Locations[e.current+1], true
}

// Index returns the current scene index.
func (e *Engine) Index() int { return e.current }

// Questions returns the questions asked in the current scene.
func (e *Engine) Questions() int { return e.questions }

// IsLastScene reports whether the current scene is the final stop.
func (e *Engine) IsLastScene() bool {
	return e.current >= len(e.tour.Locations)-1
}

// JourneyComplete reports whether the completion branch has run.
func (e *Engine) JourneyComplete() bool { return e.complete }

// Options returns the gate settings and word caps in use.
func (e *Engine) Options() Options { return e.opts }

// TransitionDistance returns the configured proximity threshold.
func (e *Engine) TransitionDistance() float64 { return e.opts.TransitionDistance }

// Locations returns a copy of the scene list with current completion flags.
func (e *Engine) Locations() []Location {
	return append([]Location(nil), e.tour.Locations...)
}

// Progress returns the progression state.
func (e *Engine) Progress() Progress {
	loc := e.tour.Locations[e.current]
	return Progress{
		SceneIndex: e.current,
		SceneName:  loc.Name,
		Questions:  e.questions,
		Target:     loc.TargetQuestions,
		Complete:   e.complete,
	}
}
