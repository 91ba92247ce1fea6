package scene

import (
	"testing"

	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTour() Tour {
	return Tour{
		Name:    "Test Route",
		Guide:   "Guide",
		Persona: "You are a test guide.",
		Locations: []Location{
			{Name: "Gate", Coordinates: Vec2{X: 0, Y: 0}, TargetQuestions: 2, Introduction: "Welcome to the gate."},
			{Name: "Hall", Coordinates: Vec2{X: 100, Y: 0}, TargetQuestions: 1, Introduction: "This is the hall."},
			{Name: "Tower", Coordinates: Vec2{X: 100, Y: 100}, TargetQuestions: 1, Introduction: "This is the tower."},
		},
	}
}

func newTestEngine(t *testing.T, tour Tour) (*Engine, *conversation.Store) {
	t.Helper()
	store := conversation.NewStore()
	e, err := NewEngine(tour, store, DefaultOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	return e, store
}

func TestNewEngine_Errors(t *testing.T) {
	_, err := NewEngine(Tour{}, conversation.NewStore(), DefaultOptions(), nil)
	assert.ErrorIs(t, err, ErrEmptyTour)

	_, err = NewEngine(testTour(), nil, DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestNewEngine_DefaultDistance(t *testing.T) {
	e, err := NewEngine(testTour(), conversation.NewStore(), Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTransitionDistance, e.TransitionDistance())
}

func TestEngine_StartSeedsSystemPrompt(t *testing.T) {
	_, store := newTestEngine(t, testTour())

	msgs := store.Snapshot()
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.ChatRoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "You are a test guide.")
	assert.Contains(t, msgs[0].Content, "Gate → Hall → Tower")
}

func TestEngine_QuestionsQuotaMet(t *testing.T) {
	e, _ := newTestEngine(t, testTour())

	assert.False(t, e.QuestionsQuotaMet())
	e.RecordQuestionAsked()
	assert.False(t, e.QuestionsQuotaMet())
	e.RecordQuestionAsked()
	assert.True(t, e.QuestionsQuotaMet())
	e.RecordQuestionAsked()
	assert.True(t, e.QuestionsQuotaMet())
	assert.Equal(t, 3, e.Questions())
}

func TestEngine_ZeroQuotaIsMetImmediately(t *testing.T) {
	tour := testTour()
	tour.Locations[0].TargetQuestions = 0
	e, _ := newTestEngine(t, tour)

	assert.True(t, e.QuestionsQuotaMet())
}

func TestEngine_PlayerNearNextScene(t *testing.T) {
	e, _ := newTestEngine(t, testTour())

	tests := []struct {
		name string
		pos  Vec3
		want bool
	}{
		{"on top of next", Vec3{X: 100, Y: 0, Z: 0}, true},
		{"exactly at threshold", Vec3{X: 92, Y: 0, Z: 0}, true},
		{"just outside", Vec3{X: 91.9, Y: 0, Z: 0}, false},
		{"height is ignored", Vec3{X: 100, Y: 500, Z: 0}, true},
		{"far away", Vec3{X: 0, Y: 0, Z: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.PlayerNearNextScene(tt.pos))
		})
	}
}

func TestEngine_LastSceneNeverNear(t *testing.T) {
	e, _ := newTestEngine(t, testTour())
	for !e.IsLastScene() {
		_, err := e.Advance()
		require.NoError(t, err)
	}

	tower := e.Current().Coordinates
	assert.False(t, e.PlayerNearNextScene(Vec3{X: tower.X, Z: tower.Y}))
	_, ok := e.DistanceToNextScene(Vec3{})
	assert.False(t, ok)
}

func TestEngine_ShouldAdvanceTruthTable(t *testing.T) {
	near := Vec3{X: 98, Z: 0}
	far := Vec3{X: 0, Z: 0}

	tests := []struct {
		name      string
		questions int
		pos       Vec3
		want      bool
	}{
		{"quota unmet and far", 0, far, false},
		{"quota unmet and near", 1, near, false},
		{"quota met and far", 2, far, false},
		{"quota met and near", 2, near, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, testTour())
			for i := 0; i < tt.questions; i++ {
				e.RecordQuestionAsked()
			}
			assert.Equal(t, tt.want, e.ShouldAdvance(tt.pos))
		})
	}
}

func TestEngine_AdvanceRewritesSystemPrompt(t *testing.T) {
	e, store := newTestEngine(t, testTour())
	e.RecordQuestionAsked()
	e.RecordQuestionAsked()
	require.NoError(t, store.AppendUser("question"))
	require.NoError(t, store.AppendAssistant("answer"))

	got, err := e.Advance()
	require.NoError(t, err)
	assert.Equal(t, Advanced, got)

	assert.Equal(t, 1, e.Index())
	assert.Equal(t, 0, e.Questions())
	assert.Equal(t, "Hall", e.Current().Name)
	assert.True(t, e.Locations()[0].Completed)

	// Same length: the system prompt is replaced in place.
	assert.Equal(t, 3, store.Len())
	prompt := store.SystemPrompt()
	assert.Contains(t, prompt, "[SCENE UPDATE] Now at: Hall")
	assert.Contains(t, prompt, "[COMPLETED]")
	assert.Contains(t, prompt, "[CURRENT]")
}

func TestEngine_TerminalAdvanceOnce(t *testing.T) {
	e, store := newTestEngine(t, testTour())
	for !e.IsLastScene() {
		_, err := e.Advance()
		require.NoError(t, err)
	}
	before := store.Len()

	got, err := e.Advance()
	require.NoError(t, err)
	assert.Equal(t, JourneyCompleted, got)
	assert.True(t, e.JourneyComplete())
	assert.Equal(t, 2, e.Index())

	msgs := store.Snapshot()
	require.Len(t, msgs, before+1)
	assert.Equal(t, chat.ChatRoleUser, msgs[len(msgs)-1].Role)
	assert.Equal(t, JourneyCompleteDirective, msgs[len(msgs)-1].Content)

	for i := 0; i < 3; i++ {
		got, err = e.Advance()
		require.NoError(t, err)
		assert.Equal(t, AlreadyComplete, got)
	}
	assert.Equal(t, before+1, store.Len())
	assert.Equal(t, 2, e.Index())
}

func TestEngine_Reset(t *testing.T) {
	e, _ := newTestEngine(t, testTour())
	for !e.JourneyComplete() {
		_, err := e.Advance()
		require.NoError(t, err)
	}
	e.RecordQuestionAsked()

	e.Reset()

	assert.Equal(t, Progress{SceneIndex: 0, SceneName: "Gate", Questions: 0, Target: 2}, e.Progress())
	for _, loc := range e.Locations() {
		assert.False(t, loc.Completed, loc.Name)
	}
}

func TestEngine_DoesNotMutateCallerTour(t *testing.T) {
	tour := testTour()
	e, _ := newTestEngine(t, tour)
	_, err := e.Advance()
	require.NoError(t, err)

	assert.False(t, tour.Locations[0].Completed)
}

func TestEngine_Guide(t *testing.T) {
	e, _ := newTestEngine(t, DefaultTour())

	t.Run("far from next scene", func(t *testing.T) {
		got := e.Guide(Vec3{X: 153, Z: 324}, true)
		assert.Contains(t, got, "Please move closer to Buddhist stone pagoda at crossroads at coordinates (153, 344)")
		assert.Contains(t, got, "You're currently 20.0 units away. (Need to be within 8 units)")
	})

	t.Run("near next scene", func(t *testing.T) {
		got := e.Guide(Vec3{X: 153, Z: 342}, true)
		assert.Equal(t, "Excellent! We've completed our exploration here. Now let's proceed to Buddhist stone pagoda at crossroads at coordinates (153, 344).", got)
	})

	t.Run("unknown position", func(t *testing.T) {
		assert.Equal(t, MoveCloserText, e.Guide(Vec3{}, false))
	})

	t.Run("last scene", func(t *testing.T) {
		for !e.IsLastScene() {
			_, err := e.Advance()
			require.NoError(t, err)
		}
		assert.Equal(t, FinalDestinationText, e.Guide(Vec3{}, true))
	})
}
