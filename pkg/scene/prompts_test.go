package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSettings = PromptSettings{MaxQuestionWords: 90, MaxOptionWords: 10, TransitionDistance: 8}

func TestBuildInitialPrompt(t *testing.T) {
	tour := DefaultTour()
	got := BuildInitialPrompt(&tour, 0, 0, testSettings)

	assert.True(t, strings.HasPrefix(got, tour.Persona))
	assert.Contains(t, got, "You MUST ask exactly 3 questions")
	assert.Contains(t, got, "Current scene: Wooden Bridge, Questions asked: 0/3")
	assert.Contains(t, got, "(within 8 units)")
	assert.Contains(t, got, "UNDER 90 words total")
	assert.Contains(t, got, "UNDER 10 words")
	assert.Contains(t, got, "FOCUS:\n- Emphasize harmony with nature")
	assert.Contains(t, got, "- Stone Pagoda: Buddhist stone pagoda at crossroads (Coordinates: 153, 344)")
	assert.NotContains(t, got, "[CURRENT]")
}

func TestBuildSceneUpdatePrompt(t *testing.T) {
	tour := DefaultTour()
	tour.Locations[0].Completed = true
	got := BuildSceneUpdatePrompt(&tour, 1, testSettings)

	assert.Contains(t, got, "[SCENE UPDATE] Now at: Stone Pagoda")
	assert.Contains(t, got, "Current question count: 0/3")
	assert.Contains(t, got, "- [COMPLETED] Wooden Bridge:")
	assert.Contains(t, got, "- [CURRENT] Stone Pagoda:")
	assert.Contains(t, got, "Question + intro: 90 words max")
}

func TestBuildInitialPrompt_NoFocus(t *testing.T) {
	tour := testTour()
	got := BuildInitialPrompt(&tour, 0, 1, testSettings)

	assert.NotContains(t, got, "FOCUS:")
	assert.Contains(t, got, "Questions asked: 1/2")
}

func TestVisitOrder(t *testing.T) {
	tour := testTour()
	assert.Equal(t, "Gate → Hall → Tower", VisitOrder(&tour))
}
