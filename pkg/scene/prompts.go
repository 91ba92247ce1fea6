package scene

import (
	"fmt"
	"strings"
)

// JourneyCompleteDirective is appended as a user turn when the last scene is finished.
const JourneyCompleteDirective = "Journey complete. Provide brief summary and ask about replay."

// PromptSettings are the numbers the system prompt promises the model.
type PromptSettings struct {
	MaxQuestionWords   int
	MaxOptionWords     int
	TransitionDistance float64
}

const initialPromptTemplate = `%s

CRITICAL REQUIREMENTS:
1. You MUST ask exactly %d questions in the current scene before moving to the next location
2. Keep track internally: Current scene: %s, Questions asked: %d/%d
3. IMPORTANT: After %d questions, player must also move close to next location (within %g units) to proceed
4. Do NOT generate questions asking players to choose the next scene
5. Guide players strictly in this fixed order: %s
6. NEVER mention question count or progress in your dialogue with the player. Keep all tracking internal.

STRICT WORD LIMITS:
- Keep each question + introduction UNDER %d words total
- Keep each option UNDER %d words
- Be concise and focused on core concepts
%s
FORMAT REQUIREMENTS:
1. Always provide exactly 4 options labeled A), B), C), D)
2. Options C and D can sense emotional responses
3. After the required questions AND player is near next location, guide to next scene
4. Use clear coordinates and directions
5. Never mention question counts or progress tracking in dialogue

SCENE GUIDE:
%s
Remember: You must ask the required questions per scene, then guide player to move to next location. Keep all tracking internal.`

const sceneUpdatePromptTemplate = `%s

[SCENE UPDATE] Now at: %s
Previous scene completed. Questions reset to 0.

CRITICAL REQUIREMENTS:
1. You MUST ask exactly %d questions in this scene before moving to the next location
2. Current question count: 0/%d (INTERNAL ONLY - DO NOT SHOW)
3. After %d questions AND player is near next location (within %g units), guide to next scene
4. Follow fixed sequence: %s
5. IMPORTANT: NEVER mention question count or progress in dialogue with player

WORD LIMITS:
- Question + intro: %d words max
- Each option: %d words max

%s
Continue with concise guidance. Remember: the required questions per scene AND player must move close to next location.`

// BuildInitialPrompt renders the system prompt for the start of a tour.
func BuildInitialPrompt(t *Tour, current, questions int, s PromptSettings) string {
	loc := t.Locations[current]
	return fmt.Sprintf(initialPromptTemplate,
		t.Persona,
		loc.TargetQuestions,
		loc.Name, questions, loc.TargetQuestions,
		loc.TargetQuestions, s.TransitionDistance,
		VisitOrder(t),
		s.MaxQuestionWords,
		s.MaxOptionWords,
		focusSection(t.Focus),
		sceneList(t, current, false),
	)
}

// BuildSceneUpdatePrompt renders the replacement system prompt after a transition.
func BuildSceneUpdatePrompt(t *Tour, current int, s PromptSettings) string {
	loc := t.Locations[current]
	return fmt.Sprintf(sceneUpdatePromptTemplate,
		t.Persona,
		loc.Name,
		loc.TargetQuestions,
		loc.TargetQuestions,
		loc.TargetQuestions, s.TransitionDistance,
		VisitOrder(t),
		s.MaxQuestionWords,
		s.MaxOptionWords,
		sceneList(t, current, true),
	)
}

// VisitOrder joins location names in canonical order.
func VisitOrder(t *Tour) string {
	names := make([]string, len(t.Locations))
	for i, loc := range t.Locations {
		names[i] = loc.Name
	}
	return strings.Join(names, " → ")
}

func focusSection(focus []string) string {
	if len(focus) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\nFOCUS:\n")
	for _, f := range focus {
		sb.WriteString("- ")
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	return sb.String()
}

func sceneList(t *Tour, current int, withStatus bool) string {
	var sb strings.Builder
	sb.WriteString("Available scenes and coordinates:\n")
	for i, loc := range t.Locations {
		status := ""
		if withStatus {
			switch {
			case loc.Completed:
				status = "[COMPLETED] "
			case i == current:
				status = "[CURRENT] "
			}
		}
		fmt.Fprintf(&sb, "- %s%s: %s (Coordinates: %g, %g)\n",
			status, loc.Name, loc.Description, loc.Coordinates.X, loc.Coordinates.Y)
	}
	return sb.String()
}
