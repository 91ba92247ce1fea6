package scene

import "github.com/jwebster45206/tour-guide/pkg/feedback"

const (
	DefaultGuideName       = "Scholar Wei"
	DefaultTargetQuestions = 3
)

const defaultPersona = "You are a knowledgeable Chinese scholar specializing in Asian traditional architecture and aesthetic philosophy."

// DefaultTour is the eight-stop garden route.
func DefaultTour() Tour {
	return Tour{
		Name:    "Garden of Asian Architecture",
		Guide:   DefaultGuideName,
		Persona: defaultPersona,
		Focus: []string{
			"Emphasize harmony with nature, material authenticity, spiritual symbolism",
			"Compare Asian vs Western approaches when relevant",
			"Focus on aesthetic essence, not technical details",
		},
		Locations: []Location{
			{
				Name:            "Wooden Bridge",
				Coordinates:     Vec2{X: 132, Y: 231},
				Description:     "Starting point at the wooden bridge",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Welcome. I'm Scholar Wei. This wooden bridge shows Asian harmony with nature. Curves work with water flow, not against it. What interests you most?\n\nA) Bridge construction methods\nB) Asian vs Western design\nC) Feeling peaceful here\nD) Natural materials beauty",
			},
			{
				Name:            "Stone Pagoda",
				Coordinates:     Vec2{X: 153, Y: 344},
				Description:     "Buddhist stone pagoda at crossroads",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "This stone pagoda embodies spiritual geometry. Each tier represents enlightenment stages. Unlike Western towers reaching skyward, pagodas accumulate energy gently. Notice the peaceful presence?\n\nA) Tier symbolism meaning\nB) Material spiritual values\nC) Peaceful feeling here\nD) Craftsmanship details",
			},
			{
				Name:            "Song-style Building",
				Coordinates:     Vec2{X: 145, Y: 377},
				Description:     "Song-style building with stone lions",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Song-style architecture shows refined proportions. Elegant roof curves and stone lions guard spiritually. Integration with landscape is key. What catches your attention?\n\nA) Song aesthetic principles\nB) Lion symbolism meaning\nC) Balanced space feeling\nD) Nature integration",
			},
			{
				Name:            "Japanese Courtyard",
				Coordinates:     Vec2{X: 143, Y: 410},
				Description:     "Japanese courtyard with cherry blossoms",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Japanese courtyard demonstrates wabi-sabi beauty. Cherry blossoms show life's transience. Architecture respects material authenticity. Intentional asymmetry creates harmony. Your thoughts?\n\nA) Wabi-sabi expression\nB) Tang-Japan connections\nC) Emotional cherry response\nD) Intimate space feeling",
			},
			{
				Name:            "Torii Gate",
				Coordinates:     Vec2{X: 200, Y: 424},
				Description:     "Japanese torii gate by wooden bridge",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Torii gates mark sacred transition. Simple structure, deep meaning. Passage represents spiritual journey. Framing landscape intentionally. Your experience?\n\nA) Spiritual significance\nB) Ceremonial design\nC) Otherworldly feeling\nD) Simple aesthetics",
			},
			{
				Name:            "Chinese Round Arch",
				Coordinates:     Vec2{X: 196, Y: 360},
				Description:     "Chinese round arch with lanterns",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Round arch symbolizes harmony. Circular form suggests continuity. Lanterns light physical and spiritual paths. Every element meaningful here. What interests you?\n\nA) Circular form meaning\nB) Lantern evolution\nC) Framed view beauty\nD) Function symbolism blend",
			},
			{
				Name:            "Bamboo Path",
				Coordinates:     Vec2{X: 265, Y: 371},
				Description:     "Bamboo path with cultural symbolism",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Bamboo represents Asian values. Flexibility with strength. Hollow centers mean humility. Teaches resilience and grace. Walking here, what do you feel?\n\nA) Construction uses\nB) Philosophical lessons\nC) Soothing sounds\nD) Cultural reverence",
			},
			{
				Name:            "Mountain Villa",
				Coordinates:     Vec2{X: 341, Y: 434},
				Description:     "Mountain villa with lake view",
				TargetQuestions: DefaultTargetQuestions,
				Introduction:    "Mountain retreats offer perspective. Scholars sought wisdom, not conquest. This view represents life's journey from wisdom's height. Asian philosophy values nature contemplation. Your reflection?\n\nA) Scholar retreat reasons\nB) Landscape philosophy\nC) Perspective feeling\nD) Peaceful experience",
			},
		},
		Opening: &OpeningScript{
			Question: "Greetings, traveler. Before we walk the garden together, tell me: what draws you to places like this?",
			Responses: []ScriptedResponse{
				{
					Option:   "A) The craftsmanship",
					Response: "An excellent instinct. Every joint here was shaped by hand, without a single nail. Let us begin at the bridge.",
					Feedback: feedback.Positive,
				},
				{
					Option:   "B) The history",
					Response: "Well chosen. These forms carry a thousand years of ideas between China and Japan. Let us begin at the bridge.",
					Feedback: feedback.Positive,
				},
				{
					Option:   "C) The quiet",
					Response: "An interesting answer. Quiet is part of the design, as much as wood or stone. Let us begin at the bridge.",
					Feedback: feedback.Neutral,
				},
				{
					Option:   "D) I'm just passing through",
					Response: "Then let the garden surprise you. Even a short walk here teaches something. Let us begin at the bridge.",
					Feedback: feedback.Neutral,
				},
			},
		},
	}
}
