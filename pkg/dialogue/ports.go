package dialogue

import (
	"context"

	"github.com/jwebster45206/tour-guide/pkg/chat"
	"github.com/jwebster45206/tour-guide/pkg/feedback"
	"github.com/jwebster45206/tour-guide/pkg/scene"
)

// Presenter is the dialogue panel. Calls are made while the coordinator holds
// its lock, so implementations must not call back into the Coordinator.
type Presenter interface {
	ShowSpeaker(name, portrait string)
	SetBodyText(text string)
	// SetOptions shows up to four options; blank entries hide their slot.
	SetOptions(options [4]string)
	HideOptions()
	SetFeedbackTint(kind feedback.Kind)
	ShowPanel()
	HidePanel()
}

// ProgressObserver is optionally implemented by a Presenter that wants to
// hear about scene and question count changes.
type ProgressObserver interface {
	ProgressChanged(p scene.Progress)
}

// PositionSensor reports the player's world position on demand.
type PositionSensor interface {
	Position() scene.Vec3
}

// ChatClient sends the whole conversation and returns the model's reply.
type ChatClient interface {
	GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}
