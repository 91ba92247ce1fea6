package main

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/tour-guide/pkg/feedback"
	"github.com/jwebster45206/tour-guide/pkg/scene"
)

// Messages sent from the coordinator into the bubbletea loop.
type (
	speakerMsg struct {
		name     string
		portrait string
	}
	bodyMsg        struct{ text string }
	optionsMsg     struct{ options [4]string }
	hideOptionsMsg struct{}
	tintMsg        struct{ kind feedback.Kind }
	panelMsg       struct{ visible bool }
	progressMsg    struct{ progress scene.Progress }
)

// teaPresenter forwards dialogue panel calls to the program as messages. The
// coordinator calls it while holding its lock, so it only sends and never
// reads model state.
type teaPresenter struct {
	send func(tea.Msg)
}

func newPresenter(send func(tea.Msg)) *teaPresenter {
	return &teaPresenter{send: send}
}

func (p *teaPresenter) ShowSpeaker(name, portrait string) {
	p.send(speakerMsg{name: name, portrait: portrait})
}

func (p *teaPresenter) SetBodyText(text string) { p.send(bodyMsg{text: text}) }

func (p *teaPresenter) SetOptions(options [4]string) { p.send(optionsMsg{options: options}) }

func (p *teaPresenter) HideOptions() { p.send(hideOptionsMsg{}) }

func (p *teaPresenter) SetFeedbackTint(kind feedback.Kind) { p.send(tintMsg{kind: kind}) }

func (p *teaPresenter) ShowPanel() { p.send(panelMsg{visible: true}) }

func (p *teaPresenter) HidePanel() { p.send(panelMsg{visible: false}) }

func (p *teaPresenter) ProgressChanged(progress scene.Progress) {
	p.send(progressMsg{progress: progress})
}

// player is the walking position. The UI moves it and the coordinator reads
// it from its own goroutine.
type player struct {
	mu  sync.Mutex
	pos scene.Vec3
}

func newPlayer(start scene.Vec2) *player {
	return &player{pos: scene.Vec3{X: start.X, Z: start.Y}}
}

func (p *player) Position() scene.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *player) Move(dx, dz float64) scene.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos.X += dx
	p.pos.Z += dz
	return p.pos
}

// MoveTo places the player on a ground point, keeping the current height.
func (p *player) MoveTo(at scene.Vec2) scene.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos.X = at.X
	p.pos.Z = at.Y
	return p.pos
}
