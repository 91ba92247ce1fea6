package dialogue

import (
	"sync"
	"time"
)

// Typewriter reveals body text one rune at a time through a Presenter.
// A reveal is a chain of scheduled steps; Stop cancels the chain and Skip
// also shows the full text.
type Typewriter struct {
	presenter Presenter
	scheduler Scheduler
	interval  time.Duration

	mu     sync.Mutex
	runes  []rune
	shown  int
	gen    uint64
	active bool
	stop   func() bool
}

// NewTypewriter builds a reveal task. An interval of zero or less shows text at once.
func NewTypewriter(p Presenter, s Scheduler, interval time.Duration) *Typewriter {
	if s == nil {
		s = TimerScheduler{}
	}
	return &Typewriter{presenter: p, scheduler: s, interval: interval}
}

// Start cancels any running reveal and begins revealing text.
func (tw *Typewriter) Start(text string) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	tw.cancelLocked()
	tw.runes = []rune(text)
	tw.shown = 0

	if tw.interval <= 0 || len(tw.runes) == 0 {
		tw.presenter.SetBodyText(text)
		return
	}

	tw.presenter.SetBodyText("")
	tw.active = true
	tw.scheduleLocked(tw.gen)
}

func (tw *Typewriter) scheduleLocked(gen uint64) {
	tw.stop = tw.scheduler.AfterFunc(tw.interval, func() { tw.step(gen) })
}

func (tw *Typewriter) step(gen uint64) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if !tw.active || gen != tw.gen {
		return
	}
	tw.shown++
	tw.presenter.SetBodyText(string(tw.runes[:tw.shown]))
	if tw.shown >= len(tw.runes) {
		tw.active = false
		tw.stop = nil
		return
	}
	tw.scheduleLocked(gen)
}

// Active reports whether a reveal is in progress.
func (tw *Typewriter) Active() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.active
}

// Skip ends a running reveal by showing the whole text. Returns false if
// nothing was being revealed.
func (tw *Typewriter) Skip() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if !tw.active {
		return false
	}
	tw.cancelLocked()
	tw.shown = len(tw.runes)
	tw.presenter.SetBodyText(string(tw.runes))
	return true
}

// Stop cancels a running reveal, leaving the partial text on screen.
func (tw *Typewriter) Stop() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.cancelLocked()
}

func (tw *Typewriter) cancelLocked() {
	tw.gen++
	tw.active = false
	if tw.stop != nil {
		tw.stop()
		tw.stop = nil
	}
}
