package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypewriter_RevealsRuneByRune(t *testing.T) {
	p := &fakePresenter{}
	s := &manualScheduler{}
	tw := NewTypewriter(p, s, time.Millisecond)

	tw.Start("héj")
	assert.True(t, tw.Active())
	assert.Equal(t, "", p.Body())

	s.Fire()
	assert.Equal(t, "h", p.Body())
	s.Fire()
	assert.Equal(t, "hé", p.Body())
	s.Fire()
	assert.Equal(t, "héj", p.Body())

	assert.False(t, tw.Active())
	assert.Equal(t, 0, s.Pending())
}

func TestTypewriter_Skip(t *testing.T) {
	p := &fakePresenter{}
	s := &manualScheduler{}
	tw := NewTypewriter(p, s, time.Millisecond)

	tw.Start("hello")
	s.Fire()
	assert.True(t, tw.Skip())
	assert.Equal(t, "hello", p.Body())
	assert.False(t, tw.Active())
	assert.Equal(t, 0, s.Pending())

	assert.False(t, tw.Skip(), "nothing left to skip")
}

func TestTypewriter_StopLeavesPartialText(t *testing.T) {
	p := &fakePresenter{}
	s := &manualScheduler{}
	tw := NewTypewriter(p, s, time.Millisecond)

	tw.Start("hello")
	s.Fire()
	s.Fire()
	tw.Stop()

	assert.Equal(t, "he", p.Body())
	assert.Equal(t, 0, s.Fire())
}

func TestTypewriter_RestartCancelsPrevious(t *testing.T) {
	p := &fakePresenter{}
	s := &manualScheduler{}
	tw := NewTypewriter(p, s, time.Millisecond)

	tw.Start("first")
	tw.Start("xy")

	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, "x", p.Body())
}

func TestTypewriter_ZeroIntervalIsInstant(t *testing.T) {
	p := &fakePresenter{}
	s := &manualScheduler{}
	tw := NewTypewriter(p, s, 0)

	tw.Start("all at once")

	assert.Equal(t, "all at once", p.Body())
	assert.False(t, tw.Active())
	assert.Equal(t, 0, s.Pending())
}

func TestTypewriter_TimerScheduler(t *testing.T) {
	p := &fakePresenter{}
	tw := NewTypewriter(p, TimerScheduler{}, time.Millisecond)

	tw.Start("abc")
	assert.Eventually(t, func() bool { return !tw.Active() }, time.Second, time.Millisecond)
	assert.Equal(t, "abc", p.Body())
}
