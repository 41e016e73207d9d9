package tween

import (
	"context"
	"fmt"
	"time"
)

// UpdateFunc receives the interpolated values of a running tween.
type UpdateFunc func(v Values, t *Tween)

// StartFunc is called once when a tween begins.
type StartFunc func(t *Tween)

// A Ticker delivers frame times to an Engine.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

// NewTimeTicker returns a Ticker backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Engine drives tweens from a frame clock.
type Engine struct {
	interval  time.Duration
	newTicker func(time.Duration) Ticker
}

// NewEngine creates an Engine that advances tweens frameRate times
// per second.
func NewEngine(frameRate float64) *Engine {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Engine{
		interval:  time.Duration(float64(time.Second) / frameRate),
		newTicker: NewTimeTicker,
	}
}

// WithTicker replaces the engine's frame clock.
func (e *Engine) WithTicker(newTicker func(time.Duration) Ticker) *Engine {
	e.newTicker = newTicker
	return e
}

// Interval returns the time between frames.
func (e *Engine) Interval() time.Duration { return e.interval }

// Animation interpolates from towards to.
// onStart is called with the tween's handle before the first frame.
// onUpdate is called on every frame once the delay has passed,
// the last call carrying the exact end values of the final pass.
// Animation blocks until the tween completes (nil), is stopped
// (ErrStopped) or ctx is done (ctx.Err()).
func (e *Engine) Animation(ctx context.Context, from, to Values, opts Options, onUpdate UpdateFunc, onStart StartFunc) error {
	if !sameFields(from, to) {
		return fmt.Errorf("%w: %v and %v", ErrFields, from.Keys(), to.Keys())
	}
	if err := opts.validate(); err != nil {
		return err
	}
	easing, err := Easing(opts.Mode)
	if err != nil {
		return err
	}

	ticker := e.newTicker(e.interval)
	defer ticker.Stop()

	t := NewTween(opts)
	if onStart != nil {
		onStart(t)
	}

	var start time.Time
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.Done():
			return ErrStopped
		case now := <-ticker.C():
			if start.IsZero() {
				start = now
			}
			p, started, done := opts.progress(now.Sub(start))
			if !started {
				continue
			}
			if t.Stopped() {
				return ErrStopped
			}
			f := p
			if !done {
				f = easing(p)
			}
			if onUpdate != nil {
				onUpdate(from.Lerp(to, f), t)
			}
			if done {
				return nil
			}
		}
	}
}
