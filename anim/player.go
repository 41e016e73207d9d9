// Package anim plays keyframe transform animations on a scene node.
package anim

import (
	"context"
	"fmt"
	"sync"

	"github.com/matt-g-everett/nodetx/scene"
	"github.com/matt-g-everett/nodetx/tween"
)

// An Interpolator runs one tween between two sets of values.
// *tween.Engine is the standard implementation.
type Interpolator interface {
	Animation(ctx context.Context, from, to tween.Values, opts tween.Options, onUpdate tween.UpdateFunc, onStart tween.StartFunc) error
}

// Option configures a Player.
type Option func(*Player)

// WithStore makes the player keep its snapshot in s
// instead of DefaultStore.
func WithStore(s *Store) Option {
	return func(p *Player) { p.store = s }
}

// Player animates the transform of a single node through a sequence
// of frames.
//
// The first time a player touches its node it records the node's
// transform. Play starts from that snapshot, Reset restores it and
// Dispose forgets it.
type Player struct {
	renderer scene.Renderer
	target   *scene.Node
	engine   Interpolator
	store    *Store

	mu     sync.Mutex
	tweens map[*tween.Tween]struct{}

	events dispatcher
}

// NewPlayer creates a player for target.
// renderer may be nil, in which case Reset does not render.
func NewPlayer(renderer scene.Renderer, target *scene.Node, engine Interpolator, opts ...Option) *Player {
	p := &Player{
		renderer: renderer,
		target:   target,
		engine:   engine,
		store:    DefaultStore,
		tweens:   make(map[*tween.Tween]struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Target returns the animated node.
func (p *Player) Target() *scene.Node { return p.target }

// AddEventListener registers fn for events of type typ.
// Calling the returned function unregisters it.
func (p *Player) AddEventListener(typ EventType, fn Listener) (remove func()) {
	return p.events.add(typ, fn)
}

// InitTransform records the target's current transform,
// unless a snapshot already exists.
func (p *Player) InitTransform() {
	p.store.Init(p.target)
}

// InitialTransform returns the recorded snapshot, if any.
func (p *Player) InitialTransform() (scene.Transform, bool) {
	return p.store.Get(p.target)
}

// ClearInitialTransform forgets the recorded snapshot.
func (p *Player) ClearInitialTransform() {
	p.store.Clear(p.target)
}

// Play runs one transition per frame, in order. The first transition
// starts at the snapshot; each following one starts at the previous
// frame. Each transition, repeats included, completes before the next
// begins.
//
// Frames are validated before anything is played. Errors from the
// interpolator are returned as is; in particular a transition cancelled
// by Stop ends Play with tween.ErrStopped.
func (p *Player) Play(ctx context.Context, frames []Frame) error {
	current := p.store.Init(p.target)

	for i := range frames {
		if err := frames[i].Validate(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	for i := range frames {
		next := frames[i].Transform()
		if err := p.transition(ctx, current, next, frames[i].Options()); err != nil {
			return err
		}
		current = next
	}
	return nil
}

func (p *Player) transition(ctx context.Context, from, to scene.Transform, opts tween.Options) error {
	var t *tween.Tween
	err := p.engine.Animation(ctx, Flatten(from), Flatten(to), opts, p.update, func(tw *tween.Tween) {
		t = tw
		p.start(tw)
	})
	if t != nil {
		p.mu.Lock()
		delete(p.tweens, t)
		p.mu.Unlock()
	}
	return err
}

func (p *Player) start(t *tween.Tween) {
	p.mu.Lock()
	p.tweens[t] = struct{}{}
	p.mu.Unlock()
	p.events.dispatch(Event{Type: Start, Tween: t})
}

func (p *Player) update(v tween.Values, t *tween.Tween) {
	p.mu.Lock()
	_, active := p.tweens[t]
	if active {
		p.target.SetTransform(Unflatten(v))
	}
	p.mu.Unlock()
	if active {
		p.events.dispatch(Event{Type: Update, Values: v, Tween: t})
	}
}

// Active returns the number of transitions currently tracked.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tweens)
}

// Stop cancels every tracked transition.
// The target keeps its current transform.
func (p *Player) Stop() {
	p.mu.Lock()
	tweens := p.tweens
	p.tweens = make(map[*tween.Tween]struct{})
	p.mu.Unlock()
	for t := range tweens {
		t.Stop()
	}
}

// Reset restores the snapshot onto the target and renders.
// It does nothing if there is no snapshot.
// Running transitions are not cancelled; call Stop first.
func (p *Player) Reset() {
	t, ok := p.store.Get(p.target)
	if !ok {
		return
	}
	p.mu.Lock()
	p.target.SetTransform(t)
	p.mu.Unlock()
	if p.renderer != nil {
		p.renderer.Render()
	}
}

// Dispose stops, resets and forgets the snapshot.
// A later Play records a new snapshot from the target's transform
// at that time.
func (p *Player) Dispose() {
	p.Stop()
	p.Reset()
	p.store.Clear(p.target)
}
