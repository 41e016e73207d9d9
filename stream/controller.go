package stream

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/matt-g-everett/nodetx/anim"
	"github.com/matt-g-everett/nodetx/scene"
	"github.com/matt-g-everett/nodetx/tween"
)

// Status describes the state of a Controller.
type Status struct {
	Playing   bool             `json:"playing"`
	Active    int              `json:"active"`
	Frames    int              `json:"frames"`
	Transform scene.Transform  `json:"transform"`
	Initial   *scene.Transform `json:"initial,omitempty"`
}

// A Fader smooths the jump between two animations.
type Fader interface {
	CrossFade()
}

// Controller that plays a keyframe list on a node.
type Controller struct {
	player *anim.Player
	path   string
	loop   bool
	fader  Fader

	mu     sync.Mutex
	base   context.Context
	frames []anim.Frame
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController creates an instance of a Controller that plays the
// keyframe file at path.
func NewController(player *anim.Player, path string, loop bool) *Controller {
	c := new(Controller)
	c.player = player
	c.path = path
	c.loop = loop
	c.base = context.Background()
	return c
}

// SetFader makes the controller cross-fade through f whenever the
// keyframes are reloaded.
func (c *Controller) SetFader(f Fader) {
	c.fader = f
}

// Load reads the keyframe file. Playback is not affected until the
// next Play.
func (c *Controller) Load() error {
	frames, err := anim.ReadFramesFile(c.path)
	if err != nil {
		return err
	}
	c.SetFrames(frames)
	log.Printf("Loaded %d frames from %s", len(frames), c.path)
	return nil
}

// SetFrames replaces the keyframe list.
func (c *Controller) SetFrames(frames []anim.Frame) {
	c.mu.Lock()
	c.frames = frames
	c.mu.Unlock()
}

// Play restarts playback of the keyframe list.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	ctx, cancel := context.WithCancel(c.base)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	frames := c.frames

	go c.play(ctx, frames, done)
}

func (c *Controller) play(ctx context.Context, frames []anim.Frame, done chan struct{}) {
	defer close(done)
	for {
		err := c.player.Play(ctx, frames)
		switch {
		case errors.Is(err, tween.ErrStopped), errors.Is(err, context.Canceled):
			return
		case err != nil:
			log.Printf("Playback failed: %v", err)
			return
		}
		if !c.loop || len(frames) == 0 {
			return
		}
	}
}

// Stop stops playback and waits for it to end.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// stopLocked ends the current playback. c.mu must be held.
func (c *Controller) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.player.Stop()
	<-c.done
	c.cancel, c.done = nil, nil
}

// Reset stops playback and restores the node's initial transform.
func (c *Controller) Reset() {
	c.Stop()
	c.player.Reset()
}

// Status returns the current state of playback.
func (c *Controller) Status() Status {
	c.mu.Lock()
	s := Status{Frames: len(c.frames)}
	if c.done != nil {
		select {
		case <-c.done:
		default:
			s.Playing = true
		}
	}
	c.mu.Unlock()

	s.Active = c.player.Active()
	s.Transform = c.player.Target().Transform()
	if t, ok := c.player.InitialTransform(); ok {
		s.Initial = &t
	}
	return s
}

// Run loads and plays the keyframe list, reloading and replaying it
// whenever a name arrives on reload. When ctx is done the player is
// disposed and Run returns.
func (c *Controller) Run(ctx context.Context, reload <-chan string) error {
	c.mu.Lock()
	c.base = ctx
	c.mu.Unlock()

	if err := c.Load(); err != nil {
		return err
	}
	c.Play()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			c.player.Dispose()
			return nil
		case name, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			log.Printf("Keyframes changed: %s", name)
			if err := c.Load(); err != nil {
				log.Printf("Keeping previous frames: %v", err)
				continue
			}
			if c.fader != nil {
				c.fader.CrossFade()
			}
			c.Play()
		}
	}
}
