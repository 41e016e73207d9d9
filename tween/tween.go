// Package tween interpolates sets of named scalar fields over time.
package tween

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrStopped is returned by Animation when the tween was stopped.
	ErrStopped = errors.New("tween: stopped")
	// ErrUnknownMode is returned for an easing mode with no function.
	ErrUnknownMode = errors.New("tween: unknown easing mode")
	// ErrFields is returned when source and target fields differ.
	ErrFields = errors.New("tween: source and target fields differ")
)

// Forever as Options.Repeat makes a tween repeat without bound.
const Forever = math.MaxInt

// Values is a set of named scalar fields.
type Values map[string]float64

// Lerp interpolates every field of v towards w.
func (v Values) Lerp(w Values, t float64) Values {
	out := make(Values, len(v))
	for k, a := range v {
		out[k] = a + (w[k]-a)*t
	}
	return out
}

// Keys returns the field names of v in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sameFields(v, w Values) bool {
	if len(v) != len(w) {
		return false
	}
	for k := range v {
		if _, ok := w[k]; !ok {
			return false
		}
	}
	return true
}

// Options controls the timing of a tween.
type Options struct {
	Delay    time.Duration
	Duration time.Duration
	Mode     string
	// Repeat is the number of additional passes.
	// Forever repeats without bound.
	Repeat int
	// Yoyo runs every odd pass in reverse.
	Yoyo bool
}

func (o Options) validate() error {
	switch {
	case o.Delay < 0:
		return fmt.Errorf("tween: negative delay %v", o.Delay)
	case o.Duration < 0:
		return fmt.Errorf("tween: negative duration %v", o.Duration)
	case o.Repeat < 0:
		return fmt.Errorf("tween: negative repeat %d", o.Repeat)
	}
	return nil
}

// progress returns the linear progress of the tween after elapsed time.
// started is false while the delay has not yet passed.
// done is true once the last pass has reached its end.
func (o Options) progress(elapsed time.Duration) (p float64, started, done bool) {
	e := elapsed - o.Delay
	if e < 0 {
		return 0, false, false
	}
	last := o.Repeat
	if o.Duration <= 0 {
		if last == Forever {
			return o.passEnd(0), true, false
		}
		return o.passEnd(last), true, true
	}
	pass := e / o.Duration
	if last != Forever && pass > time.Duration(last) {
		return o.passEnd(last), true, true
	}
	p = float64(e%o.Duration) / float64(o.Duration)
	if o.Yoyo && pass%2 == 1 {
		p = 1 - p
	}
	return p, true, false
}

// passEnd returns the progress at the end of the given pass.
func (o Options) passEnd(pass int) float64 {
	if o.Yoyo && pass%2 == 1 {
		return 0
	}
	return 1
}

var nextID atomic.Uint64

// A Tween is a handle to one running interpolation.
type Tween struct {
	id   uint64
	opts Options
	once sync.Once
	done chan struct{}
}

// NewTween creates a handle for a tween with the given options.
func NewTween(opts Options) *Tween {
	return &Tween{
		id:   nextID.Add(1),
		opts: opts,
		done: make(chan struct{}),
	}
}

// ID returns a process-unique identifier for t.
func (t *Tween) ID() uint64 { return t.id }

// Options returns the options t was created with.
func (t *Tween) Options() Options { return t.opts }

// Stop stops t. It can be called any number of times.
func (t *Tween) Stop() {
	t.once.Do(func() { close(t.done) })
}

// Done returns a channel that is closed when t is stopped.
func (t *Tween) Done() <-chan struct{} { return t.done }

// Stopped returns whether Stop was called.
func (t *Tween) Stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Tween) String() string { return fmt.Sprintf("tween#%d", t.id) }
