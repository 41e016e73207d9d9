package anim

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matt-g-everett/nodetx/scene"
	"github.com/matt-g-everett/nodetx/tween"
	"gopkg.in/yaml.v2"
)

// ErrMalformedFrame is returned for a keyframe that cannot be played.
var ErrMalformedFrame = errors.New("anim: malformed frame")

// Defaults applied to fields a Frame leaves unset.
const (
	DefaultDuration = 1000
	DefaultDelay    = 0
	// RepeatForever as Frame.Repeat repeats the transition without bound.
	RepeatForever = -1
)

// A Frame is a target transform with the timing of the transition
// that reaches it. Durations are in milliseconds.
type Frame struct {
	Position *scene.Vec3 `yaml:"position" json:"position"`
	Rotation *scene.Vec3 `yaml:"rotation" json:"rotation"`
	Scale    *scene.Vec3 `yaml:"scale" json:"scale"`

	Duration *int   `yaml:"duration,omitempty" json:"duration,omitempty"`
	Delay    *int   `yaml:"delay,omitempty" json:"delay,omitempty"`
	Repeat   *int   `yaml:"repeat,omitempty" json:"repeat,omitempty"`
	Yoyo     *bool  `yaml:"yoyo,omitempty" json:"yoyo,omitempty"`
	Easing   string `yaml:"easing,omitempty" json:"easing,omitempty"`
}

// NewFrame creates a Frame with the given target transform and
// default timing.
func NewFrame(t scene.Transform) Frame {
	return Frame{Position: &t.Position, Rotation: &t.Rotation, Scale: &t.Scale}
}

// Int returns a pointer to n, for the optional fields of Frame.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for Frame.Yoyo.
func Bool(b bool) *bool { return &b }

// Validate reports whether f can be played.
func (f *Frame) Validate() error {
	switch {
	case f.Position == nil:
		return fmt.Errorf("%w: missing position", ErrMalformedFrame)
	case f.Rotation == nil:
		return fmt.Errorf("%w: missing rotation", ErrMalformedFrame)
	case f.Scale == nil:
		return fmt.Errorf("%w: missing scale", ErrMalformedFrame)
	case f.Duration != nil && *f.Duration < 0:
		return fmt.Errorf("%w: negative duration %d", ErrMalformedFrame, *f.Duration)
	case f.Delay != nil && *f.Delay < 0:
		return fmt.Errorf("%w: negative delay %d", ErrMalformedFrame, *f.Delay)
	case f.Repeat != nil && *f.Repeat < RepeatForever:
		return fmt.Errorf("%w: repeat %d", ErrMalformedFrame, *f.Repeat)
	}
	return nil
}

// Transform returns the target transform of f.
// f must be valid.
func (f *Frame) Transform() scene.Transform {
	return scene.Transform{Position: *f.Position, Rotation: *f.Rotation, Scale: *f.Scale}
}

// Options resolves the timing of f, applying defaults.
func (f *Frame) Options() tween.Options {
	opts := tween.Options{
		Delay:    DefaultDelay * time.Millisecond,
		Duration: DefaultDuration * time.Millisecond,
		Mode:     f.Easing,
	}
	if f.Delay != nil {
		opts.Delay = time.Duration(*f.Delay) * time.Millisecond
	}
	if f.Duration != nil {
		opts.Duration = time.Duration(*f.Duration) * time.Millisecond
	}
	if f.Repeat != nil {
		if *f.Repeat == RepeatForever {
			opts.Repeat = tween.Forever
		} else {
			opts.Repeat = *f.Repeat
		}
	}
	if f.Yoyo != nil {
		opts.Yoyo = *f.Yoyo
	}
	return opts
}

// Field names of a flattened transform.
const (
	FieldX         = "x"
	FieldY         = "y"
	FieldZ         = "z"
	FieldRotationX = "rotationX"
	FieldRotationY = "rotationY"
	FieldRotationZ = "rotationZ"
	FieldScaleX    = "scaleX"
	FieldScaleY    = "scaleY"
	FieldScaleZ    = "scaleZ"
)

// Flatten converts t into the scalar fields interpolated by a tween.
func Flatten(t scene.Transform) tween.Values {
	return tween.Values{
		FieldX:         t.Position.X(),
		FieldY:         t.Position.Y(),
		FieldZ:         t.Position.Z(),
		FieldRotationX: t.Rotation.X(),
		FieldRotationY: t.Rotation.Y(),
		FieldRotationZ: t.Rotation.Z(),
		FieldScaleX:    t.Scale.X(),
		FieldScaleY:    t.Scale.Y(),
		FieldScaleZ:    t.Scale.Z(),
	}
}

// Unflatten is the inverse of Flatten.
func Unflatten(v tween.Values) scene.Transform {
	return scene.Transform{
		Position: scene.V3(v[FieldX], v[FieldY], v[FieldZ]),
		Rotation: scene.V3(v[FieldRotationX], v[FieldRotationY], v[FieldRotationZ]),
		Scale:    scene.V3(v[FieldScaleX], v[FieldScaleY], v[FieldScaleZ]),
	}
}

// Document is the YAML layout of a keyframe file.
type Document struct {
	Frames []Frame `yaml:"frames"`
}

// LoadFrames decodes a keyframe document and validates every frame.
func LoadFrames(r io.Reader) ([]Frame, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("anim: decoding frames: %w", err)
	}
	for i := range doc.Frames {
		if err := doc.Frames[i].Validate(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return doc.Frames, nil
}

// ReadFramesFile loads the keyframe document at path.
func ReadFramesFile(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFrames(f)
}
