package anim

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matt-g-everett/nodetx/scene"
	"github.com/matt-g-everett/nodetx/tween"
)

func TestFrameOptions(t *testing.T) {
	base := NewFrame(scene.Identity())
	with := func(f func(*Frame)) Frame {
		fr := base
		f(&fr)
		return fr
	}
	for _, x := range [...]struct {
		name  string
		frame Frame
		want  tween.Options
	}{
		{"defaults", base, tween.Options{Duration: time.Second}},
		{"explicit", with(func(f *Frame) {
			f.Duration = Int(250)
			f.Delay = Int(100)
			f.Repeat = Int(3)
			f.Yoyo = Bool(true)
			f.Easing = "InOutQuad"
		}), tween.Options{Duration: 250 * time.Millisecond, Delay: 100 * time.Millisecond, Repeat: 3, Yoyo: true, Mode: "InOutQuad"}},
		{"repeat forever", with(func(f *Frame) { f.Repeat = Int(RepeatForever) }),
			tween.Options{Duration: time.Second, Repeat: tween.Forever}},
		{"repeat zero", with(func(f *Frame) { f.Repeat = Int(0) }), tween.Options{Duration: time.Second}},
		{"zero duration", with(func(f *Frame) { f.Duration = Int(0) }), tween.Options{}},
	} {
		if have := x.frame.Options(); have != x.want {
			t.Errorf("%s: Options\nhave %+v\nwant %+v", x.name, have, x.want)
		}
	}
}

func TestFrameValidate(t *testing.T) {
	v := scene.V3(0, 0, 0)
	valid := Frame{Position: &v, Rotation: &v, Scale: &v}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: unexpected error %v", err)
	}
	for _, f := range []Frame{
		{Rotation: &v, Scale: &v},
		{Position: &v, Scale: &v},
		{Position: &v, Rotation: &v},
		{Position: &v, Rotation: &v, Scale: &v, Duration: Int(-1)},
		{Position: &v, Rotation: &v, Scale: &v, Delay: Int(-5)},
		{Position: &v, Rotation: &v, Scale: &v, Repeat: Int(-2)},
	} {
		if err := f.Validate(); !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("Validate(%+v): err\nhave %v\nwant %v", f, err, ErrMalformedFrame)
		}
	}
}

func TestFlatten(t *testing.T) {
	tr := scene.Transform{
		Position: scene.V3(1, 2, 3),
		Rotation: scene.V3(4, 5, 6),
		Scale:    scene.V3(7, 8, 9),
	}
	v := Flatten(tr)
	if len(v) != 9 || v[FieldX] != 1 || v[FieldRotationY] != 5 || v[FieldScaleZ] != 9 {
		t.Fatalf("Flatten: have %v", v)
	}
	if have := Unflatten(v); have != tr {
		t.Fatalf("Unflatten(Flatten(t))\nhave %v\nwant %v", have, tr)
	}
}

const framesYAML = `
frames:
  - position: {x: 1, y: 0, z: 0}
    rotation: {x: 0, y: 0, z: 0}
    scale: {x: 1, y: 1, z: 1}
  - position: {x: 2, y: 0, z: 0}
    rotation: {x: 0, y: 3.14, z: 0}
    scale: {x: 2, y: 2, z: 2}
    duration: 500
    delay: 50
    repeat: -1
    yoyo: true
    easing: OutBounce
`

func TestLoadFrames(t *testing.T) {
	frames, err := LoadFrames(strings.NewReader(framesYAML))
	if err != nil {
		t.Fatalf("LoadFrames: unexpected error %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("LoadFrames: len\nhave %d\nwant 2", len(frames))
	}
	if have := frames[0].Options(); have != (tween.Options{Duration: time.Second}) {
		t.Fatalf("frames[0].Options: have %+v", have)
	}
	want := tween.Options{
		Delay:    50 * time.Millisecond,
		Duration: 500 * time.Millisecond,
		Mode:     "OutBounce",
		Repeat:   tween.Forever,
		Yoyo:     true,
	}
	if have := frames[1].Options(); have != want {
		t.Fatalf("frames[1].Options\nhave %+v\nwant %+v", have, want)
	}
	if have := frames[1].Transform().Rotation; have != scene.V3(0, 3.14, 0) {
		t.Fatalf("frames[1].Transform().Rotation: have %v", have)
	}
}

func TestLoadFramesMalformed(t *testing.T) {
	const doc = `
frames:
  - position: {x: 1, y: 0, z: 0}
    scale: {x: 1, y: 1, z: 1}
`
	if _, err := LoadFrames(strings.NewReader(doc)); !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("LoadFrames: err\nhave %v\nwant %v", err, ErrMalformedFrame)
	}
	if frames, err := LoadFrames(strings.NewReader("")); err != nil || len(frames) != 0 {
		t.Fatalf("LoadFrames(\"\"): have %v, %v", frames, err)
	}
}
