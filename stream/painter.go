package stream

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/nodetx/scene"
)

// A Painter draws a node's transform onto an led strip.
//
// The node is a lit segment. Its centre follows position X, with the
// strip spanning extent world units centred on the origin. Its length
// follows scale X, and its colour is taken from the gradient at the
// node's Y rotation. Brightness falls off towards the segment's ends.
type Painter struct {
	numPixels  int
	extent     float64
	background colorful.Color
	gradient   GradientTable
	saturation float64
	luminance  float64
}

// NewPainter creates an instance of a Painter.
func NewPainter(numPixels int, extent float64, background colorful.Color, gradient GradientTable) *Painter {
	p := new(Painter)
	p.numPixels = numPixels
	p.extent = extent
	p.background = background
	p.gradient = gradient
	p.saturation = 1.0
	p.luminance = 0.05
	return p
}

// NewPainterFromConfig creates a Painter for the strip described by c.
func NewPainterFromConfig(c Config) (*Painter, error) {
	back, err := colorful.Hex(c.Strip.Background)
	if err != nil {
		return nil, err
	}
	return NewPainter(c.Strip.Pixels, c.Strip.Extent, back, DefaultGradient), nil
}

// segment returns the centre and half length in pixels of the lit
// segment for t.
func (p *Painter) segment(t scene.Transform) (centre, half float64) {
	n := float64(p.numPixels)
	centre = (t.Position.X()/p.extent + 0.5) * n
	half = math.Abs(t.Scale.X()) * n / 40
	return
}

// hue returns the normalised Y rotation in [0, 1).
func hue(t scene.Transform) float64 {
	r := math.Mod(t.Rotation.Y(), 2*math.Pi) / (2 * math.Pi)
	if r < 0 {
		r += 1
	}
	return r
}

// Paint creates a new Frame showing t.
func (p *Painter) Paint(t scene.Transform) *Frame {
	f := NewFrame(p.numPixels)
	f.Fill(p.background)

	colour := p.gradient.GetColor(hue(t), p.saturation, p.luminance)
	centre, half := p.segment(t)
	if half < 0.5 {
		i := int(math.Round(centre))
		if i >= 0 && i < p.numPixels {
			f.pixels[i] = colour
		}
		return f
	}

	start := int(math.Max(math.Ceil(centre-half), 0))
	end := int(math.Min(math.Floor(centre+half), float64(p.numPixels-1)))
	for i := start; i <= end; i++ {
		d := math.Abs(float64(i)-centre) / half
		f.pixels[i] = p.background.BlendHcl(colour, ease.InOutQuad(1-d))
	}

	return f
}
