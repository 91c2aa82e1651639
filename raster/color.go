package raster

import (
	"image/color"
	"math"
)

// Color is a non-premultiplied RGBA8 value copied out of an Image buffer.
type Color struct {
	R, G, B, A uint8
}

// DefaultFill is the color New paints every pixel with.
var DefaultFill = Color{R: 0, G: 0, B: 0, A: 255}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA(c).RGBA()
}

// Partial returns an update that sets every channel to c.
func (c Color) Partial() Partial {
	return Partial{
		R: Ch(float64(c.R)),
		G: Ch(float64(c.G)),
		B: Ch(float64(c.B)),
		A: Ch(float64(c.A)),
	}
}

var ColorModel = color.ModelFunc(colorConvert)

func colorConvert(c color.Color) color.Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	return Color(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Channel is an optional channel value. The zero Channel is unset.
type Channel struct {
	v   float64
	set bool
}

func Ch(v float64) Channel {
	return Channel{v: v, set: true}
}

func (c Channel) IsSet() bool { return c.set }

// byteValue truncates toward zero and clamps to [0,255]. NaN maps to 0.
func (c Channel) byteValue() uint8 {
	switch {
	case math.IsNaN(c.v):
		return 0
	case c.v <= 0:
		return 0
	case c.v >= 255:
		return 255
	}
	return uint8(math.Trunc(c.v))
}

// Partial is a color update where unset channels keep the stored value.
type Partial struct {
	R, G, B, A Channel
}

func (p Partial) IsEmpty() bool {
	return !p.R.set && !p.G.set && !p.B.set && !p.A.set
}

func (p Partial) apply(dst []uint8) {
	for i, ch := range [4]Channel{p.R, p.G, p.B, p.A} {
		if ch.set {
			dst[i] = ch.byteValue()
		}
	}
}
