package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrShape      = errors.New("invalid shape")
	ErrOutOfRange = errors.New("coordinate out of range")
)

// Image is an RGBA8 raster. The pixel at (x, y) starts at Pix()[Index(x, y)].
type Image struct {
	width  int
	height int
	pix    []uint8
}

var _ interface {
	image.Image
	Set(x, y int, c color.Color)
} = &Image{}

// PointFunc receives each pixel's coordinate and current color. The returned update is
// applied with SetColor semantics; an empty Partial leaves the pixel as it was.
type PointFunc func(x, y int, c Color) Partial

func New(width, height int) *Image {
	return NewFilled(width, height, DefaultFill)
}

func NewFilled(width, height int, fill Color) *Image {
	width, height = max(width, 1), max(height, 1)
	img := &Image{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}

	p := fill.Partial()
	return img.ForEachPoint(func(int, int, Color) Partial {
		return p
	})
}

// FromDecoded wraps an already decoded RGBA8 buffer without copying it.
func FromDecoded(width, height int, pix []uint8) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrShape, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, %dx%d needs %d", ErrShape,
			len(pix), width, height, width*height*4)
	}

	return &Image{width: width, height: height, pix: pix}, nil
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// Pix returns the backing buffer. It is replaced by Scale.
func (img *Image) Pix() []uint8 { return img.pix }

func (img *Image) Index(x, y int) int {
	return (img.width*y + x) * 4
}

func (img *Image) in(x, y int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height
}

func (img *Image) GetColor(x, y int) (Color, error) {
	if !img.in(x, y) {
		return Color{}, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, x, y, img.width, img.height)
	}
	return img.colorAt(x, y), nil
}

// SetColor writes the set channels of p at (x, y) and returns the stored color.
func (img *Image) SetColor(x, y int, p Partial) (Color, error) {
	if !img.in(x, y) {
		return Color{}, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, x, y, img.width, img.height)
	}
	return img.setColorAt(x, y, p), nil
}

func (img *Image) colorAt(x, y int) Color {
	i := img.Index(x, y)
	s := img.pix[i : i+4 : i+4]
	return Color{R: s[0], G: s[1], B: s[2], A: s[3]}
}

func (img *Image) setColorAt(x, y int, p Partial) Color {
	i := img.Index(x, y)
	p.apply(img.pix[i : i+4 : i+4])
	return img.colorAt(x, y)
}

// ForEachPoint visits every pixel in raster scan order and writes back what fn returns.
func (img *Image) ForEachPoint(fn PointFunc) *Image {
	for y := range img.height {
		for x := range img.width {
			c := img.colorAt(x, y)
			p := fn(x, y, c)
			if p.IsEmpty() {
				p = c.Partial()
			}
			img.setColorAt(x, y, p)
		}
	}
	return img
}

func (img *Image) ColorModel() color.Model {
	return ColorModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

func (img *Image) At(x, y int) color.Color {
	if !img.in(x, y) {
		return Color{}
	}
	return img.colorAt(x, y)
}

func (img *Image) Set(x, y int, c color.Color) {
	if !img.in(x, y) {
		return
	}
	img.setColorAt(x, y, colorConvert(c).(Color).Partial())
}

// NRGBA returns a view sharing the image's buffer.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.pix,
		Stride: img.width * 4,
		Rect:   img.Bounds(),
	}
}
