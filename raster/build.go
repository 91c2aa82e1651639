package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// FromArray builds an image from rectangular rows of colors, rows[y][x].
func FromArray(rows [][]Color) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty color grid", ErrShape)
	}

	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShape, y, len(row), width)
		}
	}

	img := &Image{
		width:  width,
		height: len(rows),
		pix:    make([]uint8, width*len(rows)*4),
	}
	return img.ForEachPoint(func(x, y int, _ Color) Partial {
		return rows[y][x].Partial()
	}), nil
}

// FromImage wraps a tightly packed *image.NRGBA anchored at the origin without copying.
// Any other image is converted into a fresh buffer.
func FromImage(src image.Image) (*Image, error) {
	switch s := src.(type) {
	case *Image:
		return s, nil
	case *image.NRGBA:
		if s.Rect.Min == (image.Point{}) && s.Stride == 4*s.Rect.Dx() {
			return FromDecoded(s.Rect.Dx(), s.Rect.Dy(), s.Pix[:s.Stride*s.Rect.Dy()])
		}
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrShape, b)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return FromDecoded(b.Dx(), b.Dy(), dst.Pix)
}
