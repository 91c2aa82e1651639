package codec

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// decoders only
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type Format string

const (
	PNG  Format = "png"
	GIF  Format = "gif"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// Formats lists the encodable formats, usable as a kong enum.
const Formats = "png,gif,jpeg,bmp,tiff"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, GIF, JPEG, BMP, TIFF:
		return f, nil
	case "jpg":
		return JPEG, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string { return string(f) }

func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case GIF:
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case JPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case BMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case TIFF:
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
	return nil
}

// Pack streams the PNG encoding of img. Encoding runs in its own goroutine and
// encoder failures are returned by Read. Closing the reader early stops the encoder.
func Pack(img image.Image) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(Encode(pw, img, PNG))
	}()
	return pr
}

// Decode reads any registered format: gif, jpeg, png, bmp, tiff, webp.
func Decode(r io.Reader) (image.Image, string, error) {
	img, kind, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}
	return img, kind, nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
