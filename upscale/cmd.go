package upscale

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pingy/codec"
	"pingy/palette"
	"pingy/raster"

	"github.com/alecthomas/kong"
)

// Output is shared by commands that either write an image file or print a data URI.
type Output struct {
	Out    string `help:"Destination file. When empty the PNG data URI is printed to stdout." type:"path"`
	Format string `help:"Output format, defaults to the destination extension or png"`

	stdout io.Writer
}

func (o *Output) format() (codec.Format, error) {
	if o.Format != "" {
		return codec.ParseFormat(o.Format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(o.Out), "."); ext != "" {
		return codec.ParseFormat(ext)
	}
	return codec.PNG, nil
}

func (o *Output) emit(ctx context.Context, img *raster.Image) error {
	if o.Out == "" {
		uri, err := img.EncodeDataURI(ctx)
		if err != nil {
			return fmt.Errorf("could not encode image: %w", err)
		}
		w := o.stdout
		if w == nil {
			w = os.Stdout
		}
		_, err = fmt.Fprintln(w, uri)
		return err
	}

	f, err := o.format()
	if err != nil {
		return err
	}
	if err := codec.WriteFile(o.Out, img.NRGBA(), f); err != nil {
		return err
	}
	slog.Info("written", "dest", o.Out, "format", f, "width", img.Width(), "height", img.Height())
	return nil
}

type CLICmd struct {
	Src    string `arg:"" help:"Source image (gif, jpeg, png, bmp, tiff, webp)" type:"existingfile"`
	Factor int    `help:"Integer upscale factor" short:"f" default:"2"`
	Output
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Factor < 1 {
		return fmt.Errorf("invalid upscale factor: %d", c.Factor)
	}
	_, err := c.format()
	return err
}

func (c *CLICmd) Run(ctx context.Context) error {
	logger := slog.Default().With("file", c.Src)

	imgFile, err := os.Open(c.Src)
	if err != nil {
		return fmt.Errorf("could not open image %q: %w", c.Src, err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	decoded, kind, err := codec.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", c.Src, err)
	}

	img, err := raster.FromImage(decoded)
	if err != nil {
		return fmt.Errorf("could not wrap %q: %w", c.Src, err)
	}

	logger.Info("scaling", "format", kind, "width", img.Width(), "height", img.Height(), "factor", c.Factor)
	return c.emit(ctx, img.Scale(c.Factor))
}

type BlankCmd struct {
	Width  int    `help:"Image width" default:"1"`
	Height int    `help:"Image height" default:"1"`
	Fill   string `help:"Fill color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#000"`
	Output

	fill raster.Color
}

func (c *BlankCmd) Validate(kctx *kong.Context) error {
	fill, err := palette.ParseHex(c.Fill)
	if err != nil {
		return err
	}
	c.fill = raster.Color(fill)

	_, err = c.format()
	return err
}

func (c *BlankCmd) Run(ctx context.Context) error {
	return c.emit(ctx, raster.NewFilled(c.Width, c.Height, c.fill))
}
