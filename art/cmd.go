package art

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pingy/codec"
	"pingy/palette"
	"pingy/parallel"
	"pingy/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan    string `help:"Folder with character art files (*.txt)" default:"."`
	Dest    string `help:"Destination folder for rendered images. Relative to scan dir if not absolute." default:"rendered"`
	Map     string `help:"Color map file, one '<char> <#color>' per line" type:"existingfile"`
	Palette string `help:"RIFF PAL file whose colors are assigned to --chars in order" type:"existingfile" group:"palette"`
	Chars   string `help:"Characters receiving the --palette colors" group:"palette"`
	Scale   int    `help:"Integer upscale factor" default:"1"`
	Format  string `help:"Output format" enum:"png,gif,jpeg,bmp,tiff" default:"png"`
	URI     bool   `help:"Print PNG data URIs to stdout instead of writing files" name:"uri"`

	colors map[rune]raster.Color
	stdout io.Writer
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Scale < 1 {
		return fmt.Errorf("invalid scale factor: %d", c.Scale)
	}
	if (c.Palette == "") != (c.Chars == "") {
		return fmt.Errorf("--palette and --chars must be given together")
	}

	c.colors, err = c.loadColors()
	return err
}

func (c *CLICmd) loadColors() (map[rune]raster.Color, error) {
	colors := make(map[rune]raster.Color)

	if c.Palette != "" {
		f, err := os.Open(c.Palette)
		if err != nil {
			return nil, fmt.Errorf("could not open palette %q: %w", c.Palette, err)
		}
		defer f.Close()

		pals, err := palette.ReadFrom(f)
		if err != nil {
			return nil, fmt.Errorf("could not load palette %q: %w", c.Palette, err)
		}
		var all []color.Color
		for _, pal := range pals {
			all = append(all, pal...)
		}
		charMap, err := palette.CharMap(c.Chars, all)
		if err != nil {
			return nil, fmt.Errorf("invalid palette %q: %w", c.Palette, err)
		}
		maps.Copy(colors, charMap)
	}

	if c.Map != "" {
		f, err := os.Open(c.Map)
		if err != nil {
			return nil, fmt.Errorf("could not open color map %q: %w", c.Map, err)
		}
		defer f.Close()

		colorMap, err := palette.ReadColorMap(f)
		if err != nil {
			return nil, fmt.Errorf("invalid color map %q: %w", c.Map, err)
		}
		maps.Copy(colors, colorMap)
	}

	return colors, nil
}

func (c *CLICmd) Run(ctx context.Context, pool *parallel.Pool) error {
	if !c.URI {
		if err := os.MkdirAll(c.Dest, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
		}
	}

	files, err := filepath.Glob(filepath.Join(c.Scan, "*.txt"))
	if err != nil {
		return fmt.Errorf("unable to scan folder %q: %w", c.Scan, err)
	}

	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	var outMu sync.Mutex
	format, err := codec.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	for _, filePath := range files {
		pool.Do(func() error {
			logger := slog.Default().With("file", filePath)

			img, err := c.render(filePath)
			if err != nil {
				logger.Error("could not render art", "error", err)
				return err
			}

			if c.URI {
				uri, err := img.EncodeDataURI(ctx)
				if err != nil {
					logger.Error("could not encode image", "error", err)
					return err
				}
				outMu.Lock()
				defer outMu.Unlock()
				_, err = fmt.Fprintf(stdout, "%s\t%s\n", filepath.Base(filePath), uri)
				return err
			}

			name := strings.TrimSuffix(filepath.Base(filePath), ".txt") + "." + format.Ext()
			dest := filepath.Join(c.Dest, name)
			if err := codec.WriteFile(dest, img.NRGBA(), format); err != nil {
				logger.Error("could not save image", "dest", dest, "error", err)
				return err
			}
			logger.Info("rendered", "dest", dest, "width", img.Width(), "height", img.Height())
			return nil
		})
	}

	processed, errors := pool.Wait()
	slog.Info("stats", "processed", processed, "errors", errors, "total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// render parses one art file. The shared color map is cloned so random colors picked
// for unmapped characters stay local to the file.
func (c *CLICmd) render(filePath string) (*raster.Image, error) {
	text, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", filePath, err)
	}

	img, err := raster.FromCharacterArt(string(text), maps.Clone(c.colors))
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", filePath, err)
	}
	return img.Scale(c.Scale), nil
}
