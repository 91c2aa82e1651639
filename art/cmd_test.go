package art

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pingy/codec"
	"pingy/palette"
	"pingy/parallel"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunWritesImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "flag.txt"), "rb\nbr\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "ignored")
	writeFile(t, filepath.Join(dir, "colors.map"), "r #f00\nb #00f\n")

	cmd := &CLICmd{
		Scan:   dir,
		Dest:   "out",
		Map:    filepath.Join(dir, "colors.map"),
		Scale:  3,
		Format: "png",
	}
	if err := cmd.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(context.Background(), parallel.Start(2)); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "out", "flag.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, _, err := codec.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("rendered image is %v, expected 6x6", b)
	}

	red := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA)
	blue := color.NRGBAModel.Convert(img.At(3, 2)).(color.NRGBA)
	if red != (color.NRGBA{R: 255, A: 255}) || blue != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("unexpected colors %v, %v", red, blue)
	}
}

func TestRunPrintsDataURIs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "xy\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "x\n")

	var pal bytes.Buffer
	if _, err := palette.WriteTo(&pal, []color.Palette{{color.NRGBA{R: 1, A: 255}, color.NRGBA{G: 1, A: 255}}}); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "vga.pal"), pal.String())

	var out bytes.Buffer
	cmd := &CLICmd{
		Scan:    dir,
		Dest:    "unused",
		Palette: filepath.Join(dir, "vga.pal"),
		Chars:   "xy",
		Scale:   1,
		Format:  "png",
		URI:     true,
		stdout:  &out,
	}
	if err := cmd.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(context.Background(), parallel.Start(1)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2:\n%s", len(lines), out.String())
	}
	for _, line := range lines {
		name, uri, ok := strings.Cut(line, "\t")
		if !ok || (name != "a.txt" && name != "b.txt") {
			t.Fatalf("unexpected line %q", line)
		}
		payload, ok := strings.CutPrefix(uri, "data:image/png;base64,")
		if !ok {
			t.Fatalf("%s: not a PNG data URI", name)
		}
		if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "unused")); !os.IsNotExist(err) {
		t.Error("destination folder created in URI mode")
	}
}

func TestRunCountsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.txt"), "ab\n")
	writeFile(t, filepath.Join(dir, "ragged.txt"), "ab\nc\n")

	cmd := &CLICmd{Scan: dir, Dest: "out", Scale: 1, Format: "bmp"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(context.Background(), parallel.Start(2)); err == nil {
		t.Fatal("expected an error for the ragged file")
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "good.bmp")); err != nil {
		t.Errorf("good file was not rendered: %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	writeFile(t, file, "a")

	for name, cmd := range map[string]*CLICmd{
		"scan is file":    {Scan: file, Dest: "out", Scale: 1},
		"missing scan":    {Scan: filepath.Join(dir, "nope"), Dest: "out", Scale: 1},
		"zero scale":      {Scan: dir, Dest: "out", Scale: 0},
		"palette only":    {Scan: dir, Dest: "out", Scale: 1, Palette: file},
		"chars only":      {Scan: dir, Dest: "out", Scale: 1, Chars: "ab"},
		"bad palette":     {Scan: dir, Dest: "out", Scale: 1, Palette: file, Chars: "a"},
		"bad color map":   {Scan: dir, Dest: "out", Scale: 1, Map: file},
		"missing palette": {Scan: dir, Dest: "out", Scale: 1, Palette: filepath.Join(dir, "x.pal"), Chars: "a"},
	} {
		if err := cmd.Validate(nil); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}
