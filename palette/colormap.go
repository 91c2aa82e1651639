package palette

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"strings"
	"unicode/utf8"

	"pingy/raster"
)

// ParseHex reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA. Missing alpha means opaque.
func ParseHex(s string) (color.NRGBA, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("invalid color %q, should start with #", s)
	}

	switch len(digits) {
	case 3, 4:
		var long strings.Builder
		for _, d := range digits {
			long.WriteRune(d)
			long.WriteRune(d)
		}
		digits = long.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("could not read color %q: %w", s, err)
	}

	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// ReadColorMap reads a character color map, one "<char> <color>" pair per line.
// Blank lines and lines starting with "//" are ignored. The character may be any single
// rune, including '#'.
func ReadColorMap(r io.Reader) (map[rune]raster.Color, error) {
	res := make(map[rune]raster.Color)
	scanner := bufio.NewScanner(r)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "//") {
			continue
		}

		ch, size := utf8.DecodeRuneInString(line)
		rest := line[size:]
		if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			return nil, fmt.Errorf("line %d: expected \"<char> <color>\", got %q", lineNo, line)
		}

		c, err := ParseHex(strings.TrimSpace(rest))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, dup := res[ch]; dup {
			return nil, fmt.Errorf("line %d: character %q mapped twice", lineNo, ch)
		}
		res[ch] = raster.Color(c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read color map: %w", err)
	}

	return res, nil
}

// CharMap assigns pal[i] to the i-th character of chars.
func CharMap(chars string, pal color.Palette) (map[rune]raster.Color, error) {
	res := make(map[rune]raster.Color, len(pal))
	i := 0
	for _, ch := range chars {
		if i >= len(pal) {
			return nil, fmt.Errorf("palette has %d colors, not enough for %d characters", len(pal),
				utf8.RuneCountInString(chars))
		}
		if _, dup := res[ch]; dup {
			return nil, fmt.Errorf("character %q listed twice", ch)
		}
		res[ch] = raster.Color(color.NRGBAModel.Convert(pal[i]).(color.NRGBA))
		i++
	}
	return res, nil
}
