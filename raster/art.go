package raster

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// FromCharacterArt builds an image from a grid of characters, one line per row. colors
// maps characters to pixel colors. Characters missing from colors get a random opaque
// color which is stored back into colors, so every occurrence shares it.
func FromCharacterArt(text string, colors map[rune]Color) (*Image, error) {
	return FromCharacterArtRand(text, colors, nil)
}

// FromCharacterArtRand is FromCharacterArt drawing unmapped colors from rng. A nil rng
// uses the global source.
func FromCharacterArtRand(text string, colors map[rune]Color, rng *rand.Rand) (*Image, error) {
	lines := splitLines(text)
	if colors == nil {
		colors = make(map[rune]Color)
	}

	rows := make([][]Color, len(lines))
	for y, line := range lines {
		row := make([]Color, 0, len(line))
		for _, ch := range line {
			c, ok := colors[ch]
			if !ok {
				c = randomColor(rng)
				colors[ch] = c
			}
			row = append(row, c)
		}
		if y > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: art line %d has %d characters, expected %d", ErrShape,
				y, len(row), len(rows[0]))
		}
		rows[y] = row
	}

	return FromArray(rows)
}

// splitLines drops a single trailing newline and any carriage returns ending a line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func randomColor(rng *rand.Rand) Color {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	return Color{
		R: uint8(intN(256)),
		G: uint8(intN(256)),
		B: uint8(intN(256)),
		A: 255,
	}
}
