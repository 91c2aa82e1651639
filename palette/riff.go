package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadFrom reads every palette of a RIFF PAL document. Colors are opaque.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette

	for {
		id, size, data, err := r.Next()
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), lerr)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, len(res), string(listType[:]))
			}

			listRes, lerr := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, len(res), listType[:]))
			res = append(res, listRes...)
			if lerr != nil {
				return res, lerr
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, len(res), string(id[:]))
		}
	}
}

func readPalette(r io.Reader, ident string) (color.Palette, error) {
	buf := make([]byte, 2)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read version from chunk %s: %w", ident, err)
	}
	if ver := binary.BigEndian.Uint16(buf); ver != 3 {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %d", ident, ver)
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read number of entries from chunk %s: %w", ident, err)
	}

	count := binary.LittleEndian.Uint16(buf)
	res := make(color.Palette, count)
	entry := make([]byte, 4)
	for i := range count {
		if _, err := io.ReadFull(r, entry); err != nil {
			return res[:i], fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		res[i] = color.NRGBA{
			R: entry[0],
			G: entry[1],
			B: entry[2],
			A: 0xFF,
		}
	}

	return res, nil
}

// WriteTo writes pals as one RIFF PAL document with a data chunk per palette.
func WriteTo(w io.Writer, pals []color.Palette) (int64, error) {
	n := 4
	for _, pal := range pals {
		n += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	if err := writeBytes(w, riffType[:]); err != nil {
		return 0, fmt.Errorf("could not write RIFF magic: %w", err)
	}
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write document size: %w", err)
	}
	if err := writeBytes(w, palType[:]); err != nil {
		return 0, fmt.Errorf("could not write content type: %w", err)
	}

	var count int64
	for i, pal := range pals {
		n, err := writePalette(w, pal)
		count += n
		if err != nil {
			return count, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return count, nil
}

func writePalette(w io.Writer, pal color.Palette) (int64, error) {
	if err := writeBytes(w, dataType[:]); err != nil {
		return 0, fmt.Errorf("could not write type: %w", err)
	}

	n := 4 + len(pal)*4
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write chunk size: %w", err)
	}
	if err := writeBytes(w, []byte{0, 0x03}); err != nil {
		return 0, fmt.Errorf("could not write palette version: %w", err)
	}
	if err := writeBytes(w, binary.LittleEndian.AppendUint16(nil, uint16(len(pal)))); err != nil {
		return 0, fmt.Errorf("could not write number of colors: %w", err)
	}

	for i, col := range pal {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		if err := writeBytes(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return int64(len(pal)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
