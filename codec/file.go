package codec

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// WriteFile encodes img next to path and renames it into place once fully written.
func WriteFile(path string, img image.Image, f Format) (err error) {
	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = Encode(outFile, img, f); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}

	canRename = true
	return nil
}
