package target

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// SupportedExtensions lists the reference file types offered for selection.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Supported reports whether path has a selectable image extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadImage decodes a reference image from disk.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("target: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("target: decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes path and installs it as the target's reference.
func (t *Target) Load(path string) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	t.SetReference(path, img)
	return nil
}
