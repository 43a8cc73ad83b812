package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quackpet/assets"
)

// LoadImage loads a sprite sheet from the embedded assets or the filesystem
// and caches it by key.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := loadImageFromAssetsOrFS(key)
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	// files on disk win so a sheet can be swapped without a rebuild
	tried := []string{path, filepath.Join("assets", path)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return ebiten.NewImageFromImage(im), nil
	}
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("render: failed to load image %s", path)
}
