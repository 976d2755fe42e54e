package render

import (
	"fmt"
	"path/filepath"

	"github.com/fogleman/gg"
)

// FileResources loads PNG textures and font atlases from a directory.
type FileResources struct {
	Root string
}

func NewFileResources(root string) *FileResources {
	return &FileResources{Root: root}
}

func (r *FileResources) LoadImage(path string) (Texture, error) {
	img, err := gg.LoadImage(filepath.Join(r.Root, path))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return NewImage(img), nil
}

func (r *FileResources) LoadFont(path string) (Font, error) {
	img, err := gg.LoadImage(filepath.Join(r.Root, path))
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	f, err := NewBitmapFont(img)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	return f, nil
}
