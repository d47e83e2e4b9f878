package tenkai

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Asset is a named image file. It satisfies Image, so it can be handed to
// entities and scenes before it has loaded; it draws nothing until then.
type Asset struct {
	Name string
	Path string
	// Image is nil until Load succeeds.
	Image *ebiten.Image
}

// NewAsset creates an unloaded asset.
func NewAsset(name, path string) *Asset {
	return &Asset{Name: name, Path: path}
}

// Bounds returns the loaded image's bounds, or an empty rectangle.
func (a *Asset) Bounds() image.Rectangle {
	if a.Image == nil {
		return image.Rectangle{}
	}
	return a.Image.Bounds()
}

// Loaded reports whether the image is available.
func (a *Asset) Loaded() bool { return a.Image != nil }

// Load decodes the image from fsys and reports the outcome to done on the
// next update of s.
func (a *Asset) Load(fsys fs.FS, s *Scheduler, done func(error)) {
	err := a.load(fsys)
	if done != nil {
		s.Defer(func() { done(err) })
	}
}

func (a *Asset) load(fsys fs.FS) error {
	img, _, err := ebitenutil.NewImageFromFileSystem(fsys, a.Path)
	if err != nil {
		return fmt.Errorf("load asset %s (%s): %w", a.Name, a.Path, err)
	}
	a.Image = img
	return nil
}
