package ebiten

import (
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// image returns the decoded image for src, loading it on first use. A file that
// fails to load is logged once and reported as nil from then on.
func (e *EbitenRenderer) image(src string) *ebiten.Image {
	e.imagesMutex.Lock()
	defer e.imagesMutex.Unlock()

	if img, ok := e.images[src]; ok {
		return img
	}

	img, _, err := ebitenutil.NewImageFromFileSystem(e.assets, src)
	if err != nil {
		log.Printf("Image %q unavailable: %v", src, err)
	}
	e.images[src] = img
	return img
}
