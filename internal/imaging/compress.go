package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Compressor re-encodes images as JPEG, shrinking anything larger than
// MaxWidth x MaxHeight while keeping the aspect ratio. Smaller images are never enlarged.
type Compressor struct {
	MaxWidth  uint
	MaxHeight uint
	Quality   int
}

func New() *Compressor {
	return &Compressor{MaxWidth: 1200, MaxHeight: 1200, Quality: 80}
}

func (c *Compressor) Compress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	img = resize.Thumbnail(c.MaxWidth, c.MaxHeight, img, resize.Lanczos3)

	// JPEG has no alpha channel; transparent areas become white.
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(out, flat, &jpeg.Options{Quality: c.Quality}); err != nil {
		out.Close()
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Close()
}
