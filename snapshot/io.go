package snapshot

import (
	"fmt"
	"image"
	_ "image/png"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	xdraw "golang.org/x/image/draw"
)

// FromImage converts img to format, scaling it to width x height with
// nearest-neighbour sampling when the sizes differ. Non-positive sizes keep
// the source size.
func FromImage(img image.Image, format Format, width, height int) *Image {
	b := img.Bounds()
	if width <= 0 || height <= 0 {
		width, height = b.Dx(), b.Dy()
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(nrgba, nrgba.Bounds(), img, b, xdraw.Src, nil)

	out := New(width, height, format)
	ch := format.Channels()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := nrgba.NRGBAAt(x, y)
			px := [4]uint8{c.R, c.G, c.B, c.A}
			i := (y*width + x) * ch
			for k := 0; k < ch; k++ {
				if format.IsFloat() {
					out.F32[i+k] = float32(px[k]) / 255
				} else {
					out.U8[i+k] = px[k]
				}
			}
		}
	}
	return out
}

// Decode reads an encoded image (PNG, JPEG or BMP) from r.
func Decode(format Format, r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return FromImage(img, format, 0, 0), nil
}

// Load reads an image file.
func Load(format Format, path string) (*Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %s: %w", path, err)
	}
	return FromImage(img, format, 0, 0), nil
}

// Save writes the image as PNG.
func (img *Image) Save(path string) error {
	if err := imgio.Save(path, img.ToImage(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}
