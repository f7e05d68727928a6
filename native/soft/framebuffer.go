package soft

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/glctx/native"
)

// framebuffer is the device's color buffer. Rectangles use the GL
// convention: the origin is the bottom-left pixel.
type framebuffer struct {
	img           *image.RGBA
	width, height int
	viewport      [4]int32
	scissor       [4]int32
	clear         color.RGBA
}

func (f *framebuffer) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width, f.height = width, height
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	f.viewport = [4]int32{0, 0, int32(width), int32(height)}
	f.scissor = f.viewport
}

// rect converts a GL rectangle to image coordinates clipped to the buffer.
func (f *framebuffer) rect(r [4]int32) image.Rectangle {
	x, y, w, h := int(r[0]), int(r[1]), int(r[2]), int(r[3])
	top := f.height - (y + h)
	return image.Rect(x, top, x+w, top+h).Intersect(f.img.Bounds())
}

func unitToByte(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// Viewport sets the viewport rectangle.
func (d *Device) Viewport(x, y, width, height int32) {
	if width < 0 || height < 0 {
		d.invalidValue("negative viewport size %dx%d", width, height)
		return
	}
	d.stats.Viewport++
	d.fb.viewport = [4]int32{x, y, width, height}
}

// Scissor sets the scissor rectangle.
func (d *Device) Scissor(x, y, width, height int32) {
	if width < 0 || height < 0 {
		d.invalidValue("negative scissor size %dx%d", width, height)
		return
	}
	d.stats.Scissor++
	d.fb.scissor = [4]int32{x, y, width, height}
}

// CurrentViewport returns the viewport rectangle.
func (d *Device) CurrentViewport() (x, y, width, height int32) {
	v := d.fb.viewport
	return v[0], v[1], v[2], v[3]
}

// ClearColor sets the clear color. Components are clamped to [0, 1].
func (d *Device) ClearColor(r, g, b, a float32) {
	d.fb.clear = color.RGBA{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: unitToByte(a)}
}

// Clear fills the scissor rectangle with the clear color.
func (d *Device) Clear() {
	d.stats.Clear++
	r := d.fb.rect(d.fb.scissor)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.fb.img.SetRGBA(x, y, d.fb.clear)
		}
	}
}

// ReadPixels copies a rectangle of the framebuffer into dst, bottom row
// first. Float32 channels are written little-endian in [0, 1].
func (d *Device) ReadPixels(x, y, width, height int32, format native.PixelFormat, typ native.PixelType, dst []byte) {
	channels := format.Channels()
	size := typ.Size()
	want := int(width) * int(height) * channels * size
	if width < 0 || height < 0 || len(dst) < want {
		d.invalidOperation("ReadPixels destination holds %d bytes, want %d", len(dst), want)
		return
	}
	i := 0
	for row := int32(0); row < height; row++ {
		iy := d.fb.height - 1 - int(y+row)
		for col := int32(0); col < width; col++ {
			ix := int(x + col)
			var c color.RGBA
			if image.Pt(ix, iy).In(d.fb.img.Bounds()) {
				c = d.fb.img.RGBAAt(ix, iy)
			}
			px := [4]uint8{c.R, c.G, c.B, c.A}
			for ch := 0; ch < channels; ch++ {
				if typ == native.PixelFloat32 {
					binary.LittleEndian.PutUint32(dst[i:], math.Float32bits(float32(px[ch])/255))
				} else {
					dst[i] = px[ch]
				}
				i += size
			}
		}
	}
}

// Image returns a copy of the framebuffer.
func (d *Device) Image() *image.RGBA {
	out := image.NewRGBA(d.fb.img.Bounds())
	copy(out.Pix, d.fb.img.Pix)
	return out
}
