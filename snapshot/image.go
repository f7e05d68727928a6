// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package snapshot holds framebuffer read-backs and golden images: raw pixel
// storage in 8-bit or float32 channels, sampling, nearest-neighbour
// downscaling, a perceptual hash for approximate comparison, and PNG
// load/save.
//
// Row 0 is the top row of the image.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// Epsilon is the tolerance within which two float channels are equal.
const Epsilon float32 = 0x1p-23

var (
	// ErrDimensionMismatch is returned when pixel data is shorter than
	// width * height * channels.
	ErrDimensionMismatch = errors.New("snapshot: not enough data for width, height and channels")

	// ErrUpscaling is returned by Resize when the target is larger than the image.
	ErrUpscaling = errors.New("snapshot: upscaling is not supported")
)

// Format is the channel layout and type of an Image.
type Format uint8

// Pixel formats.
const (
	RGBU8 Format = iota
	RGBF32
	RGBAU8
	RGBAF32
)

// Channels returns the channels per pixel.
func (f Format) Channels() int {
	if f == RGBU8 || f == RGBF32 {
		return 3
	}
	return 4
}

// IsFloat reports whether channels are float32.
func (f Format) IsFloat() bool { return f == RGBF32 || f == RGBAF32 }

// BytesPerPixel returns the size of one pixel in bytes.
func (f Format) BytesPerPixel() int {
	if f.IsFloat() {
		return f.Channels() * 4
	}
	return f.Channels()
}

func (f Format) String() string {
	switch f {
	case RGBU8:
		return "rgb_u8"
	case RGBF32:
		return "rgb_f32"
	case RGBAU8:
		return "rgba_u8"
	case RGBAF32:
		return "rgba_f32"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Image is a width x height grid of pixels in one Format. Channel data is
// held in U8 or F32 depending on the format.
type Image struct {
	Width  int
	Height int
	Format Format
	U8     []uint8
	F32    []float32
}

func (img *Image) samples() int { return img.Width * img.Height * img.Format.Channels() }

// New returns a zeroed image.
func New(width, height int, format Format) *Image {
	img := &Image{Width: width, Height: height, Format: format}
	if format.IsFloat() {
		img.F32 = make([]float32, img.samples())
	} else {
		img.U8 = make([]uint8, img.samples())
	}
	return img
}

// FromU8 wraps 8-bit channel data. format must be RGBU8 or RGBAU8.
func FromU8(width, height int, format Format, data []uint8) (*Image, error) {
	if format.IsFloat() {
		return nil, fmt.Errorf("snapshot: %s image from 8-bit data", format)
	}
	img := &Image{Width: width, Height: height, Format: format, U8: data}
	if len(data) < img.samples() {
		return nil, ErrDimensionMismatch
	}
	return img, nil
}

// FromF32 wraps float channel data. format must be RGBF32 or RGBAF32.
func FromF32(width, height int, format Format, data []float32) (*Image, error) {
	if !format.IsFloat() {
		return nil, fmt.Errorf("snapshot: %s image from float data", format)
	}
	img := &Image{Width: width, Height: height, Format: format, F32: data}
	if len(data) < img.samples() {
		return nil, ErrDimensionMismatch
	}
	return img, nil
}

// FromRaw decodes a device read-back. Float channels are little-endian.
// When bottomUp is set the first row of raw is the bottom row of the image.
func FromRaw(width, height int, format Format, raw []byte, bottomUp bool) (*Image, error) {
	if width < 0 || height < 0 || len(raw) < width*height*format.BytesPerPixel() {
		return nil, ErrDimensionMismatch
	}
	img := New(width, height, format)
	rowSamples := width * format.Channels()
	rowBytes := width * format.BytesPerPixel()
	for y := 0; y < height; y++ {
		src := raw[y*rowBytes : (y+1)*rowBytes]
		dy := y
		if bottomUp {
			dy = height - 1 - y
		}
		if format.IsFloat() {
			dst := img.F32[dy*rowSamples : (dy+1)*rowSamples]
			for i := range dst {
				dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
			}
		} else {
			copy(img.U8[dy*rowSamples:(dy+1)*rowSamples], src)
		}
	}
	return img, nil
}

// WithColor returns an image filled with c. Channels of 8-bit formats are
// rounded to the nearest step, the way a framebuffer stores them.
func WithColor(width, height int, c gputypes.Color, format Format) *Image {
	img := New(width, height, format)
	rgba := [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	ch := format.Channels()
	for i := 0; i < img.samples(); i++ {
		v := rgba[i%ch]
		if format.IsFloat() {
			img.F32[i] = v
		} else {
			img.U8[i] = unitToU8(v)
		}
	}
	return img
}

func unitToU8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Round(v * 255))
}

// Fill sets every pixel of r (top-left origin, clipped to the image) to c.
func (img *Image) Fill(r image.Rectangle, c gputypes.Color) {
	r = r.Intersect(image.Rect(0, 0, img.Width, img.Height))
	px := WithColor(1, 1, c, img.Format)
	ch := img.Format.Channels()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := (y*img.Width + x) * ch
			if img.Format.IsFloat() {
				copy(img.F32[i:i+ch], px.F32)
			} else {
				copy(img.U8[i:i+ch], px.U8)
			}
		}
	}
}

// Pixel is one sampled pixel. 8-bit channels keep their 0..255 values.
type Pixel struct {
	Format   Format
	Channels [4]float32
}

// Equal reports whether both pixels have the same format and every channel
// differs by at most Epsilon.
func (p Pixel) Equal(o Pixel) bool {
	if p.Format != o.Format {
		return false
	}
	for i := 0; i < p.Format.Channels(); i++ {
		if math32.Abs(p.Channels[i]-o.Channels[i]) > Epsilon {
			return false
		}
	}
	return true
}

// Color returns the pixel as a normalized color. Alpha is 1 for RGB formats.
func (p Pixel) Color() gputypes.Color {
	scale := float64(1)
	if !p.Format.IsFloat() {
		scale = 255
	}
	c := gputypes.Color{
		R: float64(p.Channels[0]) / scale,
		G: float64(p.Channels[1]) / scale,
		B: float64(p.Channels[2]) / scale,
		A: 1,
	}
	if p.Format.Channels() == 4 {
		c.A = float64(p.Channels[3]) / scale
	}
	return c
}

func (p Pixel) String() string {
	return fmt.Sprintf("%s%v", p.Format, p.Channels[:p.Format.Channels()])
}

// Sample returns the pixel at (x, y). The boolean is false outside the image.
func (img *Image) Sample(x, y int) (Pixel, bool) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return Pixel{}, false
	}
	ch := img.Format.Channels()
	i := (y*img.Width + x) * ch
	p := Pixel{Format: img.Format}
	for c := 0; c < ch; c++ {
		if img.Format.IsFloat() {
			p.Channels[c] = img.F32[i+c]
		} else {
			p.Channels[c] = float32(img.U8[i+c])
		}
	}
	return p, true
}

// Resize returns a copy scaled down to width x height with nearest
// neighbour sampling.
func (img *Image) Resize(width, height int) (*Image, error) {
	if width == img.Width && height == img.Height {
		return img.Clone(), nil
	}
	if width > img.Width || height > img.Height {
		return nil, ErrUpscaling
	}
	out := New(width, height, img.Format)
	ch := img.Format.Channels()
	scaleX := float32(width) / float32(img.Width)
	scaleY := float32(height) / float32(img.Height)
	for y := 0; y < height; y++ {
		ny := min(int(math32.Round(float32(y)/scaleY)), img.Height-1)
		for x := 0; x < width; x++ {
			nx := min(int(math32.Round(float32(x)/scaleX)), img.Width-1)
			src := (ny*img.Width + nx) * ch
			dst := (y*width + x) * ch
			if img.Format.IsFloat() {
				copy(out.F32[dst:dst+ch], img.F32[src:src+ch])
			} else {
				copy(out.U8[dst:dst+ch], img.U8[src:src+ch])
			}
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := *img
	out.U8 = append([]uint8(nil), img.U8...)
	out.F32 = append([]float32(nil), img.F32...)
	return &out
}

// ToImage converts to an 8-bit NRGBA image. Float channels are clamped to
// [0, 1]; RGB formats get an opaque alpha.
func (img *Image) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p, _ := img.Sample(x, y)
			c := color.NRGBA{A: 255}
			v := [4]*uint8{&c.R, &c.G, &c.B, &c.A}
			for i := 0; i < img.Format.Channels(); i++ {
				if img.Format.IsFloat() {
					*v[i] = unitToU8(p.Channels[i])
				} else {
					*v[i] = uint8(p.Channels[i])
				}
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
