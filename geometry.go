package glctx

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

// Rect is a pixel rectangle with its origin at the bottom-left corner of the
// framebuffer.
type Rect struct {
	X, Y          uint32
	Width, Height uint32
}

// NewRect returns the rectangle at (x, y) with the given size.
func NewRect(x, y, width, height uint32) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width == 0 || r.Height == 0 }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// int32s converts every field for the native call, naming the field that
// does not fit.
func (r Rect) int32s(what string) (x, y, w, h int32, err error) {
	fields := [4]struct {
		v    uint32
		name string
	}{
		{r.X, "x"}, {r.Y, "y"}, {r.Width, "width"}, {r.Height, "height"},
	}
	var out [4]int32
	for i, f := range fields {
		if f.v > math.MaxInt32 {
			return 0, 0, 0, 0, conversionError(what + " " + f.name + " into i32")
		}
		out[i] = int32(f.v)
	}
	return out[0], out[1], out[2], out[3], nil
}

// Named colors.
var (
	DarkJungleGreen = gputypes.Color{R: 0.102, G: 0.141, B: 0.129, A: 1}
	PersianIndigo   = gputypes.Color{R: 0.20, G: 0, B: 0.30, A: 1}
	Gainsboro       = gputypes.Color{R: 0.79, G: 0.92, B: 0.87, A: 1}
	UnityYellow     = gputypes.Color{R: 1, G: 0.92, B: 0.016, A: 1}

	Black  = gputypes.ColorBlack
	White  = gputypes.ColorWhite
	Red    = gputypes.ColorRed
	Green  = gputypes.ColorGreen
	Blue   = gputypes.ColorBlue
	Yellow = gputypes.ColorYellow
)
