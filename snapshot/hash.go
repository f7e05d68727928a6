package snapshot

import (
	"fmt"
	"math/bits"
)

// Hash is a 64-bit average hash: one bit per cell of an 8x8 grey version of
// the image, set when the cell is brighter than the mean.
type Hash uint64

// Distance returns the number of differing bits.
func (h Hash) Distance(o Hash) int { return bits.OnesCount64(uint64(h ^ o)) }

func (h Hash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

// Hash computes the perceptual hash. Images smaller than 8x8 return
// ErrUpscaling.
func (img *Image) Hash() (Hash, error) {
	small, err := img.Resize(8, 8)
	if err != nil {
		return 0, err
	}

	ch := small.Format.Channels()
	var grey [64]float32
	var sum float32
	for i := range grey {
		var v float32
		for c := 0; c < ch; c++ {
			if small.Format.IsFloat() {
				v += small.F32[i*ch+c]
			} else {
				v += float32(small.U8[i*ch+c])
			}
		}
		grey[i] = v / float32(ch)
		sum += grey[i]
	}
	mean := sum / 64

	var h Hash
	for i, v := range grey {
		if v-mean >= Epsilon {
			h |= 1 << i
		}
	}
	return h, nil
}
