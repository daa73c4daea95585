package classifier

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

type slicer struct {
	v   tensor.View
	err error
}

func (s *slicer) Slice(a *tensor.Dense, slices ...tensor.Slice) *tensor.Dense {
	if s.err != nil {
		return nil
	}
	if s.v, s.err = a.Slice(slices...); s.err != nil {
		s.err = errors.Wrapf(s.err, "Slicer failed") // get a stack trace
		return nil
	}
	return s.v.(*tensor.Dense)
}

type rs struct {
	start, end, step int
}

func (s rs) Start() int { return s.start }
func (s rs) End() int   { return s.end }
func (s rs) Step() int  { return s.step }

// sli creates a ranged slice. It takes an optional step param.
func sli(start, end int, opts ...int) rs {
	step := 1
	if len(opts) > 0 {
		step = opts[0]
	}
	return rs{
		start: start,
		end:   end,
		step:  step,
	}
}

// fill copies images (and, if ys is not nil, one-hot labels) for the given
// example order into flat row-major backings. Labels outside [0, classes)
// leave their row all zeroes.
func fill(xs, ys []float32, images [][]float64, labels []int, order []int, inputs, classes int) {
	for row, idx := range order {
		img := images[idx]
		dst := xs[row*inputs : (row+1)*inputs]
		for j := range dst {
			if j < len(img) {
				dst[j] = float32(img[j])
			} else {
				dst[j] = 0
			}
		}
		if ys == nil {
			continue
		}
		if l := labels[idx]; l >= 0 && l < classes {
			ys[row*classes+l] = 1
		}
	}
}
