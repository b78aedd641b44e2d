package colordiff

import (
	"errors"
	"fmt"
	"math"
)

// BytesPerPixel is the size of one packed BGR24 pixel.
const BytesPerPixel = 3

// Offsets of each channel within a packed pixel.
const (
	OffsetBlue  = 0
	OffsetGreen = 1
	OffsetRed   = 2
)

// Output range of the transform. The ceiling is 254.
const (
	DiffBias = 128
	DiffMin  = 0
	DiffMax  = 254
)

// ErrInvalidArgument is returned when frame dimensions and buffer length disagree.
var ErrInvalidArgument = errors.New("invalid argument")

// Diff returns the gray level for a pixel with red channel r and blue channel b.
func Diff(r, b uint8) uint8 {
	d := int(r/2) - int(b/2) + DiffBias
	if d > DiffMax {
		d = DiffMax
	}
	if d < DiffMin {
		d = DiffMin
	}
	return uint8(d)
}

// FrameSize returns width*height*BytesPerPixel.
//
// Returns an error wrapping ErrInvalidArgument if either dimension is negative
// or the product does not fit in an int.
func FrameSize(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	if width == 0 || height == 0 {
		return 0, nil
	}
	if width > math.MaxInt/BytesPerPixel/height {
		return 0, fmt.Errorf("%w: dimensions %dx%d overflow", ErrInvalidArgument, width, height)
	}
	return width * height * BytesPerPixel, nil
}

// CheckBuffer verifies that buf holds exactly one width x height BGR24 frame.
func CheckBuffer(buf []byte, width, height int) error {
	size, err := FrameSize(width, height)
	if err != nil {
		return err
	}
	if len(buf) != size {
		return fmt.Errorf("%w: buffer length %d, want %d for %dx%d",
			ErrInvalidArgument, len(buf), size, width, height)
	}
	return nil
}

// Apply transforms a packed BGR24 frame in place.
//
// Every pixel is visited exactly once in row-major order and replaced by
// (d, d, d) where d = Diff(red, blue). Apply does not allocate and does not
// retain buf.
//
// If the buffer length does not equal width*height*3, or either dimension is
// negative, Apply returns an error wrapping ErrInvalidArgument and buf is not
// modified.
func Apply(buf []byte, width, height int) error {
	if err := CheckBuffer(buf, width, height); err != nil {
		return err
	}
	applyRows(buf, width, 0, height)
	return nil
}

// applyRows transforms rows [y0, y1) of a frame already known to be well formed.
func applyRows(buf []byte, width, y0, y1 int) {
	stride := width * BytesPerPixel
	row := buf[y0*stride : y1*stride]
	for i := 0; i+BytesPerPixel <= len(row); i += BytesPerPixel {
		px := row[i : i+BytesPerPixel : i+BytesPerPixel]
		d := Diff(px[OffsetRed], px[OffsetBlue])
		px[OffsetBlue] = d
		px[OffsetGreen] = d
		px[OffsetRed] = d
	}
}
