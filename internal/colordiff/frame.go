package colordiff

import (
	"errors"
	"fmt"
)

// Frame is one packed BGR24 frame handed over by a host for a single call.
type Frame struct {
	Width  int    // Width in pixels
	Height int    // Height in pixels
	Pix    []byte // Packed B,G,R bytes, row-major, no padding
}

// NewFrame allocates a zeroed frame of the given size.
func NewFrame(width, height int) (*Frame, error) {
	size, err := FrameSize(width, height)
	if err != nil {
		return nil, err
	}
	return &Frame{Width: width, Height: height, Pix: make([]byte, size)}, nil
}

// Validate reports whether Pix matches the frame dimensions.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidArgument)
	}
	return CheckBuffer(f.Pix, f.Width, f.Height)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (f *Frame) PixOffset(x, y int) int {
	return (y*f.Width + x) * BytesPerPixel
}

// Transformer processes a frame in place.
type Transformer interface {
	Transform(f *Frame) error
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(f *Frame) error

// Transform calls fn(f).
func (fn TransformerFunc) Transform(f *Frame) error {
	return fn(f)
}

// ChannelDifference is the red-minus-blue transform as a Transformer.
var ChannelDifference Transformer = TransformerFunc(func(f *Frame) error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidArgument)
	}
	return Apply(f.Pix, f.Width, f.Height)
})

// SubtypeRGB24 names the only pixel layout the transform accepts.
const SubtypeRGB24 = "RGB24"

// ErrUnsupportedFormat is returned when a host offers a layout other than packed RGB24.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format describes the video layout a host proposes for a connection.
type Format struct {
	Subtype  string // Pixel layout name, e.g. "RGB24"
	BitCount int    // Bits per pixel
	Width    int    // Frame width in pixels
	Height   int    // Frame height in pixels
	Stride   int    // Bytes per row; 0 means tightly packed
}

// FrameSize returns the buffer length a frame of this format occupies.
func (ft Format) FrameSize() (int, error) {
	return FrameSize(ft.Width, ft.Height)
}

// CheckFormat accepts packed 24-bit RGB with no row padding.
func CheckFormat(ft Format) error {
	if ft.Subtype != SubtypeRGB24 {
		return fmt.Errorf("%w: subtype %q, want %q", ErrUnsupportedFormat, ft.Subtype, SubtypeRGB24)
	}
	if ft.BitCount != 24 {
		return fmt.Errorf("%w: %d bits per pixel, want 24", ErrUnsupportedFormat, ft.BitCount)
	}
	if ft.Stride != 0 && ft.Stride != ft.Width*BytesPerPixel {
		return fmt.Errorf("%w: stride %d, want %d (no row padding)",
			ErrUnsupportedFormat, ft.Stride, ft.Width*BytesPerPixel)
	}
	if _, err := ft.FrameSize(); err != nil {
		return err
	}
	return nil
}

// CheckPassthrough accepts an input/output pair when both are valid RGB24 and
// share the same geometry, since frames are rewritten in place.
func CheckPassthrough(in, out Format) error {
	if err := CheckFormat(in); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := CheckFormat(out); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if in.Width != out.Width || in.Height != out.Height {
		return fmt.Errorf("%w: output %dx%d differs from input %dx%d",
			ErrUnsupportedFormat, out.Width, out.Height, in.Width, in.Height)
	}
	return nil
}
