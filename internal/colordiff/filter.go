package colordiff

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
)

// Stats counts frames seen by a Filter.
type Stats struct {
	Frames   uint64 `json:"frames"`   // Frames transformed successfully
	Rejected uint64 `json:"rejected"` // Frames refused by validation or the transformer
	Pixels   uint64 `json:"pixels"`   // Total pixels transformed
}

// Filter binds a Transformer to a negotiated Format and is driven once per
// frame by a host's streaming goroutine.
//
// Process must not be called concurrently. Stats may be read from any goroutine.
type Filter struct {
	format Format
	tr     Transformer
	logger *log.Logger
	debug  bool

	frames   atomic.Uint64
	rejected atomic.Uint64
	pixels   atomic.Uint64
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithTransformer replaces the default ChannelDifference transformer.
func WithTransformer(tr Transformer) FilterOption {
	return func(f *Filter) { f.tr = tr }
}

// WithLogger sets the logger used for rejected frames.
// Rejections are only logged when debug is true.
func WithLogger(l *log.Logger, debug bool) FilterOption {
	return func(f *Filter) {
		f.logger = l
		f.debug = debug
	}
}

// NewFilter creates a filter for a negotiated input/output pair.
//
// Returns an error wrapping ErrUnsupportedFormat unless both sides are tightly
// packed RGB24 of the same size, as required by CheckPassthrough.
func NewFilter(in, out Format, opts ...FilterOption) (*Filter, error) {
	if err := CheckPassthrough(in, out); err != nil {
		return nil, err
	}
	f := &Filter{
		format: in,
		tr:     ChannelDifference,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Format returns the negotiated format.
func (f *Filter) Format() Format {
	return f.format
}

// Process transforms one frame in place.
//
// The frame must match the negotiated width and height and carry a buffer of
// exactly the right length; otherwise the frame is left untouched and an error
// wrapping ErrInvalidArgument is returned.
func (f *Filter) Process(fr *Frame) error {
	if err := f.check(fr); err != nil {
		f.reject(err)
		return err
	}
	if err := f.tr.Transform(fr); err != nil {
		f.reject(err)
		return err
	}
	f.frames.Add(1)
	f.pixels.Add(uint64(fr.Width) * uint64(fr.Height))
	return nil
}

func (f *Filter) check(fr *Frame) error {
	if err := fr.Validate(); err != nil {
		return err
	}
	if fr.Width != f.format.Width || fr.Height != f.format.Height {
		return fmt.Errorf("%w: frame %dx%d, negotiated %dx%d",
			ErrInvalidArgument, fr.Width, fr.Height, f.format.Width, f.format.Height)
	}
	return nil
}

func (f *Filter) reject(err error) {
	n := f.rejected.Add(1)
	if f.debug {
		f.logger.Printf("frame rejected (%d total): %v", n, err)
	}
}

// Stats returns a snapshot of the filter counters.
func (f *Filter) Stats() Stats {
	return Stats{
		Frames:   f.frames.Load(),
		Rejected: f.rejected.Load(),
		Pixels:   f.pixels.Load(),
	}
}
