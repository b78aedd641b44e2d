package colordiff

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minBandRows keeps bands large enough that goroutine overhead stays small.
const minBandRows = 16

// ApplyParallel transforms a frame in place using up to workers goroutines.
//
// Rows are split into contiguous, disjoint bands. The output is identical to
// Apply. If workers <= 0, runtime.GOMAXPROCS(0) is used.
//
// Preconditions are checked before any band starts, so an invalid call leaves
// the buffer untouched. If ctx is cancelled, bands that have not started are
// skipped and ctx.Err() is returned; bands already processed stay written.
func ApplyParallel(ctx context.Context, buf []byte, width, height, workers int) error {
	if err := CheckBuffer(buf, width, height); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	bands := bandCount(height, workers)
	if bands <= 1 {
		applyRows(buf, width, 0, height)
		return nil
	}

	rowsPerBand := (height + bands - 1) / bands

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, height)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			applyRows(buf, width, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// bandCount picks how many row bands to split height rows into.
func bandCount(height, workers int) int {
	if height <= 0 {
		return 0
	}
	n := height / minBandRows
	if n < 1 {
		n = 1
	}
	if n > workers {
		n = workers
	}
	return n
}
