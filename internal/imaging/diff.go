package imaging

import (
	"context"
	"image"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
)

// DiffOptions controls DiffImage.
type DiffOptions struct {
	// Region restricts the transform to a sub-rectangle. Nil means the whole image.
	Region *Region

	// Scale resizes the region before the transform. 0 or 1 keeps the size.
	Scale float64

	// Workers > 1 splits the frame into row bands processed concurrently.
	Workers int

	// OutputPath, if set, receives the result; the encoder follows the extension.
	OutputPath string

	// OmitImage skips the base64 PNG in the result, useful with OutputPath.
	OmitImage bool
}

// DiffStats summarizes the gray levels written by the transform.
type DiffStats struct {
	Min  uint8   `json:"min"`
	Max  uint8   `json:"max"`
	Mean float64 `json:"mean"`

	// Clamped counts pixels whose value exceeded the 254 ceiling.
	Clamped int `json:"clamped"`
}

// DiffResult is the outcome of running the transform over an image.
type DiffResult struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Stats       DiffStats `json:"stats"`
	ImageBase64 string    `json:"image_base64,omitempty"`
	MimeType    string    `json:"mime_type,omitempty"`
	SavedPath   string    `json:"saved_path,omitempty"`
}

// DiffImage crops, converts and transforms an image, returning the gray result.
//
// The source image is not modified.
func DiffImage(ctx context.Context, img image.Image, opts DiffOptions) (*DiffResult, error) {
	src, err := CropRegion(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}

	frame := ToBGR24(src)
	stats, err := TransformFrame(ctx, frame, opts.Workers)
	if err != nil {
		return nil, err
	}

	gray, err := GrayFromBGR24(frame)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{
		Width:  frame.Width,
		Height: frame.Height,
		Stats:  stats,
	}

	if opts.OutputPath != "" {
		if err := SaveImage(gray, opts.OutputPath); err != nil {
			return nil, err
		}
		result.SavedPath = opts.OutputPath
	}

	if !opts.OmitImage {
		b64, err := encodePNGBase64(gray)
		if err != nil {
			return nil, err
		}
		result.ImageBase64 = b64
		result.MimeType = "image/png"
	}

	return result, nil
}

// TransformFrame applies the channel difference transform to f in place and
// returns statistics about the output.
//
// With workers > 1 the frame is processed by colordiff.ApplyParallel.
func TransformFrame(ctx context.Context, f *colordiff.Frame, workers int) (DiffStats, error) {
	if err := f.Validate(); err != nil {
		return DiffStats{}, err
	}

	clamped := countClamped(f)

	var err error
	if workers > 1 {
		err = colordiff.ApplyParallel(ctx, f.Pix, f.Width, f.Height, workers)
	} else {
		err = colordiff.Apply(f.Pix, f.Width, f.Height)
	}
	if err != nil {
		return DiffStats{}, err
	}

	stats := frameStats(f)
	stats.Clamped = clamped
	return stats, nil
}

// countClamped counts pixels whose unclamped value is above colordiff.DiffMax.
// The lower bound is never reached for byte inputs.
func countClamped(f *colordiff.Frame) int {
	n := 0
	for i := 0; i+colordiff.BytesPerPixel <= len(f.Pix); i += colordiff.BytesPerPixel {
		r := int(f.Pix[i+colordiff.OffsetRed] / 2)
		b := int(f.Pix[i+colordiff.OffsetBlue] / 2)
		if r-b+colordiff.DiffBias > colordiff.DiffMax {
			n++
		}
	}
	return n
}

// frameStats computes min, max and mean of a transformed frame.
func frameStats(f *colordiff.Frame) DiffStats {
	pixels := f.Width * f.Height
	if pixels == 0 {
		return DiffStats{}
	}

	stats := DiffStats{Min: 255}
	var sum uint64
	for i := 0; i < len(f.Pix); i += colordiff.BytesPerPixel {
		v := f.Pix[i]
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += uint64(v)
	}
	stats.Mean = float64(sum) / float64(pixels)
	return stats
}
