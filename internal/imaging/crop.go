package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is inclusive and (X2, Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// CropRegion extracts a region from an image and optionally rescales it.
//
// A nil region keeps the whole image. Scale values <= 0 or equal to 1 leave
// the size unchanged; other values resize with a Lanczos filter.
func CropRegion(img image.Image, region *Region, scale float64) (image.Image, error) {
	out := img
	if region != nil {
		bounds := img.Bounds()
		x1, y1, x2, y2 := region.X1, region.Y1, region.X2, region.Y2
		if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
			return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if x1 >= x2 || y1 >= y2 {
			return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
		}
		out = imaging.Crop(img, region.Rect())
	}

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(out.Bounds().Dx()) * scale)
		newHeight := int(float64(out.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f reduces image to %dx%d", scale, newWidth, newHeight)
		}
		out = imaging.Resize(out, newWidth, newHeight, imaging.Lanczos)
	}

	return out, nil
}

// encodePNGBase64 encodes an image as base64 PNG.
func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SaveImage writes an image to disk, choosing the encoder from the file
// extension (png, jpg, gif, bmp, tif).
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
