package imaging

import (
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
)

// ToBGR24 copies an image into a new packed BGR24 frame.
//
// The frame origin is the image's Bounds().Min. Alpha is dropped after
// premultiplication.
func ToBGR24(img image.Image) *colordiff.Frame {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()

	pix := make([]byte, w*h*colordiff.BytesPerPixel)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
		for x := 0; x < w; x++ {
			s := src[x*4 : x*4+4 : x*4+4]
			pix[i+colordiff.OffsetBlue] = s[2]
			pix[i+colordiff.OffsetGreen] = s[1]
			pix[i+colordiff.OffsetRed] = s[0]
			i += colordiff.BytesPerPixel
		}
	}

	return &colordiff.Frame{Width: w, Height: h, Pix: pix}
}

// GrayFromBGR24 extracts the single intensity plane of a transformed frame.
//
// After the transform all three channels are equal, so the blue byte is used.
func GrayFromBGR24(f *colordiff.Frame) (*image.Gray, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		img.Pix[i] = f.Pix[i*colordiff.BytesPerPixel+colordiff.OffsetBlue]
	}
	return img, nil
}

// EncodeFrameBase64 returns the raw frame bytes in standard base64.
func EncodeFrameBase64(f *colordiff.Frame) string {
	return base64.StdEncoding.EncodeToString(f.Pix)
}

// DecodeFrameBase64 decodes a raw BGR24 buffer and checks it against the
// given dimensions.
//
// A length mismatch returns an error wrapping colordiff.ErrInvalidArgument.
func DecodeFrameBase64(data string, width, height int) (*colordiff.Frame, error) {
	pix, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame data: %w", err)
	}
	f := &colordiff.Frame{Width: width, Height: height, Pix: pix}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
