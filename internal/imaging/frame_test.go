package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
)

func TestToBGR24(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	f := ToBGR24(img)
	if f.Width != 2 || f.Height != 1 {
		t.Fatalf("dimensions: got %dx%d, want 2x1", f.Width, f.Height)
	}
	want := []byte{30, 20, 10, 50, 100, 200}
	if !bytes.Equal(f.Pix, want) {
		t.Errorf("Pix: got %v, want %v", f.Pix, want)
	}
}

func TestToBGR24_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 7, 8, 9))
	img.Set(5, 7, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(7, 8, color.RGBA{R: 4, G: 5, B: 6, A: 255})

	f := ToBGR24(img)
	if f.Width != 3 || f.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", f.Width, f.Height)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !bytes.Equal(f.Pix[0:3], []byte{3, 2, 1}) {
		t.Errorf("first pixel: got %v", f.Pix[0:3])
	}
	if !bytes.Equal(f.Pix[15:18], []byte{6, 5, 4}) {
		t.Errorf("last pixel: got %v", f.Pix[15:18])
	}
}

func TestGrayFromBGR24_Invalid(t *testing.T) {
	f := &colordiff.Frame{Width: 2, Height: 2, Pix: make([]byte, 11)}
	if _, err := GrayFromBGR24(f); !errors.Is(err, colordiff.ErrInvalidArgument) {
		t.Errorf("GrayFromBGR24: got %v, want ErrInvalidArgument", err)
	}
}

func TestGrayFromBGR24(t *testing.T) {
	f := &colordiff.Frame{Width: 2, Height: 1, Pix: []byte{7, 7, 7, 254, 254, 254}}
	g, err := GrayFromBGR24(f)
	if err != nil {
		t.Fatalf("GrayFromBGR24 failed: %v", err)
	}
	if g.GrayAt(0, 0).Y != 7 || g.GrayAt(1, 0).Y != 254 {
		t.Errorf("got %v", g.Pix)
	}
}

func TestFrameBase64(t *testing.T) {
	f := &colordiff.Frame{Width: 2, Height: 1, Pix: []byte{0, 10, 0, 255, 20, 255}}
	data := EncodeFrameBase64(f)

	decoded, err := DecodeFrameBase64(data, 2, 1)
	if err != nil {
		t.Fatalf("DecodeFrameBase64 failed: %v", err)
	}
	if !bytes.Equal(decoded.Pix, f.Pix) {
		t.Errorf("got %v, want %v", decoded.Pix, f.Pix)
	}

	if _, err := DecodeFrameBase64(data, 3, 1); !errors.Is(err, colordiff.ErrInvalidArgument) {
		t.Errorf("wrong size: got %v, want ErrInvalidArgument", err)
	}
	if _, err := DecodeFrameBase64("!!not base64!!", 2, 1); err == nil {
		t.Error("DecodeFrameBase64 should fail for invalid base64")
	}
}
