package imaging

import (
	"context"
	"encoding/base64"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
)

func TestDiffImage_Pattern(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := DiffImage(context.Background(), img, DiffOptions{})
	if err != nil {
		t.Fatalf("DiffImage failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	// Quadrants: red 254, green 128, blue 1, white 128.
	if result.Stats.Min != 1 || result.Stats.Max != 254 {
		t.Errorf("Stats range: got %d-%d, want 1-254", result.Stats.Min, result.Stats.Max)
	}
	wantMean := float64(254+128+1+128) / 4
	if result.Stats.Mean != wantMean {
		t.Errorf("Stats.Mean: got %f, want %f", result.Stats.Mean, wantMean)
	}
	if result.Stats.Clamped != 50*50 {
		t.Errorf("Stats.Clamped: got %d, want %d", result.Stats.Clamped, 50*50)
	}

	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	r, g, b, _ := decoded.At(75, 75).RGBA()
	if r>>8 != 128 || g>>8 != 128 || b>>8 != 128 {
		t.Errorf("white quadrant: got (%d,%d,%d), want 128 gray", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = decoded.At(25, 75).RGBA()
	if r>>8 != 1 {
		t.Errorf("blue quadrant: got %d, want 1", r>>8)
	}
}

func TestDiffImage_SourceUntouched(t *testing.T) {
	img := createPatternImage(10, 10)
	before := append([]byte(nil), img.Pix...)

	if _, err := DiffImage(context.Background(), img, DiffOptions{Workers: 4}); err != nil {
		t.Fatalf("DiffImage failed: %v", err)
	}
	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("source image was modified")
		}
	}
}

func TestDiffImage_RegionAndSave(t *testing.T) {
	imgPath := createTestImageWithPattern(t, 64, 64)
	defer os.Remove(imgPath)

	cache := NewImageCache()
	img, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "diff.bmp")
	result, err := DiffImage(context.Background(), img, DiffOptions{
		Region:     &Region{X1: 0, Y1: 0, X2: 32, Y2: 32},
		OutputPath: out,
		OmitImage:  true,
	})
	if err != nil {
		t.Fatalf("DiffImage failed: %v", err)
	}

	if result.ImageBase64 != "" {
		t.Error("ImageBase64 should be empty with OmitImage")
	}
	if result.SavedPath != out {
		t.Errorf("SavedPath: got %s, want %s", result.SavedPath, out)
	}
	if result.Stats.Min != 254 || result.Stats.Max != 254 {
		t.Errorf("red region should be uniformly 254, got %d-%d", result.Stats.Min, result.Stats.Max)
	}

	saved, err := NewImageCache().Load(out)
	if err != nil {
		t.Fatalf("reloading saved image failed: %v", err)
	}
	if saved.Bounds().Dx() != 32 || saved.Bounds().Dy() != 32 {
		t.Errorf("saved dimensions: got %dx%d, want 32x32", saved.Bounds().Dx(), saved.Bounds().Dy())
	}
}

func TestDiffImage_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	_, err := DiffImage(context.Background(), img, DiffOptions{Region: &Region{X1: 0, Y1: 0, X2: 20, Y2: 20}})
	if err == nil {
		t.Error("DiffImage should fail for out-of-bounds region")
	}
}

func TestTransformFrame(t *testing.T) {
	f := &colordiff.Frame{Width: 2, Height: 1, Pix: []byte{0, 10, 0, 255, 20, 255}}

	stats, err := TransformFrame(context.Background(), f, 1)
	if err != nil {
		t.Fatalf("TransformFrame failed: %v", err)
	}
	if stats != (DiffStats{Min: 128, Max: 128, Mean: 128}) {
		t.Errorf("Stats: got %+v", stats)
	}
	for _, v := range f.Pix {
		if v != 128 {
			t.Fatalf("got %v, want all 128", f.Pix)
		}
	}
}

func TestTransformFrame_Invalid(t *testing.T) {
	f := &colordiff.Frame{Width: 3, Height: 1, Pix: []byte{1, 2, 3}}

	if _, err := TransformFrame(context.Background(), f, 4); !errors.Is(err, colordiff.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestTransformFrame_Empty(t *testing.T) {
	f := &colordiff.Frame{}

	stats, err := TransformFrame(context.Background(), f, 0)
	if err != nil {
		t.Fatalf("TransformFrame failed: %v", err)
	}
	if stats != (DiffStats{}) {
		t.Errorf("Stats: got %+v, want zero", stats)
	}
}
