package images

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"
)

func TestRasterizeSVGToImage(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`)

	tests := []struct {
		name  string
		opts  PreviewOptions
		wantW int
		wantH int
	}{
		{"intrinsic", PreviewOptions{}, 100, 50},
		{"scale_by_width", PreviewOptions{Width: 200}, 200, 100},
		{"scale_by_height", PreviewOptions{Height: 200}, 400, 200},
		{"fit_box", PreviewOptions{Width: 150, Height: 150}, 150, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVGToImage(svg, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Fatalf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestRasterizeSVGToImage_Background(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`)

	img, err := RasterizeSVGToImage(svg, PreviewOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Errorf("expected transparent canvas, alpha = %d", a)
	}

	img, err = RasterizeSVGToImage(svg, PreviewOptions{Background: color.RGBA{255, 255, 255, 255}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, g, b, a := img.At(5, 5).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("expected white canvas, got %d %d %d %d", r, g, b, a)
	}
}

func TestFitSize_Clamp(t *testing.T) {
	w, h := fitSize(100000, 50000, 0, 0)
	if w != maxRasterDim || h != maxRasterDim/2 {
		t.Errorf("fitSize() = %dx%d, want %dx%d", w, h, maxRasterDim, maxRasterDim/2)
	}
}

func TestScaleSVGStrokeWidth(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		factor float64
		want   string
	}{
		{"attribute", `<path stroke-width="2"/>`, 2, `<path stroke-width="4"/>`},
		{"property", `<path style="stroke-width: 1.5"/>`, 2, `<path style="stroke-width: 3"/>`},
		{"unchanged factor", `<path stroke-width="2"/>`, 1, `<path stroke-width="2"/>`},
		{"zero factor", `<path stroke-width="2"/>`, 0, `<path stroke-width="2"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(ScaleSVGStrokeWidth([]byte(tt.in), tt.factor)); got != tt.want {
				t.Errorf("ScaleSVGStrokeWidth() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8"><rect width="8" height="8"/></svg>`)
	img, err := RasterizeSVGToImage(svg, PreviewOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not png: %v", err)
	}
	if decoded.Bounds().Dx() != 8 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"", nil, false},
		{"#fff", color.RGBA{255, 255, 255, 255}, false},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 255}, false},
		{"fff", nil, true},
		{"#ggg", nil, true},
		{"#1234", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errBadColor) {
					t.Fatalf("expected errBadColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
