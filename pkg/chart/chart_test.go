package chart

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func sampleSpec(kind Kind) Spec {
	if kind == KindStackedBar {
		return Spec{
			Kind:   kind,
			Labels: []string{"Americas", "EMEA", "APAC"},
			Series: []Series{
				{Name: "Positive", Values: []float64{4, 2, 6}},
				{Name: "Neutral", Values: []float64{1, 3, 2}},
				{Name: "Negative", Values: []float64{2, 1, 0}},
			},
		}
	}
	return Spec{
		Kind:   kind,
		Title:  "Quarterly volume",
		Labels: []string{"Q1", "Q2", "Q3", "Q4"},
		Values: []float64{12, 7, 19, 4},
	}
}

func decodePNG(t *testing.T, img *Image) image.Image {
	t.Helper()
	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return decoded
}

func TestRenderKinds(t *testing.T) {
	r := NewRenderer()
	kinds := []Kind{KindBar, KindColumn, KindPie, KindDoughnut, KindLine, KindArea, KindStackedBar}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			img, err := r.Render(sampleSpec(kind), 800, 600)
			if err != nil {
				t.Fatalf("Render(%s) error: %v", kind, err)
			}
			if img.Width != 800 || img.Height != 600 {
				t.Errorf("dimensions = %dx%d, want 800x600", img.Width, img.Height)
			}
			decoded := decodePNG(t, img)
			bounds := decoded.Bounds()
			if bounds.Dx() != 800 || bounds.Dy() != 600 {
				t.Errorf("decoded bounds = %v", bounds)
			}
		})
	}
}

func TestRenderNoData(t *testing.T) {
	r := NewRenderer()
	tests := []struct {
		name string
		spec Spec
	}{
		{"empty values", Spec{Kind: KindBar, Labels: nil, Values: nil}},
		{"all zero values", Spec{Kind: KindPie, Labels: []string{"a", "b"}, Values: []float64{0, 0}}},
		{"stacked without series", Spec{Kind: KindStackedBar}},
		{
			"stacked all zero",
			Spec{
				Kind:   KindStackedBar,
				Labels: []string{"x"},
				Series: []Series{{Name: "Positive", Values: []float64{0}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Render(tt.spec, 800, 600); !errors.Is(err, ErrNoData) {
				t.Errorf("Render() error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestRenderMismatch(t *testing.T) {
	r := NewRenderer()
	tests := []struct {
		name string
		spec Spec
	}{
		{
			"flat labels short",
			Spec{Kind: KindBar, Labels: []string{"a"}, Values: []float64{1, 2}},
		},
		{
			"stacked series short",
			Spec{
				Kind:   KindStackedBar,
				Labels: []string{"a", "b"},
				Series: []Series{{Name: "Positive", Values: []float64{1}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Render(tt.spec, 800, 600); !errors.Is(err, ErrMismatch) {
				t.Errorf("Render() error = %v, want ErrMismatch", err)
			}
		})
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer()
	spec := Spec{Kind: "radar", Labels: []string{"a"}, Values: []float64{1}}
	if _, err := r.Render(spec, 400, 300); !errors.Is(err, ErrKind) {
		t.Errorf("Render() error = %v, want ErrKind", err)
	}
}

func TestRenderBadDimensions(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(sampleSpec(KindBar), 0, 300); err == nil {
		t.Error("Render() with zero width should fail")
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := NewRenderer()
	first, err := r.Render(sampleSpec(KindLine), 640, 480)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(sampleSpec(KindLine), 640, 480)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("identical specs should produce identical bytes")
	}
}

func TestRenderTransparentBackground(t *testing.T) {
	r := NewRenderer()
	img, err := r.Render(sampleSpec(KindPie), 400, 300)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	decoded := decodePNG(t, img)
	if _, _, _, a := decoded.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d, want fully transparent", a)
	}
}

func TestRenderOpaqueBackground(t *testing.T) {
	r := NewRenderer(WithBackground(color.NRGBA{R: 0x0F, G: 0x16, B: 0x32, A: 0xFF}))
	img, err := r.Render(sampleSpec(KindBar), 400, 300)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	decoded := decodePNG(t, img)
	if _, _, _, a := decoded.At(0, 0).RGBA(); a == 0 {
		t.Error("corner should be opaque when a background is set")
	}
}

func TestAspect(t *testing.T) {
	img := &Image{Width: 800, Height: 600}
	if got := img.Aspect(); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Aspect() = %v, want 0.75", got)
	}
	zero := &Image{}
	if got := zero.Aspect(); got != 0 {
		t.Errorf("Aspect() on zero width = %v, want 0", got)
	}
}

func TestSpecEmpty(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"no values", Spec{Kind: KindBar}, true},
		{"zero values", Spec{Kind: KindBar, Values: []float64{0, 0}}, true},
		{"some value", Spec{Kind: KindBar, Values: []float64{0, 3}}, false},
		{"stacked empty", Spec{Kind: KindStackedBar, Series: []Series{{Values: []float64{0}}}}, true},
		{"stacked nonzero", Spec{Kind: KindStackedBar, Series: []Series{{Values: []float64{0, 1}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShares(t *testing.T) {
	sh := shares([]float64{30, 25, 45})
	sum := 0.0
	for _, s := range sh {
		sum += s
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("Shares sum = %v, want 100", sum)
	}
	if math.Abs(sh[2]-45) > 1e-9 {
		t.Errorf("Share = %v, want 45", sh[2])
	}

	// Non-positive values are excluded from the sum and share zero.
	sh = shares([]float64{-5, 50, 50})
	if sh[0] != 0 {
		t.Errorf("Negative value share = %v, want 0", sh[0])
	}
	if math.Abs(sh[1]-50) > 1e-9 || math.Abs(sh[2]-50) > 1e-9 {
		t.Errorf("Shares = %v, want 50/50", sh[1:])
	}

	for _, s := range shares([]float64{0, 0}) {
		if s != 0 {
			t.Errorf("Zero-sum share = %v, want 0", s)
		}
	}
}

func TestPaletteCycles(t *testing.T) {
	n := len(DefaultPalette)
	for i := 0; i < n; i++ {
		if paletteColor(nil, i) != paletteColor(nil, i+n) {
			t.Errorf("palette index %d should repeat at %d", i, i+n)
		}
	}
	custom := []string{"#FF0000", "#00FF00"}
	if paletteColor(custom, 0) != paletteColor(custom, 2) {
		t.Error("custom palette should cycle")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#007ACC", color.NRGBA{R: 0x00, G: 0x7A, B: 0xCC, A: 0xFF}, true},
		{"#fff", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, true},
		{"#0F1632", color.NRGBA{R: 0x0F, G: 0x16, B: 0x32, A: 0xFF}, true},
		{"007ACC", color.NRGBA{}, false},
		{"#XYZ123", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseHex(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{4, 1},
		{8, 2},
		{10, 5},
		{40, 10},
		{0.5, 0.2},
	}
	for _, tt := range tests {
		if got := niceStep(tt.max); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("niceStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12"},
		{3.5, "3.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
