package canvas

import "testing"

func TestDefault(t *testing.T) {
	c := Default()

	if c.Width != 16 || c.Height != 9 {
		t.Errorf("canvas = %vx%v, want 16x9", c.Width, c.Height)
	}
	if c.ContentTop != 1.2 {
		t.Errorf("ContentTop = %v, want 1.2", c.ContentTop)
	}
	if c.ContentWidth() != 15 {
		t.Errorf("ContentWidth() = %v, want 15", c.ContentWidth())
	}
	if c.ContentHeight() != 7.3 {
		t.Errorf("ContentHeight() = %v, want 7.3", c.ContentHeight())
	}
}

func TestClampRect(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{
			name: "already inside",
			in:   Rect{Left: 1, Top: 2, Width: 4, Height: 3},
			want: Rect{Left: 1, Top: 2, Width: 4, Height: 3},
		},
		{
			name: "left of margin",
			in:   Rect{Left: 0, Top: 2, Width: 4, Height: 3},
			want: Rect{Left: 0.5, Top: 2, Width: 4, Height: 3},
		},
		{
			name: "above content top",
			in:   Rect{Left: 1, Top: 0, Width: 4, Height: 3},
			want: Rect{Left: 1, Top: 1.2, Width: 4, Height: 3},
		},
		{
			name: "width overflows from position",
			in:   Rect{Left: 10, Top: 2, Width: 8, Height: 3},
			want: Rect{Left: 10, Top: 2, Width: 5.5, Height: 3},
		},
		{
			name: "height overflows from position",
			in:   Rect{Left: 1, Top: 6, Width: 4, Height: 5},
			want: Rect{Left: 1, Top: 6, Width: 4, Height: 2.5},
		},
		{
			name: "pinned at right edge shrinks to zero width",
			in:   Rect{Left: 99, Top: 2, Width: 4, Height: 3},
			want: Rect{Left: 15.5, Top: 2, Width: 0, Height: 3},
		},
		{
			name: "pinned at bottom edge shrinks to zero height",
			in:   Rect{Left: 1, Top: 99, Width: 4, Height: 3},
			want: Rect{Left: 1, Top: 8.5, Width: 4, Height: 0},
		},
		{
			name: "negative size clamps to zero",
			in:   Rect{Left: 1, Top: 2, Width: -3, Height: -1},
			want: Rect{Left: 1, Top: 2, Width: 0, Height: 0},
		},
		{
			name: "oversized in both axes fills content area",
			in:   Rect{Left: -5, Top: -5, Width: 100, Height: 100},
			want: Rect{Left: 0.5, Top: 1.2, Width: 15, Height: 7.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ClampRect(tt.in); got != tt.want {
				t.Errorf("ClampRect(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// TestClampRectBounds sweeps extreme rects and checks the bounds invariant:
// every clamped rect lies fully inside the content area.
func TestClampRectBounds(t *testing.T) {
	c := Default()
	coords := []float64{-100, -1, 0, 0.5, 1.2, 5, 8.9, 9, 15.5, 16, 100}
	sizes := []float64{-10, 0, 0.1, 3, 7.3, 15, 16, 1000}

	for _, left := range coords {
		for _, top := range coords {
			for _, w := range sizes {
				for _, h := range sizes {
					got := c.ClampRect(Rect{Left: left, Top: top, Width: w, Height: h})
					if !c.Contains(got) {
						t.Fatalf("ClampRect(%v,%v,%v,%v) = %+v escapes content area", left, top, w, h, got)
					}
				}
			}
		}
	}
}

func TestRectAccessors(t *testing.T) {
	r := Rect{Left: 1, Top: 2, Width: 4, Height: 6}

	if r.Right() != 5 {
		t.Errorf("Right() = %v, want 5", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %v, want 8", r.Bottom())
	}
	if r.CenterX() != 3 {
		t.Errorf("CenterX() = %v, want 3", r.CenterX())
	}
	if r.CenterY() != 5 {
		t.Errorf("CenterY() = %v, want 5", r.CenterY())
	}
}

func TestContentRect(t *testing.T) {
	c := Default()
	r := c.ContentRect()

	want := Rect{Left: 0.5, Top: 1.2, Width: 15, Height: 7.3}
	if r != want {
		t.Errorf("ContentRect() = %+v, want %+v", r, want)
	}
	if !c.Contains(r) {
		t.Error("ContentRect() must satisfy Contains")
	}
}

func TestTitleRectAboveContent(t *testing.T) {
	c := Default()
	r := c.TitleRect()

	if r.Bottom() > c.ContentTop {
		t.Errorf("title band bottom %v extends past content top %v", r.Bottom(), c.ContentTop)
	}
	if r.Width != c.Width {
		t.Errorf("title band width = %v, want full slide width %v", r.Width, c.Width)
	}
}
