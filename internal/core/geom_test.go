package core

import "testing"

func TestSpanOverlap(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Span
		wantWidth float64
		wantMid   float64
	}{
		{
			name:      "identical spans",
			a:         SpanAround(200, 100),
			b:         SpanAround(200, 100),
			wantWidth: 100,
			wantMid:   200,
		},
		{
			name:      "partial overlap on the right",
			a:         SpanAround(200, 100),
			b:         SpanAround(230, 100),
			wantWidth: 70,
			wantMid:   215,
		},
		{
			name:      "partial overlap on the left",
			a:         SpanAround(200, 100),
			b:         SpanAround(160, 100),
			wantWidth: 60,
			wantMid:   180,
		},
		{
			name:      "touching edges",
			a:         SpanAround(200, 100),
			b:         SpanAround(300, 100),
			wantWidth: 0,
			wantMid:   250,
		},
		{
			name:      "disjoint",
			a:         SpanAround(200, 100),
			b:         SpanAround(50, 40),
			wantWidth: -80,
		},
		{
			name:      "narrow inside wide",
			a:         SpanAround(200, 100),
			b:         SpanAround(210, 20),
			wantWidth: 20,
			wantMid:   210,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Overlap(tc.b)
			if got.Width() != tc.wantWidth {
				t.Errorf("Overlap().Width() = %v, expected %v", got.Width(), tc.wantWidth)
			}
			if tc.wantWidth > 0 && got.Center() != tc.wantMid {
				t.Errorf("Overlap().Center() = %v, expected %v", got.Center(), tc.wantMid)
			}

			// Overlap is symmetric
			rev := tc.b.Overlap(tc.a)
			if rev != got {
				t.Errorf("Overlap() not symmetric: %+v vs %+v", got, rev)
			}
		})
	}
}

func TestSpanAround(t *testing.T) {
	s := SpanAround(50, 20)
	if s.Left != 40 || s.Right != 60 {
		t.Errorf("SpanAround(50, 20) = %+v, expected [40, 60]", s)
	}
	if s.Width() != 20 {
		t.Errorf("Width() = %v, expected 20", s.Width())
	}
	if s.Center() != 50 {
		t.Errorf("Center() = %v, expected 50", s.Center())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(-1.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-1.5, 0, 1) = %v, expected 0", got)
	}
}

func TestBlockColorCycles(t *testing.T) {
	if BlockColor(0) != BlockColor(len(blockPalette)) {
		t.Error("BlockColor should repeat after a full palette cycle")
	}
	if BlockColor(0) == BlockColor(1) {
		t.Error("Adjacent blocks should get different colors")
	}
	if BlockColor(0) == ColorDefault {
		t.Error("Block colors should never be the default color")
	}
}
