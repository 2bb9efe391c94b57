package mask

import "testing"

// square returns a closed square shape in world space.
func square(x, y, side float64) Shape {
	return Shape{Points: []Point{
		Pt(x, y), Pt(x+side, y), Pt(x+side, y+side), Pt(x, y+side),
	}}
}

func TestShapeValid(t *testing.T) {
	if (Shape{Points: []Point{Pt(0, 0), Pt(1, 1)}}).Valid() {
		t.Error("2-point shape reported valid")
	}
	if !square(0, 0, 10).Valid() {
		t.Error("square reported invalid")
	}
}

func TestApplyShapeMalformedNoOp(t *testing.T) {
	cs := NewChunkStore(64)
	if _, ok := applyShape(cs, Shape{Points: []Point{Pt(0, 0)}}); ok {
		t.Error("malformed shape applied")
	}
	if cs.Len() != 0 {
		t.Error("malformed shape allocated chunks")
	}
}

func TestApplyShapeFillsPolygon(t *testing.T) {
	cs := NewChunkStore(512)
	s := square(100, 100, 50)
	if _, ok := applyShape(cs, s); !ok {
		t.Fatal("apply failed")
	}

	c, found := cs.Lookup(ChunkKey{})
	if !found {
		t.Fatal("chunk (0,0) not created")
	}
	if c.Empty {
		t.Error("chunk with shape content marked empty")
	}
	if got := c.Surface.At(125, 125); got != 255 {
		t.Errorf("shape interior = %d, want 255", got)
	}
	if got := c.Surface.At(50, 50); got != 0 {
		t.Errorf("outside shape = %d, want 0", got)
	}
}

func TestApplyShapeExpansion(t *testing.T) {
	base := square(200, 200, 40)

	grown := base
	grown.Expansion = 10
	cs := NewChunkStore(512)
	applyShape(cs, grown)
	c, _ := cs.Lookup(ChunkKey{})
	// 5 pixels outside the hard edge is covered after a 10 px dilation.
	if got := c.Surface.At(245, 220); got != 255 {
		t.Errorf("expanded edge = %d, want 255", got)
	}

	shrunk := base
	shrunk.Expansion = -10
	cs2 := NewChunkStore(512)
	applyShape(cs2, shrunk)
	c2, _ := cs2.Lookup(ChunkKey{})
	if got := c2.Surface.At(205, 220); got != 0 {
		t.Errorf("eroded edge = %d, want 0", got)
	}
	if got := c2.Surface.At(220, 220); got != 255 {
		t.Errorf("eroded core = %d, want 255", got)
	}
}

func TestApplyShapeFeatherFadesInward(t *testing.T) {
	s := square(100, 100, 60)
	s.Feather = 15
	cs := NewChunkStore(512)
	applyShape(cs, s)
	c, _ := cs.Lookup(ChunkKey{})

	edge := c.Surface.At(102, 130)
	mid := c.Surface.At(110, 130)
	core := c.Surface.At(130, 130)
	if core != 255 {
		t.Errorf("core = %d, want 255", core)
	}
	if edge == 0 || edge >= mid || mid >= core {
		t.Errorf("alpha not fading inward: edge %d, mid %d, core %d", edge, mid, core)
	}
	// Feather never bleeds outside the hard silhouette.
	if got := c.Surface.At(98, 130); got != 0 {
		t.Errorf("outside silhouette = %d, want 0", got)
	}
}

func TestApplyRemoveSymmetry(t *testing.T) {
	tests := []struct {
		name      string
		expansion int
		feather   float64
	}{
		{"plain", 0, 0},
		{"expanded", 25, 0},
		{"contracted", -8, 0},
		{"feathered apply", 0, 20},
		{"expanded and feathered", 25, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewChunkStore(256)
			s := square(300, 300, 80)
			s.Expansion = tt.expansion
			s.Feather = tt.feather

			touched, ok := applyShape(cs, s)
			if !ok {
				t.Fatal("apply failed")
			}
			if _, any := cs.NonEmptyBounds(); !any {
				t.Fatal("apply left the store empty")
			}

			// Remove always uses the hard shape at the same expansion, so
			// even a feathered apply is fully erased.
			if _, ok := removeShape(cs, s); !ok {
				t.Fatal("remove failed")
			}
			for cy := touched.MinY; cy <= touched.MaxY; cy++ {
				for cx := touched.MinX; cx <= touched.MaxX; cx++ {
					c, found := cs.Lookup(ChunkKey{X: cx, Y: cy})
					if !found {
						continue
					}
					if !c.Empty {
						t.Errorf("chunk (%d,%d) not empty after remove", cx, cy)
					}
				}
			}
		})
	}
}

func TestPreviewContoursNonDestructive(t *testing.T) {
	s := square(50, 50, 30)
	s.Expansion = 5

	polys := PreviewContours(s)
	if len(polys) != 1 {
		t.Fatalf("got %d contours, want 1", len(polys))
	}
	if len(polys[0]) < 4 {
		t.Errorf("contour has only %d points", len(polys[0]))
	}

	// Contour points lie on the expanded silhouette, in world space.
	for _, p := range polys[0] {
		if p.X < 50-6 || p.X > 80+6 || p.Y < 50-6 || p.Y > 80+6 {
			t.Errorf("contour point %+v far from expanded square", p)
		}
	}
}

func TestPreviewContoursMaxExpansion(t *testing.T) {
	// Expansion equal to the minimum margin: the working plane must still
	// keep a background border around the dilated silhouette so tracing
	// stays in bounds.
	s := square(0, 0, 50)
	s.Expansion = MinShapeMargin

	polys := PreviewContours(s)
	if len(polys) != 1 {
		t.Fatalf("got %d contours, want 1", len(polys))
	}
	lo := -float64(MinShapeMargin) - 1
	hi := 50 + float64(MinShapeMargin) + 1
	for _, p := range polys[0] {
		if p.X < lo || p.X > hi || p.Y < lo || p.Y > hi {
			t.Errorf("contour point %+v outside the expanded square", p)
		}
	}
}

func TestPreviewMalformedShape(t *testing.T) {
	if got := PreviewContours(Shape{Points: []Point{Pt(1, 1)}}); got != nil {
		t.Errorf("malformed shape produced %d contours", len(got))
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 512, 0},
		{511, 512, 0},
		{512, 512, 1},
		{-1, 512, -1},
		{-512, 512, -1},
		{-513, 512, -2},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
