package morph

import (
	"bytes"
	"testing"
)

// plane builds a w*h binary plane with foreground at the given points.
func plane(w, h int, fg ...[2]int) []uint8 {
	p := make([]uint8, w*h)
	for _, pt := range fg {
		p[pt[1]*w+pt[0]] = 1
	}
	return p
}

// count returns the number of foreground pixels.
func count(p []uint8) int {
	n := 0
	for _, v := range p {
		if v != 0 {
			n++
		}
	}
	return n
}

// subset reports whether every foreground pixel of a is foreground in b.
func subset(a, b []uint8) bool {
	for i, v := range a {
		if v != 0 && b[i] == 0 {
			return false
		}
	}
	return true
}

func TestDilateRadiusZeroIdentity(t *testing.T) {
	p := plane(7, 7, [2]int{3, 3}, [2]int{1, 5}, [2]int{6, 0})
	if got := Dilate(p, 7, 7, 0); !bytes.Equal(got, p) {
		t.Error("Dilate(p, 0) != p")
	}
	if got := Erode(p, 7, 7, 0); !bytes.Equal(got, p) {
		t.Error("Erode(p, 0) != p")
	}
}

func TestDilateSinglePixel(t *testing.T) {
	p := plane(9, 9, [2]int{4, 4})
	got := Dilate(p, 9, 9, 2)

	// The 4-connected chamfer grows a point into a Manhattan diamond:
	// foreground iff |dx|+|dy| <= radius.
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			d := abs(x-4) + abs(y-4)
			want := uint8(0)
			if d <= 2 {
				want = 1
			}
			if got[y*9+x] != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got[y*9+x], want)
			}
		}
	}
}

func TestDilateMonotonic(t *testing.T) {
	p := plane(16, 16, [2]int{4, 4}, [2]int{10, 3}, [2]int{8, 12}, [2]int{4, 5})
	prev := Dilate(p, 16, 16, 0)
	for r := 1; r <= 6; r++ {
		cur := Dilate(p, 16, 16, r)
		if !subset(prev, cur) {
			t.Fatalf("Dilate radius %d is not a superset of radius %d", r, r-1)
		}
		prev = cur
	}
}

func TestErodeMonotonic(t *testing.T) {
	// A 9x9 solid block centered in a 15x15 plane.
	p := make([]uint8, 15*15)
	for y := 3; y < 12; y++ {
		for x := 3; x < 12; x++ {
			p[y*15+x] = 1
		}
	}
	prev := Erode(p, 15, 15, 0)
	for r := 1; r <= 5; r++ {
		cur := Erode(p, 15, 15, r)
		if !subset(cur, prev) {
			t.Fatalf("Erode radius %d is not a subset of radius %d", r, r-1)
		}
		prev = cur
	}
	if count(prev) != 0 {
		t.Errorf("eroding a 9x9 block by 5 left %d pixels", count(prev))
	}
}

func TestErodeShrinksBlock(t *testing.T) {
	// 5x5 block eroded by 1 leaves its 3x3 core.
	p := make([]uint8, 9*9)
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			p[y*9+x] = 1
		}
	}
	got := Erode(p, 9, 9, 1)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			want := uint8(0)
			if x >= 3 && x < 6 && y >= 3 && y < 6 {
				want = 1
			}
			if got[y*9+x] != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got[y*9+x], want)
			}
		}
	}
}

func TestFeatherFieldDistances(t *testing.T) {
	// 3x3 block in a 5x5 plane: every border pixel of the block is one
	// step from background, the center two axis steps.
	p := make([]uint8, 5*5)
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			p[y*5+x] = 1
		}
	}
	d := FeatherField(p, 5, 5)

	if d[0] != 0 {
		t.Errorf("background distance = %v, want 0", d[0])
	}
	if got := d[1*5+1]; got != 1 {
		t.Errorf("edge pixel distance = %v, want 1", got)
	}
	if got := d[2*5+2]; got != 2 {
		t.Errorf("center distance = %v, want 2", got)
	}
}

func TestFeatherAlphaGradient(t *testing.T) {
	// A wide bar: alpha must ramp from the boundary inward and preserve
	// background transparency exactly.
	const w, h = 21, 11
	p := make([]uint8, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p[y*w+x] = 1
		}
	}
	a := FeatherAlpha(p, w, h, 4)

	if a[0] != 0 {
		t.Error("background gained alpha")
	}
	edge := a[5*w+1]
	mid := a[5*w+3]
	core := a[5*w+10]
	if edge == 0 || edge >= mid {
		t.Errorf("edge alpha %d not below mid alpha %d", edge, mid)
	}
	if core != 255 {
		t.Errorf("core alpha = %d, want 255", core)
	}
}

func TestFeatherAlphaSmallShapeReachesFullOpacity(t *testing.T) {
	// A shape thinner than the feather radius still reaches 255 at its
	// core because the divisor clamps to the max observed distance.
	const w, h = 9, 9
	p := make([]uint8, w*h)
	for y := 3; y < 6; y++ {
		for x := 3; x < 6; x++ {
			p[y*w+x] = 1
		}
	}
	a := FeatherAlpha(p, w, h, 50)
	if got := a[4*w+4]; got != 255 {
		t.Errorf("core alpha = %d, want 255", got)
	}
}

func TestFeatherAlphaZeroRadiusIsHard(t *testing.T) {
	p := plane(5, 5, [2]int{2, 2})
	a := FeatherAlpha(p, 5, 5, 0)
	for i, v := range p {
		want := uint8(0)
		if v != 0 {
			want = 255
		}
		if a[i] != want {
			t.Fatalf("pixel %d = %d, want %d", i, a[i], want)
		}
	}
}

func TestPlaneDimsMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched dimensions")
		}
	}()
	Dilate(make([]uint8, 10), 3, 4, 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
