// Package contour extracts ordered boundary polylines from binary planes
// using Moore-Neighbor tracing. Both outer silhouettes and interior holes
// are discovered: each walk anchors at an edge-adjacent background
// neighbor of its start pixel, and the scan starts a new walk for every
// boundary not yet covered.
//
// Planes are flat slices of length width*height in row-major order holding
// 0 (background) or 1 (foreground). Input planes must be background
// bordered: no foreground pixel may touch the plane edge. Callers pad
// their working buffer accordingly; the shape pipeline's margin already
// guarantees this.
package contour

// Point is a pixel coordinate on the traced plane.
type Point struct {
	X, Y int
}

// mooreOffsets walks the 8-connected neighborhood clockwise starting at
// the left neighbor.
var mooreOffsets = [8]Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// TraceAll scans the plane row-major and returns one closed polyline per
// discovered boundary, pixels in walk order. A walk starts at each
// unvisited foreground pixel that has an edge-adjacent background
// neighbor; pixels touching background only diagonally are corner-cut by
// the walk and never seed a contour of their own.
func TraceAll(plane []uint8, width, height int) [][]Point {
	assertPlane(len(plane), width, height)
	visited := make([]bool, len(plane))
	var contours [][]Point

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if plane[i] == 0 || visited[i] {
				continue
			}
			if backgroundDir(plane, width, x, y) < 0 {
				continue
			}
			contours = append(contours, trace(plane, visited, width, Point{X: x, Y: y}))
		}
	}
	return contours
}

// backgroundDir returns the offset index of an edge-adjacent (4-connected)
// background neighbor of the foreground pixel at (x, y), or -1. The walk
// anchors its first search just clockwise of this neighbor, which pins it
// to the boundary that made the pixel traceable. The background border
// guaranteed by the caller makes the neighbor reads safe.
func backgroundDir(plane []uint8, width, x, y int) int {
	for d := 0; d < 8; d += 2 {
		o := mooreOffsets[d]
		if plane[(y+o.Y)*width+(x+o.X)] == 0 {
			return d
		}
	}
	return -1
}

// trace walks one contour with Moore-Neighbor tracing. After each step the
// search resumes six positions past the direction that succeeded, which is
// the neighbor just clockwise of the backtrack. The walk may legitimately
// revisit pixels (out-and-back along one-pixel spurs) and ends on the step
// that would re-enter the start pixel.
func trace(plane []uint8, visited []bool, width int, start Point) []Point {
	contour := []Point{start}
	visited[start.Y*width+start.X] = true

	cur := start
	dir := (backgroundDir(plane, width, start.X, start.Y) + 1) % 8
	for {
		found := -1
		var next Point
		for step := 0; step < 8; step++ {
			d := (dir + step) % 8
			o := mooreOffsets[d]
			n := Point{X: cur.X + o.X, Y: cur.Y + o.Y}
			if plane[n.Y*width+n.X] != 0 {
				found = d
				next = n
				break
			}
		}
		if found < 0 || next == start {
			// Isolated pixel, or the walk closed.
			return contour
		}
		contour = append(contour, next)
		visited[next.Y*width+next.X] = true
		cur = next
		dir = (found + 6) % 8
	}
}

// Simplify reduces a polyline to at most maxPoints points by uniform
// subsampling: it keeps every stride-th point with stride
// max(1, len/maxPoints). The result is deterministic and size-bounded but
// not shape-adaptive, which is acceptable for preview overlays.
// Polylines of 2 points or fewer are returned unchanged.
func Simplify(poly []Point, maxPoints int) []Point {
	if len(poly) <= 2 || maxPoints < 1 {
		return poly
	}
	stride := len(poly) / maxPoints
	if stride < 1 {
		stride = 1
	}
	out := make([]Point, 0, len(poly)/stride+1)
	for i := 0; i < len(poly); i += stride {
		out = append(out, poly[i])
	}
	return out
}

func assertPlane(n, w, h int) {
	if n != w*h {
		panic("contour: plane length does not match width*height")
	}
}
