package mask

import (
	"math"

	"github.com/layerforge/mask/contour"
	"github.com/layerforge/mask/morph"
)

// MinShapeMargin is the symmetric padding, in pixels, around a shape's
// bounding box when rasterizing it into a working plane. The margin must
// accommodate the largest possible expansion so morphology never clips at
// the buffer edge; it also provides the background border the contour
// tracer requires.
const MinShapeMargin = 300

// previewMaxPoints bounds the size of each simplified preview polyline.
const previewMaxPoints = 200

// Shape is a user-authored closed polygon with mask-generation parameters.
// The point slice is owned by the authoring UI and read-only here.
type Shape struct {
	// Points is the ordered closed polygon in world space. Fewer than 3
	// points makes the shape malformed; shape operations then no-op.
	Points []Point
	// Expansion grows (positive) or shrinks (negative) the filled shape by
	// the given number of pixels before any feathering.
	Expansion int
	// Feather is the width, in pixels, of the inward alpha falloff applied
	// after expansion. Zero disables feathering.
	Feather float64
}

// Valid reports whether the shape has enough points to enclose area.
func (s Shape) Valid() bool { return len(s.Points) >= 3 }

// shapePlane rasterizes the shape into a margin-padded binary plane and
// applies the expansion morphology. Feathering is not applied here: it is
// always the last step and only the paths that need it run it. The
// returned origin is the world position of the plane's (0, 0) pixel.
func shapePlane(s Shape) (plane []uint8, w, h int, origin Point, ok bool) {
	if !s.Valid() {
		Logger().Warn("shape has fewer than 3 points, ignoring", "points", len(s.Points))
		return nil, 0, 0, Point{}, false
	}

	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// The margin must exceed the expansion so the dilated silhouette keeps
	// a background border for the contour tracer.
	margin := MinShapeMargin
	if exp := abs(s.Expansion); exp >= margin {
		margin = exp + 1
	}
	ox := int(math.Floor(minX)) - margin
	oy := int(math.Floor(minY)) - margin
	w = int(math.Ceil(maxX)) - ox + margin + 1
	h = int(math.Ceil(maxY)) - oy + margin + 1
	origin = Pt(float64(ox), float64(oy))

	// Even-odd fill into a scratch surface, then threshold to binary.
	scratch := NewSurface(w, h)
	local := make([]Point, len(s.Points))
	for i, p := range s.Points {
		local[i] = Pt(p.X-float64(ox), p.Y-float64(oy))
	}
	scratch.FillPolygon(local, 255, CompositeOver)

	plane = make([]uint8, w*h)
	for i, v := range scratch.Data() {
		if v != 0 {
			plane[i] = 1
		}
	}

	switch {
	case s.Expansion > 0:
		plane = morph.Dilate(plane, w, h, s.Expansion)
	case s.Expansion < 0:
		plane = morph.Erode(plane, w, h, -s.Expansion)
	}
	return plane, w, h, origin, true
}

// applyShape composites the shape's mask content into the store and
// returns the touched chunk rectangle. Expansion runs first on the hard
// shape; feathering, when enabled, runs on the expanded result.
func applyShape(store *ChunkStore, s Shape) (ChunkBounds, bool) {
	plane, w, h, origin, ok := shapePlane(s)
	if !ok {
		return ChunkBounds{}, false
	}
	alpha := morph.FeatherAlpha(plane, w, h, s.Feather)
	return compositeShapePlane(store, alpha, w, h, origin, CompositeOver), true
}

// removeShape erases the shape from the store. It always uses the hard
// edged plane at the same expansion, even when the mask was applied with
// feathering: the feather gradient lies strictly inside the hard shape, so
// erasing the hard shape removes a feathered glow completely instead of
// leaving an alpha remnant.
func removeShape(store *ChunkStore, s Shape) (ChunkBounds, bool) {
	hard := s
	hard.Feather = 0
	plane, w, h, origin, ok := shapePlane(hard)
	if !ok {
		return ChunkBounds{}, false
	}
	alpha := morph.FeatherAlpha(plane, w, h, 0)
	return compositeShapePlane(store, alpha, w, h, origin, CompositeErase), true
}

// compositeShapePlane pastes a w*h alpha plane into every chunk it
// overlaps, creating chunks as needed, and re-derives emptiness of each
// touched chunk. The margin makes the plane much larger than the shape, so
// emptiness comes from content, not from the touched rectangle.
func compositeShapePlane(store *ChunkStore, alpha []uint8, w, h int, origin Point, mode CompositeMode) ChunkBounds {
	size := store.Size()
	ox, oy := int(math.Floor(origin.X)), int(math.Floor(origin.Y))
	touched := ChunkBounds{
		MinX: floorDiv(ox, size),
		MinY: floorDiv(oy, size),
		MaxX: floorDiv(ox+w-1, size),
		MaxY: floorDiv(oy+h-1, size),
	}
	for cy := touched.MinY; cy <= touched.MaxY; cy++ {
		for cx := touched.MinX; cx <= touched.MaxX; cx++ {
			c := store.Get(ChunkKey{X: cx, Y: cy})
			c.Surface.CompositePlane(alpha, w, h, ox-cx*size, oy-cy*size, mode)
			c.Dirty = true
			c.Empty = c.Surface.IsBlank()
		}
	}
	return touched
}

// PreviewContours returns the simplified boundary polylines, in world
// space, of the shape after expansion. Feather does not alter the hard
// boundary, so the preview outline is the expanded silhouette. The chunk
// store is never touched: scrubbing shape parameters stays non-destructive
// until an explicit apply.
func PreviewContours(s Shape) [][]Point {
	plane, w, h, origin, ok := shapePlane(s)
	if !ok {
		return nil
	}
	traced := contour.TraceAll(plane, w, h)
	out := make([][]Point, 0, len(traced))
	for _, c := range traced {
		c = contour.Simplify(c, previewMaxPoints)
		poly := make([]Point, len(c))
		for i, p := range c {
			poly[i] = Pt(float64(p.X)+origin.X, float64(p.Y)+origin.Y)
		}
		out = append(out, poly)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// floorDiv divides rounding toward negative infinity, matching the chunk
// key computation for negative world coordinates.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
