package mask

import (
	"image"
	"math"
)

// CompositeMode selects how new alpha combines with existing surface
// content. It is always an explicit parameter to draw operations; there is
// no ambient paint/erase toggle.
type CompositeMode int

const (
	// CompositeOver blends new alpha over existing content using standard
	// alpha compositing (not additive saturation).
	CompositeOver CompositeMode = iota
	// CompositeErase removes alpha proportionally to the new coverage.
	CompositeErase
)

// Surface is a rectangular single-channel intensity buffer.
// Values range from 0 (fully transparent) to 255 (fully masked).
type Surface struct {
	width  int
	height int
	data   []uint8
}

// NewSurface creates a new surface with the given dimensions.
// All values are initialized to 0.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewSurfaceFromImage creates a surface from an image. Grayscale images
// contribute their luma channel; all other images contribute their alpha
// channel, which matches how externally produced masks arrive (opaque
// grayscale PNGs or cut-out RGBA).
func NewSurfaceFromImage(img image.Image) *Surface {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	s := NewSurface(w, h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			copy(s.data[y*w:(y+1)*w], row)
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				_, _, _, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				// a is 0-65535, shift by 8 to get 0-255
				// #nosec G115 -- safe: a>>8 is always in range [0, 255]
				s.data[y*w+x] = uint8(a >> 8)
			}
		}
	}
	return s
}

// Bounds returns the surface dimensions as an image.Rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// Width returns the surface width.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height.
func (s *Surface) Height() int { return s.height }

// At returns the intensity at (x, y).
// Returns 0 for coordinates outside the surface bounds.
func (s *Surface) At(x, y int) uint8 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0
	}
	return s.data[y*s.width+x]
}

// Set sets the intensity at (x, y).
// Coordinates outside the surface bounds are ignored.
func (s *Surface) Set(x, y int, value uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.data[y*s.width+x] = value
}

// Clear sets every value to 0.
func (s *Surface) Clear() {
	for i := range s.data {
		s.data[i] = 0
	}
}

// ClearRect sets every value inside the given rectangle to 0.
// The rectangle is clipped to the surface bounds.
func (s *Surface) ClearRect(r image.Rectangle) {
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.data[y*s.width+r.Min.X : y*s.width+r.Max.X]
		for i := range row {
			row[i] = 0
		}
	}
}

// Clone creates a copy of the surface.
func (s *Surface) Clone() *Surface {
	clone := NewSurface(s.width, s.height)
	copy(clone.data, s.data)
	return clone
}

// Data returns the underlying intensity slice.
// This is useful for advanced operations and zero-copy export.
func (s *Surface) Data() []uint8 {
	return s.data
}

// IsBlank reports whether every value is 0.
func (s *Surface) IsBlank() bool {
	for _, v := range s.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// ToGray converts the surface to an 8-bit grayscale image.
func (s *Surface) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.width, s.height))
	if img.Stride == s.width {
		copy(img.Pix, s.data)
		return img
	}
	for y := 0; y < s.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+s.width], s.data[y*s.width:(y+1)*s.width])
	}
	return img
}

// composite combines existing intensity with incoming alpha.
func composite(old, a uint8, mode CompositeMode) uint8 {
	switch mode {
	case CompositeErase:
		return uint8((uint32(old) * (255 - uint32(a))) / 255)
	default:
		// Standard over: a + old*(1-a).
		return uint8(uint32(a) + uint32(old)*(255-uint32(a))/255)
	}
}

// CompositePixel combines the incoming alpha with the value at (x, y).
// Coordinates outside the surface bounds are ignored.
func (s *Surface) CompositePixel(x, y int, a uint8, mode CompositeMode) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height || a == 0 {
		return
	}
	i := y*s.width + x
	s.data[i] = composite(s.data[i], a, mode)
}

// BlitFrom copies src onto the surface at (dx, dy), replacing existing
// content. The source is clipped to the destination bounds.
func (s *Surface) BlitFrom(src *Surface, dx, dy int) {
	r := image.Rect(dx, dy, dx+src.width, dy+src.height).Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sy := y - dy
		copy(
			s.data[y*s.width+r.Min.X:y*s.width+r.Max.X],
			src.data[sy*src.width+(r.Min.X-dx):sy*src.width+(r.Max.X-dx)],
		)
	}
}

// CompositePlane combines a w*h alpha plane into the surface at (dx, dy)
// using the given composite mode. The plane is clipped to the surface.
func (s *Surface) CompositePlane(plane []uint8, w, h, dx, dy int, mode CompositeMode) {
	assertPlane(len(plane), w, h)
	r := image.Rect(dx, dy, dx+w, dy+h).Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := y - dy
		for x := r.Min.X; x < r.Max.X; x++ {
			a := plane[py*w+(x-dx)]
			if a == 0 {
				continue
			}
			i := y*s.width + x
			s.data[i] = composite(s.data[i], a, mode)
		}
	}
}

// StrokeLine draws a line segment from (x0, y0) to (x1, y1) with a soft
// circular cross-section of the given radius. The cross-section is full
// strength out to radius*hardness and fades linearly to zero at radius, so
// hardness 1 produces a flat opaque stroke and hardness 0 a fully soft one.
// Caps and joins are rounded as a consequence of the capsule distance
// field. A degenerate segment (x0,y0) == (x1,y1) stamps a dot.
func (s *Surface) StrokeLine(x0, y0, x1, y1, radius, strength, hardness float64, mode CompositeMode) {
	if radius <= 0 || strength <= 0 {
		return
	}
	inner := radius * hardness

	minX := int(math.Floor(math.Min(x0, x1) - radius))
	minY := int(math.Floor(math.Min(y0, y1) - radius))
	maxX := int(math.Ceil(math.Max(x0, x1) + radius))
	maxY := int(math.Ceil(math.Max(y0, y1) + radius))
	r := image.Rect(minX, minY, maxX+1, maxY+1).Intersect(s.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := r.Min.X; x < r.Max.X; x++ {
			px := float64(x) + 0.5
			d := segmentDistance(px, py, x0, y0, x1, y1)
			if d >= radius {
				continue
			}
			f := 1.0
			if d > inner {
				f = (radius - d) / (radius - inner)
			}
			a := uint8(math.Round(strength * f * 255))
			if a == 0 {
				continue
			}
			i := y*s.width + x
			s.data[i] = composite(s.data[i], a, mode)
		}
	}
}

// segmentDistance returns the Euclidean distance from (px, py) to the
// segment (x0, y0)-(x1, y1).
func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x0, py-y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}

// FillPolygon fills a closed polygon, given in surface-local coordinates,
// using the even-odd rule so self-intersecting and nested rings produce
// holes. Each covered pixel receives value through the composite mode.
// Polygons with fewer than 3 points are ignored.
func (s *Surface) FillPolygon(pts []Point, value uint8, mode CompositeMode) {
	if len(pts) < 3 || value == 0 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > s.height {
		y1 = s.height
	}

	xs := make([]float64, 0, 8)
	for y := y0; y < y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		j := len(pts) - 1
		for i := 0; i < len(pts); i++ {
			a, b := pts[j], pts[i]
			j = i
			// Half-open rule: count edges crossing the scanline once.
			if (a.Y <= sy) == (b.Y <= sy) {
				continue
			}
			t := (sy - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
		if len(xs) < 2 {
			continue
		}
		sortFloats(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			xa := int(math.Ceil(xs[k] - 0.5))
			xb := int(math.Floor(xs[k+1] - 0.5))
			if xa < 0 {
				xa = 0
			}
			if xb >= s.width {
				xb = s.width - 1
			}
			for x := xa; x <= xb; x++ {
				i := y*s.width + x
				s.data[i] = composite(s.data[i], value, mode)
			}
		}
	}
}

// sortFloats insertion-sorts the span intersections. Polygons cross a
// scanline a handful of times, so this beats sort.Float64s here.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}

// assertPlane panics when a plane's length disagrees with its claimed
// dimensions. Mismatches are programming errors, not user input.
func assertPlane(n, w, h int) {
	if n != w*h {
		panic("mask: plane length does not match width*height")
	}
}
