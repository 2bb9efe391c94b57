package mask

import "math"

// Default brush parameters.
const (
	DefaultBrushSize     = 20.0
	DefaultBrushStrength = 1.0
	DefaultBrushHardness = 0.5
)

// Brush holds the stroke synthesis parameters. The setters clamp their
// inputs, so internal state is always valid and strokes never have to
// re-validate.
type Brush struct {
	size     float64 // pixel diameter, >= 1
	strength float64 // opacity multiplier, 0-1
	hardness float64 // 0 = fully soft falloff, 1 = flat opaque
}

// NewBrush creates a brush with the default parameters.
func NewBrush() *Brush {
	return &Brush{
		size:     DefaultBrushSize,
		strength: DefaultBrushStrength,
		hardness: DefaultBrushHardness,
	}
}

// SetSize sets the brush diameter in pixels, clamped to >= 1.
func (b *Brush) SetSize(size float64) {
	b.size = math.Max(1, size)
}

// SetStrength sets the opacity multiplier, clamped to [0, 1].
func (b *Brush) SetStrength(strength float64) {
	b.strength = clamp01(strength)
}

// SetHardness sets the falloff hardness, clamped to [0, 1].
func (b *Brush) SetHardness(hardness float64) {
	b.hardness = clamp01(hardness)
}

// Size returns the brush diameter in pixels.
func (b *Brush) Size() float64 { return b.size }

// Strength returns the opacity multiplier.
func (b *Brush) Strength() float64 { return b.strength }

// Hardness returns the falloff hardness.
func (b *Brush) Hardness() float64 { return b.hardness }

// Radius returns half the brush diameter.
func (b *Brush) Radius() float64 { return b.size / 2 }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// strokeChunks draws the world-space segment prev-curr into every chunk the
// radius-expanded segment rectangle touches, creating chunks as needed, and
// returns the touched chunk rectangle. A zero-length segment stamps a dot
// of brush diameter. Over strokes mark chunks non-empty; erase strokes
// re-derive emptiness, since they can blank a chunk out.
func strokeChunks(store *ChunkStore, prev, curr Point, b *Brush, mode CompositeMode) ChunkBounds {
	r := b.Radius()
	size := float64(store.Size())

	minX := math.Min(prev.X, curr.X) - r
	minY := math.Min(prev.Y, curr.Y) - r
	maxX := math.Max(prev.X, curr.X) + r
	maxY := math.Max(prev.Y, curr.Y) + r

	touched := ChunkBounds{
		MinX: int(math.Floor(minX / size)),
		MinY: int(math.Floor(minY / size)),
		MaxX: int(math.Floor(maxX / size)),
		MaxY: int(math.Floor(maxY / size)),
	}

	for cy := touched.MinY; cy <= touched.MaxY; cy++ {
		for cx := touched.MinX; cx <= touched.MaxX; cx++ {
			c := store.Get(ChunkKey{X: cx, Y: cy})
			ox := float64(c.OriginX(store.Size()))
			oy := float64(c.OriginY(store.Size()))
			c.Surface.StrokeLine(
				prev.X-ox, prev.Y-oy,
				curr.X-ox, curr.Y-oy,
				r, b.strength, b.hardness, mode,
			)
			c.Dirty = true
			if mode == CompositeErase {
				store.RefreshEmpty(c.Key)
			} else {
				c.Empty = false
			}
		}
	}
	return touched
}
