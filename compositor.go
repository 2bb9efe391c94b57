package mask

import "image"

// Compositor derives the single contiguous "active" surface spanning the
// bounding box of all non-empty chunks. The active surface is what hosts
// read for rendering and alpha export; it is rebuilt, never drawn to
// directly.
type Compositor struct {
	store *ChunkStore

	active *Surface
	origin Point
	bounds ChunkBounds
	valid  bool
}

// NewCompositor creates a compositor over the given store with a minimal
// empty active surface at the origin.
func NewCompositor(store *ChunkStore) *Compositor {
	return &Compositor{
		store:  store,
		active: NewSurface(1, 1),
	}
}

// Active returns the current active surface and its world origin.
func (cp *Compositor) Active() (*Surface, Point) {
	return cp.active, cp.origin
}

// Bounds returns the chunk bounds the active surface currently covers.
// The second result is false while no non-empty chunk exists.
func (cp *Compositor) Bounds() (ChunkBounds, bool) {
	return cp.bounds, cp.valid
}

// Contains reports whether the given chunk rectangle lies entirely within
// the current active surface bounds.
func (cp *Compositor) Contains(b ChunkBounds) bool {
	return cp.valid && cp.bounds.Contains(b)
}

// RebuildFull recomputes the active surface from scratch: it sizes the
// surface to the bounding box of all non-empty chunks and blits each one in
// raster order. The result depends only on chunk contents, not draw order.
// With no non-empty chunks the active surface degenerates to 1x1 at origin.
func (cp *Compositor) RebuildFull() {
	b, ok := cp.store.NonEmptyBounds()
	if !ok {
		cp.active = NewSurface(1, 1)
		cp.origin = Point{}
		cp.valid = false
		return
	}
	size := cp.store.Size()
	w := (b.MaxX - b.MinX + 1) * size
	h := (b.MaxY - b.MinY + 1) * size
	if cp.active.Width() != w || cp.active.Height() != h {
		cp.active = NewSurface(w, h)
	} else {
		cp.active.Clear()
	}
	cp.bounds = b
	cp.valid = true
	cp.origin = Pt(float64(b.MinX*size), float64(b.MinY*size))

	for cy := b.MinY; cy <= b.MaxY; cy++ {
		for cx := b.MinX; cx <= b.MaxX; cx++ {
			cp.blitChunk(ChunkKey{X: cx, Y: cy})
		}
	}
}

// RebuildPartial re-blits only the chunks inside the given rectangle.
// Bounds must already cover the rectangle: the brush path routes
// out-of-bounds draws to RebuildFull before scheduling, so a rectangle
// exceeding current bounds is a caller contract violation. Rather than
// corrupt the active surface, the compositor falls back to a full rebuild
// in that case, as it does while bounds are unset.
func (cp *Compositor) RebuildPartial(b ChunkBounds) {
	if !cp.valid || !cp.bounds.Contains(b) {
		cp.RebuildFull()
		return
	}
	for cy := b.MinY; cy <= b.MaxY; cy++ {
		for cx := b.MinX; cx <= b.MaxX; cx++ {
			key := ChunkKey{X: cx, Y: cy}
			dx, dy := cp.chunkOffset(key)
			size := cp.store.Size()
			cp.active.ClearRect(image.Rect(dx, dy, dx+size, dy+size))
			cp.blitChunk(key)
		}
	}
}

// Invalidate drops the active surface back to the minimal empty state.
// Called after the store is cleared wholesale.
func (cp *Compositor) Invalidate() {
	cp.active = NewSurface(1, 1)
	cp.origin = Point{}
	cp.valid = false
}

func (cp *Compositor) chunkOffset(key ChunkKey) (int, int) {
	size := cp.store.Size()
	return (key.X - cp.bounds.MinX) * size, (key.Y - cp.bounds.MinY) * size
}

func (cp *Compositor) blitChunk(key ChunkKey) {
	c, ok := cp.store.Lookup(key)
	if !ok || c.Empty {
		return
	}
	dx, dy := cp.chunkOffset(key)
	cp.active.BlitFrom(c.Surface, dx, dy)
	c.Dirty = false
}
