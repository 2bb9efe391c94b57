package mask

import "math"

// DefaultChunkSize is the side length, in pixels, of a chunk tile.
const DefaultChunkSize = 512

// ChunkKey addresses a chunk by integer chunk coordinates.
type ChunkKey struct {
	X, Y int
}

// Chunk is a fixed-size square tile of the sparse mask raster.
// Chunks are owned exclusively by their ChunkStore and created lazily.
type Chunk struct {
	Key     ChunkKey
	Surface *Surface

	// Empty is true while no pixel of the chunk has nonzero intensity.
	Empty bool
	// Dirty is true when content changed since the last composite.
	Dirty bool
}

// OriginX returns the world X coordinate of the chunk's top-left corner.
func (c *Chunk) OriginX(size int) int { return c.Key.X * size }

// OriginY returns the world Y coordinate of the chunk's top-left corner.
func (c *Chunk) OriginY(size int) int { return c.Key.Y * size }

// ChunkBounds is an inclusive rectangle in chunk coordinates.
type ChunkBounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Union returns the smallest bounds containing both b and o.
func (b ChunkBounds) Union(o ChunkBounds) ChunkBounds {
	return ChunkBounds{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Contains reports whether o lies entirely within b.
func (b ChunkBounds) Contains(o ChunkBounds) bool {
	return o.MinX >= b.MinX && o.MinY >= b.MinY && o.MaxX <= b.MaxX && o.MaxY <= b.MaxY
}

// ChunkStore is a sparse mapping from chunk coordinates to chunks.
// At most one chunk exists per key; chunks live until Clear.
type ChunkStore struct {
	size   int
	chunks map[ChunkKey]*Chunk
}

// NewChunkStore creates an empty store with the given chunk side length.
func NewChunkStore(size int) *ChunkStore {
	return &ChunkStore{
		size:   size,
		chunks: make(map[ChunkKey]*Chunk),
	}
}

// Size returns the chunk side length in pixels.
func (cs *ChunkStore) Size() int { return cs.size }

// KeyAt returns the chunk key containing the given world position.
func (cs *ChunkStore) KeyAt(worldX, worldY float64) ChunkKey {
	return ChunkKey{
		X: int(math.Floor(worldX / float64(cs.size))),
		Y: int(math.Floor(worldY / float64(cs.size))),
	}
}

// At returns the chunk containing the given world position, creating and
// inserting an empty chunk if absent. It never fails.
func (cs *ChunkStore) At(worldX, worldY float64) *Chunk {
	return cs.Get(cs.KeyAt(worldX, worldY))
}

// Get returns the chunk for a key, creating it if absent.
func (cs *ChunkStore) Get(key ChunkKey) *Chunk {
	if c, ok := cs.chunks[key]; ok {
		return c
	}
	c := &Chunk{
		Key:     key,
		Surface: NewSurface(cs.size, cs.size),
		Empty:   true,
	}
	cs.chunks[key] = c
	Logger().Debug("chunk allocated", "x", key.X, "y", key.Y)
	return c
}

// Lookup returns the chunk for a key without creating it.
func (cs *ChunkStore) Lookup(key ChunkKey) (*Chunk, bool) {
	c, ok := cs.chunks[key]
	return c, ok
}

// Len returns the number of allocated chunks.
func (cs *ChunkStore) Len() int { return len(cs.chunks) }

// NonEmptyBounds returns the inclusive chunk-coordinate bounding box of all
// non-empty chunks. The second result is false when every chunk is empty.
func (cs *ChunkStore) NonEmptyBounds() (ChunkBounds, bool) {
	var b ChunkBounds
	found := false
	for key, c := range cs.chunks {
		if c.Empty {
			continue
		}
		kb := ChunkBounds{MinX: key.X, MinY: key.Y, MaxX: key.X, MaxY: key.Y}
		if !found {
			b = kb
			found = true
			continue
		}
		b = b.Union(kb)
	}
	return b, found
}

// Clear removes every chunk.
func (cs *ChunkStore) Clear() {
	cs.chunks = make(map[ChunkKey]*Chunk)
}

// RefreshEmpty re-derives the Empty flag of the chunk at key from its
// surface content. Called after erase operations, which can return a chunk
// to the fully-transparent state.
func (cs *ChunkStore) RefreshEmpty(key ChunkKey) {
	c, ok := cs.chunks[key]
	if !ok {
		return
	}
	c.Empty = c.Surface.IsBlank()
}
