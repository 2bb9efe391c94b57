package mask

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Engine wires the chunk store, compositor, brush and rebuild scheduler
// into the mask subsystem a host embeds. All mutating methods are expected
// on a single goroutine (the host's UI/render loop); see the package
// documentation.
type Engine struct {
	store *ChunkStore
	comp  *Compositor
	brush *Brush
	sched *Scheduler

	active     bool
	erase      bool
	stroking   bool
	last       Point
	commitHook func()
}

// NewEngine creates a mask engine. Construction fails when the configured
// chunk size cannot back a drawable surface; there is no degraded mode
// without one.
func NewEngine(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.chunkSize <= 0 {
		return nil, fmt.Errorf("mask: invalid chunk size %d", o.chunkSize)
	}
	if o.interval < 0 {
		return nil, fmt.Errorf("mask: negative throttle interval %v", o.interval)
	}

	store := NewChunkStore(o.chunkSize)
	comp := NewCompositor(store)
	e := &Engine{
		store:      store,
		comp:       comp,
		brush:      NewBrush(),
		commitHook: o.commitHook,
	}
	e.sched = NewScheduler(o.clock, o.interval, comp.RebuildPartial)
	return e, nil
}

// SetActive toggles whether pointer input is routed into the engine.
// Stroke calls on an inactive engine no-op.
func (e *Engine) SetActive(active bool) { e.active = active }

// Active reports whether pointer input is routed into the engine.
func (e *Engine) Active() bool { return e.active }

// SetEraseMode switches subsequent strokes between painting and erasing.
func (e *Engine) SetEraseMode(erase bool) { e.erase = erase }

// EraseMode reports whether strokes erase.
func (e *Engine) EraseMode() bool { return e.erase }

// Brush returns the engine's brush state.
func (e *Engine) Brush() *Brush { return e.brush }

// SetBrushSize sets the brush diameter in pixels, clamped to >= 1.
func (e *Engine) SetBrushSize(size float64) { e.brush.SetSize(size) }

// SetBrushStrength sets the brush opacity, clamped to [0, 1].
func (e *Engine) SetBrushStrength(strength float64) { e.brush.SetStrength(strength) }

// SetBrushHardness sets the brush falloff hardness, clamped to [0, 1].
func (e *Engine) SetBrushHardness(hardness float64) { e.brush.SetHardness(hardness) }

// Store returns the underlying chunk store.
func (e *Engine) Store() *ChunkStore { return e.store }

// Compositor returns the engine's compositor.
func (e *Engine) Compositor() *Compositor { return e.comp }

// GetMask returns the composited mask surface and its world origin, for
// rendering and downstream alpha export. Any due partial rebuild runs
// first, so readers never observe stale content. The surface is the
// engine's live buffer; callers that keep it across mutations should
// Clone it.
func (e *Engine) GetMask() (*Surface, Point) {
	e.sched.Pump()
	return e.comp.Active()
}

// Pump runs any due partial rebuild on the calling goroutine. The timer
// only marks throttled rebuilds due; hosts call Pump once per frame (or
// rely on GetMask, which pumps on their behalf) to drain them.
func (e *Engine) Pump() {
	e.sched.Pump()
}

// StrokeTo continues the current stroke to the given world point, starting
// a new stroke when none is in progress. The first point of a stroke
// stamps a dot of brush diameter (the segment degenerates to a point).
func (e *Engine) StrokeTo(p Point) {
	if !e.active {
		return
	}
	e.sched.Pump()
	prev := p
	if e.stroking {
		prev = e.last
	}
	e.stroking = true
	e.last = p
	e.strokeSegment(prev, p)
}

// EndStroke finishes the current stroke: it flushes any pending partial
// rebuild so exports observe current content, then notifies the commit
// hook. Pointer-up is the undo-snapshot boundary.
func (e *Engine) EndStroke() {
	if !e.stroking {
		return
	}
	e.stroking = false
	e.sched.Flush()
	e.commit()
}

// strokeSegment draws one segment and routes recomposition: territory
// outside current active-surface bounds must be visible without delay, so
// it triggers an immediate full rebuild; in-bounds strokes coalesce into a
// throttled partial rebuild.
func (e *Engine) strokeSegment(prev, curr Point) {
	mode := CompositeOver
	if e.erase {
		mode = CompositeErase
	}
	touched := strokeChunks(e.store, prev, curr, e.brush, mode)

	if !e.comp.Contains(touched) {
		e.sched.Cancel()
		e.comp.RebuildFull()
		return
	}
	Logger().Debug("partial rebuild scheduled",
		"minX", touched.MinX, "minY", touched.MinY,
		"maxX", touched.MaxX, "maxY", touched.MaxY)
	e.sched.Schedule(touched)
}

// ApplyShape commits the shape's mask content to the store, feathered per
// the shape's parameters, and recomposites synchronously. It reports
// whether the shape was applied; malformed shapes no-op.
func (e *Engine) ApplyShape(s Shape) bool {
	touched, ok := applyShape(e.store, s)
	if !ok {
		return false
	}
	e.recompose(touched)
	e.commit()
	return true
}

// RemoveShape erases the shape's mask content from the store using the
// hard-edged plane at the same expansion, regardless of any feather used
// during apply. It reports whether the shape was removed.
func (e *Engine) RemoveShape(s Shape) bool {
	touched, ok := removeShape(e.store, s)
	if !ok {
		return false
	}
	e.recompose(touched)
	e.commit()
	return true
}

// SetMask replaces the entire mask with externally produced content placed
// at the given world position. The compositor is invalidated along with the
// store: a replacement landing inside the old bounds must still shrink the
// active surface and drop every pixel of the old mask.
func (e *Engine) SetMask(img image.Image, at Point) {
	e.store.Clear()
	e.sched.Cancel()
	e.comp.Invalidate()
	e.AddMask(img, at)
}

// AddMask additively merges externally produced mask content (for example
// a segmentation result) into the store at the given world position.
// Grayscale images contribute luma, other images their alpha channel.
func (e *Engine) AddMask(img image.Image, at Point) {
	src := NewSurfaceFromImage(img)
	touched := compositeShapePlane(e.store, src.Data(), src.Width(), src.Height(), at, CompositeOver)
	e.recompose(touched)
}

// SetMaskScaled replaces the mask with img resampled to cover the given
// world rectangle.
func (e *Engine) SetMaskScaled(img image.Image, to image.Rectangle) {
	scaled := image.NewGray(image.Rect(0, 0, to.Dx(), to.Dy()))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	e.SetMask(scaled, Pt(float64(to.Min.X), float64(to.Min.Y)))
}

// Clear erases every chunk and collapses the active surface to its minimal
// empty state.
func (e *Engine) Clear() {
	e.store.Clear()
	e.sched.Cancel()
	e.comp.Invalidate()
}

// recompose applies an explicit (non-throttled) rebuild for a committed
// operation: full when the touched rectangle exceeds current bounds, and
// one partial covering any pending stroke territory plus the touched
// rectangle otherwise.
func (e *Engine) recompose(touched ChunkBounds) {
	if !e.comp.Contains(touched) {
		e.sched.Cancel()
		e.comp.RebuildFull()
		return
	}
	e.sched.Schedule(touched)
	e.sched.Flush()
}

func (e *Engine) commit() {
	if e.commitHook != nil {
		e.commitHook()
	}
}
