// Package mask implements a tile-based paint buffer for authoring
// layer masks over an unbounded world-coordinate canvas.
//
// # Overview
//
// The mask is stored sparsely as fixed-size chunks keyed by integer chunk
// coordinates, so painting at world (10000, 10000) allocates exactly one
// tile. A compositor derives a single contiguous "active" surface spanning
// every non-empty chunk; that surface is what hosts read for rendering and
// alpha export.
//
// # Quick Start
//
//	eng, err := mask.NewEngine()
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng.SetActive(true)
//	eng.SetBrushSize(48)
//	eng.StrokeTo(mask.Pt(100, 100))
//	eng.StrokeTo(mask.Pt(220, 140))
//	eng.EndStroke()
//
//	surface, origin := eng.GetMask()
//
// # Components
//
//   - Surface: single-channel 0-255 raster with soft-edge line strokes and
//     even-odd polygon fill.
//   - ChunkStore: sparse map of chunk coordinate to tile.
//   - Compositor: full and region-limited rebuilds of the active surface.
//   - Engine: brush strokes, shape apply/remove, snapshots, mask import.
//
// The morph and contour sub-packages hold the pure plane algorithms
// (distance-transform morphology, Moore-Neighbor boundary tracing) used by
// shape masking and preview.
//
// # Coordinate System
//
// World coordinates follow standard raster conventions: origin at top-left,
// X increases right, Y increases down. One world unit is one mask pixel.
//
// # Concurrency
//
// All mutating calls are expected on a single goroutine (the host's UI or
// render loop). The throttle timer only marks pending rebuilds due; the
// rebuild itself always runs on the calling goroutine, either via Pump
// (GetMask pumps on the caller's behalf) or via the synchronous flush in
// EndStroke and the shape operations.
package mask
