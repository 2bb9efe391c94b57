package mask

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// PreviewRenderer strokes contour polylines into a transient RGBA overlay
// for shape preview. The overlay is screen-pinned: callers position it over
// the canvas themselves and discard it on the next parameter change. It
// never reads or writes the chunk store.
type PreviewRenderer struct {
	img    *image.RGBA
	dasher *rasterx.Dasher
}

// NewPreviewRenderer creates a renderer with an overlay of the given size
// and stroke style. Line caps and joins are rounded to match the brush.
func NewPreviewRenderer(width, height int, strokeWidth float64, col color.Color) *PreviewRenderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	dasher.SetStroke(
		fixed.Int26_6(strokeWidth*64), 0,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap,
		rasterx.ArcClip, nil, 0,
	)
	dasher.SetColor(col)
	return &PreviewRenderer{img: img, dasher: dasher}
}

// Overlay returns the rendered overlay image.
func (r *PreviewRenderer) Overlay() *image.RGBA {
	return r.img
}

// Clear resets the overlay to fully transparent.
func (r *PreviewRenderer) Clear() {
	for i := range r.img.Pix {
		r.img.Pix[i] = 0
	}
}

// Draw strokes the given world-space polylines onto the overlay. The
// offset is subtracted from every point, translating world coordinates to
// overlay coordinates. Each polyline is closed back to its first point.
func (r *PreviewRenderer) Draw(polylines [][]Point, offset Point) {
	for _, poly := range polylines {
		if len(poly) < 2 {
			continue
		}
		r.dasher.Start(fixedPoint(poly[0].Sub(offset)))
		for _, p := range poly[1:] {
			r.dasher.Line(fixedPoint(p.Sub(offset)))
		}
		r.dasher.Stop(true)
	}
	r.dasher.Draw()
	r.dasher.Clear()
}

func fixedPoint(p Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X, p.Y)
}
