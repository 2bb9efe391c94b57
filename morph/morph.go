// Package morph provides binary morphology and feathering over rectangular
// planes, implemented with two-pass distance transforms.
//
// Planes are flat slices of length width*height in row-major order. Binary
// planes hold 0 (background) or 1 (foreground). All functions are pure:
// they never modify their input and share no state.
package morph

import "math"

// sentinel is an effectively-infinite chamfer distance. It sits well below
// the int32 ceiling so that sentinel+1 in the propagation passes cannot
// overflow.
const sentinel = math.MaxInt32 / 2

// Dilate grows the foreground by radius pixels using a two-pass 4-connected
// chamfer distance transform. The result is a Manhattan-like approximation
// of Euclidean dilation, chosen for speed. Radius must be >= 0; radius 0
// returns an identical copy.
func Dilate(plane []uint8, width, height, radius int) []uint8 {
	assertPlane(len(plane), width, height)
	dist := make([]int32, len(plane))
	for i, v := range plane {
		if v != 0 {
			dist[i] = 0
		} else {
			dist[i] = sentinel
		}
	}
	chamfer(dist, width, height)

	out := make([]uint8, len(plane))
	r := int32(radius)
	for i, d := range dist {
		if d <= r {
			out[i] = 1
		}
	}
	return out
}

// Erode shrinks the foreground by radius pixels. It is the chamfer
// transform of Dilate with the roles inverted: distances grow from the
// background, and a pixel survives only when its distance to the nearest
// background pixel exceeds the radius. Radius 0 returns an identical copy.
func Erode(plane []uint8, width, height, radius int) []uint8 {
	assertPlane(len(plane), width, height)
	dist := make([]int32, len(plane))
	for i, v := range plane {
		if v == 0 {
			dist[i] = 0
		} else {
			dist[i] = sentinel
		}
	}
	chamfer(dist, width, height)

	out := make([]uint8, len(plane))
	r := int32(radius)
	for i, d := range dist {
		if d > r {
			out[i] = 1
		}
	}
	return out
}

// chamfer runs the forward and backward passes of the 4-connected chamfer
// distance transform in place. Cells outside the plane are treated as
// unreachable.
func chamfer(dist []int32, width, height int) {
	// Forward: top-left to bottom-right, propagating from left and up.
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			i := row + x
			d := dist[i]
			if x > 0 && dist[i-1]+1 < d {
				d = dist[i-1] + 1
			}
			if y > 0 && dist[i-width]+1 < d {
				d = dist[i-width] + 1
			}
			dist[i] = d
		}
	}
	// Backward: bottom-right to top-left, propagating from right and down.
	for y := height - 1; y >= 0; y-- {
		row := y * width
		for x := width - 1; x >= 0; x-- {
			i := row + x
			d := dist[i]
			if x < width-1 && dist[i+1]+1 < d {
				d = dist[i+1] + 1
			}
			if y < height-1 && dist[i+width]+1 < d {
				d = dist[i+width] + 1
			}
			dist[i] = d
		}
	}
}

// FeatherField computes, for every foreground pixel, an approximate
// Euclidean distance to the nearest background pixel; background pixels are
// 0. It uses an 8-connected two-pass transform with sqrt(2)-weighted
// diagonal steps, which is accurate enough to drive a feather gradient.
func FeatherField(plane []uint8, width, height int) []float64 {
	assertPlane(len(plane), width, height)
	const diag = math.Sqrt2
	dist := make([]float64, len(plane))
	for i, v := range plane {
		if v != 0 {
			dist[i] = math.Inf(1)
		}
	}

	// Forward: left, up and the two upper diagonals.
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			i := row + x
			d := dist[i]
			if d == 0 {
				continue
			}
			if x > 0 && dist[i-1]+1 < d {
				d = dist[i-1] + 1
			}
			if y > 0 {
				if dist[i-width]+1 < d {
					d = dist[i-width] + 1
				}
				if x > 0 && dist[i-width-1]+diag < d {
					d = dist[i-width-1] + diag
				}
				if x < width-1 && dist[i-width+1]+diag < d {
					d = dist[i-width+1] + diag
				}
			}
			dist[i] = d
		}
	}
	// Backward: right, down and the two lower diagonals.
	for y := height - 1; y >= 0; y-- {
		row := y * width
		for x := width - 1; x >= 0; x-- {
			i := row + x
			d := dist[i]
			if d == 0 {
				continue
			}
			if x < width-1 && dist[i+1]+1 < d {
				d = dist[i+1] + 1
			}
			if y < height-1 {
				if dist[i+width]+1 < d {
					d = dist[i+width] + 1
				}
				if x < width-1 && dist[i+width+1]+diag < d {
					d = dist[i+width+1] + diag
				}
				if x > 0 && dist[i+width-1]+diag < d {
					d = dist[i+width-1] + diag
				}
			}
			dist[i] = d
		}
	}
	return dist
}

// FeatherAlpha converts a binary plane into an 8-bit alpha plane with a
// soft inward-fading edge. The gradient ramps from 0 at the boundary to
// full opacity over featherRadius pixels, clamped to the largest observed
// interior distance so small shapes still reach full opacity at their
// core. Background pixels stay 0: the falloff fades inward, never blurs
// outward. A non-positive radius returns the hard plane at full opacity.
func FeatherAlpha(plane []uint8, width, height int, featherRadius float64) []uint8 {
	assertPlane(len(plane), width, height)
	out := make([]uint8, len(plane))
	if featherRadius <= 0 {
		for i, v := range plane {
			if v != 0 {
				out[i] = 255
			}
		}
		return out
	}

	dist := FeatherField(plane, width, height)
	maxDist := 0.0
	for i, v := range plane {
		if v != 0 && dist[i] > maxDist {
			maxDist = dist[i]
		}
	}
	limit := math.Min(featherRadius, maxDist)
	if limit <= 0 {
		return out
	}
	for i, v := range plane {
		if v == 0 {
			continue
		}
		d := dist[i]
		if d >= limit {
			out[i] = 255
			continue
		}
		out[i] = uint8(math.Round(255 * d / limit))
	}
	return out
}

// assertPlane panics when a plane's length disagrees with its claimed
// dimensions. Mismatches are programming errors, not user input.
func assertPlane(n, w, h int) {
	if n != w*h {
		panic("morph: plane length does not match width*height")
	}
}
