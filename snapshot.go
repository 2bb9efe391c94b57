package mask

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// MaskSnapshot is a serialized capture of the composited mask: grayscale
// PNG bytes plus the world origin of the captured surface. History
// managers store snapshots as opaque values and hand them back to Restore.
type MaskSnapshot struct {
	PNG    []byte
	Origin Point
}

// Image decodes the snapshot's pixel content.
func (s *MaskSnapshot) Image() (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(s.PNG))
	if err != nil {
		return nil, fmt.Errorf("mask: decoding snapshot: %w", err)
	}
	return img, nil
}

// Snapshot captures the current active surface as a snapshot. Callers
// typically invoke it from the commit hook, at pointer-up or shape
// apply/remove boundaries.
func (e *Engine) Snapshot() (*MaskSnapshot, error) {
	surface, origin := e.comp.Active()
	var buf bytes.Buffer
	if err := png.Encode(&buf, surface.ToGray()); err != nil {
		return nil, fmt.Errorf("mask: encoding snapshot: %w", err)
	}
	Logger().Debug("snapshot captured",
		"width", surface.Width(), "height", surface.Height(), "bytes", buf.Len())
	return &MaskSnapshot{PNG: buf.Bytes(), Origin: origin}, nil
}

// Restore replaces the mask wholesale with a previously captured snapshot.
func (e *Engine) Restore(snap *MaskSnapshot) error {
	img, err := snap.Image()
	if err != nil {
		return err
	}
	e.SetMask(img, snap.Origin)
	return nil
}
