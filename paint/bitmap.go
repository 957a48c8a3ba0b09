// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paint

import (
	"hash/crc32"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// Bitmap is an offscreen pixel buffer with a version counter.
// The version is bumped every time the pixels are repainted, so that
// host adapters can cache GPU-side copies keyed by (pointer, version)
// and re-upload only when the content actually changed.
type Bitmap struct {

	// Image holds the pixels.
	Image *image.RGBA

	// Version counts repaints of Image. It starts at 0 for a fresh
	// bitmap and increments on every [Bitmap.Update].
	Version uint64
}

// NewBitmap returns a new [Bitmap] with the given pixel dimensions.
// Dimensions are clamped to at least 1x1.
func NewBitmap(w, h int) *Bitmap {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Bitmap{Image: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Size returns the pixel dimensions of the bitmap.
func (bm *Bitmap) Size() (w, h int) {
	sz := bm.Image.Rect.Size()
	return sz.X, sz.Y
}

// Resize reallocates the pixel buffer if the given size differs from
// the current one, and reports whether a reallocation happened.
// The version is preserved; call [Bitmap.Update] after repainting.
func (bm *Bitmap) Resize(w, h int) bool {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	cw, ch := bm.Size()
	if cw == w && ch == h {
		return false
	}
	bm.Image = image.NewRGBA(image.Rect(0, 0, w, h))
	return true
}

// Update marks the bitmap's pixels as repainted, bumping the version.
func (bm *Bitmap) Update() {
	bm.Version++
}

// ClonePixels returns a fresh RGBA copy of the given image,
// decoupled from the source buffer.
func ClonePixels(img image.Image) *image.RGBA {
	return clone.AsRGBA(img)
}

// Checksum returns a checksum of the raw pixel data of the given image,
// for debug-mode comparison of cached vs. directly drawn output.
func Checksum(img *image.RGBA) uint32 {
	return crc32.ChecksumIEEE(img.Pix)
}
