// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/cache.go
// Summary: Render cache slots keyed by value-compared geometry/style.

package scrollbar

import (
	"image/color"

	"github.com/framegrace/texelbar/raster"
)

// cacheKey identifies what a cached visual was generated for. The track
// leaves Style and Accent zero because its look depends only on size.
type cacheKey struct {
	W, H   int
	Style  InteractionStyle
	Accent color.NRGBA
}

// visualSlot owns at most one off-screen visual.
type visualSlot struct {
	key         cacheKey
	tex         raster.Offscreen
	generations int
}

func (v *visualSlot) lookup(key cacheKey) (raster.Offscreen, bool) {
	if v.tex == nil || v.key != key {
		return nil, false
	}
	return v.tex, true
}

// replace releases the current visual and installs tex for key.
func (v *visualSlot) replace(tex raster.Offscreen, key cacheKey) {
	v.release()
	v.tex = tex
	v.key = key
	v.generations++
}

func (v *visualSlot) release() {
	if v.tex != nil {
		v.tex.Release()
		v.tex = nil
	}
	v.key = cacheKey{}
}

// regenerate allocates a w×h buffer on dst, paints it and installs it.
// On allocation failure the slot is left empty and the error returned.
func (v *visualSlot) regenerate(dst raster.Surface, key cacheKey, w, h int, paint func(raster.Canvas)) (raster.Offscreen, error) {
	tex, err := dst.NewOffscreen(w, h)
	if err != nil {
		v.release()
		return nil, err
	}
	paint(tex)
	v.replace(tex, key)
	return tex, nil
}
