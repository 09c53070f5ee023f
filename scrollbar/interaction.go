// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/interaction.go
// Summary: Hit-testing and pointer-to-offset mapping.

package scrollbar

// Hit identifies the scrollbar part under a point.
type Hit int

const (
	HitNone Hit = iota
	HitTrack
	HitThumb
)

func (h Hit) String() string {
	switch h {
	case HitTrack:
		return "track"
	case HitThumb:
		return "thumb"
	default:
		return "none"
	}
}

// HitTest classifies (x, y). The thumb lies inside the track and wins.
func HitTest(l Layout, x, y float32) Hit {
	if l.Thumb.Contains(x, y) {
		return HitThumb
	}
	if l.Track.Contains(x, y) {
		return HitTrack
	}
	return HitNone
}

// OffsetForDrag maps pointer y during a drag to a scroll offset, keeping
// the grab point recorded by BeginDrag under the pointer.
func OffsetForDrag(s *State, l Layout, m Metrics, y float32) float32 {
	return OffsetForThumbTop(l, m, y-s.GrabOffset())
}

// OffsetForTrackClick maps a click on the track to the offset that centers
// the thumb on y.
func OffsetForTrackClick(l Layout, m Metrics, y float32) float32 {
	return OffsetForThumbTop(l, m, y-l.Thumb.H/2)
}

// OffsetForThumbTop is the inverse of the thumb placement in Layout.
func OffsetForThumbTop(l Layout, m Metrics, top float32) float32 {
	if l.ThumbTravel <= 0 {
		return 0
	}
	ratio := clampf((top-l.Track.Y)/l.ThumbTravel, 0, 1)
	return ratio * m.MaxOffset()
}
