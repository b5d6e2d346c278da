/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout implements the percentage-space placement rules for deck
// elements: default-size insertion, bounds checks, and the pure delta
// arithmetic behind dragging and eight-direction resizing. Everything here is
// deterministic and side-effect free; policy questions (clamping, overlap)
// belong to callers.
package layout

import (
	"math"

	"slidesmith/internal/domain"
)

// CanvasAspectW and CanvasAspectH describe the fixed canvas aspect ratio.
// Geometry is stored independent of pixel size; these only matter to
// renderers picking a pixel resolution.
const (
	CanvasAspectW = 16
	CanvasAspectH = 9
)

// Direction selects which edges of a frame a delta applies to. Move is the
// zero value: the whole frame translates. Edge bits combine into corners
// (TopLeft = Top|Left); combining opposite edges is meaningless and
// unsupported.
type Direction uint8

const (
	Move   Direction = 0
	Left   Direction = 1 << 0
	Right  Direction = 1 << 1
	Top    Direction = 1 << 2
	Bottom Direction = 1 << 3

	TopLeft     = Top | Left
	TopRight    = Top | Right
	BottomLeft  = Bottom | Left
	BottomRight = Bottom | Right
)

// Directions lists the eight resize handles in rendering order:
// corners first, then edge midpoints.
var Directions = [8]Direction{
	TopLeft, TopRight, BottomLeft, BottomRight,
	Top, Bottom, Left, Right,
}

func (d Direction) String() string {
	switch d {
	case Move:
		return "move"
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "invalid"
}

// Valid reports whether d is Move or one of the eight resize directions.
func (d Direction) Valid() bool {
	if d == Move {
		return true
	}
	if d&(Left|Right) == (Left | Right) {
		return false
	}
	if d&(Top|Bottom) == (Top | Bottom) {
		return false
	}
	return d <= (Bottom | Right | Top | Left)
}

// ApplyDelta computes a new frame from an immutable gesture snapshot and a
// cumulative percent delta. It never clamps: width and height may go negative
// and positions may leave [0,100]; consumers decide what to do about that.
//
// Move translates. Each edge bit applies its own rule independently, so
// corners are just the composition of their two edges:
//
//	right:  w += dx
//	left:   x += dx, w -= dx
//	bottom: h += dy
//	top:    y += dy, h -= dy
func ApplyDelta(snap domain.Frame, d Direction, dx, dy float64) domain.Frame {
	f := snap
	if d == Move {
		f.X += dx
		f.Y += dy
		return f
	}
	if d&Right != 0 {
		f.W += dx
	}
	if d&Left != 0 {
		f.X += dx
		f.W -= dx
	}
	if d&Bottom != 0 {
		f.H += dy
	}
	if d&Top != 0 {
		f.Y += dy
		f.H -= dy
	}
	return f
}

// DeltaFromPixels converts a pixel delta into percent of the canvas's current
// pixel dimensions. Callers must ensure the dimensions are positive; the
// gesture engine refuses to start a gesture when they are not.
func DeltaFromPixels(pxDX, pxDY, canvasW, canvasH float64) (dx, dy float64) {
	return pxDX / canvasW * 100, pxDY / canvasH * 100
}

// WithinBounds reports whether the frame lies entirely inside the canvas.
// It is a validation/testing helper; gestures never enforce it.
func WithinBounds(f domain.Frame) bool {
	return f.X >= 0 && f.Y >= 0 && f.X+f.W <= 100 && f.Y+f.H <= 100
}

// ClampMin returns f with width/height raised to at least minW/minH, keeping
// the top-left corner fixed. The engines never call this; it exists for
// consumers that choose to forbid degenerate sizes after a resize.
func ClampMin(f domain.Frame, minW, minH float64) domain.Frame {
	if f.W < minW {
		f.W = minW
	}
	if f.H < minH {
		f.H = minH
	}
	return f
}

// insertion bias: the new box's top-left sits up-and-left of the click so the
// pointer lands near the box's visual center rather than its corner.
const (
	insertBiasX = 10
	insertBiasY = 5
)

// defaultSize returns the kind-dependent default frame size in percent.
func defaultSize(kind domain.ElementKind) (w, h float64) {
	switch kind {
	case domain.KindText:
		return 30, 10
	case domain.KindImage:
		return 30, 40
	case domain.KindIcon:
		return 10, 18
	case domain.KindChart:
		return 40, 45
	}
	return 30, 10
}

// InsertAt returns a default-sized frame for a new element of the given kind,
// positioned near a click point given in percent coordinates. No collision
// avoidance is attempted; overlap with existing elements is accepted.
func InsertAt(clickX, clickY float64, kind domain.ElementKind) domain.Frame {
	w, h := defaultSize(kind)
	return domain.Frame{X: clickX - insertBiasX, Y: clickY - insertBiasY, W: w, H: h}
}

// Round trims a frame to n decimal places, for deterministic serialization.
func Round(f domain.Frame, places int) domain.Frame {
	return domain.Frame{
		X: roundTo(f.X, places),
		Y: roundTo(f.Y, places),
		W: roundTo(f.W, places),
		H: roundTo(f.H, places),
	}
}

func roundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
