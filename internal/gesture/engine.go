/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture turns raw pointer events into element geometry updates.
// The engine is UI-agnostic: the host delivers pointer-down/move/up with
// pixel coordinates relative to the canvas, plus a way to measure the
// canvas's live pixel size, and receives whole-frame geometry notifications.
//
// One gesture at a time. Every move recomputes from the immutable
// start-of-gesture snapshot and the total pixel delta, never incrementally
// from the previous frame's output, so dropped or re-ordered move events
// cannot accumulate drift.
package gesture

import (
	"slidesmith/internal/domain"
	"slidesmith/internal/layout"
)

// Phase is the engine's gesture state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Resizing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "invalid"
}

// Region says where on an element a pointer-down landed.
type Region int

const (
	// Body is anywhere inside the element's frame that is not a handle.
	Body Region = iota
	// Handle is one of the eight resize handles; the direction accompanies it.
	Handle
)

// BoundsFunc reports the canvas's current pixel dimensions. ok must be false
// when the canvas is not yet mounted/measurable; a gesture then silently
// does not start.
type BoundsFunc func() (w, h float64, ok bool)

// Engine converts pointer events for one slide's canvas into geometry
// updates. It is not safe for concurrent use; hosts deliver events from a
// single UI loop.
type Engine struct {
	// Bounds measures the canvas. Required.
	Bounds BoundsFunc
	// OnGeometry receives one whole-frame update per pointer-move during an
	// active gesture. Required for gestures to have any effect.
	OnGeometry func(elementID string, f domain.Frame)
	// OnSelect fires whenever the selection changes (including to "").
	// Hosts use it to tear down pending affordances tied to the previous
	// selection. Optional.
	OnSelect func(elementID string)

	selected string

	phase  Phase
	dir    layout.Direction
	target string
	snap   domain.Frame
	startX float64
	startY float64
}

// Selected returns the selected element id, or "" when nothing is selected.
func (e *Engine) Selected() string { return e.selected }

// Phase returns the current gesture phase.
func (e *Engine) Phase() Phase { return e.phase }

// Direction returns the active resize direction; meaningful only while
// Phase() == Resizing.
func (e *Engine) Direction() layout.Direction { return e.dir }

// Select makes elementID the selection (or clears it with ""). Any active
// gesture is abandoned: selection changes mid-gesture only happen when the
// host removes the target element.
func (e *Engine) Select(elementID string) {
	if e.selected == elementID {
		return
	}
	e.reset()
	e.selected = elementID
	if e.OnSelect != nil {
		e.OnSelect(elementID)
	}
}

// PointerDown begins a gesture, or performs selection.
//
// Body-down on an unselected element selects it and deliberately does not
// start a drag in the same gesture; the element must already be selected for
// a body-down to begin dragging. Handle-down starts a resize in the given
// direction (handles are only rendered for the selected element, so a
// handle-down for a different id falls back to selection).
//
// frame is the element's current geometry; it becomes the immutable gesture
// snapshot. px/py are pointer pixel coordinates relative to the canvas.
func (e *Engine) PointerDown(elementID string, frame domain.Frame, region Region, dir layout.Direction, px, py float64) {
	if e.phase != Idle {
		return // gestures do not nest
	}
	if elementID != e.selected {
		e.Select(elementID)
		return
	}
	if _, _, ok := e.measure(); !ok {
		return // canvas not measurable: gesture silently does not start
	}
	switch region {
	case Body:
		e.phase = Dragging
		e.dir = layout.Move
	case Handle:
		if !dir.Valid() || dir == layout.Move {
			return
		}
		e.phase = Resizing
		e.dir = dir
	default:
		return
	}
	e.target = elementID
	e.snap = frame
	e.startX = px
	e.startY = py
}

// PointerMove recomputes the target's geometry from the gesture snapshot and
// the total pixel delta since gesture start, and emits one geometry update.
// Outside a gesture, or when the canvas cannot be measured, it is a no-op.
func (e *Engine) PointerMove(px, py float64) {
	if e.phase == Idle {
		return
	}
	w, h, ok := e.measure()
	if !ok {
		return
	}
	dx, dy := layout.DeltaFromPixels(px-e.startX, py-e.startY, w, h)
	if e.OnGeometry != nil {
		e.OnGeometry(e.target, layout.ApplyDelta(e.snap, e.dir, dx, dy))
	}
}

// PointerUp ends the active gesture and discards its state. A pointer-up
// with zero net delta leaves the element exactly as the snapshot: no
// spurious update is emitted here.
func (e *Engine) PointerUp() {
	e.reset()
}

// Cancel abandons any active gesture without emitting updates. Hosts call it
// when the target element is removed mid-gesture.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.phase = Idle
	e.dir = layout.Move
	e.target = ""
	e.snap = domain.Frame{}
	e.startX, e.startY = 0, 0
}

func (e *Engine) measure() (w, h float64, ok bool) {
	if e.Bounds == nil {
		return 0, 0, false
	}
	w, h, ok = e.Bounds()
	if !ok || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
