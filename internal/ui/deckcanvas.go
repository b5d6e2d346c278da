//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/google/uuid"

	"slidesmith/internal/domain"
	"slidesmith/internal/gesture"
	"slidesmith/internal/layout"
	"slidesmith/internal/outline"
	"slidesmith/internal/storage"
)

// Logical canvas units for the editor surface. Percent coordinates scale by
// 16 and 9 so the surface keeps the slide aspect ratio at every zoom level.
const (
	canvasUnitsW = 100 * layout.CanvasAspectW
	canvasUnitsH = 100 * layout.CanvasAspectH
)

// canvasDragMode represents the current pointer interaction on the canvas.
type canvasDragMode int

const (
	canvasDragNone canvasDragMode = iota
	canvasDragPan
	canvasDragGesture
)

// DeckCanvas renders one slide and routes pointer input through the gesture
// engine and the insertion affordance.
type DeckCanvas struct {
	widget.BaseWidget

	zoom    float32
	offsetX float32
	offsetY float32

	slide *domain.Slide
	theme *domain.Theme

	engine   gesture.Engine
	inserter gesture.Inserter
	guides   []layout.GuideLine

	dragMode canvasDragMode

	// OnInsertRequested fires after a click on empty canvas armed the
	// inserter; the host raises its type/prompt dialog.
	OnInsertRequested func()
	// OnGestureStart fires once when a drag or resize begins.
	OnGestureStart func()
	// OnGestureEnd fires once when an active drag or resize finishes.
	OnGestureEnd func()
}

func NewDeckCanvas() *DeckCanvas {
	dc := &DeckCanvas{zoom: 0.5}
	dc.engine.Bounds = func() (w, h float64, ok bool) {
		if dc.slide == nil {
			return 0, 0, false
		}
		return canvasUnitsW, canvasUnitsH, true
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

// ShowSlide switches the canvas to the given slide (nil clears it). Any
// in-flight gesture or pending insertion is abandoned.
func (dc *DeckCanvas) ShowSlide(sl *domain.Slide) {
	dc.engine.Cancel()
	dc.engine.Select("")
	dc.inserter.Cancel()
	dc.guides = nil
	dc.slide = sl
	dc.Refresh()
}

// PreferredSize sets a decent default size for the widget.
func (dc *DeckCanvas) PreferredSize() fyne.Size { return fyne.NewSize(960, 600) }

func (dc *DeckCanvas) elementByID(id string) *domain.Element {
	if dc.slide == nil {
		return nil
	}
	for i := range dc.slide.Elements {
		if dc.slide.Elements[i].ID == id {
			return &dc.slide.Elements[i]
		}
	}
	return nil
}

// anchorsExcluding returns snap anchors for every sibling of the moving
// element plus the canvas itself (weighted higher so edge/center snapping to
// the slide wins ties).
func (dc *DeckCanvas) anchorsExcluding(elementID string) []layout.Anchor {
	anchors := []layout.Anchor{
		{Frame: domain.Frame{X: 0, Y: 0, W: 100, H: 100}, Weight: 2},
	}
	if dc.slide == nil {
		return anchors
	}
	for _, el := range dc.slide.Elements {
		if el.ID == elementID {
			continue
		}
		anchors = append(anchors, layout.Anchor{Frame: el.Frame, Weight: 1})
	}
	return anchors
}

// zOrdered returns indices into the slide's elements sorted by ascending Z.
func (dc *DeckCanvas) zOrdered() []int {
	if dc.slide == nil {
		return nil
	}
	idx := make([]int, len(dc.slide.Elements))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dc.slide.Elements[idx[a]].Z < dc.slide.Elements[idx[b]].Z
	})
	return idx
}

// Coordinate helpers: slide canvas <-> screen mapping.
func (dc *DeckCanvas) canvasOriginAndScale() (cx, cy, scale float32) {
	size := dc.Size()
	scaledW := float32(canvasUnitsW) * dc.zoom
	scaledH := float32(canvasUnitsH) * dc.zoom
	cx = size.Width/2 - scaledW/2 + dc.offsetX
	cy = size.Height/2 - scaledH/2 + dc.offsetY
	return cx, cy, dc.zoom
}

func (dc *DeckCanvas) toScreen(ux, uy float64) fyne.Position {
	cx, cy, s := dc.canvasOriginAndScale()
	return fyne.NewPos(cx+float32(ux)*s, cy+float32(uy)*s)
}

// toCanvas converts a widget position to logical canvas units.
func (dc *DeckCanvas) toCanvas(pos fyne.Position) (ux, uy float64) {
	cx, cy, s := dc.canvasOriginAndScale()
	return float64((pos.X - cx) / s), float64((pos.Y - cy) / s)
}

func frameToUnits(f domain.Frame) (x, y, w, h float64) {
	return f.X * layout.CanvasAspectW, f.Y * layout.CanvasAspectH,
		f.W * layout.CanvasAspectW, f.H * layout.CanvasAspectH
}

// hitTest returns the id of the top-most element containing the canvas-unit
// point, or "".
func (dc *DeckCanvas) hitTest(ux, uy float64) string {
	if dc.slide == nil {
		return ""
	}
	order := dc.zOrdered()
	for i := len(order) - 1; i >= 0; i-- {
		el := dc.slide.Elements[order[i]]
		x, y, w, h := frameToUnits(el.Frame)
		if ux >= x && ux <= x+w && uy >= y && uy <= y+h {
			return el.ID
		}
	}
	return ""
}

const handlePx = 8

// handleRects returns the selection bbox and the eight resize handles in
// screen coordinates, ordered as layout.Directions.
func (dc *DeckCanvas) handleRects() (bbox fRect, handles [8]fRect, ok bool) {
	el := dc.elementByID(dc.engine.Selected())
	if el == nil {
		return fRect{}, [8]fRect{}, false
	}
	x, y, w, h := frameToUnits(el.Frame)
	p0 := dc.toScreen(x, y)
	p1 := dc.toScreen(x+w, y+h)
	bbox = fRect{X: p0.X, Y: p0.Y, Width: p1.X - p0.X, Height: p1.Y - p0.Y}
	cxs := [3]float32{bbox.X, bbox.X + bbox.Width/2, bbox.X + bbox.Width}
	cys := [3]float32{bbox.Y, bbox.Y + bbox.Height/2, bbox.Y + bbox.Height}
	at := func(ix, iy int) fRect {
		return fRect{X: cxs[ix] - handlePx/2, Y: cys[iy] - handlePx/2, Width: handlePx, Height: handlePx}
	}
	// Same order as layout.Directions: corners first, then edge midpoints.
	handles = [8]fRect{
		at(0, 0), at(2, 0), at(0, 2), at(2, 2), // TL TR BL BR
		at(1, 0), at(1, 2), at(0, 1), at(2, 1), // T B L R
	}
	return bbox, handles, true
}

func (r fRect) contains(pos fyne.Position) bool {
	return pos.X >= r.X && pos.X <= r.X+r.Width && pos.Y >= r.Y && pos.Y <= r.Y+r.Height
}

// fRect is a light-weight rectangle for handle geometry.
type fRect struct{ X, Y, Width, Height float32 }

// handleAt returns the resize direction whose handle contains pos.
func (dc *DeckCanvas) handleAt(pos fyne.Position) (layout.Direction, bool) {
	_, handles, ok := dc.handleRects()
	if !ok {
		return layout.Move, false
	}
	for i, hr := range handles {
		if hr.contains(pos) {
			return layout.Directions[i], true
		}
	}
	return layout.Move, false
}

// Tapped selects the element under the pointer, or arms the insertion
// affordance on empty canvas.
func (dc *DeckCanvas) Tapped(e *fyne.PointEvent) {
	if dc.slide == nil {
		return
	}
	if _, onHandle := dc.handleAt(e.Position); onHandle {
		return // handles are drag targets, not tap targets
	}
	ux, uy := dc.toCanvas(e.Position)
	if id := dc.hitTest(ux, uy); id != "" {
		dc.inserter.Cancel()
		dc.engine.Select(id)
		dc.Refresh()
		return
	}
	dc.engine.Select("")
	if ux >= 0 && ux <= canvasUnitsW && uy >= 0 && uy <= canvasUnitsH {
		dc.inserter.BeginAt(ux/layout.CanvasAspectW, uy/layout.CanvasAspectH)
		if dc.OnInsertRequested != nil {
			dc.OnInsertRequested()
		}
	}
	dc.Refresh()
}

// Dragged begins and continues drags: resize from a handle, move from the
// selected element's body, pan from anywhere else.
func (dc *DeckCanvas) Dragged(e *fyne.DragEvent) {
	if dc.dragMode == canvasDragNone {
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		ux, uy := dc.toCanvas(start)
		if dir, ok := dc.handleAt(start); ok {
			if el := dc.elementByID(dc.engine.Selected()); el != nil {
				if dc.OnGestureStart != nil {
					dc.OnGestureStart()
				}
				dc.engine.PointerDown(el.ID, el.Frame, gesture.Handle, dir, ux, uy)
				dc.dragMode = canvasDragGesture
			}
		} else if id := dc.hitTest(ux, uy); id != "" && id == dc.engine.Selected() {
			if el := dc.elementByID(id); el != nil {
				if dc.OnGestureStart != nil {
					dc.OnGestureStart()
				}
				dc.engine.PointerDown(id, el.Frame, gesture.Body, layout.Move, ux, uy)
				dc.dragMode = canvasDragGesture
			}
		} else {
			dc.dragMode = canvasDragPan
		}
	}

	switch dc.dragMode {
	case canvasDragPan:
		dc.offsetX += e.Dragged.DX
		dc.offsetY += e.Dragged.DY
		dc.Refresh()
	case canvasDragGesture:
		ux, uy := dc.toCanvas(e.Position)
		dc.engine.PointerMove(ux, uy)
	}
}

func (dc *DeckCanvas) DragEnd() {
	if dc.dragMode == canvasDragGesture {
		dc.engine.PointerUp()
		if dc.OnGestureEnd != nil {
			dc.OnGestureEnd()
		}
	}
	dc.dragMode = canvasDragNone
}

// Scrolled zooms the canvas.
func (dc *DeckCanvas) Scrolled(e *fyne.ScrollEvent) {
	step := e.Scrolled.DY * 0.002
	dc.zoom += step
	if dc.zoom < 0.1 {
		dc.zoom = 0.1
	}
	if dc.zoom > 4.0 {
		dc.zoom = 4.0
	}
	dc.Refresh()
}

// CreateRenderer builds the canvas objects whose geometry is maintained by
// deckCanvasRenderer.Layout.
func (dc *DeckCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 34, A: 255})

	slideRect := canvas.NewRectangle(color.White)
	slideRect.StrokeColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	slideRect.StrokeWidth = 2

	bbox := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	bbox.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	bbox.StrokeWidth = 1
	bbox.Hide()

	var handles [8]*canvas.Rectangle
	for i := range handles {
		handles[i] = canvas.NewRectangle(color.RGBA{R: 0, G: 170, B: 255, A: 255})
		handles[i].Hide()
	}

	objs := []fyne.CanvasObject{bg, slideRect, bbox}
	for _, h := range handles {
		objs = append(objs, h)
	}

	return &deckCanvasRenderer{dc: dc, objects: objs, bg: bg, slide: slideRect, bbox: bbox, handles: handles}
}

// deckCanvasRenderer positions the drawable objects based on zoom/offset and
// the slide's element frames.
type deckCanvasRenderer struct {
	dc      *DeckCanvas
	objects []fyne.CanvasObject

	bg    *canvas.Rectangle
	slide *canvas.Rectangle

	// element visuals grow on demand (parallel pools)
	rects  []*canvas.Rectangle
	labels []*canvas.Text

	// overlays
	bbox       *canvas.Rectangle
	handles    [8]*canvas.Rectangle
	guideLines []*canvas.Line
}

func (r *deckCanvasRenderer) Destroy()                     {}
func (r *deckCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *deckCanvasRenderer) MinSize() fyne.Size           { return r.dc.PreferredSize() }
func (r *deckCanvasRenderer) Refresh()                     { r.Layout(r.dc.Size()); canvas.Refresh(r.dc) }

func (r *deckCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	dc := r.dc
	cx, cy, s := dc.canvasOriginAndScale()
	scaledW := float32(canvasUnitsW) * s
	scaledH := float32(canvasUnitsH) * s

	if dc.slide == nil {
		r.slide.Hide()
	} else {
		r.slide.Show()
		bgCol := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if dc.theme != nil {
			bgCol = parseThemeColor(dc.theme.Background, bgCol)
		}
		r.slide.FillColor = bgCol
		r.slide.Resize(fyne.NewSize(scaledW, scaledH))
		r.slide.Move(fyne.NewPos(cx, cy))
	}

	order := dc.zOrdered()
	r.ensureElementPools(len(order))
	accent := color.RGBA{R: 26, G: 115, B: 232, A: 255}
	if dc.theme != nil {
		accent = parseThemeColor(dc.theme.Accent, accent)
	}
	for vi, ei := range order {
		el := dc.slide.Elements[ei]
		x, y, w, h := frameToUnits(el.Frame)
		p0 := dc.toScreen(x, y)
		p1 := dc.toScreen(x+w, y+h)
		rc := r.rects[vi]
		lb := r.labels[vi]
		rc.Show()
		rc.Resize(fyne.NewSize(p1.X-p0.X, p1.Y-p0.Y))
		rc.Move(p0)
		switch el.Kind {
		case domain.KindText:
			rc.FillColor = color.RGBA{0, 0, 0, 0}
			rc.StrokeColor = color.RGBA{R: 180, G: 180, B: 180, A: 120}
			rc.StrokeWidth = 1
			lb.Show()
			lb.Text = firstLine(el)
			lb.Color = parseThemeColor(textColor(el), color.RGBA{R: 20, G: 20, B: 20, A: 255})
			lb.TextSize = textSizePx(el, s)
			lb.Move(fyne.NewPos(p0.X+4, p0.Y+2))
			lb.Refresh()
		case domain.KindImage:
			rc.FillColor = color.RGBA{R: 210, G: 210, B: 214, A: 255}
			rc.StrokeColor = color.RGBA{R: 120, G: 120, B: 124, A: 255}
			rc.StrokeWidth = 1
			lb.Show()
			lb.Text = "image"
			lb.Color = color.RGBA{R: 90, G: 90, B: 94, A: 255}
			lb.TextSize = 12
			lb.Move(fyne.NewPos(p0.X+4, p0.Y+2))
			lb.Refresh()
		case domain.KindIcon:
			rc.FillColor = color.RGBA{R: accent.R, G: accent.G, B: accent.B, A: 64}
			rc.StrokeColor = accent
			rc.StrokeWidth = 1
			lb.Hide()
		case domain.KindChart:
			rc.FillColor = color.RGBA{R: accent.R, G: accent.G, B: accent.B, A: 32}
			rc.StrokeColor = accent
			rc.StrokeWidth = 1
			lb.Show()
			lb.Text = chartLabel(el)
			lb.Color = color.RGBA{R: 60, G: 60, B: 64, A: 255}
			lb.TextSize = 12
			lb.Move(fyne.NewPos(p0.X+4, p0.Y+2))
			lb.Refresh()
		}
		rc.Refresh()
	}
	for j := len(order); j < len(r.rects); j++ {
		r.rects[j].Hide()
		r.labels[j].Hide()
	}

	// Selection overlay
	if bbox, handles, ok := dc.handleRects(); ok {
		r.bbox.Show()
		r.bbox.Resize(fyne.NewSize(bbox.Width, bbox.Height))
		r.bbox.Move(fyne.NewPos(bbox.X, bbox.Y))
		for i := range r.handles {
			r.handles[i].Show()
			r.handles[i].Resize(fyne.NewSize(handles[i].Width, handles[i].Height))
			r.handles[i].Move(fyne.NewPos(handles[i].X, handles[i].Y))
		}
	} else {
		r.bbox.Hide()
		for _, h := range r.handles {
			h.Hide()
		}
	}

	// Alignment guides
	r.ensureGuidePool(len(dc.guides))
	for i, g := range dc.guides {
		ln := r.guideLines[i]
		ln.Show()
		p0 := dc.toScreen(g.FromX*layout.CanvasAspectW, g.FromY*layout.CanvasAspectH)
		p1 := dc.toScreen(g.ToX*layout.CanvasAspectW, g.ToY*layout.CanvasAspectH)
		ln.Position1 = p0
		ln.Position2 = p1
		ln.Refresh()
	}
	for j := len(dc.guides); j < len(r.guideLines); j++ {
		r.guideLines[j].Hide()
	}
}

func (r *deckCanvasRenderer) ensureElementPools(need int) {
	for len(r.rects) < need {
		rc := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		lb := canvas.NewText("", color.Black)
		// Insert before the bbox so the selection overlay stays on top.
		r.insertBeforeOverlay(rc)
		r.insertBeforeOverlay(lb)
		r.rects = append(r.rects, rc)
		r.labels = append(r.labels, lb)
	}
}

func (r *deckCanvasRenderer) ensureGuidePool(need int) {
	for len(r.guideLines) < need {
		ln := canvas.NewLine(color.RGBA{R: 255, G: 80, B: 160, A: 230})
		ln.StrokeWidth = 1
		r.objects = append(r.objects, ln)
		r.guideLines = append(r.guideLines, ln)
	}
}

func (r *deckCanvasRenderer) insertBeforeOverlay(obj fyne.CanvasObject) {
	ins := -1
	for i, o := range r.objects {
		if o == r.bbox {
			ins = i
			break
		}
	}
	if ins < 0 {
		r.objects = append(r.objects, obj)
		return
	}
	r.objects = append(r.objects[:ins], append([]fyne.CanvasObject{obj}, r.objects[ins:]...)...)
}

func firstLine(el domain.Element) string {
	if el.Text == nil {
		return ""
	}
	line := el.Text.Content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line
}

func textColor(el domain.Element) string {
	if el.Text == nil {
		return ""
	}
	return el.Text.Color
}

func textSizePx(el domain.Element, zoom float32) float32 {
	sz := float32(16)
	if el.Text != nil {
		switch el.Text.Size {
		case "title":
			sz = 36
		case "heading":
			sz = 24
		case "caption":
			sz = 11
		}
	}
	px := sz * zoom * 2
	if px < 8 {
		px = 8
	}
	return px
}

func chartLabel(el domain.Element) string {
	if el.Chart == nil {
		return "chart"
	}
	return fmt.Sprintf("%s chart (%d values)", el.Chart.Type, len(el.Chart.Values))
}

// snapshotKeepLast bounds the persisted per-slide snapshot history.
const snapshotKeepLast = 50

// persistSlideSnapshot stores a slide snapshot in the deck index and prunes
// old rows so the history stays bounded.
func persistSlideSnapshot(dh *storage.DeckHandle, slideID string, blob []byte, ts time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.SaveSnapshot(ctx, dh, slideID, blob, ts); err != nil {
		return err
	}
	_, err := storage.PruneOldSnapshots(ctx, dh, slideID, snapshotKeepLast)
	return err
}

// latestSlideSnapshot returns the most recent persisted snapshot blob for the
// slide, or nil when none was ever saved.
func latestSlideSnapshot(dh *storage.DeckHandle, slideID string) ([]byte, time.Time, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return storage.GetLatestSnapshot(ctx, dh, slideID)
}

// insertGeneratedElement appends a generated element to the slide at its
// already-computed frame, assigning an id when the generator returned none.
func insertGeneratedElement(dh *storage.DeckHandle, slideID string, el domain.Element) (domain.Element, error) {
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	added, err := storage.AddElement(dh, slideID, el, el.Frame.X, el.Frame.Y)
	if err != nil {
		return domain.Element{}, err
	}
	if err := storage.Save(dh); err != nil {
		return domain.Element{}, err
	}
	return added, nil
}

// applyOutlineText parses an outline draft, replaces the deck's slides with
// the scaffold it describes, and records the text for change tracking.
func applyOutlineText(dh *storage.DeckHandle, text string) error {
	o, errs := outline.Parse(text)
	if len(errs) > 0 {
		return fmt.Errorf("outline has %d problems; first: line %d: %s", len(errs), errs[0].Line, errs[0].Message)
	}
	slides := outline.ToSlides(o)
	if o.Title != "" {
		dh.Deck.Name = o.Title
	}
	dh.Deck.Slides = slides
	if err := storage.Save(dh); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.SaveOutlineSnapshot(ctx, dh, text, time.Now()); err != nil {
		return err
	}
	return storage.UpdateIndex(ctx, dh.Root, dh.Deck)
}
