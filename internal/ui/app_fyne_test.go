//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

func almostEqual(a, b, eps float32) bool {
	if a > b {
		return a-b <= eps
	}
	return b-a <= eps
}

func testSlide() *domain.Slide {
	return &domain.Slide{
		ID: "s1",
		Elements: []domain.Element{
			{
				ID: "under", Kind: domain.KindText, Z: 0,
				Frame: domain.Frame{X: 10, Y: 10, W: 40, H: 40},
				Text:  &domain.TextPayload{Content: "under"},
			},
			{
				ID: "over", Kind: domain.KindImage, Z: 1,
				Frame: domain.Frame{X: 30, Y: 30, W: 40, H: 40},
				Image: &domain.ImagePayload{Base64: "x"},
			},
		},
	}
}

func TestDeckCanvas_Defaults(t *testing.T) {
	dc := NewDeckCanvas()
	if dc.zoom != 0.5 {
		t.Fatalf("expected default zoom 0.5, got %v", dc.zoom)
	}
	sz := dc.PreferredSize()
	if sz.Width != 960 || sz.Height != 600 {
		t.Fatalf("unexpected PreferredSize: %v", sz)
	}
}

func TestDeckCanvas_CoordinateRoundTrip(t *testing.T) {
	dc := NewDeckCanvas()
	dc.Resize(fyne.NewSize(1000, 700))
	pos := dc.toScreen(800, 450) // canvas center in logical units
	ux, uy := dc.toCanvas(pos)
	if !almostEqual(float32(ux), 800, 0.5) || !almostEqual(float32(uy), 450, 0.5) {
		t.Fatalf("round trip drifted: got (%v, %v)", ux, uy)
	}
	// The canvas center should land at the widget center when not panned.
	if !almostEqual(pos.X, 500, 0.5) || !almostEqual(pos.Y, 350, 0.5) {
		t.Fatalf("canvas center not at widget center: %v", pos)
	}
}

func TestDeckCanvas_HitTestTopmostZ(t *testing.T) {
	dc := NewDeckCanvas()
	dc.slide = testSlide()
	// Overlap region: 30..50 percent in both axes. Probe 40%,40% in units.
	id := dc.hitTest(40*16, 40*9)
	if id != "over" {
		t.Fatalf("expected topmost element, got %q", id)
	}
	if id := dc.hitTest(12*16, 12*9); id != "under" {
		t.Fatalf("expected lower element outside overlap, got %q", id)
	}
	if id := dc.hitTest(95*16, 95*9); id != "" {
		t.Fatalf("expected no hit on empty canvas, got %q", id)
	}
}

func TestDeckCanvas_HandleRects(t *testing.T) {
	dc := NewDeckCanvas()
	dc.Resize(fyne.NewSize(1000, 700))
	dc.slide = testSlide()
	dc.engine.Select("under")

	bbox, handles, ok := dc.handleRects()
	if !ok {
		t.Fatal("expected handle rects for selected element")
	}
	if bbox.Width <= 0 || bbox.Height <= 0 {
		t.Fatalf("degenerate bbox: %+v", bbox)
	}
	// Corner handles sit centered on the bbox corners.
	tl := handles[0]
	if !almostEqual(tl.X+handlePx/2, bbox.X, 0.5) || !almostEqual(tl.Y+handlePx/2, bbox.Y, 0.5) {
		t.Fatalf("top-left handle misplaced: %+v vs bbox %+v", tl, bbox)
	}
	br := handles[3]
	if !almostEqual(br.X+handlePx/2, bbox.X+bbox.Width, 0.5) || !almostEqual(br.Y+handlePx/2, bbox.Y+bbox.Height, 0.5) {
		t.Fatalf("bottom-right handle misplaced: %+v vs bbox %+v", br, bbox)
	}
	// Top edge midpoint handle.
	top := handles[4]
	if !almostEqual(top.X+handlePx/2, bbox.X+bbox.Width/2, 0.5) {
		t.Fatalf("top handle not centered: %+v", top)
	}

	dc.engine.Select("")
	if _, _, ok := dc.handleRects(); ok {
		t.Fatal("expected no handle rects without a selection")
	}
}

func TestDeckCanvas_RendererLayout(t *testing.T) {
	dc := NewDeckCanvas()
	dc.slide = testSlide()
	r, ok := dc.CreateRenderer().(*deckCanvasRenderer)
	if !ok {
		t.Fatalf("expected deckCanvasRenderer, got %T", dc.CreateRenderer())
	}
	containerSize := fyne.NewSize(1000, 700)
	dc.Resize(containerSize)
	r.Layout(containerSize)

	// Slide surface is 1600x900 units at zoom 0.5 -> 800x450.
	if !almostEqual(r.slide.Size().Width, 800, 0.5) || !almostEqual(r.slide.Size().Height, 450, 0.5) {
		t.Fatalf("unexpected slide surface size: %v", r.slide.Size())
	}
	if len(r.rects) < 2 {
		t.Fatalf("expected element visuals to be allocated, got %d", len(r.rects))
	}
	// Pan moves the surface.
	oldX := r.slide.Position().X
	dc.offsetX += 100
	r.Layout(containerSize)
	if r.slide.Position().X <= oldX+80 {
		t.Fatalf("expected slide surface to move with pan: before %v after %v", oldX, r.slide.Position().X)
	}
}

func TestApplyOutlineTextReplacesSlides(t *testing.T) {
	root := t.TempDir()
	dh, err := storage.InitDeck(root, domain.Deck{Name: "Old", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{}}}})
	if err != nil {
		t.Fatalf("init deck: %v", err)
	}
	text := "# New Deck\n\n## Intro\n- point one\n- point two\n\n## Close\n- thanks\n"
	if err := applyOutlineText(dh, text); err != nil {
		t.Fatalf("apply outline: %v", err)
	}
	if dh.Deck.Name != "New Deck" {
		t.Fatalf("deck name = %q, want New Deck", dh.Deck.Name)
	}
	if len(dh.Deck.Slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(dh.Deck.Slides))
	}
	reread, err := storage.Open(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(reread.Deck.Slides) != 2 || reread.Deck.Slides[0].Title != "Intro" {
		t.Fatalf("persisted deck unexpected: %+v", reread.Deck.Slides)
	}
}

func TestInsertGeneratedElementAssignsIDAndPersists(t *testing.T) {
	root := t.TempDir()
	dh, err := storage.InitDeck(root, domain.Deck{Name: "Deck", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{}}}})
	if err != nil {
		t.Fatalf("init deck: %v", err)
	}
	el := domain.Element{
		Kind:  domain.KindText,
		Frame: domain.Frame{X: 40, Y: 45, W: 20, H: 10},
		Text:  &domain.TextPayload{Content: "Generated headline", Size: "heading"},
	}
	added, err := insertGeneratedElement(dh, "s1", el)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected generated element to get an id")
	}
	if added.Frame != el.Frame {
		t.Fatalf("frame changed on insert: %+v", added.Frame)
	}
	reread, err := storage.Open(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(reread.Deck.Slides[0].Elements) != 1 || reread.Deck.Slides[0].Elements[0].ID != added.ID {
		t.Fatalf("element not persisted: %+v", reread.Deck.Slides[0].Elements)
	}

	// An id chosen by the generator is kept.
	el2 := el
	el2.ID = "fixed-id"
	added2, err := insertGeneratedElement(dh, "s1", el2)
	if err != nil {
		t.Fatalf("insert with id: %v", err)
	}
	if added2.ID != "fixed-id" {
		t.Fatalf("id rewritten: %q", added2.ID)
	}
}

func TestPersistSlideSnapshotRoundTrip(t *testing.T) {
	root := t.TempDir()
	dh, err := storage.InitDeck(root, domain.Deck{Name: "Deck", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{}}}})
	if err != nil {
		t.Fatalf("init deck: %v", err)
	}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, payload := range []string{"first", "second", "third"} {
		if err := persistSlideSnapshot(dh, "s1", []byte(payload), base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("persist %d: %v", i, err)
		}
	}
	blob, ts, err := latestSlideSnapshot(dh, "s1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if string(blob) != "third" {
		t.Fatalf("latest blob = %q, want third", blob)
	}
	if !ts.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("latest ts = %v", ts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snaps, err := storage.ListSnapshots(ctx, dh, "s1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("snapshots = %d, want 3", len(snaps))
	}

	// A slide that never captured anything has no snapshot.
	blob, _, err = latestSlideSnapshot(dh, "missing")
	if err != nil {
		t.Fatalf("latest missing: %v", err)
	}
	if blob != nil {
		t.Fatalf("expected nil blob for unknown slide, got %q", blob)
	}
}
