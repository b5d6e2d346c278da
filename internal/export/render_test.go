/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image/color"
	"testing"

	"slidesmith/internal/domain"
)

func TestRenderSlideDimensions(t *testing.T) {
	dh := newTestDeck(t)
	img, err := RenderSlide(dh.Deck, dh.Deck.Slides[0], 640)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != 360 {
		t.Fatalf("expected 640x360, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderSlideDefaultWidth(t *testing.T) {
	dh := newTestDeck(t)
	img, err := RenderSlide(dh.Deck, dh.Deck.Slides[0], 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != DefaultRenderWidth {
		t.Fatalf("expected default width %d, got %d", DefaultRenderWidth, img.Bounds().Dx())
	}
}

func TestRenderPaintsThemeBackground(t *testing.T) {
	dh := newTestDeck(t)
	dh.Deck.Theme.Background = "#112233"
	img, err := RenderSlide(dh.Deck, domain.Slide{ID: "empty"}, 320)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := img.RGBAAt(0, 0)
	want := color.RGBA{0x11, 0x22, 0x33, 255}
	if got != want {
		t.Fatalf("background pixel = %v, want %v", got, want)
	}
}

func TestRenderChartDrawsBars(t *testing.T) {
	dh := newTestDeck(t)
	img, err := RenderSlide(dh.Deck, dh.Deck.Slides[1], 640)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// The tallest bar (Aug, value 7 of max 7) must reach near the top of the
	// chart frame. Sample inside the middle bar slot just above the baseline.
	r := frameToPixels(domain.Frame{X: 10, Y: 20, W: 55, H: 55}, 640, 360)
	x := r.x0 + r.w()/2
	y := r.y1 - 3
	bg := img.RGBAAt(1, 1)
	if img.RGBAAt(x, y) == bg {
		t.Fatalf("expected a bar pixel at (%d,%d), found background", x, y)
	}
}

func TestFrameToPixelsRounding(t *testing.T) {
	r := frameToPixels(domain.Frame{X: 50, Y: 50, W: 50, H: 50}, 200, 100)
	if r.x0 != 100 || r.y0 != 50 || r.x1 != 199 || r.y1 != 99 {
		t.Fatalf("unexpected rect %+v", r)
	}
}

func TestParseHexColor(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"00ff00", color.RGBA{0, 255, 0, 255}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}},
		{"", def},
		{"not-a-color", def},
	}
	for _, c := range cases {
		if got := parseHexColor(c.in, def); got != c.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHeightForWidth(t *testing.T) {
	if h := HeightForWidth(1280); h != 720 {
		t.Fatalf("1280 -> %d, want 720", h)
	}
	if h := HeightForWidth(1000); h != 563 {
		t.Fatalf("1000 -> %d, want 563", h)
	}
}
