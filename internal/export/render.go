/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"math"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"slidesmith/internal/domain"
	"slidesmith/internal/textlayout"
)

// Raster rendering of a slide onto an RGBA canvas. Element frames are percent
// of the canvas, so the only pixel decision an exporter makes is the output
// width; the height follows from the fixed 16:9 aspect.

// DefaultRenderWidth is the pixel width used when callers pass zero.
const DefaultRenderWidth = 1280

// HeightForWidth returns the 16:9 pixel height for a given width.
func HeightForWidth(w int) int {
	return int(math.Round(float64(w) * 9.0 / 16.0))
}

// RenderSlide rasterizes one slide at the given pixel width. Elements are
// painted in ascending Z order on top of the theme background.
func RenderSlide(deck domain.Deck, sl domain.Slide, width int) (*image.RGBA, error) {
	if width <= 0 {
		width = DefaultRenderWidth
	}
	height := HeightForWidth(width)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	bg := parseHexColor(deck.Theme.Background, color.RGBA{255, 255, 255, 255})
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	els := make([]domain.Element, len(sl.Elements))
	copy(els, sl.Elements)
	sort.SliceStable(els, func(i, j int) bool { return els[i].Z < els[j].Z })

	accent := parseHexColor(deck.Theme.Accent, color.RGBA{30, 64, 175, 255})
	for _, el := range els {
		px := frameToPixels(el.Frame, width, height)
		switch el.Kind {
		case domain.KindText:
			if el.Text != nil {
				drawText(img, px, *el.Text)
			}
		case domain.KindImage:
			if el.Image != nil {
				if err := drawImage(img, px, *el.Image); err != nil {
					return nil, fmt.Errorf("slide %s element %s: %w", sl.ID, el.ID, err)
				}
			}
		case domain.KindIcon:
			if el.Icon != nil {
				drawIconPlaceholder(img, px, parseHexColor(el.Icon.Color, accent))
			}
		case domain.KindChart:
			if el.Chart != nil {
				drawChart(img, px, *el.Chart, accent)
			}
		}
	}
	return img, nil
}

// pixelRect is a frame resolved to inclusive pixel bounds.
type pixelRect struct {
	x0, y0, x1, y1 int
}

func (r pixelRect) w() int { return r.x1 - r.x0 + 1 }
func (r pixelRect) h() int { return r.y1 - r.y0 + 1 }

func frameToPixels(f domain.Frame, canvasW, canvasH int) pixelRect {
	x0 := int(math.Round(f.X / 100 * float64(canvasW)))
	y0 := int(math.Round(f.Y / 100 * float64(canvasH)))
	x1 := int(math.Round((f.X+f.W)/100*float64(canvasW))) - 1
	y1 := int(math.Round((f.Y+f.H)/100*float64(canvasH))) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return pixelRect{x0, y0, x1, y1}
}

func drawText(img *image.RGBA, r pixelRect, tp domain.TextPayload) {
	col := parseHexColor(tp.Color, color.RGBA{0, 0, 0, 255})
	face := basicfont.Face7x13
	spec := textlayout.FontSpec{SizePt: 16}
	if st, ok := textlayout.GetStyle(tp.Size); ok {
		spec = st.Font
	}
	box := textlayout.Wrap(textlayout.BasicProvider{}, tp.Content, spec, float32(r.w()))
	box = box.ClipToHeight(float32(r.h()))
	d := &font.Drawer{Dst: img, Src: &image.Uniform{C: col}, Face: face}
	lineH := face.Metrics().Height.Round()
	y := r.y0 + face.Metrics().Ascent.Round()
	for _, ln := range box.Lines {
		if y > r.y1 {
			break
		}
		x := r.x0
		switch tp.Align {
		case "center":
			x = r.x0 + (r.w()-int(ln.Width))/2
		case "right":
			x = r.x1 - int(ln.Width)
		}
		d.Dot = fixed.P(x, y)
		d.DrawString(ln.Text)
		if tp.Weight == "bold" {
			// cheap faux bold with a 1px double strike
			d.Dot = fixed.P(x+1, y)
			d.DrawString(ln.Text)
		}
		y += lineH
	}
}

func drawImage(img *image.RGBA, r pixelRect, ip domain.ImagePayload) error {
	raw, err := base64.StdEncoding.DecodeString(ip.Base64)
	if err != nil {
		return fmt.Errorf("decode image base64: %w", err)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode image data: %w", err)
	}
	dst := image.Rect(r.x0, r.y0, r.x1+1, r.y1+1)
	xdraw.ApproxBiLinear.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// drawIconPlaceholder paints a tinted box with a border. Rasterizing arbitrary
// SVG markup is out of reach here; SVG export embeds the markup verbatim.
func drawIconPlaceholder(img *image.RGBA, r pixelRect, col color.RGBA) {
	tint := col
	tint.A = 64
	blendRect(img, r, tint)
	strokeRect(img, r.x0, r.y0, r.x1, r.y1, col)
}

func drawChart(img *image.RGBA, r pixelRect, cp domain.ChartPayload, accent color.RGBA) {
	strokeRect(img, r.x0, r.y0, r.x1, r.y1, color.RGBA{120, 120, 120, 255})
	if len(cp.Values) == 0 {
		return
	}
	maxVal := cp.Values[0]
	for _, v := range cp.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return
	}
	switch cp.Type {
	case "line":
		drawChartLine(img, r, cp.Values, maxVal, accent)
	default:
		// bar and pie both raster as bars; true pie slices need a
		// vector backend and appear in SVG/PPTX output instead.
		drawChartBars(img, r, cp.Values, maxVal, accent)
	}
}

func drawChartBars(img *image.RGBA, r pixelRect, vals []float64, maxVal float64, col color.RGBA) {
	n := len(vals)
	pad := 2
	slot := r.w() / n
	if slot < 1 {
		slot = 1
	}
	for i, v := range vals {
		bh := int(math.Round(v / maxVal * float64(r.h()-2)))
		if bh < 1 {
			bh = 1
		}
		x0 := r.x0 + i*slot + pad
		x1 := r.x0 + (i+1)*slot - pad
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if x1 > r.x1 {
			x1 = r.x1
		}
		fillRect(img, x0, r.y1-bh, x1, r.y1-1, col)
	}
}

func drawChartLine(img *image.RGBA, r pixelRect, vals []float64, maxVal float64, col color.RGBA) {
	n := len(vals)
	if n == 1 {
		fillRect(img, r.x0, r.y1-2, r.x1, r.y1-1, col)
		return
	}
	prevX, prevY := 0, 0
	for i, v := range vals {
		x := r.x0 + i*(r.w()-1)/(n-1)
		y := r.y1 - 1 - int(math.Round(v/maxVal*float64(r.h()-2)))
		if i > 0 {
			drawSegment(img, prevX, prevY, x, y, col)
		}
		prevX, prevY = x, y
	}
}

// drawSegment is a plain Bresenham line.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func blendRect(img *image.RGBA, r pixelRect, col color.RGBA) {
	src := &image.Uniform{C: col}
	draw.Draw(img, image.Rect(r.x0, r.y0, r.x1+1, r.y1+1), src, image.Point{}, draw.Over)
}

// parseHexColor reads "#rgb" or "#rrggbb" tokens; anything else yields def.
func parseHexColor(s string, def color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return def
		}
		return color.RGBA{r * 17, g * 17, b * 17, 255}
	case 6:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return def
		}
		return color.RGBA{r, g, b, 255}
	}
	return def
}
