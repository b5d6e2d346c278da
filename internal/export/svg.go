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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

// SVGOptions controls SVG export behavior.
// - Width: pixel width written to the width/height attributes. Zero uses DefaultRenderWidth.
// - Slides: zero-based indices; empty exports all.
//
// The viewBox is a fixed 1600x900 user space so percent coordinates map by a
// factor of 16 horizontally and 9 vertically regardless of output size.
type SVGOptions struct {
	Width  int
	Slides []int
}

const (
	svgViewW = 1600.0
	svgViewH = 900.0
)

// ExportDeckSVGSlides writes one SVG per slide named slide-<n>.svg under
// outDir or the deck's exports folder.
func ExportDeckSVGSlides(dh *storage.DeckHandle, outDir string, opt SVGOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	width := opt.Width
	if width <= 0 {
		width = DefaultRenderWidth
	}
	height := HeightForWidth(width)

	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(dh.Root, "exports", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	slides := slideIndexes(len(dh.Deck.Slides), opt.Slides)
	for _, sidx := range slides {
		if sidx < 0 || sidx >= len(dh.Deck.Slides) {
			continue
		}
		data, err := slideSVG(dh.Deck, dh.Deck.Slides[sidx], width, height)
		if err != nil {
			return fmt.Errorf("build svg for slide %d: %w", sidx+1, err)
		}
		name := filepath.Join(outDir, fmt.Sprintf("slide-%d.svg", sidx+1))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}

func slideSVG(deck domain.Deck, sl domain.Slide, pxW, pxH int) ([]byte, error) {
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	bg := deck.Theme.Background
	if bg == "" {
		bg = "#ffffff"
	}
	accent := deck.Theme.Accent
	if accent == "" {
		accent = "#1e40af"
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, svgViewW, svgViewH)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", svgViewW, svgViewH, escAttr(bg))

	els := make([]domain.Element, len(sl.Elements))
	copy(els, sl.Elements)
	sort.SliceStable(els, func(i, j int) bool { return els[i].Z < els[j].Z })

	for _, el := range els {
		x := el.Frame.X / 100 * svgViewW
		y := el.Frame.Y / 100 * svgViewH
		w := el.Frame.W / 100 * svgViewW
		h := el.Frame.H / 100 * svgViewH
		switch el.Kind {
		case domain.KindText:
			if el.Text != nil {
				writeSVGText(wf, x, y, w, *el.Text, deck.Theme)
			}
		case domain.KindImage:
			if el.Image != nil {
				mime := el.Image.Mime
				if mime == "" {
					mime = "image/png"
				}
				wf("  <image x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" preserveAspectRatio=\"xMidYMid meet\" xlink:href=\"data:%s;base64,%s\"/>\n", x, y, w, h, escAttr(mime), el.Image.Base64)
			}
		case domain.KindIcon:
			if el.Icon != nil {
				// Icon markup is carried verbatim inside a positioned group;
				// viewers scale the nested svg to its own declared size.
				wf("  <g transform=\"translate(%g %g)\" color=\"%s\">\n", x, y, escAttr(nonEmpty(el.Icon.Color, accent)))
				wf("%s\n", el.Icon.SVG)
				wf("  </g>\n")
			}
		case domain.KindChart:
			if el.Chart != nil {
				writeSVGChart(wf, x, y, w, h, *el.Chart, accent)
			}
		}
	}

	wf("</svg>\n")
	if werr != nil {
		return nil, werr
	}
	return buf.Bytes(), nil
}

// svgFontSizes maps text size tokens to user-space pixels in the 1600x900 box.
var svgFontSizes = map[string]float64{
	"title":   72,
	"heading": 48,
	"body":    32,
	"caption": 22,
}

func writeSVGText(wf func(string, ...any), x, y, w float64, tp domain.TextPayload, th domain.Theme) {
	fsz, ok := svgFontSizes[tp.Size]
	if !ok {
		fsz = svgFontSizes["body"]
	}
	family := th.BodyFnt
	if tp.Size == "title" || tp.Size == "heading" {
		family = th.HeadingFnt
	}
	if family == "" {
		family = "Helvetica, Arial, sans-serif"
	}
	fill := nonEmpty(tp.Color, "#000000")
	weight := "normal"
	if tp.Weight == "bold" {
		weight = "bold"
	}
	anchor := "start"
	tx := x
	switch tp.Align {
	case "center":
		anchor = "middle"
		tx = x + w/2
	case "right":
		anchor = "end"
		tx = x + w
	}
	cy := y + fsz
	for _, line := range strings.Split(tp.Content, "\n") {
		wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%g\" font-weight=\"%s\" fill=\"%s\" text-anchor=\"%s\">%s</text>\n",
			tx, cy, escAttr(family), fsz, weight, escAttr(fill), anchor, escText(line))
		cy += fsz * 1.2
	}
}

func writeSVGChart(wf func(string, ...any), x, y, w, h float64, cp domain.ChartPayload, accent string) {
	wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"#787878\" stroke-width=\"1\"/>\n", x, y, w, h)
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
		var pts []string
		n := len(cp.Values)
		for i, v := range cp.Values {
			px := x
			if n > 1 {
				px = x + float64(i)*w/float64(n-1)
			}
			py := y + h - v/maxVal*h
			pts = append(pts, fmt.Sprintf("%g,%g", px, py))
		}
		wf("  <polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"3\"/>\n", strings.Join(pts, " "), escAttr(accent))
	default:
		n := float64(len(cp.Values))
		slot := w / n
		for i, v := range cp.Values {
			bh := v / maxVal * h
			bx := x + float64(i)*slot + slot*0.1
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", bx, y+h-bh, slot*0.8, bh, escAttr(accent))
		}
	}
	if len(cp.Labels) == len(cp.Values) && cp.Type != "line" {
		n := float64(len(cp.Values))
		slot := w / n
		for i, lbl := range cp.Labels {
			lx := x + float64(i)*slot + slot/2
			wf("  <text x=\"%g\" y=\"%g\" font-size=\"18\" fill=\"#444\" text-anchor=\"middle\">%s</text>\n", lx, y+h+20, escText(lbl))
		}
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func escAttr(s string) string {
	// naive escaping sufficient for our simple usage
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
