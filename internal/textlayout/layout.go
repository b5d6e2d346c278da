/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Deterministic text measurement and line breaking for slide text boxes.
// A slide text element carries exactly one style, so layout works on a
// plain string plus a FontSpec rather than styled runs.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// Line is a single wrapped line and its measured width.
type Line struct {
	Text  string
	Width float32
}

// TextBox is the result of wrapping text into a box width.
type TextBox struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Wrap breaks text into lines no wider than maxWidth using the face resolved
// for spec. Newlines force breaks. A single word wider than the box gets a
// line of its own rather than being split mid-word; slide boxes are wide
// enough in practice that hyphenation is not worth the nondeterminism.
func Wrap(p Provider, text string, spec FontSpec, maxWidth float32) TextBox {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	spaceW := advance(d, " ")
	lineH := met.Ascent + met.Descent + met.LineGap

	box := TextBox{Metrics: met}
	push := func(ln Line) {
		box.Lines = append(box.Lines, ln)
		if ln.Width > box.Width {
			box.Width = ln.Width
		}
		box.Height += lineH
	}

	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			push(Line{})
			continue
		}
		cur := Line{Text: words[0], Width: advance(d, words[0])}
		for _, w := range words[1:] {
			ww := advance(d, w)
			if maxWidth > 0 && cur.Width+spaceW+ww > maxWidth {
				push(cur)
				cur = Line{Text: w, Width: ww}
				continue
			}
			cur.Text += " " + w
			cur.Width += spaceW + ww
		}
		push(cur)
	}
	return box
}

// ClipToHeight drops trailing lines that would overflow maxHeight and marks
// the last kept line with an ellipsis. Used when a text payload outgrows its
// frame during rendering.
func (b TextBox) ClipToHeight(maxHeight float32) TextBox {
	if maxHeight <= 0 || b.Height <= maxHeight || len(b.Lines) == 0 {
		return b
	}
	lineH := b.Metrics.Ascent + b.Metrics.Descent + b.Metrics.LineGap
	keep := int(maxHeight / lineH)
	if keep < 1 {
		keep = 1
	}
	if keep >= len(b.Lines) {
		return b
	}
	out := b
	out.Lines = append([]Line(nil), b.Lines[:keep]...)
	last := &out.Lines[keep-1]
	last.Text = strings.TrimRight(last.Text, " ") + "…"
	out.Height = float32(keep) * lineH
	return out
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Measure returns the unwrapped width and single-line height of text.
func Measure(p Provider, text string, spec FontSpec) (w, h float32) {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	return advance(d, text), met.Ascent + met.Descent
}
