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
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

// PPTX export maps the percent canvas onto a 10in x 5.625in (16:9) slide in
// English Metric Units.
const (
	emuPerInch = 914400
	pptxSlideW = 10.0 * emuPerInch
	pptxSlideH = 5.625 * emuPerInch
)

// pptxFontSizes maps text size tokens to point sizes.
var pptxFontSizes = map[string]int{
	"title":   36,
	"heading": 24,
	"body":    16,
	"caption": 11,
}

// PPTXOptions controls PPTX export behavior.
type PPTXOptions struct {
	Slides []int // zero-based indices; empty exports all
}

// ExportDeckPPTX writes the deck as a PowerPoint 2007 file at outPath.
// Relative paths land under the deck's exports folder.
func ExportDeckPPTX(dh *storage.DeckHandle, outPath string, opt PPTXOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = dh.Deck.Name
	if dh.Deck.Metadata.Author != "" {
		p.GetDocumentProperties().Creator = dh.Deck.Metadata.Author
	}

	slides := slideIndexes(len(dh.Deck.Slides), opt.Slides)
	first := true
	for _, sidx := range slides {
		if sidx < 0 || sidx >= len(dh.Deck.Slides) {
			continue
		}
		var slide *ppt.Slide
		if first {
			slide = p.GetActiveSlide()
			first = false
		} else {
			slide = p.CreateSlide()
		}
		if err := buildPPTXSlide(slide, dh.Deck, dh.Deck.Slides[sidx]); err != nil {
			return fmt.Errorf("slide %d: %w", sidx+1, err)
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("create pptx writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize pptx: %w", err)
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dh.Root, "exports", outPath)
	}
	if !strings.HasSuffix(strings.ToLower(outPath), ".pptx") {
		outPath += ".pptx"
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write pptx: %w", err)
	}
	return nil
}

func buildPPTXSlide(slide *ppt.Slide, deck domain.Deck, sl domain.Slide) error {
	els := make([]domain.Element, len(sl.Elements))
	copy(els, sl.Elements)
	sort.SliceStable(els, func(i, j int) bool { return els[i].Z < els[j].Z })

	accent := pptxARGB(deck.Theme.Accent, "FF1E40AF")
	for _, el := range els {
		x, y, w, h := frameToEMU(el.Frame)
		switch el.Kind {
		case domain.KindText:
			if el.Text != nil {
				addPPTXText(slide, x, y, w, h, *el.Text)
			}
		case domain.KindImage:
			if el.Image != nil {
				if err := addPPTXImage(slide, x, y, w, h, *el.Image); err != nil {
					return fmt.Errorf("element %s: %w", el.ID, err)
				}
			}
		case domain.KindIcon:
			if el.Icon != nil {
				// No vector import path for raw SVG; emit a tinted box so the
				// slide geometry survives round trips through PowerPoint.
				box := slide.CreateRichTextShape()
				box.SetOffsetX(x).SetOffsetY(y)
				box.SetWidth(w).SetHeight(h)
				box.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(pptxARGB(el.Icon.Color, accent))))
			}
		case domain.KindChart:
			if el.Chart != nil {
				addPPTXChart(slide, x, y, w, h, *el.Chart, accent)
			}
		}
	}
	return nil
}

func frameToEMU(f domain.Frame) (x, y, w, h int64) {
	x = int64(f.X / 100 * pptxSlideW)
	y = int64(f.Y / 100 * pptxSlideH)
	w = int64(f.W / 100 * pptxSlideW)
	h = int64(f.H / 100 * pptxSlideH)
	return x, y, w, h
}

func addPPTXText(slide *ppt.Slide, x, y, w, h int64, tp domain.TextPayload) {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(x).SetOffsetY(y)
	shape.SetWidth(w).SetHeight(h)

	size, ok := pptxFontSizes[tp.Size]
	if !ok {
		size = pptxFontSizes["body"]
	}
	lines := strings.Split(tp.Content, "\n")
	for i, line := range lines {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(line)
		f := tr.GetFont().SetSize(size)
		if tp.Weight == "bold" {
			f = f.SetBold(true)
		}
		f.SetColor(ppt.NewColor(pptxARGB(tp.Color, "FF000000")))

		para := shape.GetActiveParagraph()
		switch tp.Align {
		case "center":
			para.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		case "right":
			para.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
		}
	}
}

func addPPTXImage(slide *ppt.Slide, x, y, w, h int64, ip domain.ImagePayload) error {
	raw, err := base64.StdEncoding.DecodeString(ip.Base64)
	if err != nil {
		return fmt.Errorf("decode image base64: %w", err)
	}
	mime := ip.Mime
	if mime == "" {
		mime = "image/png"
	}
	imgShape := slide.CreateDrawingShape()
	imgShape.SetImageData(raw, mime)
	imgShape.SetOffsetX(x).SetOffsetY(y)
	imgShape.SetWidth(w).SetHeight(h)
	return nil
}

// addPPTXChart renders chart values as proportional solid bars. Native chart
// parts are beyond the writer's surface; bars keep the data visible.
func addPPTXChart(slide *ppt.Slide, x, y, w, h int64, cp domain.ChartPayload, accent string) {
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
	n := int64(len(cp.Values))
	slot := w / n
	for i, v := range cp.Values {
		bh := int64(v / maxVal * float64(h))
		if bh < 1 {
			bh = 1
		}
		bar := slide.CreateRichTextShape()
		bar.SetOffsetX(x + int64(i)*slot + slot/10).SetOffsetY(y + h - bh)
		bar.SetWidth(slot * 8 / 10).SetHeight(bh)
		bar.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(accent)))
		if i < len(cp.Labels) {
			tr := bar.CreateTextRun(cp.Labels[i])
			tr.GetFont().SetSize(9).SetColor(ppt.NewColor("FFFFFFFF"))
			bar.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		}
	}
}

// pptxARGB converts a "#rrggbb" token into the writer's AARRGGBB form.
func pptxARGB(token, def string) string {
	c := parseHexColor(token, color.RGBA{})
	if (c == color.RGBA{}) {
		return def
	}
	return fmt.Sprintf("FF%02X%02X%02X", c.R, c.G, c.B)
}
