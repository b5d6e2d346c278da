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

	"github.com/jung-kurt/gofpdf"
	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt). Each slide becomes one landscape 16:9 page of
// 720x405pt (10in x 5.625in). Vector text uses built-in Helvetica; font
// embedding is not attempted.
type PDFOptions struct {
	WithNotes bool  // append speaker notes beneath a divider on each page
	Slides    []int // zero-based indices; empty exports all
}

const (
	pdfPageW = 720.0
	pdfPageH = 405.0
	// notes strip height when WithNotes is set; the slide area shrinks to keep 16:9
	pdfNotesH = 120.0
)

// pdfFontSizes maps text size tokens to point sizes on the 720pt-wide page.
var pdfFontSizes = map[string]float64{
	"title":   32,
	"heading": 22,
	"body":    14,
	"caption": 10,
}

// ExportDeckPDF exports the deck to a single multi-page PDF at outPath.
func ExportDeckPDF(dh *storage.DeckHandle, outPath string, opt PDFOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}

	pageH := pdfPageH
	if opt.WithNotes {
		pageH += pdfNotesH
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pdfPageW, Ht: pageH},
		OrientationStr: "",
	})
	pdf.SetTitle(dh.Deck.Name, false)
	if dh.Deck.Metadata.Author != "" {
		pdf.SetAuthor(dh.Deck.Metadata.Author, false)
	}
	pdf.SetFont("Helvetica", "", 12)

	slides := slideIndexes(len(dh.Deck.Slides), opt.Slides)
	imgSeq := 0
	for _, sidx := range slides {
		if sidx < 0 || sidx >= len(dh.Deck.Slides) {
			continue
		}
		sl := dh.Deck.Slides[sidx]
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: pdfPageW, Ht: pageH})

		bg := parseHexColor(dh.Deck.Theme.Background, color.RGBA{255, 255, 255, 255})
		pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		pdf.Rect(0, 0, pdfPageW, pdfPageH, "F")

		els := make([]domain.Element, len(sl.Elements))
		copy(els, sl.Elements)
		sort.SliceStable(els, func(i, j int) bool { return els[i].Z < els[j].Z })

		accent := parseHexColor(dh.Deck.Theme.Accent, color.RGBA{30, 64, 175, 255})
		for _, el := range els {
			x := el.Frame.X / 100 * pdfPageW
			y := el.Frame.Y / 100 * pdfPageH
			w := el.Frame.W / 100 * pdfPageW
			h := el.Frame.H / 100 * pdfPageH
			switch el.Kind {
			case domain.KindText:
				if el.Text != nil {
					pdfText(pdf, x, y, w, h, *el.Text)
				}
			case domain.KindImage:
				if el.Image != nil {
					imgSeq++
					if err := pdfImage(pdf, x, y, w, h, *el.Image, imgSeq); err != nil {
						return fmt.Errorf("slide %d element %s: %w", sidx+1, el.ID, err)
					}
				}
			case domain.KindIcon:
				if el.Icon != nil {
					ic := parseHexColor(el.Icon.Color, accent)
					pdf.SetDrawColor(int(ic.R), int(ic.G), int(ic.B))
					pdf.SetLineWidth(1)
					pdf.Rect(x, y, w, h, "D")
				}
			case domain.KindChart:
				if el.Chart != nil {
					pdfChart(pdf, x, y, w, h, *el.Chart, accent)
				}
			}
		}

		if opt.WithNotes {
			pdf.SetDrawColor(160, 160, 160)
			pdf.SetLineWidth(0.5)
			pdf.Line(0, pdfPageH, pdfPageW, pdfPageH)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(60, 60, 60)
			pdf.SetXY(24, pdfPageH+12)
			pdf.MultiCell(pdfPageW-48, 12, sl.Notes, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dh.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfText(pdf *gofpdf.Fpdf, x, y, w, h float64, tp domain.TextPayload) {
	fsz, ok := pdfFontSizes[tp.Size]
	if !ok {
		fsz = pdfFontSizes["body"]
	}
	style := ""
	if tp.Weight == "bold" {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, fsz)
	tc := parseHexColor(tp.Color, color.RGBA{0, 0, 0, 255})
	pdf.SetTextColor(int(tc.R), int(tc.G), int(tc.B))

	lineH := fsz * 1.25
	cy := y + fsz
	for _, para := range strings.Split(tp.Content, "\n") {
		for _, line := range pdf.SplitText(para, w) {
			if cy > y+h {
				break
			}
			lw := pdf.GetStringWidth(line)
			cx := x
			switch tp.Align {
			case "center":
				cx = x + (w-lw)/2
			case "right":
				cx = x + w - lw
			}
			pdf.Text(cx, cy, line)
			cy += lineH
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

func pdfImage(pdf *gofpdf.Fpdf, x, y, w, h float64, ip domain.ImagePayload, seq int) error {
	raw, err := base64.StdEncoding.DecodeString(ip.Base64)
	if err != nil {
		return fmt.Errorf("decode image base64: %w", err)
	}
	tp := "PNG"
	switch ip.Mime {
	case "image/jpeg", "image/jpg":
		tp = "JPG"
	case "image/gif":
		tp = "GIF"
	}
	name := fmt.Sprintf("el-img-%d", seq)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: tp}, bytes.NewReader(raw))
	if pdf.Err() {
		return fmt.Errorf("register image: %v", pdf.Error())
	}
	pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{ImageType: tp}, 0, "")
	return nil
}

func pdfChart(pdf *gofpdf.Fpdf, x, y, w, h float64, cp domain.ChartPayload, accent color.RGBA) {
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, w, h, "D")
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
	pdf.SetFillColor(int(accent.R), int(accent.G), int(accent.B))
	switch cp.Type {
	case "line":
		pdf.SetDrawColor(int(accent.R), int(accent.G), int(accent.B))
		pdf.SetLineWidth(1.5)
		n := len(cp.Values)
		for i := 1; i < n; i++ {
			x0 := x + float64(i-1)*w/float64(n-1)
			y0 := y + h - cp.Values[i-1]/maxVal*h
			x1 := x + float64(i)*w/float64(n-1)
			y1 := y + h - cp.Values[i]/maxVal*h
			pdf.Line(x0, y0, x1, y1)
		}
	default:
		n := float64(len(cp.Values))
		slot := w / n
		for i, v := range cp.Values {
			bh := v / maxVal * h
			pdf.Rect(x+float64(i)*slot+slot*0.1, y+h-bh, slot*0.8, bh, "F")
		}
	}
	if len(cp.Labels) == len(cp.Values) && cp.Type != "line" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(70, 70, 70)
		n := float64(len(cp.Values))
		slot := w / n
		for i, lbl := range cp.Labels {
			lw := pdf.GetStringWidth(lbl)
			pdf.Text(x+float64(i)*slot+(slot-lw)/2, y+h+10, lbl)
		}
		pdf.SetTextColor(0, 0, 0)
	}
}
