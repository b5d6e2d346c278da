/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"slidesmith/internal/domain"
)

func TestExportDeckPPTX_ProducesOpenXMLPackage(t *testing.T) {
	dh := newTestDeck(t)
	if err := ExportDeckPPTX(dh, "deck", PPTXOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := filepath.Join(dh.Root, "exports", "deck.pptx")
	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("pptx is not a readable zip: %v", err)
	}
	defer func() { _ = zr.Close() }()
	var hasContentTypes, hasPresentation bool
	for _, f := range zr.File {
		switch f.Name {
		case "[Content_Types].xml":
			hasContentTypes = true
		case "ppt/presentation.xml":
			hasPresentation = true
		}
	}
	if !hasContentTypes || !hasPresentation {
		t.Fatalf("missing OpenXML parts (content types %v, presentation %v)", hasContentTypes, hasPresentation)
	}
}

func TestExportDeckPPTX_SlideSubset(t *testing.T) {
	dh := newTestDeck(t)
	if err := ExportDeckPPTX(dh, "one.pptx", PPTXOptions{Slides: []int{1}}); err != nil {
		t.Fatalf("export: %v", err)
	}
	zr, err := zip.OpenReader(filepath.Join(dh.Root, "exports", "one.pptx"))
	if err != nil {
		t.Fatalf("open pptx: %v", err)
	}
	defer func() { _ = zr.Close() }()
	slides := 0
	for _, f := range zr.File {
		if filepath.Dir(f.Name) == "ppt/slides" && filepath.Ext(f.Name) == ".xml" {
			slides++
		}
	}
	if slides != 1 {
		t.Fatalf("expected 1 slide part, found %d", slides)
	}
}

func TestFrameToEMU(t *testing.T) {
	x, y, w, h := frameToEMU(domain.Frame{X: 10, Y: 20, W: 50, H: 25})
	if x != int64(1.0*emuPerInch) {
		t.Fatalf("x = %d, want %d", x, int64(1.0*emuPerInch))
	}
	if y != int64(0.2*5.625*emuPerInch) {
		t.Fatalf("y = %d", y)
	}
	if w != int64(5.0*emuPerInch) {
		t.Fatalf("w = %d", w)
	}
	if h != int64(0.25*5.625*emuPerInch) {
		t.Fatalf("h = %d", h)
	}
}

func TestPPTXARGB(t *testing.T) {
	if got := pptxARGB("#1a73e8", "FF000000"); got != "FF1A73E8" {
		t.Fatalf("got %s", got)
	}
	if got := pptxARGB("", "FF112233"); got != "FF112233" {
		t.Fatalf("fallback got %s", got)
	}
}
