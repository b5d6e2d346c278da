/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportDeckSVGSlides_WritesMarkup(t *testing.T) {
	dh := newTestDeck(t)
	if err := ExportDeckSVGSlides(dh, "svg-out", SVGOptions{Width: 800}); err != nil {
		t.Fatalf("export: %v", err)
	}
	outDir := filepath.Join(dh.Root, "exports", "svg-out")

	data, err := os.ReadFile(filepath.Join(outDir, "slide-1.svg"))
	if err != nil {
		t.Fatalf("read slide-1.svg: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `viewBox="0 0 1600 900"`) {
		t.Fatalf("missing viewBox: %s", s[:200])
	}
	if !strings.Contains(s, `width="800px"`) || !strings.Contains(s, `height="450px"`) {
		t.Fatalf("missing pixel dimensions")
	}
	if !strings.Contains(s, "Quarterly Review") {
		t.Fatalf("title text missing")
	}
	if !strings.Contains(s, "data:image/png;base64,") {
		t.Fatalf("image payload not embedded as data URI")
	}
	// newline in the body text becomes two stacked <text> lines
	if !strings.Contains(s, "Revenue up") || !strings.Contains(s, "Churn down") {
		t.Fatalf("multiline text not emitted per line")
	}

	data, err = os.ReadFile(filepath.Join(outDir, "slide-2.svg"))
	if err != nil {
		t.Fatalf("read slide-2.svg: %v", err)
	}
	s = string(data)
	if !strings.Contains(s, "<circle") {
		t.Fatalf("icon markup not carried through")
	}
	if strings.Count(s, `fill="#16a34a"`) == 0 && !strings.Contains(s, `color="#16a34a"`) {
		t.Fatalf("icon color token missing")
	}
	// three bars plus their labels
	if strings.Count(s, "<rect") < 4 {
		t.Fatalf("expected chart frame plus bars, got: %s", s)
	}
	for _, lbl := range []string{"Jul", "Aug", "Sep"} {
		if !strings.Contains(s, lbl) {
			t.Fatalf("missing chart label %s", lbl)
		}
	}
}

func TestExportDeckSVGSlides_TextEscaping(t *testing.T) {
	dh := newTestDeck(t)
	dh.Deck.Slides[0].Elements[0].Text.Content = "Profit & Loss <2026>"
	if err := ExportDeckSVGSlides(dh, "esc", SVGOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dh.Root, "exports", "esc", "slide-1.svg"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "Profit &amp; Loss &lt;2026&gt;") {
		t.Fatalf("text not escaped: %s", s)
	}
}
