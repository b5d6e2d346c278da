/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestExportDeckPNGSlides_WritesAllSlides(t *testing.T) {
	dh := newTestDeck(t)
	if err := ExportDeckPNGSlides(dh, "png-out", PNGOptions{Width: 320}); err != nil {
		t.Fatalf("export: %v", err)
	}
	outDir := filepath.Join(dh.Root, "exports", "png-out")
	for i := 1; i <= 2; i++ {
		p := filepath.Join(outDir, fmt.Sprintf("slide-%d.png", i))
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", p, err)
		}
		cfg, err := png.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if cfg.Width != 320 || cfg.Height != 180 {
			t.Fatalf("slide %d: got %dx%d, want 320x180", i, cfg.Width, cfg.Height)
		}
	}
}

func TestExportDeckPNGSlides_SubsetAndBadIndex(t *testing.T) {
	dh := newTestDeck(t)
	if err := ExportDeckPNGSlides(dh, "subset", PNGOptions{Width: 160, Slides: []int{1, 99}}); err != nil {
		t.Fatalf("export: %v", err)
	}
	outDir := filepath.Join(dh.Root, "exports", "subset")
	if _, err := os.Stat(filepath.Join(outDir, "slide-2.png")); err != nil {
		t.Fatalf("expected slide-2.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "slide-1.png")); err == nil {
		t.Fatalf("slide-1.png should not exist for subset export")
	}
}

func TestExportDeckPNGSlides_NilHandle(t *testing.T) {
	if err := ExportDeckPNGSlides(nil, "x", PNGOptions{}); err == nil {
		t.Fatalf("expected error for nil handle")
	}
}
