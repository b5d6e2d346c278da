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

	"slidesmith/internal/storage"
)

// PNGOptions controls PNG export behavior.
// - Width: output pixel width; height follows the 16:9 canvas. Zero uses DefaultRenderWidth.
// - Slides: zero-based indices; empty exports all.
type PNGOptions struct {
	Width  int
	Slides []int
}

// ExportDeckPNGSlides writes one PNG per slide named slide-<n>.png under
// outDir. A relative outDir is resolved beneath the deck's exports folder.
func ExportDeckPNGSlides(dh *storage.DeckHandle, outDir string, opt PNGOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
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
		sl := dh.Deck.Slides[sidx]
		img, err := RenderSlide(dh.Deck, sl, opt.Width)
		if err != nil {
			return fmt.Errorf("render slide %d: %w", sidx+1, err)
		}
		name := filepath.Join(outDir, fmt.Sprintf("slide-%d.png", sidx+1))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

func slideIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}
