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
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"slidesmith/internal/storage"
)

// ArchiveOptions controls ZIP export behavior. Slides are rendered as PNG and
// packaged together with a small JSON manifest describing the deck.
type ArchiveOptions struct {
	Width  int
	Slides []int
}

type archiveManifest struct {
	Name   string `json:"name"`
	Author string `json:"author,omitempty"`
	Topic  string `json:"topic,omitempty"`
	Slides int    `json:"slides"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ExportDeckArchive packages rendered slide PNGs into a single ZIP at outPath.
func ExportDeckArchive(dh *storage.DeckHandle, outPath string, opt ArchiveOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	width := opt.Width
	if width <= 0 {
		width = DefaultRenderWidth
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dh.Root, "exports", outPath)
	}
	if !strings.HasSuffix(strings.ToLower(outPath), ".zip") {
		outPath += ".zip"
	}

	zw, f, err := createZip(outPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	slides := slideIndexes(len(dh.Deck.Slides), opt.Slides)
	pad := numberPad(len(slides))
	imgBuf := &bytes.Buffer{}
	count := 0
	for _, sidx := range slides {
		if sidx < 0 || sidx >= len(dh.Deck.Slides) {
			continue
		}
		img, err := RenderSlide(dh.Deck, dh.Deck.Slides[sidx], width)
		if err != nil {
			return fmt.Errorf("render slide %d: %w", sidx+1, err)
		}
		imgBuf.Reset()
		if err := png.Encode(imgBuf, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		name := fmt.Sprintf("slides/%0*d.png", pad, sidx+1)
		if err := addZipFile(zw, name, imgBuf.Bytes()); err != nil {
			return fmt.Errorf("zip add image: %w", err)
		}
		count++
	}

	man, err := json.MarshalIndent(archiveManifest{
		Name:   dh.Deck.Name,
		Author: dh.Deck.Metadata.Author,
		Topic:  dh.Deck.Metadata.Topic,
		Slides: count,
		Width:  width,
		Height: HeightForWidth(width),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}
	if err := addZipFile(zw, "deck-info.json", man); err != nil {
		return fmt.Errorf("zip add manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func numberPad(n int) int {
	switch {
	case n >= 1000:
		return 4
	case n >= 100:
		return 3
	case n >= 10:
		return 2
	default:
		return 1
	}
}

func createZip(outPath string) (*zip.Writer, *os.File, error) {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create zip: %w", err)
	}
	return zip.NewWriter(f), f, nil
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
