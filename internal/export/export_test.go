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
	"image"
	"image/color"
	"image/png"
	"testing"

	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

// tinyPNGBase64 encodes a small solid-red PNG for image payloads.
func tinyPNGBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{200, 30, 30, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// newTestDeck scaffolds a two-slide deck exercising all element kinds.
func newTestDeck(t *testing.T) *storage.DeckHandle {
	t.Helper()
	deck := domain.Deck{
		Name: "Quarterly Review",
		Metadata: domain.Metadata{
			Topic:  "Q3 results",
			Author: "Dana",
		},
		Theme: domain.Theme{
			Accent:     "#1a73e8",
			Background: "#ffffff",
		},
		Slides: []domain.Slide{
			{
				ID:    "s1",
				Title: "Opening",
				Notes: "Welcome everyone and set the agenda.",
				Elements: []domain.Element{
					{
						ID: "e1", Kind: domain.KindText, Z: 0,
						Frame: domain.Frame{X: 5, Y: 6, W: 90, H: 14},
						Text:  &domain.TextPayload{Content: "Quarterly Review", Size: "title", Weight: "bold", Align: "center"},
					},
					{
						ID: "e2", Kind: domain.KindText, Z: 1,
						Frame: domain.Frame{X: 5, Y: 26, W: 60, H: 40},
						Text:  &domain.TextPayload{Content: "Revenue up\nChurn down", Size: "body"},
					},
					{
						ID: "e3", Kind: domain.KindImage, Z: 2,
						Frame: domain.Frame{X: 70, Y: 30, W: 25, H: 35},
						Image: &domain.ImagePayload{Base64: tinyPNGBase64(t), Mime: "image/png", Alt: "team photo"},
					},
				},
			},
			{
				ID:    "s2",
				Title: "Numbers",
				Elements: []domain.Element{
					{
						ID: "c1", Kind: domain.KindChart, Z: 0,
						Frame: domain.Frame{X: 10, Y: 20, W: 55, H: 55},
						Chart: &domain.ChartPayload{Type: "bar", Labels: []string{"Jul", "Aug", "Sep"}, Values: []float64{3, 7, 5}},
					},
					{
						ID: "i1", Kind: domain.KindIcon, Z: 1,
						Frame: domain.Frame{X: 75, Y: 20, W: 12, H: 18},
						Icon:  &domain.IconPayload{SVG: `<svg viewBox="0 0 24 24"><circle cx="12" cy="12" r="10"/></svg>`, Color: "#16a34a"},
					},
				},
			},
		},
	}
	dh, err := storage.InitDeck(t.TempDir(), deck)
	if err != nil {
		t.Fatalf("init deck: %v", err)
	}
	return dh
}
