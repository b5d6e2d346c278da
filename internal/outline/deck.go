/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package outline

import (
	"strings"

	"github.com/google/uuid"

	"slidesmith/internal/domain"
)

// Default scaffold geometry in canvas percent. The title band sits across
// the top, the body block under it. Later edits move these freely.
var (
	titleFrame = domain.Frame{X: 5, Y: 6, W: 90, H: 14}
	bodyFrame  = domain.Frame{X: 5, Y: 26, W: 90, H: 62}
)

// ToSlides converts a parsed outline into scaffolded slides: one title text
// element and, when bullets exist, one body text element per slide. Visual
// hints are not materialized here; generation fills them in later.
func ToSlides(o Outline) []domain.Slide {
	slides := make([]domain.Slide, 0, len(o.Slides))
	for _, os := range o.Slides {
		sl := domain.Slide{
			ID:       uuid.NewString(),
			Title:    os.Title,
			Notes:    os.Notes,
			Elements: []domain.Element{},
		}
		z := 0
		if t := strings.TrimSpace(os.Title); t != "" {
			sl.Elements = append(sl.Elements, domain.Element{
				ID:    uuid.NewString(),
				Kind:  domain.KindText,
				Frame: titleFrame,
				Z:     z,
				Text:  &domain.TextPayload{Content: t, Size: "title", Weight: "bold"},
			})
			z++
		}
		if len(os.Bullets) > 0 {
			body := "• " + strings.Join(os.Bullets, "\n• ")
			sl.Elements = append(sl.Elements, domain.Element{
				ID:    uuid.NewString(),
				Kind:  domain.KindText,
				Frame: bodyFrame,
				Z:     z,
				Text:  &domain.TextPayload{Content: body, Size: "body"},
			})
		}
		slides = append(slides, sl)
	}
	return slides
}
