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
	"testing"

	"slidesmith/internal/domain"
)

const sampleOutline = `# Product Launch

## 1. Why Now
- Market window is open
- Competitors shipped
  nothing in two quarters
Notes: keep this under a minute

## Roadmap
* Beta in March
* GA in June
[chart: bar]
; rehearse the GA date

Slide: Questions
`

func TestParseHeadingsBulletsNotesHints(t *testing.T) {
	o, errs := Parse(sampleOutline)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %+v", errs)
	}
	if o.Title != "Product Launch" {
		t.Fatalf("deck title = %q", o.Title)
	}
	if len(o.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d: %+v", len(o.Slides), o.Slides)
	}
	s1 := o.Slides[0]
	if s1.Title != "Why Now" {
		t.Fatalf("slide 1 title = %q (number prefix not stripped?)", s1.Title)
	}
	if len(s1.Bullets) != 2 {
		t.Fatalf("slide 1 bullets = %v", s1.Bullets)
	}
	if !strings.Contains(s1.Bullets[1], "nothing in two quarters") {
		t.Fatalf("continuation not merged: %q", s1.Bullets[1])
	}
	if s1.Notes != "keep this under a minute" {
		t.Fatalf("slide 1 notes = %q", s1.Notes)
	}
	s2 := o.Slides[1]
	if len(s2.Hints) != 1 || s2.Hints[0] != "chart: bar" {
		t.Fatalf("slide 2 hints = %v", s2.Hints)
	}
	if s2.Notes != "rehearse the GA date" {
		t.Fatalf("slide 2 notes = %q", s2.Notes)
	}
	if o.Slides[2].Title != "Questions" {
		t.Fatalf("slide 3 title = %q", o.Slides[2].Title)
	}
}

func TestParseImplicitSlideFromLooseText(t *testing.T) {
	o, _ := Parse("just a line of text\n- with a bullet\n")
	if len(o.Slides) != 1 {
		t.Fatalf("expected 1 implicit slide, got %d", len(o.Slides))
	}
	if o.Slides[0].Title != "just a line of text" || len(o.Slides[0].Bullets) != 1 {
		t.Fatalf("implicit slide = %+v", o.Slides[0])
	}
}

func TestParseDeckPrefix(t *testing.T) {
	o, _ := Parse("Deck: Weekly Sync\n## Agenda\n- one\n")
	if o.Title != "Weekly Sync" {
		t.Fatalf("deck title = %q", o.Title)
	}
}

func TestParseEmptyInput(t *testing.T) {
	o, errs := Parse("")
	if len(errs) != 0 || len(o.Slides) != 0 || o.Title != "" {
		t.Fatalf("empty input: %+v errs=%+v", o, errs)
	}
}

func TestToSlidesScaffold(t *testing.T) {
	o, _ := Parse(sampleOutline)
	slides := ToSlides(o)
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	s1 := slides[0]
	if s1.ID == "" || s1.Title != "Why Now" || s1.Notes == "" {
		t.Fatalf("slide meta: %+v", s1)
	}
	if len(s1.Elements) != 2 {
		t.Fatalf("expected title+body elements, got %d", len(s1.Elements))
	}
	title, body := s1.Elements[0], s1.Elements[1]
	if title.Kind != domain.KindText || title.Text.Weight != "bold" || title.Z != 0 {
		t.Fatalf("title element: %+v", title)
	}
	if body.Z != 1 || !strings.Contains(body.Text.Content, "Market window") {
		t.Fatalf("body element: %+v", body)
	}
	if err := s1.Validate(); err != nil {
		t.Fatalf("scaffolded slide invalid: %v", err)
	}
	// A slide with no bullets only gets a title element
	if n := len(slides[2].Elements); n != 1 {
		t.Fatalf("questions slide elements = %d", n)
	}
}
