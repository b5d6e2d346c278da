/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for a presentation deck. Element
// geometry is stored in a normalized percentage space: X/Y/W/H are percent
// (0-100) of the slide canvas, which has a fixed 16:9 aspect ratio and whose
// pixel size is known only at render time.

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Deck is a presentation and its metadata. It serializes to a human-readable
// JSON manifest.
type Deck struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Theme    Theme    `json:"theme,omitempty"`
	Slides   []Slide  `json:"slides"`
}

// Metadata contains optional descriptive metadata for a deck.
type Metadata struct {
	Topic    string `json:"topic,omitempty"`
	Audience string `json:"audience,omitempty"`
	Author   string `json:"author,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Theme holds named styling tokens applied deck-wide. The layout and gesture
// engines treat these as opaque; only generators and exporters interpret them.
type Theme struct {
	Name       string `json:"name,omitempty"`
	Accent     string `json:"accent,omitempty"`     // hex color token, e.g. "#1a73e8"
	Background string `json:"background,omitempty"` // hex color token
	HeadingFnt string `json:"headingFont,omitempty"`
	BodyFnt    string `json:"bodyFont,omitempty"`
}

// Slide is one canvas worth of positioned elements plus speaker notes.
type Slide struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Elements []Element `json:"elements"`
}

// ElementKind discriminates the element payload variants.
type ElementKind string

const (
	KindText  ElementKind = "text"
	KindImage ElementKind = "image"
	KindIcon  ElementKind = "icon"
	KindChart ElementKind = "chart"
)

// ErrBadKind is returned where an ElementKind outside the four variants is
// supplied.
var ErrBadKind = errors.New("domain: unknown element kind")

// Valid reports whether k is one of the four element kinds.
func (k ElementKind) Valid() bool {
	switch k {
	case KindText, KindImage, KindIcon, KindChart:
		return true
	}
	return false
}

// Frame is an element's bounding box in percent of canvas width/height.
// Values may transiently leave [0,100] during a gesture; nothing in the data
// model clamps them.
type Frame struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Element is a tagged union over the four payload variants. Exactly one of
// Text/Image/Icon/Chart is non-nil and must agree with Kind; Validate checks
// this. IDs are unique within a slide and stable for the element's lifetime.
type Element struct {
	ID    string      `json:"id"`
	Kind  ElementKind `json:"kind"`
	Frame Frame       `json:"frame"`
	Z     int         `json:"z"`

	Text  *TextPayload  `json:"text,omitempty"`
	Image *ImagePayload `json:"image,omitempty"`
	Icon  *IconPayload  `json:"icon,omitempty"`
	Chart *ChartPayload `json:"chart,omitempty"`
}

// TextPayload is styled text content. Styling is expressed as theme-level
// tokens, not concrete pixel values.
type TextPayload struct {
	Content string `json:"content"`
	Size    string `json:"size,omitempty"`   // "title" | "heading" | "body" | "caption"
	Weight  string `json:"weight,omitempty"` // "normal" | "bold"
	Color   string `json:"color,omitempty"`  // hex token
	Align   string `json:"align,omitempty"`  // "left" | "center" | "right"
}

// ImagePayload carries encoded image bytes.
type ImagePayload struct {
	Base64 string `json:"base64"`
	Mime   string `json:"mime,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

// IconPayload carries vector icon markup and a color token.
type IconPayload struct {
	SVG   string `json:"svg"`
	Color string `json:"color,omitempty"`
}

// ChartPayload carries series data and a chart type.
type ChartPayload struct {
	Type   string    `json:"type"` // "bar" | "line" | "pie"
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values"`
	Series string    `json:"series,omitempty"`
}

// Validate reports whether the element's Kind matches its payload and that no
// extra payloads are set.
func (e Element) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("element has empty id")
	}
	set := 0
	if e.Text != nil {
		set++
	}
	if e.Image != nil {
		set++
	}
	if e.Icon != nil {
		set++
	}
	if e.Chart != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("element %s: expected exactly one payload, got %d", e.ID, set)
	}
	switch e.Kind {
	case KindText:
		if e.Text == nil {
			return fmt.Errorf("element %s: kind text without text payload", e.ID)
		}
	case KindImage:
		if e.Image == nil {
			return fmt.Errorf("element %s: kind image without image payload", e.ID)
		}
	case KindIcon:
		if e.Icon == nil {
			return fmt.Errorf("element %s: kind icon without icon payload", e.ID)
		}
	case KindChart:
		if e.Chart == nil {
			return fmt.Errorf("element %s: kind chart without chart payload", e.ID)
		}
	default:
		return fmt.Errorf("element %s: unknown kind %q", e.ID, e.Kind)
	}
	return nil
}

// Validate checks slide-level invariants: unique element IDs and well-formed
// elements.
func (s Slide) Validate() error {
	seen := make(map[string]struct{}, len(s.Elements))
	for _, e := range s.Elements {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("slide %s: %w", s.ID, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("slide %s: duplicate element id %s", s.ID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// UnmarshalJSON keeps the discriminant honest on load: decks edited by hand
// or produced by older versions are rejected early instead of surfacing as
// nil-pointer panics deep in rendering.
func (e *Element) UnmarshalJSON(data []byte) error {
	type raw Element
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*e = Element(r)
	return e.Validate()
}
