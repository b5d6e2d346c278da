/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// TextStyle represents a reusable text style preset combining a font spec
// with layout parameters. Tracking and Leading are measured in pixels.
//
// Kerning is applied by default by the text engine (font.Drawer / Face.Kern).
// We keep it always-on for deterministic results at this stage.

type TextStyle struct {
	Name     string
	Font     FontSpec
	Tracking float32 // px between glyphs (added per inter-glyph gap)
	Leading  float32 // extra px added to line height
}

// Builtin presets mirror the four text size tokens elements carry. Sizes are
// in points at the 96-dpi editing view; exporters rescale per backend.
var builtinStyles = map[string]TextStyle{
	"title": {
		Name:    "title",
		Font:    FontSpec{Family: "Inter", SizePt: 36, Weight: 700},
		Leading: 4.0,
	},
	"heading": {
		Name:    "heading",
		Font:    FontSpec{Family: "Inter", SizePt: 24, Weight: 600},
		Leading: 3.0,
	},
	"body": {
		Name:    "body",
		Font:    FontSpec{Family: "Inter", SizePt: 16, Weight: 400},
		Leading: 2.0,
	},
	"caption": {
		Name:     "caption",
		Font:     FontSpec{Family: "Inter", SizePt: 11, Weight: 400, Italic: true},
		Tracking: 0.25,
		Leading:  1.0,
	},
}

// GetStyle returns a builtin style preset by name. The second return value is
// false if the style is not found.
func GetStyle(name string) (TextStyle, bool) { s, ok := builtinStyles[name]; return s, ok }

// ListStyles lists the names of the builtin styles in stable order.
func ListStyles() []string {
	return []string{"title", "heading", "body", "caption"}
}
