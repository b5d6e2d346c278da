/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "testing"

func TestRegisterBytesRejectsGarbage(t *testing.T) {
	fl := NewFontLibrary()
	if err := fl.RegisterBytes("Bogus", 400, false, []byte("not a font")); err == nil {
		t.Fatalf("expected parse error for garbage font data")
	}
}

func TestFindOnEmptyLibrary(t *testing.T) {
	fl := NewFontLibrary()
	if f := fl.find(FontSpec{Family: "Inter", Weight: 400}); f != nil {
		t.Fatalf("expected nil for empty library")
	}
	var nilLib *FontLibrary
	if f := nilLib.find(FontSpec{Family: "Inter"}); f != nil {
		t.Fatalf("expected nil for nil library")
	}
}

func TestOTProviderFallsBack(t *testing.T) {
	p := OTProvider{Lib: NewFontLibrary()}
	face, met := p.Resolve(FontSpec{Family: "Nope", SizePt: 24})
	if face == nil {
		t.Fatalf("expected fallback face")
	}
	if met.Ascent <= 0 {
		t.Fatalf("expected positive fallback metrics: %+v", met)
	}
}
