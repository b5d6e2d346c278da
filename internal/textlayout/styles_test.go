/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "testing"

func TestGetStyle_Builtins(t *testing.T) {
	for _, name := range ListStyles() {
		st, ok := GetStyle(name)
		if !ok {
			t.Fatalf("missing builtin style %q", name)
		}
		if st.Name != name {
			t.Fatalf("style %q reports name %q", name, st.Name)
		}
		if st.Font.SizePt <= 0 {
			t.Fatalf("style %q has no size", name)
		}
	}
}

func TestGetStyle_Unknown(t *testing.T) {
	if _, ok := GetStyle("banner"); ok {
		t.Fatalf("expected miss for unknown style")
	}
}

func TestListStyles_OrderedLargestFirst(t *testing.T) {
	names := ListStyles()
	if len(names) != 4 {
		t.Fatalf("expected 4 builtins, got %d", len(names))
	}
	prev := float32(0)
	for i, name := range names {
		st, _ := GetStyle(name)
		if i > 0 && st.Font.SizePt >= prev {
			t.Fatalf("expected descending sizes, %q (%v) after %v", name, st.Font.SizePt, prev)
		}
		prev = st.Font.SizePt
	}
}
