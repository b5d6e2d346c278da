/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"testing"
)

func textEl(id string) Element {
	return Element{ID: id, Kind: KindText, Frame: Frame{X: 10, Y: 10, W: 30, H: 10},
		Text: &TextPayload{Content: "hello", Size: "body"}}
}

func TestElementValidateKindMatchesPayload(t *testing.T) {
	e := textEl("e1")
	if err := e.Validate(); err != nil {
		t.Fatalf("valid element rejected: %v", err)
	}

	e.Kind = KindImage
	if err := e.Validate(); err == nil {
		t.Fatalf("kind/payload mismatch accepted")
	}

	e = textEl("e2")
	e.Chart = &ChartPayload{Type: "bar", Values: []float64{1}}
	if err := e.Validate(); err == nil {
		t.Fatalf("two payloads accepted")
	}

	e = Element{ID: "e3", Kind: KindText}
	if err := e.Validate(); err == nil {
		t.Fatalf("missing payload accepted")
	}
}

func TestSlideValidateRejectsDuplicateIDs(t *testing.T) {
	s := Slide{ID: "s1", Elements: []Element{textEl("a"), textEl("a")}}
	if err := s.Validate(); err == nil {
		t.Fatalf("duplicate ids accepted")
	}
	s = Slide{ID: "s1", Elements: []Element{textEl("a"), textEl("b")}}
	if err := s.Validate(); err != nil {
		t.Fatalf("valid slide rejected: %v", err)
	}
}

func TestElementJSONRoundTrip(t *testing.T) {
	e := Element{ID: "c1", Kind: KindChart, Frame: Frame{X: 5, Y: 5, W: 40, H: 30}, Z: 2,
		Chart: &ChartPayload{Type: "bar", Labels: []string{"a", "b"}, Values: []float64{1, 2}}}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Element
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind != KindChart || back.Chart == nil || len(back.Chart.Values) != 2 {
		t.Fatalf("round trip lost payload: %+v", back)
	}
	if back.Frame != e.Frame {
		t.Fatalf("frame mismatch: %+v != %+v", back.Frame, e.Frame)
	}
}

func TestElementJSONRejectsMismatchedKind(t *testing.T) {
	// Kind says icon but payload is text
	raw := `{"id":"x","kind":"icon","frame":{"x":0,"y":0,"w":10,"h":10},"text":{"content":"hi"}}`
	var e Element
	if err := json.Unmarshal([]byte(raw), &e); err == nil {
		t.Fatalf("mismatched kind accepted on unmarshal")
	}
}
