/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"slidesmith/internal/domain"
	"slidesmith/internal/layout"
)

// AddSlide appends a new slide with the given title. If slide.ID is empty a
// UUID is assigned. Returns the created slide.
func AddSlide(dh *DeckHandle, slide domain.Slide) (domain.Slide, error) {
	if dh == nil {
		return domain.Slide{}, fmt.Errorf("deck handle is nil")
	}
	if slide.ID == "" {
		slide.ID = uuid.NewString()
	} else {
		for _, s := range dh.Deck.Slides {
			if s.ID == slide.ID {
				return domain.Slide{}, fmt.Errorf("slide id %s already exists", slide.ID)
			}
		}
	}
	if slide.Elements == nil {
		slide.Elements = []domain.Element{}
	}
	dh.Deck.Slides = append(dh.Deck.Slides, slide)
	return slide, nil
}

// RemoveSlide deletes the slide with the given id.
func RemoveSlide(dh *DeckHandle, slideID string) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	for i, s := range dh.Deck.Slides {
		if s.ID == slideID {
			dh.Deck.Slides = append(dh.Deck.Slides[:i], dh.Deck.Slides[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("slide %s not found", slideID)
}

// findSlide returns a pointer into the deck's slide slice, or an error.
func findSlide(dh *DeckHandle, slideID string) (*domain.Slide, error) {
	if dh == nil {
		return nil, fmt.Errorf("deck handle is nil")
	}
	for i := range dh.Deck.Slides {
		if dh.Deck.Slides[i].ID == slideID {
			return &dh.Deck.Slides[i], nil
		}
	}
	return nil, fmt.Errorf("slide %s not found", slideID)
}

// AddElement appends an element to the slide. If el.ID is empty a UUID is
// assigned; if its frame is zero-sized the kind's default frame anchored at
// (atX, atY) percent is used. Z is assigned after the current topmost.
// Returns the created element.
func AddElement(dh *DeckHandle, slideID string, el domain.Element, atX, atY float64) (domain.Element, error) {
	sl, err := findSlide(dh, slideID)
	if err != nil {
		return domain.Element{}, err
	}
	if el.ID == "" {
		el.ID = uuid.NewString()
	} else {
		for _, e := range sl.Elements {
			if e.ID == el.ID {
				return domain.Element{}, fmt.Errorf("element id %s already exists on slide %s", el.ID, slideID)
			}
		}
	}
	if el.Frame.W <= 0 || el.Frame.H <= 0 {
		el.Frame = layout.InsertAt(atX, atY, el.Kind)
	}
	maxZ := -1
	for _, e := range sl.Elements {
		if e.Z > maxZ {
			maxZ = e.Z
		}
	}
	el.Z = maxZ + 1
	if err := el.Validate(); err != nil {
		return domain.Element{}, err
	}
	sl.Elements = append(sl.Elements, el)
	return el, nil
}

// findElement returns slide pointer, element index and pointer, or error.
func findElement(dh *DeckHandle, slideID, elementID string) (*domain.Slide, int, *domain.Element, error) {
	sl, err := findSlide(dh, slideID)
	if err != nil {
		return nil, -1, nil, err
	}
	for k := range sl.Elements {
		if sl.Elements[k].ID == elementID {
			return sl, k, &sl.Elements[k], nil
		}
	}
	return sl, -1, nil, fmt.Errorf("element %s not found on slide %s", elementID, slideID)
}

// RemoveElement deletes the element and re-densifies Z so remaining elements
// keep a 0..n-1 stacking order.
func RemoveElement(dh *DeckHandle, slideID, elementID string) error {
	sl, idx, _, err := findElement(dh, slideID, elementID)
	if err != nil {
		return err
	}
	sl.Elements = append(sl.Elements[:idx], sl.Elements[idx+1:]...)
	sort.Slice(sl.Elements, func(i, j int) bool { return sl.Elements[i].Z < sl.Elements[j].Z })
	for i := range sl.Elements {
		sl.Elements[i].Z = i
	}
	return nil
}

// SetElementFrame replaces the element's geometry wholesale. Gesture hosts
// call this once per geometry notification; no clamping happens here.
func SetElementFrame(dh *DeckHandle, slideID, elementID string, f domain.Frame) error {
	_, _, el, err := findElement(dh, slideID, elementID)
	if err != nil {
		return err
	}
	el.Frame = f
	return nil
}

// MoveElementZ moves the element up or down in stacking order by delta
// (+1 toward the front, -1 toward the back). It adjusts other elements' Z to
// keep a dense sequence starting at 0, then resorts the slice by Z.
func MoveElementZ(dh *DeckHandle, slideID, elementID string, delta int) error {
	sl, _, el, err := findElement(dh, slideID, elementID)
	if err != nil {
		return err
	}
	order := make([]*domain.Element, len(sl.Elements))
	for i := range sl.Elements {
		order[i] = &sl.Elements[i]
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Z < order[j].Z })
	idx := -1
	for i, e := range order {
		if e == el {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("internal: element not in order list")
	}
	newIdx := idx + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(order) {
		newIdx = len(order) - 1
	}
	if newIdx == idx {
		return nil
	}
	e := order[idx]
	if newIdx < idx {
		copy(order[newIdx+1:idx+1], order[newIdx:idx])
		order[newIdx] = e
	} else {
		copy(order[idx:newIdx], order[idx+1:newIdx+1])
		order[newIdx] = e
	}
	for i, it := range order {
		it.Z = i
	}
	// keep slice order matching Z for deterministic serialization
	sort.Slice(sl.Elements, func(i, j int) bool { return sl.Elements[i].Z < sl.Elements[j].Z })
	return nil
}

// FramePatch is one geometry assignment from a layout regeneration response.
type FramePatch struct {
	ElementID string       `json:"id"`
	Frame     domain.Frame `json:"frame"`
}

// ApplyLayoutPatches merges regenerated geometry into the slide by element id.
// Only frames move: content payloads are never touched, and patches naming
// unknown ids are skipped and reported. This is the trust boundary for
// model-produced layout: the model proposes positions, never content.
func ApplyLayoutPatches(dh *DeckHandle, slideID string, patches []FramePatch) (skipped []string, err error) {
	sl, err := findSlide(dh, slideID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Element, len(sl.Elements))
	for i := range sl.Elements {
		byID[sl.Elements[i].ID] = &sl.Elements[i]
	}
	for _, p := range patches {
		el, ok := byID[p.ElementID]
		if !ok {
			skipped = append(skipped, p.ElementID)
			continue
		}
		el.Frame = p.Frame
	}
	return skipped, nil
}

// UpdateSlideMeta updates a slide's title and speaker notes.
func UpdateSlideMeta(dh *DeckHandle, slideID, title, notes string) error {
	sl, err := findSlide(dh, slideID)
	if err != nil {
		return err
	}
	sl.Title = title
	sl.Notes = notes
	return nil
}
