/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"context"
	"errors"

	"slidesmith/internal/domain"
	"slidesmith/internal/layout"
)

// InsertState is the insertion affordance's phase.
type InsertState int

const (
	// Browsing: no insertion in progress.
	Browsing InsertState = iota
	// AwaitingTypeChoice: empty canvas area was clicked; the type picker is up.
	AwaitingTypeChoice
	// AwaitingPrompt: an element type was chosen; the prompt field is up.
	AwaitingPrompt
	// Generating: the prompt was submitted; content is being produced.
	Generating
)

func (s InsertState) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case AwaitingTypeChoice:
		return "awaiting-type"
	case AwaitingPrompt:
		return "awaiting-prompt"
	case Generating:
		return "generating"
	}
	return "invalid"
}

// ErrInsertState is returned when an Inserter call does not match its state.
var ErrInsertState = errors.New("gesture: insertion affordance not in expected state")

// Inserter runs the click-to-insert affordance: click empty canvas, pick an
// element type, describe it, and a generated element lands near the click.
// Like Engine it is single-threaded; SubmitPrompt blocks while generating.
type Inserter struct {
	// Generate produces an element of the given kind for the prompt. The
	// returned element's payload and kind are used; its frame is replaced
	// with a default-sized frame anchored near the remembered click point.
	// Required.
	Generate func(ctx context.Context, kind domain.ElementKind, prompt string) (domain.Element, error)
	// OnInsert appends the finished element to the current slide. Required.
	OnInsert func(el domain.Element)

	state  InsertState
	clickX float64
	clickY float64
	kind   domain.ElementKind
}

// State returns the affordance's current phase.
func (in *Inserter) State() InsertState { return in.state }

// ClickPoint returns the remembered canvas-percent click coordinates.
// Meaningful only while an insertion is in progress.
func (in *Inserter) ClickPoint() (x, y float64) { return in.clickX, in.clickY }

// BeginAt records a click on empty canvas at percent coordinates and raises
// the type picker. A click while a previous insertion is pending restarts
// the flow at the new point.
func (in *Inserter) BeginAt(x, y float64) {
	in.clickX, in.clickY = x, y
	in.kind = ""
	in.state = AwaitingTypeChoice
}

// ChooseKind advances from the type picker to the prompt field.
func (in *Inserter) ChooseKind(kind domain.ElementKind) error {
	if in.state != AwaitingTypeChoice {
		return ErrInsertState
	}
	if !kind.Valid() {
		return domain.ErrBadKind
	}
	in.kind = kind
	in.state = AwaitingPrompt
	return nil
}

// SubmitPrompt generates the element and inserts it at the remembered click
// point with the kind's default size. On success or failure the affordance
// returns to Browsing; a failure inserts nothing and the error is returned
// for the host to surface.
func (in *Inserter) SubmitPrompt(ctx context.Context, prompt string) error {
	if in.state != AwaitingPrompt {
		return ErrInsertState
	}
	in.state = Generating
	el, err := in.Generate(ctx, in.kind, prompt)
	in.state = Browsing
	if err != nil {
		return err
	}
	el.Kind = in.kind
	el.Frame = layout.InsertAt(in.clickX, in.clickY, in.kind)
	in.OnInsert(el)
	return nil
}

// Cancel aborts a pending insertion at any phase. Hosts call it on Escape,
// on a click elsewhere, and whenever the selection changes.
func (in *Inserter) Cancel() {
	in.state = Browsing
	in.kind = ""
	in.clickX, in.clickY = 0, 0
}
