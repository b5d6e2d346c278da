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
	"testing"

	"slidesmith/internal/domain"
)

func TestInsertFlowHappyPath(t *testing.T) {
	var inserted []domain.Element
	var sawKind domain.ElementKind
	var sawPrompt string
	in := &Inserter{
		Generate: func(_ context.Context, kind domain.ElementKind, prompt string) (domain.Element, error) {
			sawKind, sawPrompt = kind, prompt
			return domain.Element{ID: "gen-1", Text: &domain.TextPayload{Content: "Q3 revenue"}}, nil
		},
		OnInsert: func(el domain.Element) { inserted = append(inserted, el) },
	}

	if in.State() != Browsing {
		t.Fatalf("initial state = %v, want Browsing", in.State())
	}
	in.BeginAt(50, 50)
	if in.State() != AwaitingTypeChoice {
		t.Fatalf("state after click = %v", in.State())
	}
	if err := in.ChooseKind(domain.KindText); err != nil {
		t.Fatalf("ChooseKind: %v", err)
	}
	if in.State() != AwaitingPrompt {
		t.Fatalf("state after kind choice = %v", in.State())
	}
	if err := in.SubmitPrompt(context.Background(), "revenue headline"); err != nil {
		t.Fatalf("SubmitPrompt: %v", err)
	}
	if in.State() != Browsing {
		t.Fatalf("state after insert = %v, want Browsing", in.State())
	}
	if sawKind != domain.KindText || sawPrompt != "revenue headline" {
		t.Fatalf("generator saw kind=%q prompt=%q", sawKind, sawPrompt)
	}
	if len(inserted) != 1 {
		t.Fatalf("inserted %d elements, want 1", len(inserted))
	}
	el := inserted[0]
	// Click at (50,50): text default 30x10, top-left biased to (40,45).
	if el.Frame.X != 40 || el.Frame.Y != 45 || el.Frame.W != 30 || el.Frame.H != 10 {
		t.Fatalf("inserted frame = %+v", el.Frame)
	}
	if el.Kind != domain.KindText || el.Text == nil {
		t.Fatalf("inserted element not a text element: %+v", el)
	}
}

func TestInsertGenerationFailureInsertsNothing(t *testing.T) {
	genErr := errors.New("model unavailable")
	in := &Inserter{
		Generate: func(context.Context, domain.ElementKind, string) (domain.Element, error) {
			return domain.Element{}, genErr
		},
		OnInsert: func(domain.Element) { t.Fatalf("OnInsert called on generation failure") },
	}
	in.BeginAt(10, 10)
	if err := in.ChooseKind(domain.KindImage); err != nil {
		t.Fatalf("ChooseKind: %v", err)
	}
	if err := in.SubmitPrompt(context.Background(), "a chart"); !errors.Is(err, genErr) {
		t.Fatalf("SubmitPrompt err = %v, want %v", err, genErr)
	}
	if in.State() != Browsing {
		t.Fatalf("state after failure = %v, want Browsing", in.State())
	}
}

func TestInsertOutOfOrderCallsRejected(t *testing.T) {
	in := &Inserter{}
	if err := in.ChooseKind(domain.KindText); !errors.Is(err, ErrInsertState) {
		t.Fatalf("ChooseKind while browsing: err = %v", err)
	}
	if err := in.SubmitPrompt(context.Background(), "x"); !errors.Is(err, ErrInsertState) {
		t.Fatalf("SubmitPrompt while browsing: err = %v", err)
	}
	in.BeginAt(5, 5)
	if err := in.SubmitPrompt(context.Background(), "x"); !errors.Is(err, ErrInsertState) {
		t.Fatalf("SubmitPrompt before kind choice: err = %v", err)
	}
	if err := in.ChooseKind("video"); !errors.Is(err, domain.ErrBadKind) {
		t.Fatalf("bad kind: err = %v", err)
	}
}

func TestInsertCancelAtEveryPhase(t *testing.T) {
	in := &Inserter{}
	in.BeginAt(5, 5)
	in.Cancel()
	if in.State() != Browsing {
		t.Fatalf("cancel from type choice left state %v", in.State())
	}
	in.BeginAt(5, 5)
	if err := in.ChooseKind(domain.KindIcon); err != nil {
		t.Fatalf("ChooseKind: %v", err)
	}
	in.Cancel()
	if in.State() != Browsing {
		t.Fatalf("cancel from prompt left state %v", in.State())
	}
}

func TestInsertRestartMovesClickPoint(t *testing.T) {
	in := &Inserter{}
	in.BeginAt(5, 5)
	in.BeginAt(70, 30)
	x, y := in.ClickPoint()
	if x != 70 || y != 30 {
		t.Fatalf("click point = (%v,%v), want (70,30)", x, y)
	}
	if in.State() != AwaitingTypeChoice {
		t.Fatalf("state after restart = %v", in.State())
	}
}

func TestSelectionCancelsPendingInsert(t *testing.T) {
	in := &Inserter{}
	e := &Engine{Bounds: fixedBounds(1000, 500), OnSelect: func(string) { in.Cancel() }}
	in.BeginAt(20, 20)
	e.Select("el-1")
	if in.State() != Browsing {
		t.Fatalf("selecting an element left insert state %v", in.State())
	}
}
