/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"
)

func TestClearSlideAndStats(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxPerSlide: 10, MinInterval: time.Millisecond})
	sl := "slide-7"
	m.PushSnapshot(Snapshot{SlideID: sl, Blob: []byte("abcdef"), TS: time.Now()})
	tb, slides, total := m.Stats()
	if tb == 0 || slides != 1 || total != 1 {
		t.Fatalf("unexpected stats before clear: tb=%d slides=%d total=%d", tb, slides, total)
	}
	m.ClearSlide(sl)
	tb2, slides2, total2 := m.Stats()
	if tb2 != 0 || slides2 != 0 || total2 != 0 {
		t.Fatalf("expected cleared stats to be zero, got tb=%d slides=%d total=%d", tb2, slides2, total2)
	}
}

func TestGlobalPruneAcrossSlides(t *testing.T) {
	// Very small MaxBytes so pruning triggers across slides
	m := NewManager(Config{MaxBytes: 8, MaxPerSlide: 0, MinInterval: time.Millisecond})
	t0 := time.Now()
	// Slide a: older snapshot
	m.PushSnapshot(Snapshot{SlideID: "a", Blob: []byte("xxxx"), TS: t0})
	// Slide b: newer snapshot
	m.PushSnapshot(Snapshot{SlideID: "b", Blob: []byte("yyyy"), TS: t0.Add(time.Second)})

	// Add another snapshot to exceed cap and force prune of oldest slide snapshot
	m.PushSnapshot(Snapshot{SlideID: "b", Blob: []byte("zzzz"), TS: t0.Add(2 * time.Second)})

	// After pruning, oldest (slide a) should be removed
	_, slides, total := m.Stats()
	if slides == 0 || total == 0 {
		t.Fatalf("expected some snapshots to remain")
	}
	// Undo slide a should now be empty
	if _, ok := m.Undo("a"); ok {
		t.Fatalf("expected slide a to have been pruned")
	}
	// Undo slide b should still work
	if _, ok := m.Undo("b"); !ok {
		t.Fatalf("expected slide b to have snapshots")
	}
}
