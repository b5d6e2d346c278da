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
	"sync"
	"time"
)

// Snapshot represents a reversible state blob for a slide.
// Blob content is opaque to the manager; size is estimated as len(Blob).
// TS is when the snapshot was captured.
type Snapshot struct {
	SlideID string
	Blob    []byte
	TS      time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; older entries are pruned when exceeded.
	MaxBytes int
	// MaxPerSlide limits number of snapshots per slide kept in memory (0 means unlimited).
	MaxPerSlide int
	// MinInterval coalesces snapshots captured within the interval for the same slide,
	// replacing the previous one instead of pushing a new entry. Gesture move streams
	// would otherwise flood the stack with one entry per pointer event.
	MinInterval time.Duration
}

// Manager provides an in-memory undo/redo stack per slide with performance safeguards.
// It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex
	// per-slide stacks
	undo map[string][]Snapshot
	redo map[string][]Snapshot
	// accounting
	totalBytes int
}

func NewManager(cfg Config) *Manager {
	// Set conservative defaults if not provided
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Snapshot), redo: make(map[string][]Snapshot)}
}

// PushSnapshot records a snapshot for a slide. If within MinInterval from the last
// snapshot on the same slide, it replaces the last one. Clears redo stack for that slide.
func (m *Manager) PushSnapshot(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.SlideID]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			// Coalesce: adjust accounting and replace
			m.totalBytes -= len(last.Blob)
			m.totalBytes += len(s.Blob)
			stack[n-1] = s
			m.undo[s.SlideID] = stack
			m.redo[s.SlideID] = nil
			m.enforceCapsLocked(s.SlideID)
			return
		}
	}
	// Push new
	stack = append(stack, s)
	m.undo[s.SlideID] = stack
	m.totalBytes += len(s.Blob)
	// Any new change invalidates redo for the slide
	m.redo[s.SlideID] = nil
	m.enforceCapsLocked(s.SlideID)
}

// Undo pops from the slide undo stack and pushes to redo stack, returning the snapshot.
func (m *Manager) Undo(slideID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[slideID]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[slideID] = stack[:len(stack)-1]
	m.totalBytes -= len(s.Blob)
	m.redo[slideID] = append(m.redo[slideID], s)
	return s, true
}

// Redo pops from redo and pushes back to undo.
func (m *Manager) Redo(slideID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[slideID]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[slideID] = r[:len(r)-1]
	m.undo[slideID] = append(m.undo[slideID], s)
	m.totalBytes += len(s.Blob)
	m.enforceCapsLocked(slideID)
	return s, true
}

// ClearSlide clears undo/redo stacks for a slide to free memory, e.g. after
// the slide is deleted from the deck.
func (m *Manager) ClearSlide(slideID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[slideID] {
		m.totalBytes -= len(s.Blob)
	}
	delete(m.undo, slideID)
	delete(m.redo, slideID)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, slides int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slides = len(m.undo)
	for _, v := range m.undo {
		totalSnapshots += len(v)
	}
	return m.totalBytes, slides, totalSnapshots
}

func (m *Manager) enforceCapsLocked(slideID string) {
	// Per-slide depth cap
	if m.cfg.MaxPerSlide > 0 {
		stack := m.undo[slideID]
		if len(stack) > m.cfg.MaxPerSlide {
			// drop the oldest extras
			toDrop := len(stack) - m.cfg.MaxPerSlide
			for i := 0; i < toDrop; i++ {
				m.totalBytes -= len(stack[i].Blob)
			}
			m.undo[slideID] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global memory cap: prune oldest across all slides
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes {
		oldestSlide := ""
		oldestIdx := -1
		var oldestTS time.Time
		for id, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if oldestIdx == -1 || stack[0].TS.Before(oldestTS) {
				oldestSlide = id
				oldestIdx = 0
				oldestTS = stack[0].TS
			}
		}
		if oldestIdx == -1 {
			break
		}
		stack := m.undo[oldestSlide]
		m.totalBytes -= len(stack[0].Blob)
		m.undo[oldestSlide] = stack[1:]
		if len(m.undo[oldestSlide]) == 0 {
			delete(m.undo, oldestSlide)
		}
	}
}
