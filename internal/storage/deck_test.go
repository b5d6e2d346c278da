/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"slidesmith/internal/domain"
)

func TestInitDeckScaffoldsAndWritesManifest(t *testing.T) {
	root := t.TempDir()
	dh, err := InitDeck(root, domain.Deck{Name: "Quarterly Review"})
	if err != nil {
		t.Fatalf("InitDeck error: %v", err)
	}
	if dh == nil {
		t.Fatalf("expected deck handle")
	}
	for _, d := range []string{"assets", "exports", "themes", BackupsDirName} {
		if st, err := os.Stat(filepath.Join(root, d)); err != nil || !st.IsDir() {
			t.Fatalf("expected subdir %s: %v", d, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, ManifestFileName)); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	deck := domain.Deck{
		Name: "Demo",
		Slides: []domain.Slide{
			{ID: "s1", Title: "Intro", Elements: []domain.Element{
				{ID: "e1", Kind: domain.KindText, Frame: domain.Frame{X: 10, Y: 10, W: 30, H: 10}, Text: &domain.TextPayload{Content: "Hello"}},
			}},
		},
	}
	if _, err := InitDeck(root, deck); err != nil {
		t.Fatalf("InitDeck: %v", err)
	}
	dh, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if dh.Deck.Name != "Demo" || len(dh.Deck.Slides) != 1 || len(dh.Deck.Slides[0].Elements) != 1 {
		t.Fatalf("round trip mismatch: %+v", dh.Deck)
	}
	if dh.Deck.Slides[0].Elements[0].Text == nil {
		t.Fatalf("text payload lost in round trip")
	}
}

func TestSaveCreatesBackupAndOpenFallsBackOnCorruption(t *testing.T) {
	root := t.TempDir()
	dh, err := InitDeck(root, domain.Deck{Name: "Backup Test"})
	if err != nil {
		t.Fatalf("InitDeck: %v", err)
	}
	// Second save backs up the first manifest
	dh.Deck.Name = "Backup Test v2"
	if err := Save(dh); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil || len(ents) == 0 {
		t.Fatalf("expected at least one backup, err=%v n=%d", err, len(ents))
	}
	// Corrupt the manifest; Open must fall back to the latest backup
	if err := os.WriteFile(dh.ManifestPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open after corruption: %v", err)
	}
	if got.Deck.Name != "Backup Test" {
		t.Fatalf("expected backup content, got name %q", got.Deck.Name)
	}
}

func TestSaveAsMovesHandle(t *testing.T) {
	root := t.TempDir()
	dh, err := InitDeck(root, domain.Deck{Name: "Move Me"})
	if err != nil {
		t.Fatalf("InitDeck: %v", err)
	}
	newRoot := filepath.Join(t.TempDir(), "copy")
	if err := SaveAs(dh, newRoot); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if dh.Root != newRoot {
		t.Fatalf("handle root not updated: %s", dh.Root)
	}
	if _, err := os.Stat(filepath.Join(newRoot, ManifestFileName)); err != nil {
		t.Fatalf("manifest missing at new root: %v", err)
	}
}

func TestAutosaveCrashSnapshotWritesFile(t *testing.T) {
	root := t.TempDir()
	dh, err := InitDeck(root, domain.Deck{Name: "Crashy", Slides: []domain.Slide{{ID: "s1", Elements: []domain.Element{}}}})
	if err != nil {
		t.Fatalf("InitDeck error: %v", err)
	}
	path, err := AutosaveCrashSnapshot(dh)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot error: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(root, BackupsDirName) {
		t.Fatalf("snapshot outside backups dir: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("snapshot is empty")
	}

	if _, err := AutosaveCrashSnapshot(nil); err == nil {
		t.Fatalf("expected error for nil handle")
	}
}
