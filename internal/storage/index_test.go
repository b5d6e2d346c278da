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
	"context"
	"os"
	"testing"
	"time"

	"slidesmith/internal/domain"
)

func sampleDeck() domain.Deck {
	return domain.Deck{
		Name:     "Launch Plan",
		Metadata: domain.Metadata{Topic: "product launch", Audience: "executives"},
		Slides: []domain.Slide{
			{ID: "s1", Title: "Roadmap", Notes: "walk through milestones", Elements: []domain.Element{
				{ID: "e1", Kind: domain.KindText, Frame: domain.Frame{X: 10, Y: 10, W: 30, H: 10}, Text: &domain.TextPayload{Content: "Ship the beta in March"}},
				{ID: "e2", Kind: domain.KindChart, Frame: domain.Frame{X: 50, Y: 30, W: 40, H: 45}, Chart: &domain.ChartPayload{Type: "bar", Labels: []string{"Q1", "Q2"}, Values: []float64{3, 5}}},
			}},
		},
	}
}

func TestIndexInitCreatesWALAndMetaVersion(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(IndexPath(root)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("expected WAL mode, got %s", mode)
	}
	var cnt int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('meta','version')").Scan(&cnt); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if cnt != 2 {
		t.Fatalf("expected 2 meta tables, got %d", cnt)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('documents','fts_documents','assets','thumbs','snapshots','outline_snapshots')").Scan(&cnt); err != nil {
		t.Fatalf("query core tables: %v", err)
	}
	if cnt != 6 {
		t.Fatalf("expected 6 core tables, got %d", cnt)
	}
	// Schema row should land at the current version after migrations
	var schema int
	if err := db.QueryRowContext(ctx, "SELECT schema FROM version WHERE id=1").Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
	// FTS triggers populate the contentless index
	if _, err := db.ExecContext(ctx, `INSERT INTO documents(doc_id, type, path, slide_id, element_id, text) VALUES(10001,'element_text','slide:1/element:e9','s1','e9','hello world');`); err != nil {
		t.Fatalf("insert document: %v", err)
	}
	var ftsCount int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fts_documents WHERE fts_documents MATCH 'hello' ").Scan(&ftsCount); err != nil {
		t.Fatalf("fts query: %v", err)
	}
	if ftsCount == 0 {
		t.Fatalf("expected FTS to find inserted document")
	}
}

func TestBuildIndexFromDeckAndSearch(t *testing.T) {
	root := t.TempDir()
	deck := sampleDeck()
	ctx := context.Background()
	if err := BuildIndexIfEmpty(ctx, root, deck); err != nil {
		t.Fatalf("BuildIndexIfEmpty: %v", err)
	}
	// Element text is findable
	res, err := Search(ctx, root, SearchQuery{Text: "beta"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res) != 1 || res[0].SlideID != "s1" || res[0].ElementID != "e1" {
		t.Fatalf("unexpected results: %+v", res)
	}
	// Type filter without FTS
	res, err = Search(ctx, root, SearchQuery{Types: []string{"slide_title"}})
	if err != nil {
		t.Fatalf("Search by type: %v", err)
	}
	if len(res) != 1 || res[0].Type != "slide_title" {
		t.Fatalf("type filter results: %+v", res)
	}
	// UpdateIndex reflects edits
	deck.Slides[0].Elements[0].Text.Content = "Ship the GA in June"
	if err := UpdateIndex(ctx, root, deck); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	res, err = Search(ctx, root, SearchQuery{Text: "beta"})
	if err != nil {
		t.Fatalf("Search after update: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("stale FTS rows after update: %+v", res)
	}
}

func TestDetectAndRebuildIndexOnCorruption(t *testing.T) {
	root := t.TempDir()
	deck := sampleDeck()
	ctx := context.Background()
	if err := BuildIndexIfEmpty(ctx, root, deck); err != nil {
		t.Fatalf("BuildIndexIfEmpty: %v", err)
	}
	// Clobber the DB file
	if err := os.WriteFile(IndexPath(root), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("corrupt index: %v", err)
	}
	rebuilt, err := DetectAndRebuildIndex(ctx, root, deck)
	if err != nil {
		t.Fatalf("DetectAndRebuildIndex: %v", err)
	}
	if !rebuilt {
		t.Fatalf("expected a rebuild")
	}
	res, err := Search(ctx, root, SearchQuery{Text: "milestones"})
	if err != nil {
		t.Fatalf("Search after rebuild: %v", err)
	}
	if len(res) == 0 {
		t.Fatalf("rebuilt index is empty")
	}
}
