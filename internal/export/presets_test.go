/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"os"
	"path/filepath"
	"testing"

	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

func TestBatchExport_WebPreset(t *testing.T) {
	dh := newTestDeck(t)
	if err := BatchExport(dh, BatchOptions{Preset: PresetWeb, Width: 320}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	base := filepath.Join(dh.Root, "exports", "web")
	for _, p := range []string{
		filepath.Join(base, "png", "slide-1.png"),
		filepath.Join(base, "svg", "slide-1.svg"),
		filepath.Join(base, "deck.zip"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
}

func TestBatchExport_SharePreset(t *testing.T) {
	dh := newTestDeck(t)
	if err := BatchExport(dh, BatchOptions{Preset: PresetShare}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	base := filepath.Join(dh.Root, "exports", "share")
	for _, p := range []string{
		filepath.Join(base, "deck.pptx"),
		filepath.Join(base, "deck.pdf"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
}

func TestBatchExport_ExplicitFormatsOverridePreset(t *testing.T) {
	dh := newTestDeck(t)
	if err := BatchExport(dh, BatchOptions{Preset: PresetWeb, Formats: []string{"pdf"}, OutDir: "only-pdf"}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	base := filepath.Join(dh.Root, "exports", "only-pdf")
	if _, err := os.Stat(filepath.Join(base, "deck.pdf")); err != nil {
		t.Fatalf("expected pdf: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "png")); err == nil {
		t.Fatalf("png dir should not exist when formats are explicit")
	}
}

func TestBatchExport_UnknownFormat(t *testing.T) {
	dh := newTestDeck(t)
	if err := BatchExport(dh, BatchOptions{Formats: []string{"docx"}}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestBatchExport_EmptyDeck(t *testing.T) {
	dh, err := storage.InitDeck(t.TempDir(), domain.Deck{Name: "empty"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := BatchExport(dh, BatchOptions{Preset: PresetPrint}); err == nil {
		t.Fatalf("expected error for deck with no slides")
	}
}
