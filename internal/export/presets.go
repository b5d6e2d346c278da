/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"slidesmith/internal/storage"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"   // per-slide PNG + SVG and a ZIP bundle
	PresetPrint PresetName = "print" // handout PDF with speaker notes
	PresetShare PresetName = "share" // PPTX plus a plain PDF
)

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - If OutDir is empty or relative, outputs land under <deck>/exports/<preset>/.
//   - Single-file outputs (pdf, pptx, zip) are named deck.<ext> in OutDir.
//   - Per-slide outputs (png, svg) go into png/ or svg/ subfolders of OutDir.
type BatchOptions struct {
	Preset    PresetName
	Formats   []string // allowed: pdf, pptx, png, svg, zip; empty means preset defaults
	Slides    []int    // zero-based indices; empty means all slides
	Width     int      // raster/vector pixel width; zero uses DefaultRenderWidth
	WithNotes *bool    // when set, overrides the preset's PDF notes default
	OutDir    string
}

// BatchExport runs exports according to the given preset.
func BatchExport(dh *storage.DeckHandle, opt BatchOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	if len(dh.Deck.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	if !filepath.IsAbs(baseOut) {
		baseOut = filepath.Join(dh.Root, "exports", baseOut)
	}

	notes := presetWithNotes(opt.Preset)
	if opt.WithNotes != nil {
		notes = *opt.WithNotes
	}

	for _, f := range formats {
		switch f {
		case "pdf":
			out := filepath.Join(baseOut, "deck.pdf")
			if err := ExportDeckPDF(dh, out, PDFOptions{WithNotes: notes, Slides: opt.Slides}); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "pptx":
			out := filepath.Join(baseOut, "deck.pptx")
			if err := ExportDeckPPTX(dh, out, PPTXOptions{Slides: opt.Slides}); err != nil {
				return fmt.Errorf("pptx: %w", err)
			}
		case "zip":
			out := filepath.Join(baseOut, "deck.zip")
			if err := ExportDeckArchive(dh, out, ArchiveOptions{Width: opt.Width, Slides: opt.Slides}); err != nil {
				return fmt.Errorf("zip: %w", err)
			}
		case "png":
			outDir := filepath.Join(baseOut, "png")
			if err := ExportDeckPNGSlides(dh, outDir, PNGOptions{Width: opt.Width, Slides: opt.Slides}); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		case "svg":
			outDir := filepath.Join(baseOut, "svg")
			if err := ExportDeckSVGSlides(dh, outDir, SVGOptions{Width: opt.Width, Slides: opt.Slides}); err != nil {
				return fmt.Errorf("svg: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg", "zip"}
	case PresetPrint:
		return []string{"pdf"}
	case PresetShare:
		return []string{"pptx", "pdf"}
	default:
		return []string{"pdf"}
	}
}

func presetWithNotes(p PresetName) bool {
	return p == PresetPrint
}
