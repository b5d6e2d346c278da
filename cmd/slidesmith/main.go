/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"slidesmith/internal/config"
	"slidesmith/internal/crash"
	"slidesmith/internal/domain"
	"slidesmith/internal/export"
	"slidesmith/internal/generate"
	applog "slidesmith/internal/log"
	"slidesmith/internal/outline"
	"slidesmith/internal/storage"
	"slidesmith/internal/telemetry"
	"slidesmith/internal/ui"
	"slidesmith/internal/version"

	"github.com/google/uuid"
)

func usage() {
	fmt.Println("Slidesmith — AI-assisted deck editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  slidesmith version|-v|--version              Show version")
	fmt.Println("  slidesmith init <dir> <name>                 Create a new deck at <dir> with name <name>")
	fmt.Println("  slidesmith open <dir>                        Open deck at <dir> and print summary")
	fmt.Println("  slidesmith save <dir>                        Save deck at <dir> (creates backup)")
	fmt.Println("  slidesmith outline <dir> <file>              Apply an outline file to the deck")
	fmt.Println("  slidesmith draft <dir> <topic> [slides]      Draft an outline with the configured model")
	fmt.Println("  slidesmith export <dir> <preset|format> [out]  Export (web|print|share or pdf|pptx|png|svg|zip)")
	fmt.Println("  slidesmith search <dir> <query>              Full-text search the deck index")
	fmt.Println("  slidesmith snapshots <dir> <slide-id>        List saved snapshots for a slide")
	fmt.Println("  slidesmith ui [<dir>]                        Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	applog.Init(applog.FromEnv())
	telemetry.InitDefault()
	l := applog.WithComponent("cli")
	var dh *storage.DeckHandle
	defer func() { crash.Recover(dh) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Slidesmith — AI-assisted deck editor")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <name>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			name := args[3]
			abs, _ := filepath.Abs(dir)
			l.Info("init deck", slog.String("root", abs), slog.String("name", name))
			d := domain.Deck{
				Name: name,
				Slides: []domain.Slide{
					{ID: uuid.NewString(), Title: name, Elements: []domain.Element{}},
				},
			}
			h, err := storage.InitDeck(abs, d)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			dh = h
			fmt.Println("Created deck at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			fmt.Printf("Opened deck: %s\n", h.Deck.Name)
			fmt.Printf("Slides: %d\n", len(h.Deck.Slides))
			if h.Deck.Theme.Name != "" {
				fmt.Println("Theme:", h.Deck.Theme.Name)
			}
			fmt.Println("Root:", h.Root)
			return
		case "save":
			if len(args) < 3 {
				fmt.Println("save requires <dir>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			if err := storage.Save(h); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved deck and created a backup of the previous manifest (if any).")
			return
		case "outline":
			if len(args) < 4 {
				fmt.Println("outline requires <dir> and <file>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			data, err := os.ReadFile(args[3])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := applyOutline(h, string(data)); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Applied outline: %d slides\n", len(h.Deck.Slides))
			return
		case "draft":
			if len(args) < 4 {
				fmt.Println("draft requires <dir> and <topic>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			count := 6
			if len(args) >= 5 {
				if n, err := strconv.Atoi(args[4]); err == nil && n > 0 {
					count = n
				}
			}
			cfg, apiKey, err := config.Load()
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			c, err := generate.New(ctx, cfg.LLM, apiKey)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			text, err := c.DraftOutline(ctx, args[3], h.Deck.Metadata.Audience, count)
			if err != nil {
				l.Error("draft failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := applyOutline(h, text); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			telemetry.Event("draft_outline", map[string]any{"slides": len(h.Deck.Slides)})
			fmt.Printf("Drafted %d slides for %q\n", len(h.Deck.Slides), args[3])
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <dir> and <preset|format>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			if err := runExport(h, args[3], args[4:]); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "search":
			if len(args) < 4 {
				fmt.Println("search requires <dir> and <query>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := storage.BuildIndexIfEmpty(ctx, h.Root, h.Deck); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			results, err := storage.Search(ctx, h.Root, storage.SearchQuery{Text: strings.Join(args[3:], " ")})
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(results) == 0 {
				fmt.Println("No matches.")
				return
			}
			for _, r := range results {
				line := fmt.Sprintf("[%s] %s", r.Type, r.Path)
				if r.Snippet != "" {
					line += " — " + r.Snippet
				}
				fmt.Println(line)
			}
			return
		case "snapshots":
			if len(args) < 4 {
				fmt.Println("snapshots requires <dir> and <slide-id>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args[2])
			dh = h
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			snaps, err := storage.ListSnapshots(ctx, h, args[3], 0)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(snaps) == 0 {
				fmt.Println("No snapshots for slide", args[3])
				return
			}
			for _, s := range snaps {
				fmt.Printf("%s  %d bytes\n", s.TS.Local().Format(time.RFC3339), len(s.Blob))
			}
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

func mustOpen(l *slog.Logger, dir string) *storage.DeckHandle {
	abs, _ := filepath.Abs(dir)
	l.Info("open deck", slog.String("root", abs))
	h, err := storage.Open(abs)
	if err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	telemetry.Event("deck_opened", map[string]any{"slides": len(h.Deck.Slides)})
	return h
}

// applyOutline parses the outline text, replaces the deck's slides with the
// scaffold, persists, and keeps the index plus outline history current.
func applyOutline(dh *storage.DeckHandle, text string) error {
	o, errs := outline.Parse(text)
	if len(errs) > 0 {
		return fmt.Errorf("outline has %d problems; first: line %d: %s", len(errs), errs[0].Line, errs[0].Message)
	}
	if o.Title != "" {
		dh.Deck.Name = o.Title
	}
	dh.Deck.Slides = outline.ToSlides(o)
	if err := storage.Save(dh); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.SaveOutlineSnapshot(ctx, dh, text, time.Now()); err != nil {
		return err
	}
	return storage.UpdateIndex(ctx, dh.Root, dh.Deck)
}

func runExport(dh *storage.DeckHandle, what string, rest []string) error {
	out := ""
	if len(rest) > 0 {
		out = rest[0]
	}
	telemetry.Event("deck_exported", map[string]any{"target": strings.ToLower(what), "slides": len(dh.Deck.Slides)})
	switch strings.ToLower(what) {
	case "web", "print", "share":
		opt := export.BatchOptions{Preset: export.PresetName(what)}
		if out != "" {
			opt.OutDir = out
		}
		if err := export.BatchExport(dh, opt); err != nil {
			return err
		}
		fmt.Println("Exported preset", what, "to", filepath.Join(dh.Root, "exports"))
		return nil
	case "pdf":
		if out == "" {
			out = dh.Deck.Name + ".pdf"
		}
		if err := export.ExportDeckPDF(dh, out, export.PDFOptions{WithNotes: true}); err != nil {
			return err
		}
	case "pptx":
		if out == "" {
			out = dh.Deck.Name + ".pptx"
		}
		if err := export.ExportDeckPPTX(dh, out, export.PPTXOptions{}); err != nil {
			return err
		}
	case "png":
		if out == "" {
			out = "png"
		}
		if err := export.ExportDeckPNGSlides(dh, out, export.PNGOptions{Width: 1600}); err != nil {
			return err
		}
	case "svg":
		if out == "" {
			out = "svg"
		}
		if err := export.ExportDeckSVGSlides(dh, out, export.SVGOptions{}); err != nil {
			return err
		}
	case "zip":
		if out == "" {
			out = dh.Deck.Name + ".zip"
		}
		if err := export.ExportDeckArchive(dh, out, export.ArchiveOptions{Width: 1600}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export target %q", what)
	}
	fmt.Println("Exported", what, "to", out)
	return nil
}
