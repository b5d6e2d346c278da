//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/google/uuid"

	"slidesmith/internal/config"
	"slidesmith/internal/crash"
	"slidesmith/internal/domain"
	"slidesmith/internal/export"
	"slidesmith/internal/generate"
	"slidesmith/internal/gesture"
	"slidesmith/internal/layout"
	applog "slidesmith/internal/log"
	"slidesmith/internal/storage"
	"slidesmith/internal/telemetry"
	"slidesmith/internal/themepack"
	"slidesmith/internal/undo"
)

// Run starts the Fyne desktop editor. deckDir, when non-empty, is opened
// immediately.
func Run(deckDir string) error {
	applog.Init(applog.FromEnv())
	telemetry.InitDefault()
	telemetry.Event("ui_start", nil)
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	var dh *storage.DeckHandle
	defer func() { crash.Recover(dh) }()

	fyneApp := app.NewWithID("slidesmith")
	w := fyneApp.NewWindow("Slidesmith")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1280)
	winH := prefs.IntWithFallback("window.height", 820)
	if winW < 960 {
		winW = 960
	}
	if winH < 640 {
		winH = 640
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	deckCanvas := NewDeckCanvas()

	currentSlideIdx := 0

	// Undo snapshots capture the whole slide; per-slide stacks with memory caps.
	undoMgr := undo.NewManager(undo.Config{
		MaxBytes:    32 * 1024 * 1024,
		MaxPerSlide: 20,
		MinInterval: 300 * time.Millisecond,
	})

	currentSlide := func() *domain.Slide {
		if dh == nil || currentSlideIdx < 0 || currentSlideIdx >= len(dh.Deck.Slides) {
			return nil
		}
		return &dh.Deck.Slides[currentSlideIdx]
	}

	captureSlideSnapshot := func() {
		sl := currentSlide()
		if sl == nil {
			return
		}
		blob, err := json.Marshal(*sl)
		if err != nil {
			l.Warn("snapshot marshal failed", slog.Any("err", err))
			return
		}
		s := undo.Snapshot{SlideID: sl.ID, Blob: blob, TS: time.Now()}
		undoMgr.PushSnapshot(s)
		// Persist alongside the in-memory stack so the slide survives a crash.
		go func(h *storage.DeckHandle, slideID string, blob []byte, ts time.Time) {
			if err := persistSlideSnapshot(h, slideID, blob, ts); err != nil {
				l.Warn("snapshot persist failed", slog.Any("err", err))
			}
		}(dh, sl.ID, s.Blob, s.TS)
	}

	applySlideSnapshot := func(blob []byte) error {
		sl := currentSlide()
		if sl == nil {
			return fmt.Errorf("no slide selected")
		}
		var restored domain.Slide
		if err := json.Unmarshal(blob, &restored); err != nil {
			return err
		}
		*sl = restored
		if err := storage.Save(dh); err != nil {
			return err
		}
		deckCanvas.ShowSlide(sl)
		return nil
	}

	// Slide navigation (left pane)
	slidesDisplay := []string{}
	slidesList := widget.NewList(
		func() int { return len(slidesDisplay) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(slidesDisplay) {
				o.(*widget.Label).SetText(slidesDisplay[i])
			} else {
				o.(*widget.Label).SetText("")
			}
		},
	)
	left := container.NewBorder(
		container.NewVBox(widget.NewLabel("Slides"), widget.NewSeparator()), nil, nil, nil,
		slidesList,
	)

	refreshSlidesList := func() {
		slidesDisplay = slidesDisplay[:0]
		if dh != nil {
			for i, sl := range dh.Deck.Slides {
				title := strings.TrimSpace(sl.Title)
				if title == "" {
					title = "(untitled)"
				}
				slidesDisplay = append(slidesDisplay, fmt.Sprintf("%d  %s", i+1, title))
			}
		}
		slidesList.Refresh()
	}

	// Inspector (right pane): slide title/notes plus selection readout.
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("Slide title")
	notesEntry := widget.NewMultiLineEntry()
	notesEntry.SetPlaceHolder("Speaker notes")
	notesEntry.Wrapping = fyne.TextWrapWord
	selectionLabel := widget.NewLabel("No selection")

	saveSlideMeta := func() {
		sl := currentSlide()
		if sl == nil {
			return
		}
		if sl.Title == titleEntry.Text && sl.Notes == notesEntry.Text {
			return
		}
		captureSlideSnapshot()
		if err := storage.UpdateSlideMeta(dh, sl.ID, titleEntry.Text, notesEntry.Text); err != nil {
			dialog.ShowError(err, w)
			return
		}
		refreshSlidesList()
	}
	titleEntry.OnSubmitted = func(string) { saveSlideMeta() }
	notesEntry.OnSubmitted = func(string) { saveSlideMeta() }
	applyMetaBtn := widget.NewButton("Apply Title & Notes", func() { saveSlideMeta() })

	right := container.NewVBox(
		widget.NewLabel("Slide"),
		widget.NewSeparator(),
		titleEntry,
		notesEntry,
		applyMetaBtn,
		widget.NewSeparator(),
		widget.NewLabel("Selection"),
		selectionLabel,
	)

	showSlide := func(idx int) {
		if dh == nil || len(dh.Deck.Slides) == 0 {
			deckCanvas.ShowSlide(nil)
			titleEntry.SetText("")
			notesEntry.SetText("")
			return
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(dh.Deck.Slides) {
			idx = len(dh.Deck.Slides) - 1
		}
		currentSlideIdx = idx
		sl := &dh.Deck.Slides[idx]
		deckCanvas.ShowSlide(sl)
		titleEntry.SetText(sl.Title)
		notesEntry.SetText(sl.Notes)
		status.SetText(fmt.Sprintf("Slide %d of %d", idx+1, len(dh.Deck.Slides)))
	}
	slidesList.OnSelected = func(id widget.ListItemID) { showSlide(int(id)) }

	// Gesture wiring: geometry updates land in the model, persistence happens
	// on gesture end.
	deckCanvas.engine.OnGeometry = func(elementID string, f domain.Frame) {
		sl := currentSlide()
		if sl == nil {
			return
		}
		for i := range sl.Elements {
			if sl.Elements[i].ID == elementID {
				if deckCanvas.engine.Phase() == gesture.Dragging {
					anchors := deckCanvas.anchorsExcluding(elementID)
					snapped, guides := layout.ComputeAlignGuides(f, anchors, layout.AlignOptions{
						Threshold: 1.5, SnapToEdges: true, SnapToCenters: true,
					})
					f = snapped
					deckCanvas.guides = guides
				}
				sl.Elements[i].Frame = f
				deckCanvas.Refresh()
				return
			}
		}
	}
	deckCanvas.engine.OnSelect = func(elementID string) {
		deckCanvas.inserter.Cancel()
		if elementID == "" {
			selectionLabel.SetText("No selection")
		} else if el := deckCanvas.elementByID(elementID); el != nil {
			selectionLabel.SetText(fmt.Sprintf("%s %s\nx=%.1f y=%.1f\nw=%.1f h=%.1f",
				el.Kind, el.ID, el.Frame.X, el.Frame.Y, el.Frame.W, el.Frame.H))
		}
		deckCanvas.Refresh()
	}
	deckCanvas.OnGestureStart = func() { captureSlideSnapshot() }
	deckCanvas.OnGestureEnd = func() {
		deckCanvas.guides = nil
		sl := currentSlide()
		if sl == nil {
			return
		}
		// Round for deterministic serialization
		for i := range sl.Elements {
			sl.Elements[i].Frame = layout.Round(sl.Elements[i].Frame, 3)
		}
		if err := storage.Save(dh); err != nil {
			dialog.ShowError(err, w)
		}
		if id := deckCanvas.engine.Selected(); id != "" {
			if el := deckCanvas.elementByID(id); el != nil {
				selectionLabel.SetText(fmt.Sprintf("%s %s\nx=%.1f y=%.1f\nw=%.1f h=%.1f",
					el.Kind, el.ID, el.Frame.X, el.Frame.Y, el.Frame.W, el.Frame.H))
			}
		}
		deckCanvas.Refresh()
	}

	// Insertion affordance: click empty canvas, pick a kind, describe it.
	llmClient := func() (*generate.Client, error) {
		cfg, apiKey, err := config.Load()
		if err != nil {
			return nil, err
		}
		return generate.New(context.Background(), cfg.LLM, apiKey)
	}
	deckCanvas.inserter.Generate = func(ctx context.Context, kind domain.ElementKind, prompt string) (domain.Element, error) {
		c, err := llmClient()
		if err != nil {
			return domain.Element{}, err
		}
		return c.Element(ctx, kind, prompt)
	}
	// SubmitPrompt runs on a worker goroutine, so the insertion side effects
	// (deck mutation, selection, refresh) marshal back to the UI thread.
	deckCanvas.inserter.OnInsert = func(el domain.Element) {
		fyne.Do(func() {
			sl := currentSlide()
			if sl == nil {
				return
			}
			captureSlideSnapshot()
			added, err := insertGeneratedElement(dh, sl.ID, el)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			telemetry.Event("element_generated", map[string]any{"kind": string(added.Kind)})
			deckCanvas.engine.Select(added.ID)
			deckCanvas.Refresh()
		})
	}
	deckCanvas.OnInsertRequested = func() {
		if dh == nil || currentSlide() == nil {
			deckCanvas.inserter.Cancel()
			return
		}
		kindSelect := widget.NewSelect([]string{"text", "image", "icon", "chart"}, nil)
		kindSelect.SetSelected("text")
		promptEntry := widget.NewMultiLineEntry()
		promptEntry.SetPlaceHolder("Describe the element, e.g. \"a punchy headline about Q3 growth\"")
		form := dialog.NewForm("Insert Element", "Generate", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Type", kindSelect),
			widget.NewFormItem("Prompt", promptEntry),
		}, func(ok bool) {
			if !ok {
				deckCanvas.inserter.Cancel()
				return
			}
			if err := deckCanvas.inserter.ChooseKind(domain.ElementKind(kindSelect.Selected)); err != nil {
				dialog.ShowError(err, w)
				return
			}
			prompt := strings.TrimSpace(promptEntry.Text)
			status.SetText("Generating element…")
			go func() {
				err := deckCanvas.inserter.SubmitPrompt(context.Background(), prompt)
				fyne.Do(func() {
					if err != nil {
						status.SetText("Generation failed")
						dialog.ShowError(err, w)
						return
					}
					status.SetText("Element inserted")
				})
			}()
		}, w)
		form.Resize(fyne.NewSize(480, 300))
		form.Show()
	}

	openDeck := func(root string) {
		h, err := storage.Open(root)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		dh = h
		currentSlideIdx = 0
		deckCanvas.theme = &dh.Deck.Theme
		addRecentDeck(prefs, root)
		w.SetTitle("Slidesmith — " + dh.Deck.Name)
		refreshSlidesList()
		showSlide(0)
		telemetry.Event("deck_opened", map[string]any{"slides": len(dh.Deck.Slides)})
		l.Info("deck opened", slog.String("root", root), slog.Int("slides", len(dh.Deck.Slides)))
	}

	// --- Menus ---

	newItem := fyne.NewMenuItem("New…", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			nameEntry := widget.NewEntry()
			nameEntry.SetPlaceHolder("Deck name")
			topicEntry := widget.NewEntry()
			topicEntry.SetPlaceHolder("Topic (optional)")
			form := dialog.NewForm("New Deck", "Create", "Cancel", []*widget.FormItem{
				widget.NewFormItem("Name", nameEntry),
				widget.NewFormItem("Topic", topicEntry),
			}, func(ok bool) {
				if !ok {
					return
				}
				name := strings.TrimSpace(nameEntry.Text)
				if name == "" {
					dialog.ShowInformation("New Deck", "Please enter a deck name.", w)
					return
				}
				root := filepath.Join(uri.Path(), name)
				deck := domain.Deck{
					Name:     name,
					Metadata: domain.Metadata{Topic: strings.TrimSpace(topicEntry.Text)},
					Slides: []domain.Slide{
						{ID: uuid.NewString(), Title: name, Elements: []domain.Element{}},
					},
				}
				h, ierr := storage.InitDeck(root, deck)
				if ierr != nil {
					dialog.ShowError(ierr, w)
					return
				}
				dh = h
				openDeck(root)
			}, w)
			form.Resize(fyne.NewSize(420, 220))
			form.Show()
		}, w)
		fd.Show()
	})

	openItem := fyne.NewMenuItem("Open…", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			openDeck(uri.Path())
		}, w)
		fd.Show()
	})

	saveItem := fyne.NewMenuItem("Save", func() {
		if dh == nil {
			dialog.ShowInformation("Save", "No deck open.", w)
			return
		}
		saveSlideMeta()
		if err := storage.Save(dh); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Saved")
	})

	saveAsItem := fyne.NewMenuItem("Save As…", func() {
		if dh == nil {
			dialog.ShowInformation("Save As", "No deck open.", w)
			return
		}
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			newRoot := filepath.Join(uri.Path(), dh.Deck.Name)
			if err := storage.SaveAs(dh, newRoot); err != nil {
				dialog.ShowError(err, w)
				return
			}
			addRecentDeck(prefs, newRoot)
			status.SetText("Saved to " + newRoot)
		}, w)
		fd.Show()
	})

	searchItem := fyne.NewMenuItem("Search…", func() {
		if dh == nil {
			dialog.ShowInformation("Search", "No deck open.", w)
			return
		}
		queryEntry := widget.NewEntry()
		queryEntry.SetPlaceHolder("Search text (FTS syntax)")
		typeEntry := widget.NewEntry()
		typeEntry.SetPlaceHolder("Types, comma separated (optional)")
		form := dialog.NewForm("Search", "Run", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Query", queryEntry),
			widget.NewFormItem("Types", typeEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			q := storage.SearchQuery{Text: strings.TrimSpace(queryEntry.Text)}
			for _, t := range strings.Split(typeEntry.Text, ",") {
				if t = strings.TrimSpace(t); t != "" {
					q.Types = append(q.Types, t)
				}
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			results, err := storage.Search(ctx, dh.Root, q)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			display := make([]string, 0, len(results))
			for _, r := range results {
				line := fmt.Sprintf("[%s] %s", r.Type, r.Path)
				if r.Snippet != "" {
					line += " — " + r.Snippet
				}
				display = append(display, line)
			}
			if len(display) == 0 {
				display = append(display, "No matches.")
			}
			list := widget.NewList(
				func() int { return len(display) },
				func() fyne.CanvasObject { return widget.NewLabel("") },
				func(i widget.ListItemID, o fyne.CanvasObject) { o.(*widget.Label).SetText(display[i]) },
			)
			list.OnSelected = func(id widget.ListItemID) {
				if int(id) < len(results) {
					r := results[id]
					for i, sl := range dh.Deck.Slides {
						if sl.ID == r.SlideID {
							slidesList.Select(widget.ListItemID(i))
							if r.ElementID != "" {
								deckCanvas.engine.Select(r.ElementID)
							}
							break
						}
					}
				}
			}
			d := dialog.NewCustom("Search Results", "Close", container.NewStack(list), w)
			d.Resize(fyne.NewSize(560, 400))
			d.Show()
		}, w)
		form.Resize(fyne.NewSize(460, 200))
		form.Show()
	})

	rebuildIndexItem := fyne.NewMenuItem("Rebuild Index", func() {
		if dh == nil {
			dialog.ShowInformation("Rebuild Index", "No deck open.", w)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			err := storage.RebuildIndex(ctx, dh.Root, dh.Deck)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				dialog.ShowInformation("Rebuild Index", "Index rebuilt successfully.", w)
			})
		}()
	})

	importThemesItem := fyne.NewMenuItem("Import Theme Pack…", func() {
		if dh == nil {
			dialog.ShowInformation("Import Theme Pack", "No deck open.", w)
			return
		}
		open := dialog.NewFileOpen(func(ur fyne.URIReadCloser, err error) {
			if err != nil || ur == nil {
				return
			}
			path := ur.URI().Path()
			_ = ur.Close()
			installed, ierr := themepack.InstallPack(dh.Root, path)
			if ierr != nil {
				dialog.ShowError(ierr, w)
				return
			}
			dialog.ShowInformation("Import Theme Pack", fmt.Sprintf("Installed %d themes.", installed), w)
		}, w)
		open.Show()
	})

	exportThemesItem := fyne.NewMenuItem("Export Themes as Pack…", func() {
		if dh == nil {
			dialog.ShowInformation("Export Theme Pack", "No deck open.", w)
			return
		}
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			if err := themepack.ExportDeckThemes(dh.Root, outPath); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export Theme Pack", "Exported to "+outPath, w)
		}, w)
		save.SetFileName(dh.Deck.Name + "-themes.zip")
		save.Show()
	})

	applyThemeItem := fyne.NewMenuItem("Apply Theme…", func() {
		if dh == nil {
			dialog.ShowInformation("Apply Theme", "No deck open.", w)
			return
		}
		names, err := themepack.ListThemes(dh.Root)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if len(names) == 0 {
			dialog.ShowInformation("Apply Theme", "No themes installed in this deck.", w)
			return
		}
		sel := widget.NewSelect(names, nil)
		dialog.NewCustomConfirm("Apply Theme", "Apply", "Cancel", sel, func(ok bool) {
			if !ok || sel.Selected == "" {
				return
			}
			if err := themepack.ApplyTheme(dh, sel.Selected); err != nil {
				dialog.ShowError(err, w)
				return
			}
			deckCanvas.Refresh()
			status.SetText("Theme applied: " + sel.Selected)
		}, w).Show()
	})

	closeDeckItem := fyne.NewMenuItem("Close Deck", func() {
		dh = nil
		deckCanvas.theme = nil
		deckCanvas.ShowSlide(nil)
		refreshSlidesList()
		w.SetTitle("Slidesmith")
		status.SetText("Ready")
	})

	fileMenu := fyne.NewMenu("File",
		newItem, openItem, saveItem, saveAsItem,
		fyne.NewMenuItemSeparator(),
		searchItem, rebuildIndexItem,
		fyne.NewMenuItemSeparator(),
		importThemesItem, exportThemesItem, applyThemeItem,
		fyne.NewMenuItemSeparator(),
		closeDeckItem,
	)

	undoMenuItem := fyne.NewMenuItem("Undo", func() {
		sl := currentSlide()
		if sl == nil {
			dialog.ShowInformation("Undo", "No deck open.", w)
			return
		}
		if snap, ok := undoMgr.Undo(sl.ID); ok {
			if err := applySlideSnapshot(snap.Blob); err != nil {
				dialog.ShowError(err, w)
			}
			return
		}
		dialog.ShowInformation("Undo", "Nothing to undo.", w)
	})
	redoMenuItem := fyne.NewMenuItem("Redo", func() {
		sl := currentSlide()
		if sl == nil {
			dialog.ShowInformation("Redo", "No deck open.", w)
			return
		}
		if snap, ok := undoMgr.Redo(sl.ID); ok {
			if err := applySlideSnapshot(snap.Blob); err != nil {
				dialog.ShowError(err, w)
			}
			return
		}
		dialog.ShowInformation("Redo", "Nothing to redo.", w)
	})
	editMenu := fyne.NewMenu("Edit", undoMenuItem, redoMenuItem)

	addSlideItem := fyne.NewMenuItem("Add Slide", func() {
		if dh == nil {
			dialog.ShowInformation("Add Slide", "No deck open.", w)
			return
		}
		sl, err := storage.AddSlide(dh, domain.Slide{Elements: []domain.Element{}})
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		refreshSlidesList()
		for i := range dh.Deck.Slides {
			if dh.Deck.Slides[i].ID == sl.ID {
				slidesList.Select(widget.ListItemID(i))
				break
			}
		}
	})

	deleteSlideItem := fyne.NewMenuItem("Delete Current Slide…", func() {
		sl := currentSlide()
		if sl == nil {
			dialog.ShowInformation("Delete Slide", "No slide selected.", w)
			return
		}
		confirm := dialog.NewConfirm("Delete Slide",
			fmt.Sprintf("Delete slide %d? You can Undo this action.", currentSlideIdx+1),
			func(ok bool) {
				if !ok {
					return
				}
				captureSlideSnapshot()
				if err := storage.RemoveSlide(dh, sl.ID); err != nil {
					dialog.ShowError(err, w)
					return
				}
				refreshSlidesList()
				showSlide(currentSlideIdx)
			}, w)
		confirm.Show()
	})

	revertSlideItem := fyne.NewMenuItem("Revert to Saved Snapshot…", func() {
		sl := currentSlide()
		if sl == nil {
			dialog.ShowInformation("Revert Slide", "No slide selected.", w)
			return
		}
		blob, ts, err := latestSlideSnapshot(dh, sl.ID)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if blob == nil {
			dialog.ShowInformation("Revert Slide", "No saved snapshot for this slide.", w)
			return
		}
		confirm := dialog.NewConfirm("Revert Slide",
			fmt.Sprintf("Revert this slide to the snapshot from %s? You can Undo this action.", ts.Local().Format("15:04:05")),
			func(ok bool) {
				if !ok {
					return
				}
				captureSlideSnapshot()
				if err := applySlideSnapshot(blob); err != nil {
					dialog.ShowError(err, w)
					return
				}
				refreshSlidesList()
			}, w)
		confirm.Show()
	})

	draftOutlineItem := fyne.NewMenuItem("Draft Outline…", func() {
		if dh == nil {
			dialog.ShowInformation("Draft Outline", "No deck open.", w)
			return
		}
		topicEntry := widget.NewEntry()
		topicEntry.SetText(dh.Deck.Metadata.Topic)
		audienceEntry := widget.NewEntry()
		audienceEntry.SetText(dh.Deck.Metadata.Audience)
		countEntry := widget.NewEntry()
		countEntry.SetText("6")
		form := dialog.NewForm("Draft Outline", "Generate", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Topic", topicEntry),
			widget.NewFormItem("Audience", audienceEntry),
			widget.NewFormItem("Slides", countEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			topic := strings.TrimSpace(topicEntry.Text)
			if topic == "" {
				dialog.ShowInformation("Draft Outline", "Please enter a topic.", w)
				return
			}
			count := 6
			fmt.Sscanf(countEntry.Text, "%d", &count)
			status.SetText("Drafting outline…")
			go func() {
				c, err := llmClient()
				if err == nil {
					var text string
					text, err = c.DraftOutline(context.Background(), topic, strings.TrimSpace(audienceEntry.Text), count)
					if err == nil {
						err = applyOutlineText(dh, text)
					}
				}
				fyne.Do(func() {
					if err != nil {
						status.SetText("Outline failed")
						dialog.ShowError(err, w)
						return
					}
					refreshSlidesList()
					showSlide(0)
					status.SetText("Outline applied")
				})
			}()
		}, w)
		form.Resize(fyne.NewSize(460, 240))
		form.Show()
	})

	aiLayoutItem := fyne.NewMenuItem("Suggest Layout", func() {
		sl := currentSlide()
		if sl == nil {
			dialog.ShowInformation("Suggest Layout", "No slide selected.", w)
			return
		}
		status.SetText("Asking for a layout…")
		go func() {
			c, err := llmClient()
			var patches []storage.FramePatch
			if err == nil {
				patches, err = c.Layout(context.Background(), *sl)
			}
			fyne.Do(func() {
				if err != nil {
					status.SetText("Layout failed")
					dialog.ShowError(err, w)
					return
				}
				captureSlideSnapshot()
				skipped, aerr := storage.ApplyLayoutPatches(dh, sl.ID, patches)
				if aerr != nil {
					dialog.ShowError(aerr, w)
					return
				}
				deckCanvas.Refresh()
				if len(skipped) > 0 {
					status.SetText(fmt.Sprintf("Layout applied (%d patches skipped)", len(skipped)))
				} else {
					status.SetText("Layout applied")
				}
			})
		}()
	})

	deleteSelectedItem := fyne.NewMenuItem("Delete Selected Element", func() {
		sl := currentSlide()
		id := deckCanvas.engine.Selected()
		if sl == nil || id == "" {
			dialog.ShowInformation("Delete Selected", "Nothing selected.", w)
			return
		}
		captureSlideSnapshot()
		deckCanvas.engine.Cancel()
		deckCanvas.engine.Select("")
		if err := storage.RemoveElement(dh, sl.ID, id); err != nil {
			dialog.ShowError(err, w)
			return
		}
		deckCanvas.Refresh()
	})

	slideMenu := fyne.NewMenu("Slide",
		addSlideItem, deleteSlideItem, revertSlideItem,
		fyne.NewMenuItemSeparator(),
		draftOutlineItem, aiLayoutItem,
		fyne.NewMenuItemSeparator(),
		deleteSelectedItem,
	)

	exportPDFItem := fyne.NewMenuItem("Export as PDF…", func() {
		if dh == nil {
			dialog.ShowInformation("Export PDF", "No deck open.", w)
			return
		}
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			if err := export.ExportDeckPDF(dh, outPath, export.PDFOptions{WithNotes: true}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export PDF", "Exported to "+outPath, w)
		}, w)
		save.SetFileName(dh.Deck.Name + ".pdf")
		save.Show()
	})

	exportPPTXItem := fyne.NewMenuItem("Export as PowerPoint…", func() {
		if dh == nil {
			dialog.ShowInformation("Export PowerPoint", "No deck open.", w)
			return
		}
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			if err := export.ExportDeckPPTX(dh, outPath, export.PPTXOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export PowerPoint", "Exported to "+outPath, w)
		}, w)
		save.SetFileName(dh.Deck.Name + ".pptx")
		save.Show()
	})

	exportPNGItem := fyne.NewMenuItem("Export as PNG slides…", func() {
		if dh == nil {
			dialog.ShowInformation("Export PNG", "No deck open.", w)
			return
		}
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			outDir := uri.Path()
			if err := export.ExportDeckPNGSlides(dh, outDir, export.PNGOptions{Width: 1600}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export PNG", "Exported slides to "+outDir, w)
		}, w)
		fd.Show()
	})

	exportSVGItem := fyne.NewMenuItem("Export as SVG slides…", func() {
		if dh == nil {
			dialog.ShowInformation("Export SVG", "No deck open.", w)
			return
		}
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			outDir := uri.Path()
			if err := export.ExportDeckSVGSlides(dh, outDir, export.SVGOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export SVG", "Exported slides to "+outDir, w)
		}, w)
		fd.Show()
	})

	exportArchiveItem := fyne.NewMenuItem("Export as ZIP archive…", func() {
		if dh == nil {
			dialog.ShowInformation("Export Archive", "No deck open.", w)
			return
		}
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			if err := export.ExportDeckArchive(dh, outPath, export.ArchiveOptions{Width: 1600}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export Archive", "Exported to "+outPath, w)
		}, w)
		save.SetFileName(dh.Deck.Name + ".zip")
		save.Show()
	})

	presetItem := func(name string, preset export.PresetName) *fyne.MenuItem {
		return fyne.NewMenuItem(name, func() {
			if dh == nil {
				dialog.ShowInformation("Export", "No deck open.", w)
				return
			}
			status.SetText("Exporting…")
			go func() {
				err := export.BatchExport(dh, export.BatchOptions{Preset: preset})
				fyne.Do(func() {
					if err != nil {
						status.SetText("Export failed")
						dialog.ShowError(err, w)
						return
					}
					status.SetText("Exported to " + filepath.Join(dh.Root, "exports"))
				})
			}()
		})
	}
	presetSub := fyne.NewMenuItem("Presets", nil)
	presetSub.ChildMenu = fyne.NewMenu("Presets",
		presetItem("Web (PNG+SVG+ZIP)", export.PresetWeb),
		presetItem("Print (PDF with notes)", export.PresetPrint),
		presetItem("Share (PPTX+PDF)", export.PresetShare),
	)

	exportMenu := fyne.NewMenu("Export",
		exportPDFItem, exportPPTXItem, exportPNGItem, exportSVGItem, exportArchiveItem,
		fyne.NewMenuItemSeparator(),
		presetSub,
	)

	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, slideMenu, exportMenu))

	content := container.NewBorder(nil, status, left, right, deckCanvas)
	w.SetContent(content)

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if dh != nil {
			if err := storage.Save(dh); err != nil {
				l.Warn("save on close failed", slog.Any("err", err))
			}
		}
	})

	if strings.TrimSpace(deckDir) != "" {
		openDeck(deckDir)
	}

	w.ShowAndRun()
	return nil
}

// Recent deck persistence helpers.
const recentPrefsKey = "recent.decks"
const recentMax = 10

func loadRecentDecks(p fyne.Preferences) []string {
	raw := p.StringWithFallback(recentPrefsKey, "")
	var items []string
	if strings.TrimSpace(raw) != "" {
		var tmp []string
		if err := json.Unmarshal([]byte(raw), &tmp); err == nil {
			items = tmp
		}
	}
	if items == nil {
		items = []string{}
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := os.Stat(s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func saveRecentDecks(p fyne.Preferences, items []string) {
	if len(items) > recentMax {
		items = items[:recentMax]
	}
	b, _ := json.Marshal(items)
	p.SetString(recentPrefsKey, string(b))
}

func addRecentDeck(p fyne.Preferences, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	abs, _ := filepath.Abs(path)
	rec := loadRecentDecks(p)
	out := make([]string, 0, 1+len(rec))
	out = append(out, abs)
	for _, s := range rec {
		if strings.EqualFold(s, abs) {
			continue
		}
		out = append(out, s)
	}
	saveRecentDecks(p, out)
}

func parseThemeColor(token string, def color.RGBA) color.RGBA {
	s := strings.TrimSpace(token)
	if !strings.HasPrefix(s, "#") {
		return def
	}
	s = s[1:]
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return def
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return def
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return def
}
