/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package themepack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"slidesmith/internal/domain"
	"slidesmith/internal/storage"
)

// Theme definition files live as <deck>/themes/<name>.yaml.
type themeFile struct {
	Name       string `yaml:"name"`
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
	Heading    string `yaml:"headingFont"`
	Body       string `yaml:"bodyFont"`
}

// ListThemes returns the theme names available in the deck's themes directory.
func ListThemes(deckRoot string) ([]string, error) {
	themesDir := filepath.Join(deckRoot, "themes")
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read themes dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") || strings.HasSuffix(n, ".yml") {
			names = append(names, strings.TrimSuffix(strings.TrimSuffix(n, ".yaml"), ".yml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadTheme reads a named theme definition from the deck's themes directory.
func LoadTheme(deckRoot, name string) (domain.Theme, error) {
	var path string
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(deckRoot, "themes", name+ext)
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return domain.Theme{}, fmt.Errorf("theme %q not found", name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Theme{}, fmt.Errorf("read theme: %w", err)
	}
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return domain.Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if tf.Name == "" {
		tf.Name = name
	}
	return domain.Theme{
		Name:       tf.Name,
		Accent:     tf.Accent,
		Background: tf.Background,
		HeadingFnt: tf.Heading,
		BodyFnt:    tf.Body,
	}, nil
}

// SaveTheme writes a theme definition into the deck's themes directory.
func SaveTheme(deckRoot string, th domain.Theme) error {
	if th.Name == "" {
		return fmt.Errorf("theme name is required")
	}
	themesDir := filepath.Join(deckRoot, "themes")
	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		return fmt.Errorf("ensure themes dir: %w", err)
	}
	data, err := yaml.Marshal(themeFile{
		Name:       th.Name,
		Accent:     th.Accent,
		Background: th.Background,
		Heading:    th.HeadingFnt,
		Body:       th.BodyFnt,
	})
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	path := filepath.Join(themesDir, th.Name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

// ApplyTheme loads a named theme and sets it on the deck, persisting the
// manifest.
func ApplyTheme(dh *storage.DeckHandle, name string) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	th, err := LoadTheme(dh.Root, name)
	if err != nil {
		return err
	}
	dh.Deck.Theme = th
	return storage.Save(dh)
}
