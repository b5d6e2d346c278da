/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package outline

import (
	"bufio"
	"regexp"
	"strings"
)

// Parse parses an outline text into a structured Outline.
// Supported syntax (minimal):
//   - Deck title: the first "# Title" line. A "Deck:" prefix works too.
//   - Slide headings: "## Title" or "Slide: Title" introduce a new slide.
//     Numbered headings like "## 3. Title" have the number stripped.
//   - Bullets: lines starting with "-", "*" or "1." are body bullets.
//     Continuation lines indented by 2+ spaces are appended to the previous bullet.
//   - Notes: "Notes: text" or lines starting with ';' are speaker notes.
//   - Hints: bracketed markers like "[chart: bar]" or "[image: rocket]" on
//     their own line are collected as visual hints for the slide.
//
// Blank lines are separators and not represented.
func Parse(input string) (Outline, []Error) {
	o := Outline{Slides: []Slide{}}
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	current := Slide{}
	started := false
	var lastBullet *string

	reHeading := regexp.MustCompile(`^(#+)\s*(.*)$`)
	reSlideAlt := regexp.MustCompile(`^(?i)\s*Slide(?:\s*\d+)?\s*:\s*(.+)$`)
	reDeckAlt := regexp.MustCompile(`^(?i)\s*Deck\s*:\s*(.+)$`)
	reBullet := regexp.MustCompile(`^\s*(?:[-*]|\d+\.)\s+(.*)$`)
	reNotes := regexp.MustCompile(`^(?i)\s*Notes?\s*:\s*(.*)$`)
	reHint := regexp.MustCompile(`^\s*\[([a-z]+)\s*:\s*([^\]]+)\]\s*$`)
	reNumPrefix := regexp.MustCompile(`^\d+[.)]\s+`)

	flushSlide := func() {
		if started || strings.TrimSpace(current.Title) != "" || len(current.Bullets) > 0 {
			o.Slides = append(o.Slides, current)
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		// Continuation line (indented) -> append to last bullet
		if strings.HasPrefix(line, "  ") && lastBullet != nil && !reBullet.MatchString(line) {
			cont := strings.TrimSpace(line)
			if cont != "" {
				*lastBullet += "\n" + cont
			}
			continue
		}

		trim := strings.TrimSpace(line)
		if trim == "" {
			lastBullet = nil
			continue
		}

		if m := reHeading.FindStringSubmatch(trim); m != nil {
			title := strings.TrimSpace(m[2])
			if len(m[1]) == 1 && o.Title == "" && !started {
				// First level-1 heading is the deck title
				o.Title = title
				continue
			}
			flushSlide()
			current = Slide{Title: reNumPrefix.ReplaceAllString(title, "")}
			started = true
			lastBullet = nil
			continue
		}
		if m := reDeckAlt.FindStringSubmatch(trim); m != nil && o.Title == "" && !started {
			o.Title = strings.TrimSpace(m[1])
			continue
		}
		if m := reSlideAlt.FindStringSubmatch(trim); m != nil {
			flushSlide()
			current = Slide{Title: strings.TrimSpace(m[1])}
			started = true
			lastBullet = nil
			continue
		}

		if m := reNotes.FindStringSubmatch(trim); m != nil {
			appendNote(&current, strings.TrimSpace(m[1]))
			lastBullet = nil
			continue
		}
		if strings.HasPrefix(trim, ";") {
			appendNote(&current, strings.TrimSpace(strings.TrimPrefix(trim, ";")))
			lastBullet = nil
			continue
		}

		if m := reHint.FindStringSubmatch(trim); m != nil {
			current.Hints = append(current.Hints, m[1]+": "+strings.TrimSpace(m[2]))
			lastBullet = nil
			continue
		}

		if m := reBullet.FindStringSubmatch(trim); m != nil {
			current.Bullets = append(current.Bullets, strings.TrimSpace(m[1]))
			lastBullet = &current.Bullets[len(current.Bullets)-1]
			continue
		}

		// Loose text before any slide heading starts an implicit slide so
		// nothing is lost; afterwards it joins the current slide as a bullet.
		if !started && strings.TrimSpace(current.Title) == "" && len(current.Bullets) == 0 {
			current.Title = trim
			started = true
			continue
		}
		current.Bullets = append(current.Bullets, trim)
		lastBullet = &current.Bullets[len(current.Bullets)-1]
	}
	flushSlide()

	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Column: 1, Message: err.Error()})
	}
	return o, errs
}

func appendNote(s *Slide, note string) {
	if note == "" {
		return
	}
	if s.Notes != "" {
		s.Notes += "\n"
	}
	s.Notes += note
}
