/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package outline

// Outline represents a parsed deck outline: a title and one entry per slide.
// The parser accepts the markdown-flavored text produced by the drafting
// model as well as hand-written outlines.

type Outline struct {
	Title  string
	Slides []Slide
}

// Slide is one outline entry. Bullets become body text on the slide; Notes
// hold speaker notes. Hints are free-form visual suggestions ("[chart: bar]")
// the builder may act on.
type Slide struct {
	Title   string
	Bullets []string
	Notes   string
	Hints   []string
}

// Error represents a parse error with position context.

type Error struct {
	Line    int
	Column  int
	Message string
}
