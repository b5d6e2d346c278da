/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// Alignment guides and snapping helpers for interactive tools. These are
// UI-agnostic and deterministic so they can be unit tested and reused across
// frontends. Snapping is consumer policy: the gesture engine never applies it
// on its own.

import (
	"math"

	"slidesmith/internal/domain"
)

// AlignOptions controls which guide candidates are considered and the
// threshold, in percent units. Typical UI values are 1-2 percent.
type AlignOptions struct {
	Threshold     float64
	SnapToEdges   bool
	SnapToCenters bool
}

// Anchor is a static reference frame (a sibling element or the canvas
// itself). Weight biases selection when distances tie (higher = preferred);
// use 1 when uncertain.
type Anchor struct {
	Frame  domain.Frame
	Weight float64
}

// GuideLine describes a visual guide produced by a snap alignment.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
// Position is the x (vertical) or y (horizontal) percent coordinate; From/To
// are the guide extents for rendering. Values are rounded to 3 decimals.
type GuideLine struct {
	Orientation  string
	Kind         string
	Position     float64
	FromX, FromY float64
	ToX, ToY     float64
}

// ComputeAlignGuides computes snapping adjustments for a moving frame against
// a set of anchors, independently in X and Y. It returns the snapped frame
// and the guide lines to render.
func ComputeAlignGuides(moving domain.Frame, anchors []Anchor, opts AlignOptions) (domain.Frame, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 1.5
	}
	var guides []GuideLine

	bestDX, bestDXDist, bestDXGuide := 0.0, math.Inf(1), GuideLine{}
	bestDY, bestDYDist, bestDYGuide := 0.0, math.Inf(1), GuideLine{}

	mL, mR := moving.X, moving.X+moving.W
	mT, mB := moving.Y, moving.Y+moving.H
	mCX, mCY := moving.X+moving.W/2, moving.Y+moving.H/2

	for _, a := range anchors {
		aL, aR := a.Frame.X, a.Frame.X+a.Frame.W
		aT, aB := a.Frame.Y, a.Frame.Y+a.Frame.H
		aCX, aCY := a.Frame.X+a.Frame.W/2, a.Frame.Y+a.Frame.H/2

		if opts.SnapToEdges {
			for _, c := range [][2]float64{{mL - aL, aL}, {mR - aR, aR}, {mL - aR, aR}, {mR - aL, aL}} {
				consider(&bestDX, &bestDXDist, &bestDXGuide, c[0], opts.Threshold, a.Weight,
					verticalGuide(c[1], moving, a.Frame, "edge"))
			}
			for _, c := range [][2]float64{{mT - aT, aT}, {mB - aB, aB}, {mT - aB, aB}, {mB - aT, aT}} {
				consider(&bestDY, &bestDYDist, &bestDYGuide, c[0], opts.Threshold, a.Weight,
					horizontalGuide(c[1], moving, a.Frame, "edge"))
			}
		}
		if opts.SnapToCenters {
			consider(&bestDX, &bestDXDist, &bestDXGuide, mCX-aCX, opts.Threshold, a.Weight,
				verticalGuide(aCX, moving, a.Frame, "center"))
			consider(&bestDY, &bestDYDist, &bestDYGuide, mCY-aCY, opts.Threshold, a.Weight,
				horizontalGuide(aCY, moving, a.Frame, "center"))
		}
	}

	snapped := moving
	if bestDXDist <= opts.Threshold {
		snapped.X = roundTo(moving.X-bestDX, 3)
		guides = append(guides, bestDXGuide)
	}
	if bestDYDist <= opts.Threshold {
		snapped.Y = roundTo(moving.Y-bestDY, 3)
		guides = append(guides, bestDYGuide)
	}
	return snapped, guides
}

func consider(best *float64, bestD *float64, bestGuide *GuideLine, delta, threshold, weight float64, g GuideLine) {
	dist := math.Abs(delta)
	if dist > threshold {
		return
	}
	if weight < 1 {
		weight = 1
	}
	// Compete on the weighted distance so a heavier anchor keeps winning
	// against later, slightly closer light anchors.
	if wd := dist / weight; wd < *bestD {
		*bestD = wd
		*best = delta
		*bestGuide = g
	}
}

func verticalGuide(x float64, a, b domain.Frame, kind string) GuideLine {
	minY := math.Min(a.Y, b.Y)
	maxY := math.Max(a.Y+a.H, b.Y+b.H)
	x = roundTo(x, 3)
	return GuideLine{Orientation: "vertical", Kind: kind, Position: x, FromX: x, FromY: minY, ToX: x, ToY: maxY}
}

func horizontalGuide(y float64, a, b domain.Frame, kind string) GuideLine {
	minX := math.Min(a.X, b.X)
	maxX := math.Max(a.X+a.W, b.X+b.W)
	y = roundTo(y, 3)
	return GuideLine{Orientation: "horizontal", Kind: kind, Position: y, FromX: minX, FromY: y, ToX: maxX, ToY: y}
}
