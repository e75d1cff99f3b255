/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout holds the fixed screenplay layout constants and the coarse
// page-break estimator used for live editing feedback. The estimator is a
// character-count heuristic over a fixed monospace width, not true text
// shaping; the print-accurate policy lives in the export renderer and the
// two deliberately diverge (one lead line before a heading here, two in the
// export). Keep them separate.
package layout

import (
	"strings"

	"screenwriter/internal/domain"
)

// Coarse estimator constants.
const (
	// CharsPerLine is the fixed monospace divisor for line estimation.
	CharsPerLine = 60
	// LinesPerPage is the running-total threshold that triggers a break.
	LinesPerPage = 55
)

// Page geometry in inches. US Letter with standard screenplay margins.
// These are configuration constants consumed by the export renderer, not
// computed.
const (
	PageWidthIn    = 8.5
	PageHeightIn   = 11.0
	MarginLeftIn   = 1.5
	MarginRightIn  = 1.0
	MarginTopIn    = 1.0
	MarginBottomIn = 1.0

	// Per-kind horizontal offsets from the left margin, and the narrowed
	// dialogue column width.
	CharacterIndentIn     = 2.2
	ParentheticalIndentIn = 1.6
	DialogueIndentIn      = 1.0
	DialogueWidthIn       = 3.5
)

// EstimateLines returns the coarse line estimate for a single element:
// ceil(len/60) plus a spacing bonus of one line for scene headings, action
// and character cues.
func EstimateLines(el domain.ScriptElement) int {
	lines := (len(el.Content) + CharsPerLine - 1) / CharsPerLine
	switch el.Type {
	case domain.SceneHeading, domain.Action, domain.Character:
		lines++
	}
	return lines
}

// PageBreaks returns the indices of elements that start a new page. The
// running total accumulates element estimates; when it reaches or exceeds
// LinesPerPage a break is recorded at that element and the counter resets
// to the element's own estimate, since the triggering element opens the
// next page.
func PageBreaks(elements []domain.ScriptElement) []int {
	var breaks []int
	running := 0
	for i, el := range elements {
		running += EstimateLines(el)
		if running >= LinesPerPage {
			breaks = append(breaks, i)
			running = EstimateLines(el)
		}
	}
	return breaks
}

// PageCount is the estimated page total: one page plus one per break.
func PageCount(elements []domain.ScriptElement) int {
	return 1 + len(PageBreaks(elements))
}

// PageOf returns the 1-based estimated page number of the element at index.
func PageOf(elements []domain.ScriptElement, index int) int {
	page := 1
	for _, b := range PageBreaks(elements) {
		if b <= index {
			page++
		}
	}
	return page
}

// WrapMonospace breaks text into lines of at most width characters,
// splitting on spaces where possible. It backs the export renderer's word
// wrap through a caller-supplied measure; this variant measures by rune
// count for the narrower fixed columns.
func WrapMonospace(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return out
}

func wrapLine(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= width {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}
