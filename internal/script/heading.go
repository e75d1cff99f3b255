/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// Heading is the parsed form of a scene-heading line.
type Heading struct {
	Interior  bool
	Location  string
	TimeOfDay string
}

// DefaultTimeOfDay is used when a heading carries no recognized suffix.
const DefaultTimeOfDay = "DAY"

// Prefixes stripped from a heading, most specific first so "INT./EXT."
// is not half-consumed by "INT.".
var headingPrefixes = []string{
	"INT./EXT.",
	"INT/EXT.",
	"I./E.",
	"I/E.",
	"INT.",
	"EXT.",
}

// timeVocabulary is the fixed set of recognized time-of-day suffixes.
var timeVocabulary = []string{
	"DAY", "NIGHT", "MORNING", "EVENING", "DAWN", "DUSK",
	"LATER", "CONTINUOUS", "SAME", "MOMENTS LATER",
}

// separators that may introduce the time-of-day suffix: hyphen, en dash,
// em dash.
var headingSeparators = []string{"-", "–", "—"}

// ParseHeading parses a scene-heading line into interior flag, location and
// time of day. Parsing is best effort and never fails: a malformed or empty
// heading yields the whole remainder as location and "DAY" as time of day.
// Headings starting with "INT" classify as interior, so "INT/EXT" counts as
// interior. That tie-break is deliberate.
func ParseHeading(heading string) Heading {
	norm := strings.ToUpper(strings.TrimSpace(heading))
	h := Heading{
		Interior:  strings.HasPrefix(norm, "INT"),
		TimeOfDay: DefaultTimeOfDay,
	}

	rest := norm
	for _, p := range headingPrefixes {
		if strings.HasPrefix(rest, p) {
			rest = strings.TrimLeft(strings.TrimPrefix(rest, p), " ")
			break
		}
	}

	location := rest
	if idx, sepLen := lastSeparator(rest); idx >= 0 {
		suffix := strings.TrimSpace(rest[idx+sepLen:])
		if isTimeOfDay(suffix) {
			location = rest[:idx]
			h.TimeOfDay = suffix
		}
	}
	h.Location = strings.TrimSpace(location)
	return h
}

// lastSeparator finds the right-most hyphen-family separator so locations
// containing hyphens ("SEVEN-ELEVEN - NIGHT") keep their inner hyphen.
func lastSeparator(s string) (idx, length int) {
	idx = -1
	for _, sep := range headingSeparators {
		if i := strings.LastIndex(s, sep); i > idx {
			idx = i
			length = len(sep)
		}
	}
	return idx, length
}

func isTimeOfDay(s string) bool {
	for _, t := range timeVocabulary {
		if s == t {
			return true
		}
	}
	return false
}

// NormalizeCharacter upper-cases a character cue and strips one trailing
// parenthetical voice annotation such as "(V.O.)" or "(CONT'D)" for identity
// purposes.
func NormalizeCharacter(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if strings.HasSuffix(n, ")") {
		if open := strings.LastIndex(n, "("); open >= 0 {
			n = strings.TrimSpace(n[:open])
		}
	}
	return n
}
