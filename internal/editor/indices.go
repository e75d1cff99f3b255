/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"strings"

	"github.com/google/uuid"

	"screenwriter/internal/domain"
	"screenwriter/internal/script"
)

// The derived indices are pure functions of the element sequence: each
// rebuild discards the previous collection entirely and recomputes from
// scratch. At screenplay scale (hundreds of elements) the full pass is
// cheaper than it sounds and removes a whole class of staleness bugs.

// rebuildScenes projects every non-blank scene-heading element into a Scene
// with a 1-based sequence number.
func (d *Document) rebuildScenes() {
	scenes := make([]domain.Scene, 0, len(d.Play.Elements)/4)
	num := 0
	for _, el := range d.Play.Elements {
		if el.Type != domain.SceneHeading || strings.TrimSpace(el.Content) == "" {
			continue
		}
		num++
		h := script.ParseHeading(el.Content)
		scenes = append(scenes, domain.Scene{
			ID:        uuid.NewString(),
			ElementID: el.ID,
			Number:    num,
			Heading:   el.Content,
			Location:  h.Location,
			TimeOfDay: h.TimeOfDay,
			Interior:  h.Interior,
		})
	}
	d.Play.Scenes = scenes
}

// rebuildCharacters collects character cues in document order, then
// attributes each dialogue element to its immediately-associated character
// block. The backward scan stops at the first character cue or at any
// dialogue or scene-heading element, so dialogue separated from a cue by
// another block is never attributed to it.
func (d *Document) rebuildCharacters() {
	chars := make([]domain.CharacterInfo, 0, 8)
	byName := make(map[string]int)
	for i, el := range d.Play.Elements {
		if el.Type != domain.Character || strings.TrimSpace(el.Content) == "" {
			continue
		}
		name := script.NormalizeCharacter(el.Content)
		if _, ok := byName[name]; ok {
			continue
		}
		byName[name] = len(chars)
		chars = append(chars, domain.CharacterInfo{Name: name, FirstAppearance: i})
	}
	for i, el := range d.Play.Elements {
		if el.Type != domain.Dialogue {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			prev := d.Play.Elements[j]
			if prev.Type == domain.Character {
				if idx, ok := byName[script.NormalizeCharacter(prev.Content)]; ok {
					chars[idx].LineCount++
				}
				break
			}
			if prev.Type == domain.Dialogue || prev.Type == domain.SceneHeading {
				break
			}
		}
	}
	d.Play.Characters = chars
}

// rebuildLocations counts heading occurrences per normalized location name,
// preserving first-seen order.
func (d *Document) rebuildLocations() {
	locs := make([]domain.LocationInfo, 0, 8)
	byName := make(map[string]int)
	for _, el := range d.Play.Elements {
		if el.Type != domain.SceneHeading || strings.TrimSpace(el.Content) == "" {
			continue
		}
		h := script.ParseHeading(el.Content)
		if h.Location == "" {
			continue
		}
		if idx, ok := byName[h.Location]; ok {
			locs[idx].Occurrence++
			continue
		}
		byName[h.Location] = len(locs)
		locs = append(locs, domain.LocationInfo{Name: h.Location, Occurrence: 1, Interior: h.Interior})
	}
	d.Play.Locations = locs
}
