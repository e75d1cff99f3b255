/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for the screenwriter project: the
// screenplay aggregate, its element sequence, and the derived collections
// rebuilt from it. The structs serialize to a human-readable JSON envelope.

import (
	"time"

	"github.com/google/uuid"
)

// ElementType tags a ScriptElement with its screenplay role.
type ElementType string

const (
	SceneHeading  ElementType = "scene_heading"
	Action        ElementType = "action"
	Character     ElementType = "character"
	Dialogue      ElementType = "dialogue"
	Parenthetical ElementType = "parenthetical"
	Transition    ElementType = "transition"
)

// FormatStyle is an inline styling kind for a FormatRange.
type FormatStyle string

const (
	StyleBold      FormatStyle = "bold"
	StyleItalic    FormatStyle = "italic"
	StyleUnderline FormatStyle = "underline"
)

// FormatRange marks an inline style over [Start, End) of an element's
// content. Ranges may overlap; no ordering is enforced between them.
type FormatRange struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Style FormatStyle `json:"style"`
}

// ScriptElement is one paragraph-like unit of the screenplay. The ID is
// assigned at creation and never reused for the document's lifetime, even
// after the element is deleted.
type ScriptElement struct {
	ID      string        `json:"id"`
	Type    ElementType   `json:"type"`
	Content string        `json:"content"`
	Formats []FormatRange `json:"formats,omitempty"`
}

// TitlePage carries the optional front-matter fields of a screenplay.
type TitlePage struct {
	Title       string `json:"title"`
	TitleSize   string `json:"titleSize,omitempty"` // e.g. "large"
	Credit      string `json:"credit,omitempty"`    // conventionally "written by"
	Author      string `json:"author,omitempty"`
	BasedOn     string `json:"basedOn,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
	DraftDate   string `json:"draftDate,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
}

// CharacterInfo is a derived entry keyed by normalized (upper-cased,
// annotation-stripped) character name.
type CharacterInfo struct {
	Name            string `json:"name"`
	LineCount       int    `json:"lineCount"`
	FirstAppearance int    `json:"firstAppearance"` // element index
}

// LocationInfo is a derived entry keyed by normalized location name.
// Interior wins when a heading is ambiguous (INT/EXT).
type LocationInfo struct {
	Name       string `json:"name"`
	Occurrence int    `json:"occurrence"`
	Interior   bool   `json:"interior"`
}

// Scene is a read-only projection of one non-blank scene-heading element.
// ElementID back-references the owning element so the projection stays valid
// across unrelated insertions and deletions.
type Scene struct {
	ID        string `json:"id"`
	ElementID string `json:"elementId"`
	Number    int    `json:"number"` // 1-based by document order
	Heading   string `json:"heading"`
	Location  string `json:"location"`
	TimeOfDay string `json:"timeOfDay"`
	Interior  bool   `json:"interior"`
}

// Screenplay is the aggregate root. The element sequence IS the document;
// Scenes, Characters and Locations are derived from it and rebuilt
// wholesale, never edited independently.
type Screenplay struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Author     string          `json:"author,omitempty"`
	TitlePage  *TitlePage      `json:"titlePage,omitempty"`
	Elements   []ScriptElement `json:"elements"`
	Scenes     []Scene         `json:"scenes,omitempty"`
	Characters []CharacterInfo `json:"characters,omitempty"`
	Locations  []LocationInfo  `json:"locations,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// NewElement creates an empty element of the given type with a fresh ID.
func NewElement(t ElementType) ScriptElement {
	return ScriptElement{ID: uuid.NewString(), Type: t}
}

// NewScreenplay creates a screenplay with a single empty scene heading so
// the element sequence is never empty.
func NewScreenplay(title string) *Screenplay {
	now := time.Now()
	return &Screenplay{
		ID:        uuid.NewString(),
		Title:     title,
		Elements:  []ScriptElement{NewElement(SceneHeading)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the last-modification timestamp.
func (s *Screenplay) Touch() { s.UpdatedAt = time.Now() }
