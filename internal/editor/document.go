/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor owns the document-state object that external surfaces
// (UI, CLI) mutate through a small operation set. Every mutation runs
// synchronously: it commits the new element sequence, bumps the modified
// timestamp, and rebuilds the affected derived indices before returning.
// There is no hidden global state; callers hold the *Document they operate
// on.
package editor

import (
	"encoding/json"
	"time"

	"screenwriter/internal/domain"
	"screenwriter/internal/undo"
)

// Document wraps a Screenplay with editing state: the focus index external
// collaborators track, the dirty flag whose clearing is owned by the host,
// and an optional undo history.
type Document struct {
	Play  *domain.Screenplay
	Focus int
	Dirty bool

	history *undo.Manager
}

// New wraps an existing screenplay and rebuilds all derived indices so the
// document starts consistent.
func New(play *domain.Screenplay) *Document {
	d := &Document{Play: play}
	d.rebuildScenes()
	d.rebuildCharacters()
	d.rebuildLocations()
	return d
}

// EnableHistory attaches a snapshot-based undo manager. Mutations push a
// full-document snapshot before applying.
func (d *Document) EnableHistory(m *undo.Manager) { d.history = m }

// Read accessors.

func (d *Document) Elements() []domain.ScriptElement   { return d.Play.Elements }
func (d *Document) Scenes() []domain.Scene             { return d.Play.Scenes }
func (d *Document) Characters() []domain.CharacterInfo { return d.Play.Characters }
func (d *Document) Locations() []domain.LocationInfo   { return d.Play.Locations }

func (d *Document) inBounds(index int) bool {
	return index >= 0 && index < len(d.Play.Elements)
}

// MarkClean clears the dirty flag. Called by the host after a successful
// save; the core only ever sets the flag.
func (d *Document) MarkClean() { d.Dirty = false }

// UpdateContent replaces an element's content. Out-of-range indices are a
// silent no-op so stale indices from the editing surface stay harmless.
func (d *Document) UpdateContent(index int, text string) {
	if !d.inBounds(index) {
		return
	}
	d.snapshot()
	d.Play.Elements[index].Content = text
	d.committed(d.Play.Elements[index].Type)
}

// UpdateType changes an element's kind, preserving content. Indices are
// rebuilt for both the old and the new kind's collections.
func (d *Document) UpdateType(index int, newType domain.ElementType) {
	if !d.inBounds(index) {
		return
	}
	d.snapshot()
	old := d.Play.Elements[index].Type
	d.Play.Elements[index].Type = newType
	d.committed(old, newType)
}

// InsertAfter creates a new empty element of the given kind immediately
// after index and moves the focus onto it.
func (d *Document) InsertAfter(index int, t domain.ElementType) {
	if !d.inBounds(index) {
		return
	}
	d.snapshot()
	el := domain.NewElement(t)
	els := d.Play.Elements
	els = append(els, domain.ScriptElement{})
	copy(els[index+2:], els[index+1:])
	els[index+1] = el
	d.Play.Elements = els
	d.Focus = index + 1
	d.committed(t)
}

// Delete removes the element at index. Deleting the sole remaining element
// is refused so the sequence is never empty. The focus index is clamped and
// shifts left when the deleted element was at or before it.
func (d *Document) Delete(index int) {
	if !d.inBounds(index) || len(d.Play.Elements) <= 1 {
		return
	}
	d.snapshot()
	removed := d.Play.Elements[index].Type
	d.Play.Elements = append(d.Play.Elements[:index], d.Play.Elements[index+1:]...)
	if index <= d.Focus && d.Focus > 0 {
		d.Focus--
	}
	if d.Focus >= len(d.Play.Elements) {
		d.Focus = len(d.Play.Elements) - 1
	}
	d.committed(removed)
}

// typeCycle is the forward order CycleType walks. Parenthetical sits outside
// the cycle: it is reached only by reverse-cycling from dialogue, and any
// cycle step from parenthetical lands back on dialogue.
var typeCycle = []domain.ElementType{
	domain.SceneHeading,
	domain.Action,
	domain.Character,
	domain.Dialogue,
	domain.Transition,
}

// CycleType advances the element's kind along the fixed cycle, or backward
// with reverse=true.
func (d *Document) CycleType(index int, reverse bool) {
	if !d.inBounds(index) {
		return
	}
	cur := d.Play.Elements[index].Type
	d.UpdateType(index, nextCycleType(cur, reverse))
}

func nextCycleType(cur domain.ElementType, reverse bool) domain.ElementType {
	if cur == domain.Parenthetical {
		return domain.Dialogue
	}
	if reverse && cur == domain.Dialogue {
		return domain.Parenthetical
	}
	pos := 0
	for i, t := range typeCycle {
		if t == cur {
			pos = i
			break
		}
	}
	n := len(typeCycle)
	if reverse {
		return typeCycle[(pos-1+n)%n]
	}
	return typeCycle[(pos+1)%n]
}

// committed marks the document modified and rebuilds the indices the
// involved element kinds can affect. All rebuilds are full passes over the
// element sequence; nothing is patched incrementally.
func (d *Document) committed(involved ...domain.ElementType) {
	d.Play.Touch()
	d.Dirty = true
	scenes, chars := false, false
	for _, t := range involved {
		switch t {
		case domain.SceneHeading:
			scenes = true
		case domain.Character, domain.Dialogue:
			chars = true
		}
	}
	if scenes {
		d.rebuildScenes()
		d.rebuildLocations()
	}
	if chars {
		d.rebuildCharacters()
	}
}

// snapshot pushes the current document state onto the undo history, if one
// is attached.
func (d *Document) snapshot() {
	if d.history == nil {
		return
	}
	blob, err := json.Marshal(d.Play)
	if err != nil {
		return
	}
	d.history.Push(undo.Snapshot{Blob: blob, TS: time.Now()})
}

// Undo restores the most recent history snapshot and rebuilds every index.
// Returns false when there is nothing to undo or no history is attached.
func (d *Document) Undo() bool { return d.restore(true) }

// Redo re-applies the most recently undone snapshot.
func (d *Document) Redo() bool { return d.restore(false) }

func (d *Document) restore(isUndo bool) bool {
	if d.history == nil {
		return false
	}
	current, err := json.Marshal(d.Play)
	if err != nil {
		return false
	}
	var s undo.Snapshot
	var ok bool
	if isUndo {
		s, ok = d.history.Undo(undo.Snapshot{Blob: current, TS: time.Now()})
	} else {
		s, ok = d.history.Redo(undo.Snapshot{Blob: current, TS: time.Now()})
	}
	if !ok {
		return false
	}
	var play domain.Screenplay
	if err := json.Unmarshal(s.Blob, &play); err != nil {
		return false
	}
	d.Play = &play
	d.Dirty = true
	if d.Focus >= len(d.Play.Elements) {
		d.Focus = len(d.Play.Elements) - 1
	}
	d.rebuildScenes()
	d.rebuildCharacters()
	d.rebuildLocations()
	return true
}
