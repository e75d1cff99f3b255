/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"
	"time"

	"screenwriter/internal/domain"
	"screenwriter/internal/undo"
)

func docWith(t *testing.T, parts ...[2]string) *Document {
	t.Helper()
	play := domain.NewScreenplay("Test")
	play.Elements = play.Elements[:0]
	for _, p := range parts {
		el := domain.NewElement(domain.ElementType(p[0]))
		el.Content = p[1]
		play.Elements = append(play.Elements, el)
	}
	if len(play.Elements) == 0 {
		play.Elements = append(play.Elements, domain.NewElement(domain.SceneHeading))
	}
	return New(play)
}

func TestUpdateContentOutOfRangeIsNoOp(t *testing.T) {
	d := docWith(t, [2]string{string(domain.Action), "original"})
	before := d.Play.UpdatedAt
	d.UpdateContent(5, "changed")
	d.UpdateContent(-1, "changed")
	if d.Play.Elements[0].Content != "original" {
		t.Fatalf("content changed by out-of-range update")
	}
	if !d.Play.UpdatedAt.Equal(before) || d.Dirty {
		t.Fatalf("out-of-range update marked the document modified")
	}
}

func TestUpdateContentMarksModified(t *testing.T) {
	d := docWith(t, [2]string{string(domain.Action), "a"})
	before := d.Play.UpdatedAt
	time.Sleep(time.Millisecond)
	d.UpdateContent(0, "b")
	if d.Play.Elements[0].Content != "b" {
		t.Fatalf("content not updated")
	}
	if !d.Play.UpdatedAt.After(before) {
		t.Fatalf("UpdatedAt not bumped")
	}
	if !d.Dirty {
		t.Fatalf("dirty flag not set")
	}
}

func TestInsertAfterMovesFocus(t *testing.T) {
	d := docWith(t,
		[2]string{string(domain.SceneHeading), "INT. A - DAY"},
		[2]string{string(domain.Action), "Something happens."},
	)
	d.InsertAfter(0, domain.Character)
	if len(d.Play.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(d.Play.Elements))
	}
	if d.Play.Elements[1].Type != domain.Character || d.Play.Elements[1].Content != "" {
		t.Fatalf("inserted element = %+v", d.Play.Elements[1])
	}
	if d.Focus != 1 {
		t.Fatalf("focus = %d, want 1", d.Focus)
	}
}

func TestDeleteNeverEmptiesSequence(t *testing.T) {
	d := docWith(t,
		[2]string{string(domain.Action), "one"},
		[2]string{string(domain.Action), "two"},
		[2]string{string(domain.Action), "three"},
	)
	d.Delete(2)
	d.Delete(1)
	d.Delete(0) // sole element: refused
	if len(d.Play.Elements) != 1 {
		t.Fatalf("expected exactly 1 element, got %d", len(d.Play.Elements))
	}
	if d.Play.Elements[0].Content != "one" {
		t.Fatalf("wrong survivor: %q", d.Play.Elements[0].Content)
	}
}

func TestDeleteAdjustsFocus(t *testing.T) {
	d := docWith(t,
		[2]string{string(domain.Action), "a"},
		[2]string{string(domain.Action), "b"},
		[2]string{string(domain.Action), "c"},
	)
	d.Focus = 2
	d.Delete(1) // before focus: shift left
	if d.Focus != 1 {
		t.Fatalf("focus = %d after deleting earlier element, want 1", d.Focus)
	}
	d.Delete(1) // at focus, last index: clamp
	if d.Focus != 0 {
		t.Fatalf("focus = %d after deleting focused element, want 0", d.Focus)
	}
}

func TestCycleTypeForward(t *testing.T) {
	steps := []domain.ElementType{
		domain.Action, domain.Character, domain.Dialogue,
		domain.Transition, domain.SceneHeading,
	}
	d := docWith(t, [2]string{string(domain.SceneHeading), ""})
	for _, want := range steps {
		d.CycleType(0, false)
		if got := d.Play.Elements[0].Type; got != want {
			t.Fatalf("cycled to %q, want %q", got, want)
		}
	}
}

func TestCycleTypeParentheticalDetour(t *testing.T) {
	d := docWith(t, [2]string{string(domain.Dialogue), "hi"})
	d.CycleType(0, true)
	if got := d.Play.Elements[0].Type; got != domain.Parenthetical {
		t.Fatalf("reverse cycle from dialogue = %q, want parenthetical", got)
	}
	d.CycleType(0, true)
	if got := d.Play.Elements[0].Type; got != domain.Dialogue {
		t.Fatalf("reverse cycle from parenthetical = %q, want dialogue", got)
	}
	d.UpdateType(0, domain.Parenthetical)
	d.CycleType(0, false)
	if got := d.Play.Elements[0].Type; got != domain.Dialogue {
		t.Fatalf("forward cycle from parenthetical = %q, want dialogue", got)
	}
}

func TestCycleTypeReverseSkipsParenthetical(t *testing.T) {
	d := docWith(t, [2]string{string(domain.Transition), ""})
	d.CycleType(0, true)
	if got := d.Play.Elements[0].Type; got != domain.Dialogue {
		t.Fatalf("reverse cycle from transition = %q, want dialogue", got)
	}
}

func TestUndoRedoRestoresDocument(t *testing.T) {
	d := docWith(t, [2]string{string(domain.Action), "first"})
	d.EnableHistory(undo.NewManager(undo.Config{MinInterval: time.Nanosecond}))
	d.UpdateContent(0, "second")
	d.UpdateContent(0, "third")
	if !d.Undo() {
		t.Fatalf("Undo failed")
	}
	if got := d.Play.Elements[0].Content; got != "second" {
		t.Fatalf("after undo content = %q, want second", got)
	}
	if !d.Redo() {
		t.Fatalf("Redo failed")
	}
	if got := d.Play.Elements[0].Content; got != "third" {
		t.Fatalf("after redo content = %q, want third", got)
	}
}
