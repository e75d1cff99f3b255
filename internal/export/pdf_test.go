/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"screenwriter/internal/domain"
)

// fixedMeasure emulates Courier 12: 7.2pt per character.
func fixedMeasure(s string) float64 { return float64(len(s)) * 7.2 }

func mkEl(t domain.ElementType, content string) domain.ScriptElement {
	e := domain.NewElement(t)
	e.Content = content
	return e
}

func TestPaginateSpacingPolicy(t *testing.T) {
	els := []domain.ScriptElement{
		mkEl(domain.SceneHeading, "INT. KITCHEN - DAY"),
		mkEl(domain.Action, "Alice stirs a pot."),
		mkEl(domain.Character, "ALICE"),
		mkEl(domain.Dialogue, "Dinner!"),
		mkEl(domain.SceneHeading, "EXT. PARK - NIGHT"),
	}
	pages := Paginate(els, fixedMeasure)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	lines := pages[0].Lines
	// Page-top heading gets no lead; then action +1 blank, character +1
	// blank, dialogue attaches, second heading +2 blanks.
	want := []string{
		"INT. KITCHEN - DAY",
		"",
		"Alice stirs a pot.",
		"",
		"ALICE",
		"Dinner!",
		"",
		"",
		"EXT. PARK - NIGHT",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i].Text, w)
		}
	}
}

func TestPaginateColumns(t *testing.T) {
	els := []domain.ScriptElement{
		mkEl(domain.Character, "BOB"),
		mkEl(domain.Parenthetical, "(softly)"),
		mkEl(domain.Dialogue, "Hello."),
		mkEl(domain.Transition, "CUT TO:"),
	}
	pages := Paginate(els, fixedMeasure)
	lines := pages[0].Lines
	byText := map[string]Line{}
	for _, l := range lines {
		if l.Text != "" {
			byText[l.Text] = l
		}
	}
	if byText["BOB"].X != characterX {
		t.Fatalf("character X = %v, want %v", byText["BOB"].X, characterX)
	}
	if byText["(softly)"].X != parenX {
		t.Fatalf("parenthetical X = %v, want %v", byText["(softly)"].X, parenX)
	}
	if byText["Hello."].X != dialogueX {
		t.Fatalf("dialogue X = %v, want %v", byText["Hello."].X, dialogueX)
	}
	if !byText["CUT TO:"].AlignRight {
		t.Fatalf("transition not right-aligned")
	}
}

func TestPaginateDialogueWrapsNarrow(t *testing.T) {
	long := strings.Repeat("word ", 40) // far wider than the dialogue column
	els := []domain.ScriptElement{mkEl(domain.Dialogue, strings.TrimSpace(long))}
	pages := Paginate(els, fixedMeasure)
	if len(pages[0].Lines) < 2 {
		t.Fatalf("long dialogue did not wrap: %d lines", len(pages[0].Lines))
	}
	for _, l := range pages[0].Lines {
		if fixedMeasure(l.Text) > dialogueW {
			t.Fatalf("dialogue line %q exceeds column width", l.Text)
		}
	}
}

func TestPaginateBreaksPages(t *testing.T) {
	var els []domain.ScriptElement
	for i := 0; i < 60; i++ {
		els = append(els, mkEl(domain.Action, "A short beat."))
	}
	pages := Paginate(els, fixedMeasure)
	if len(pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(pages))
	}
	for i, p := range pages {
		if len(p.Lines) > linesPerPage {
			t.Fatalf("page %d has %d lines, cap %d", i, len(p.Lines), linesPerPage)
		}
		if len(p.Lines) > 0 && p.Lines[0].Text == "" && i > 0 {
			t.Fatalf("page %d starts with a lead blank line", i)
		}
	}
}

func TestExportPDFWritesFile(t *testing.T) {
	play := domain.NewScreenplay("Export Test")
	play.Author = "A. Writer"
	play.Elements = []domain.ScriptElement{
		mkEl(domain.SceneHeading, "INT. OFFICE - DAY"),
		mkEl(domain.Action, "Papers everywhere."),
		mkEl(domain.Character, "ALICE"),
		mkEl(domain.Dialogue, "We ship today."),
		mkEl(domain.Transition, "FADE OUT."),
	}
	out := filepath.Join(t.TempDir(), "out", "test.pdf")
	if err := ExportPDF(play, out, PDFOptions{IncludeTitlePage: true, PageNumbers: true}); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty PDF written")
	}
}

func TestExportPDFNilScreenplay(t *testing.T) {
	if err := ExportPDF(nil, filepath.Join(t.TempDir(), "x.pdf"), PDFOptions{}); err == nil {
		t.Fatalf("expected error for nil screenplay")
	}
}
